// Package di wires the gateway's components together from its configuration.
package di

import (
	"errors"
	"sync"
)

// Container is the dependency injection container.
// It manages service registration and resolution. Each builder runs at most
// once; builders may resolve their own dependencies from the container.
type Container struct {
	mu       sync.RWMutex
	services map[string]interface{}
	builders map[string]*lazy
}

// Builder is a function that creates a service instance.
type Builder func(c *Container) (interface{}, error)

type lazy struct {
	once    sync.Once
	build   Builder
	service interface{}
	err     error
}

// New creates a new dependency injection container.
func New() *Container {
	return &Container{
		services: make(map[string]interface{}),
		builders: make(map[string]*lazy),
	}
}

// Register registers a service instance.
func (c *Container) Register(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder registers a builder function for lazy instantiation.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = &lazy{build: builder}
}

// Get retrieves a service by name, building it on first use. A failed
// build is not retried.
func (c *Container) Get(name string) (interface{}, error) {
	c.mu.RLock()
	service, exists := c.services[name]
	l, hasBuilder := c.builders[name]
	c.mu.RUnlock()

	if exists {
		return service, nil
	}
	if !hasBuilder {
		return nil, errors.New("service not found: " + name)
	}

	// The lock is not held while building so builders can call Get.
	l.once.Do(func() {
		l.service, l.err = l.build(c)
	})
	return l.service, l.err
}

// MustGet retrieves a service or panics if not found.
func (c *Container) MustGet(name string) interface{} {
	service, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return service
}

// Has checks if a service is registered.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.services[name]
	if exists {
		return true
	}
	_, exists = c.builders[name]
	return exists
}

// ServiceNames returns all registered service names.
func (c *Container) ServiceNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make(map[string]bool)
	for name := range c.services {
		names[name] = true
	}
	for name := range c.builders {
		names[name] = true
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	return result
}

// Clear removes all services and builders.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services = make(map[string]interface{})
	c.builders = make(map[string]*lazy)
}

// Service names constants for type-safe access.
const (
	ServiceConfig        = "config"
	ServiceLogger        = "logger"
	ServiceJournal       = "journal"
	ServiceLedgerClient  = "ledger.client"
	ServiceMetrics       = "metrics"
	ServiceMetricsServer = "metrics.server"
	ServiceAccount       = "service.account"
	ServiceAddress       = "service.address"
	ServiceTransaction   = "service.transaction"
	ServiceGRPCServer    = "grpc.server"
)

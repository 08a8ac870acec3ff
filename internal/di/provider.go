package di

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/LeJamon/goXRPLGateway/internal/config"
	grpcserver "github.com/LeJamon/goXRPLGateway/internal/grpc"
	"github.com/LeJamon/goXRPLGateway/internal/journal"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/metrics"
	"github.com/LeJamon/goXRPLGateway/internal/service"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
	logger    *zap.Logger
}

// NewProvider creates a new service provider. A nil logger discards logs.
func NewProvider(container *Container, cfg *config.Config, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		container: container,
		config:    cfg,
		logger:    logger,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	if p.config == nil {
		return errors.New("di: config is required")
	}

	p.container.Register(ServiceConfig, p.config)
	p.container.Register(ServiceLogger, p.logger)

	// Register builders for lazy instantiation
	p.registerInfrastructureBuilders()
	p.registerServiceBuilders()
	p.registerServerBuilders()

	return nil
}

// registerInfrastructureBuilders registers the journal, ledger client and
// metrics builders.
func (p *Provider) registerInfrastructureBuilders() {
	p.container.RegisterBuilder(ServiceJournal, func(c *Container) (interface{}, error) {
		store, err := journal.Open(p.config.Journal.Store())
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		return store, nil
	})

	p.container.RegisterBuilder(ServiceLedgerClient, func(c *Container) (interface{}, error) {
		client, err := ledgerclient.New(p.config.Ledger.Client(), p.logger)
		if err != nil {
			return nil, fmt.Errorf("create ledger client: %w", err)
		}
		return client, nil
	})

	p.container.RegisterBuilder(ServiceMetrics, func(c *Container) (interface{}, error) {
		return metrics.New(), nil
	})
}

// registerServiceBuilders registers the three gateway services.
func (p *Provider) registerServiceBuilders() {
	p.container.RegisterBuilder(ServiceAccount, func(c *Container) (interface{}, error) {
		client, err := LedgerClient(c)
		if err != nil {
			return nil, err
		}
		return service.NewAccountService(client, p.logger), nil
	})

	p.container.RegisterBuilder(ServiceAddress, func(c *Container) (interface{}, error) {
		client, err := LedgerClient(c)
		if err != nil {
			return nil, err
		}
		cfg := service.AddressConfig{
			Algorithm:   p.config.Ledger.Algorithm(),
			TestNetwork: p.config.Ledger.TestNetwork,
		}
		return service.NewAddressService(client, cfg, p.logger), nil
	})

	p.container.RegisterBuilder(ServiceTransaction, func(c *Container) (interface{}, error) {
		client, err := LedgerClient(c)
		if err != nil {
			return nil, err
		}
		store, err := Journal(c)
		if err != nil {
			return nil, err
		}
		m, err := Metrics(c)
		if err != nil {
			return nil, err
		}
		return service.NewTransactionService(client, p.logger,
			service.WithJournal(store),
			service.WithStreamObserver(m),
		), nil
	})
}

// registerServerBuilders registers the gRPC and metrics servers.
func (p *Provider) registerServerBuilders() {
	p.container.RegisterBuilder(ServiceGRPCServer, func(c *Container) (interface{}, error) {
		account, err := get[*service.AccountService](c, ServiceAccount)
		if err != nil {
			return nil, err
		}
		address, err := get[*service.AddressService](c, ServiceAddress)
		if err != nil {
			return nil, err
		}
		tx, err := TransactionService(c)
		if err != nil {
			return nil, err
		}
		m, err := Metrics(c)
		if err != nil {
			return nil, err
		}

		svcs := grpcserver.Services{Account: account, Address: address, Transaction: tx}
		return grpcserver.NewServer(p.config.Server.GRPC(), svcs,
			grpcserver.WithLogger(p.logger),
			grpcserver.WithRecorder(m),
		)
	})

	p.container.RegisterBuilder(ServiceMetricsServer, func(c *Container) (interface{}, error) {
		if !p.config.Metrics.Enabled {
			// No metrics listener configured
			return (*metrics.Server)(nil), nil
		}
		m, err := Metrics(c)
		if err != nil {
			return nil, err
		}
		client, err := LedgerClient(c)
		if err != nil {
			return nil, err
		}
		health := func() error {
			if !client.IsConnected() {
				return errors.New("not connected to rippled")
			}
			return nil
		}
		return metrics.NewServer(p.config.Metrics.Address, m, health, p.logger), nil
	})
}

// get resolves name and asserts its type.
func get[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("di: service %s is %T, not %T", name, v, zero)
	}
	return t, nil
}

// LedgerClient returns the shared rippled client.
func LedgerClient(c *Container) (*ledgerclient.Client, error) {
	return get[*ledgerclient.Client](c, ServiceLedgerClient)
}

// Journal returns the transaction journal.
func Journal(c *Container) (journal.Store, error) {
	return get[journal.Store](c, ServiceJournal)
}

// Metrics returns the gateway's collectors.
func Metrics(c *Container) (*metrics.Metrics, error) {
	return get[*metrics.Metrics](c, ServiceMetrics)
}

// TransactionService returns the transaction service.
func TransactionService(c *Container) (*service.TransactionService, error) {
	return get[*service.TransactionService](c, ServiceTransaction)
}

// GRPCServer returns the gRPC server with every service registered.
func GRPCServer(c *Container) (*grpcserver.Server, error) {
	return get[*grpcserver.Server](c, ServiceGRPCServer)
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are
// disabled.
func MetricsServer(c *Container) (*metrics.Server, error) {
	return get[*metrics.Server](c, ServiceMetricsServer)
}

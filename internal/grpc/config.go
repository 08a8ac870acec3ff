// Package grpc serves the gateway's account, address and transaction
// services.
package grpc

import (
	"fmt"
	"net"
	"time"
)

// ServerConfig holds configuration for the gRPC server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., "127.0.0.1:50051")
	Address string

	// Message size limits in bytes, 4MB by default.
	MaxRecvMsgSize int
	MaxSendMsgSize int

	// MaxConcurrentStreams caps the calls open on one connection, counting
	// WaitValidation subscriptions. Zero leaves the gRPC default.
	MaxConcurrentStreams uint32

	// KeepaliveTime is how long a connection may sit idle before the server
	// pings it. WaitValidation clients can idle between ledgers, so this
	// also detects dead subscribers. Zero leaves the gRPC default.
	KeepaliveTime time.Duration

	// HealthService registers grpc.health.v1.Health, serving while the
	// ledger client is connected.
	HealthService bool
}

// DefaultServerConfig returns a ServerConfig with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:        "127.0.0.1:50051",
		MaxRecvMsgSize: 4 << 20,
		MaxSendMsgSize: 4 << 20,
		KeepaliveTime:  time.Minute,
		HealthService:  true,
	}
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	if _, port, err := net.SplitHostPort(c.Address); err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	} else if port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	switch {
	case c.MaxRecvMsgSize <= 0:
		return fmt.Errorf("max_recv_msg_size must be positive")
	case c.MaxSendMsgSize <= 0:
		return fmt.Errorf("max_send_msg_size must be positive")
	case c.KeepaliveTime < 0:
		return fmt.Errorf("keepalive_time must not be negative")
	}
	return nil
}

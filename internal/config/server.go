package config

import (
	"time"

	grpcserver "github.com/LeJamon/goXRPLGateway/internal/grpc"
)

// ServerConfig represents the [server] section
// The gRPC listener the gateway services are exposed on
type ServerConfig struct {
	Address              string        `toml:"address" mapstructure:"address"`
	MaxRecvMsgSize       int           `toml:"max_recv_msg_size" mapstructure:"max_recv_msg_size"`
	MaxSendMsgSize       int           `toml:"max_send_msg_size" mapstructure:"max_send_msg_size"`
	MaxConcurrentStreams uint32        `toml:"max_concurrent_streams" mapstructure:"max_concurrent_streams"`
	KeepaliveTime        time.Duration `toml:"keepalive_time" mapstructure:"keepalive_time"`
	HealthService        bool          `toml:"health_service" mapstructure:"health_service"`
}

// Validate performs validation on the server configuration
func (s *ServerConfig) Validate() error {
	return s.GRPC().Validate()
}

// GRPC converts the section to the gRPC server's configuration
func (s *ServerConfig) GRPC() *grpcserver.ServerConfig {
	return &grpcserver.ServerConfig{
		Address:              s.Address,
		MaxRecvMsgSize:       s.MaxRecvMsgSize,
		MaxSendMsgSize:       s.MaxSendMsgSize,
		MaxConcurrentStreams: s.MaxConcurrentStreams,
		KeepaliveTime:        s.KeepaliveTime,
		HealthService:        s.HealthService,
	}
}

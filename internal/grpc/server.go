package grpc

import (
	"context"
	"errors"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

// Services are the handlers the server exposes. A nil field leaves that
// service unregistered.
type Services struct {
	Account     rippleapi.RippleAccountAPIServer
	Address     rippleapi.RippleAddressAPIServer
	Transaction rippleapi.RippleTransactionAPIServer
}

// Server represents the gateway's gRPC server.
type Server struct {
	mu sync.RWMutex

	// grpcServer is the underlying gRPC server
	grpcServer *grpc.Server

	// health is nil unless config.HealthService is set
	health *health.Server

	config   *ServerConfig
	log      *zap.Logger
	recorder RPCRecorder

	// listener is the network listener
	listener net.Listener

	// running indicates if the server is currently running
	running bool
}

// ServerOption is a function that configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used by the server and its interceptors.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		s.log = logger
	}
}

// WithRecorder reports every completed call to r.
func WithRecorder(r RPCRecorder) ServerOption {
	return func(s *Server) {
		s.recorder = r
	}
}

// NewServer creates a gRPC server with logging and metrics interceptors and
// registers svcs on it.
func NewServer(cfg *ServerConfig, svcs Services, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	server := &Server{
		config:   cfg,
		log:      zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(server)
	}
	server.log = server.log.With(zap.String("component", "grpc"))

	grpcOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.ChainUnaryInterceptor(
			RecoveryUnaryInterceptor(server.log),
			UnaryServerInterceptor(server.log, server.recorder),
		),
		grpc.ChainStreamInterceptor(
			RecoveryStreamInterceptor(server.log),
			StreamServerInterceptor(server.log, server.recorder),
		),
	}
	if cfg.MaxConcurrentStreams > 0 {
		grpcOpts = append(grpcOpts, grpc.MaxConcurrentStreams(cfg.MaxConcurrentStreams))
	}
	if cfg.KeepaliveTime > 0 {
		grpcOpts = append(grpcOpts, grpc.KeepaliveParams(keepalive.ServerParameters{Time: cfg.KeepaliveTime}))
	}
	server.grpcServer = grpc.NewServer(grpcOpts...)

	if svcs.Account != nil {
		rippleapi.RegisterRippleAccountAPIServer(server.grpcServer, svcs.Account)
	}
	if svcs.Address != nil {
		rippleapi.RegisterRippleAddressAPIServer(server.grpcServer, svcs.Address)
	}
	if svcs.Transaction != nil {
		rippleapi.RegisterRippleTransactionAPIServer(server.grpcServer, svcs.Transaction)
	}
	if cfg.HealthService {
		server.health = health.NewServer()
		server.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		healthpb.RegisterHealthServer(server.grpcServer, server.health)
	}

	return server, nil
}

// Start listens on the configured address and serves. It blocks until the
// server is stopped or an error occurs.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener. It blocks until the server is
// stopped or an error occurs.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		listener.Close()
		return errors.New("server is already running")
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	s.log.Info("gRPC server listening", zap.String("address", listener.Addr().String()))
	err := s.grpcServer.Serve(listener)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

// StartAsync starts the gRPC server in a goroutine and returns immediately.
// Returns an error if the server fails to listen.
func (s *Server) StartAsync() error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	go func() {
		if err := s.Serve(listener); err != nil {
			s.log.Error("gRPC server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully stops the gRPC server.
// It stops accepting new connections and waits for in-flight calls to
// complete. Open streams must be ended first or Stop waits for them. A
// Serve that starts after Stop returns immediately.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.health != nil {
		s.health.Shutdown()
	}
	s.grpcServer.GracefulStop()
	s.running = false
}

// Shutdown stops gracefully, falling back to StopNow once ctx is done. It
// returns ctx.Err() when calls were cut off.
func (s *Server) Shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.log.Warn("graceful stop timed out, closing connections")
		s.grpcServer.Stop()
		<-stopped
		return ctx.Err()
	}
}

// StopNow immediately stops the gRPC server without waiting for connections.
func (s *Server) StopNow() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grpcServer.Stop()
	s.running = false
}

// SetServing updates the health service status. It is a no-op when the
// health service is disabled.
func (s *Server) SetServing(serving bool) {
	if s.health == nil {
		return
	}
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// IsRunning returns true if the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the address the server is listening on.
// Returns empty string if the server is not running.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GetGRPCServer returns the underlying grpc.Server.
// This can be used to register additional services.
func (s *Server) GetGRPCServer() *grpc.Server {
	return s.grpcServer
}

package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goXRPLGateway/internal/di"
	grpcserver "github.com/LeJamon/goXRPLGateway/internal/grpc"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
)

const shutdownTimeout = 10 * time.Second

// serveCmd represents the serve command (default action)
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway",
	Long: `Connect to rippled and serve the gateway's gRPC services:
- RippleAccountAPI: account info
- RippleAddressAPI: address generation and validation
- RippleTransactionAPI: prepare, sign, submit, combine, lookup and WaitValidation

Prometheus metrics and an HTTP health check are served on the metrics address.

This is the default command when no subcommand is specified.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Set serve as the default command
	rootCmd.RunE = runServe
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := di.New()
	if err := di.NewProvider(container, cfg, logger).RegisterAll(); err != nil {
		return err
	}

	store, err := di.Journal(container)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing journal", zap.Error(err))
		}
	}()

	client, err := di.LedgerClient(container)
	if err != nil {
		return err
	}
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Ledger.URL, err)
	}

	m, err := di.Metrics(container)
	if err != nil {
		return err
	}
	listenerID := client.AddLedgerListener(m.LedgerClosed)

	txService, err := di.TransactionService(container)
	if err != nil {
		return err
	}
	server, err := di.GRPCServer(container)
	if err != nil {
		return err
	}
	metricsServer, err := di.MetricsServer(container)
	if err != nil {
		return err
	}

	// Listen before serving so a bad address fails startup
	listener, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Address, err)
	}

	logger.Info("gateway starting",
		zap.String("grpc", listener.Addr().String()),
		zap.String("rippled", cfg.Ledger.URL),
		zap.String("journal", cfg.Journal.Driver),
		zap.Bool("metrics", metricsServer != nil),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(listener)
	})
	if metricsServer != nil {
		g.Go(metricsServer.ListenAndServe)
	}
	g.Go(func() error {
		m.WatchConnection(gctx, client, cfg.Ledger.ConnectionCheckInterval)
		return nil
	})
	g.Go(func() error {
		keepConnected(gctx, client, server, cfg.Ledger.ConnectionCheckInterval, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("gateway stopping")

		// Streams first, or GracefulStop waits on them. A stream stuck on a
		// client that stopped reading is cut off by Shutdown.
		stopCtx, cancelStop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelStop()
		if err := txService.Close(stopCtx); err != nil {
			logger.Warn("streams still open at shutdown", zap.Error(err))
		}
		forceCtx, cancelForce := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelForce()
		if err := server.Shutdown(forceCtx); err != nil {
			logger.Warn("gRPC server shutdown", zap.Error(err))
		}
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}
		client.RemoveLedgerListener(listenerID)
		if err := client.Disconnect(); err != nil {
			logger.Debug("disconnect", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("gateway stopped")
	return nil
}

// keepConnected reconnects the client whenever its session ends and keeps
// the gRPC health status in step with the connection, until ctx is done.
func keepConnected(ctx context.Context, client *ledgerclient.Client, server *grpcserver.Server, interval time.Duration, logger *zap.Logger) {
	for {
		server.SetServing(client.IsConnected())
		select {
		case <-ctx.Done():
			return
		case <-client.SessionDone():
		}

		server.SetServing(false)
		logger.Warn("ledger session ended, reconnecting", zap.Duration("interval", interval))
		for !client.IsConnected() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
			if err := client.Connect(ctx); err != nil {
				logger.Warn("reconnect failed", zap.Error(err))
			}
		}
	}
}

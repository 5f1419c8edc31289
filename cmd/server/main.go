// Command packtrip-server starts the packing engine gRPC server and its admin endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/and161185/packtrip/internal/auth"
	"github.com/and161185/packtrip/internal/config"
	"github.com/and161185/packtrip/internal/metrics"
	"github.com/and161185/packtrip/internal/migrate"
	"github.com/and161185/packtrip/internal/repository"
	"github.com/and161185/packtrip/internal/repository/memory"
	"github.com/and161185/packtrip/internal/repository/postgres"
	"github.com/and161185/packtrip/internal/server/admin"
	grpcserver "github.com/and161185/packtrip/internal/server/grpc"
	"github.com/and161185/packtrip/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func newLogger(dev bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// main parses configuration, prepares storage and serves gRPC plus admin HTTP.
func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	logger := newLogger(cfg.Server.Dev)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Server.Addr),
		zap.String("driver", cfg.DB.Driver),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	var (
		store repository.Store
		ready admin.Pinger
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		logger.Warn("in-memory storage: data is lost on exit")
		store = memory.New()
	default:
		if err := migrate.Up(ctx, cfg.DB.DSN); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}
		if v, err := migrate.Version(ctx, cfg.DB.DSN); err == nil {
			logger.Info("schema ready", zap.Int64("version", v))
		}
		pool, err := pgxpool.New(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("pgxpool.New", zap.Error(err))
		}
		defer pool.Close()
		store = postgres.NewStore(&postgres.DB{Pool: pool})
		ready = pool
	}

	// Services
	m := metrics.New()
	policy := service.Policy{
		StrictFlags:       cfg.Policy.StrictFlags,
		StrictTransitions: cfg.Policy.StrictTransitions,
		SnapshotViews:     cfg.Policy.SnapshotViews,
	}
	tripSvc := service.NewTripService(store.Trips(), policy, logger, m)
	packingSvc := service.NewPackingService(store, policy, logger, m)
	catalogSvc := service.NewCatalogService(store.Catalog())

	// gRPC server with interceptors
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoverUnary(logger),
			grpcserver.LoggingUnary(logger),
			grpcserver.MetricsUnary(m),
			grpcserver.TimeoutUnary(cfg.Server.RequestTimeout),
			grpcserver.AuthUnary(auth.NewVerifier([]byte(cfg.Auth.JWTKey))),
		),
	}
	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.Server.TLSCert, cfg.Server.TLSKey)
		if err != nil {
			logger.Fatal("failed to load TLS cert/key", zap.Error(err))
		}
		opts = append(opts, grpc.Creds(creds))
	} else {
		logger.Warn("TLS disabled (dev mode)")
	}
	s := grpc.NewServer(opts...)

	app := grpcserver.New(tripSvc, packingSvc, catalogSvc, logger)
	grpcserver.Register(s, app)

	// Health & reflection (dev)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	if cfg.Server.Dev {
		reflection.Register(s)
	}

	// Listen
	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Bool("tls", cfg.TLSEnabled()))
		errCh <- s.Serve(lis)
	}()

	var adminSrv *http.Server
	if cfg.Server.AdminAddr != "" {
		adminSrv = admin.NewServer(cfg.Server.AdminAddr, admin.NewRouter(logger, ready, m.Handler()))
		go func() {
			logger.Info("admin listening", zap.String("addr", cfg.Server.AdminAddr))
			if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Wait for stop
	select {
	case <-ctx.Done():
		hs.Shutdown()
		if adminSrv != nil {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = adminSrv.Shutdown(sctx)
			cancel()
		}
		// graceful shutdown
		done := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			s.Stop()
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/clubsphere/internal/bootstrap"
	"github.com/yigit/clubsphere/internal/config"
)

const (
	sessionPurgeInterval = time.Hour
	shutdownTimeout      = 10 * time.Second
)

// Server owns the HTTP listener and the background workers that live as
// long as it does: the notification hub and the expired-session purger.
type Server struct {
	config *config.Config
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server

	workers sync.WaitGroup
}

// NewServer loads configuration and wires every dependency. Nothing is
// listening or running until Run.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	repos, database, err := bootstrap.SetupStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup store: %w", err)
	}

	broker, err := bootstrap.SetupBroker(ctx, cfg, lgr)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, repos, broker, lgr)
	if err != nil {
		_ = broker.Close()
		if database != nil {
			database.Close()
		}
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}
	deps.Database = database

	router, err := bootstrap.SetupRouter(cfg, deps, lgr)
	if err != nil {
		deps.Close()
		return nil, err
	}
	if err := serveUploads(router, cfg.Server.StoragePath); err != nil {
		deps.Close()
		return nil, err
	}
	lgr.Info().Str("path", cfg.Server.StoragePath).Msg("Serving uploaded images under /uploads")

	return &Server{
		config: cfg,
		deps:   deps,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}, nil
}

// serveUploads exposes the image store directory, creating it on first start
func serveUploads(router *gin.Engine, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	router.Static("/uploads", dir)
	return nil
}

// Run serves until ctx is cancelled or the listener fails, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	s.startWorkers(workerCtx)

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	return errors.Join(runErr, s.shutdown(stopWorkers))
}

func (s *Server) startWorkers(ctx context.Context) {
	s.workers.Add(2)
	go func() {
		defer s.workers.Done()
		s.deps.Hub.Run(ctx)
	}()
	go func() {
		defer s.workers.Done()
		bootstrap.PurgeSessionsPeriodically(ctx, s.deps.Services.Auth, sessionPurgeInterval, s.logger)
	}()
}

// shutdown drains HTTP requests, stops the workers and releases the store
// and broker. Hijacked websocket connections are not tracked by http.Server;
// stopping the hub closes them.
func (s *Server) shutdown(stopWorkers context.CancelFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	stopWorkers()
	s.workers.Wait()

	s.deps.Close()
	s.logger.Info().Msg("Server stopped")
	return errors.Join(errs...)
}

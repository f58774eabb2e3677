package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

const (
	// readHeaderTimeout bounds reading request headers.
	readHeaderTimeout = 10 * time.Second
	// shutdownTimeout bounds the graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP bridge until its context is done.
type Server struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// service runs the tasks.
	service grabber.Service
	// broadcaster feeds the event stream.
	broadcaster *Broadcaster
}

// NewServer creates a Server. broadcaster must be the sink the service emits into.
func NewServer(cfg *config.Config, service grabber.Service, broadcaster *Broadcaster) *Server {
	return &Server{
		cfg:         cfg,
		service:     service,
		broadcaster: broadcaster,
	}
}

// ListenAndServe listens on the configured address and serves until ctx is done.
// On shutdown every running task is cancelled and awaited.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var listenConfig net.ListenConfig

	listener, err := listenConfig.Listen(ctx, "tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           NewRouter(ctx, s.cfg, s.service, s.broadcaster),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	logger.Infof(ctx, "Listening on %s", listener.Addr())

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down")

	if cancelled := s.service.CancelAll(); cancelled > 0 {
		logger.Infof(ctx, "Cancelled %d running task(s)", cancelled)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)

	s.service.Wait()

	return err
}

// Package app wires configuration, handlers and the HTTP server together.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mostudy/aiproxy/internal/config"
)

// shutdownTimeout bounds how long in-flight upstream calls may finish.
const shutdownTimeout = 30 * time.Second

// Server wraps the HTTP server with its configuration
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *slog.Logger
}

// NewServer creates a new configured HTTP server instance
func NewServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) *Server {
	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return &Server{
		httpServer: srv,
		config:     cfg,
		logger:     logger,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ServerPort)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- s.httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("server starting", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

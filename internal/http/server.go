package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// ServerConfig controls the listener.
type ServerConfig struct {
	Addr            string
	AppName         string
	ShutdownTimeout time.Duration
}

// Server binds once and serves the page handler until its context ends.
type Server struct {
	cfg    ServerConfig
	app    *fiber.App
	logger interfaces.Logger
	stdout io.Writer
}

// ServerOption configures optional collaborators.
type ServerOption func(*Server)

// WithServerLogger sets the lifecycle logger.
func WithServerLogger(logger interfaces.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdout redirects the startup announcement, which goes to os.Stdout by default.
func WithStdout(w io.Writer) ServerOption {
	return func(s *Server) {
		if w != nil {
			s.stdout = w
		}
	}
}

// NewServer builds the fiber app and mounts handler on it.
func NewServer(cfg ServerConfig, handler *PageHandler, opts ...ServerOption) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logging.NoOp(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		UnescapePath:          true,
	})
	s.app.Use(requestContext())
	handler.Register(s.app)

	return s
}

// App exposes the fiber application, mainly for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen binds the configured address once and serves until ctx is done.
// A bind failure is returned immediately.
func (s *Server) Listen(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("http server: bind %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve announces the bound address on stdout and serves ln until ctx is
// done, then shuts the app down within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	addr := ln.Addr().String()
	fmt.Fprintf(s.stdout, "Serveur démarré sur http://%s\n", addr)
	s.logger.Info("server.started", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("server.stopping", "addr", addr)
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("http server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("http server: serve %s: %w", addr, err)
	}
	s.logger.Info("server.stopped", "addr", addr)
	return nil
}

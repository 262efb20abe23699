package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/crmapp/internal/domain"
	"github.com/bft-labs/crmapp/pkg/log"
)

// ServerConfig holds the HTTP server timeouts.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server serves a handler until its context is canceled.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          log.Logger
}

// NewServer creates a server for handler.
func NewServer(cfg ServerConfig, handler http.Handler, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// Serve accepts connections on ln until ctx is canceled, then drains
// in-flight requests for at most the shutdown timeout. Connections left
// after the timeout are closed and Serve returns ErrShutdownTimeout. The
// listener is closed when Serve returns. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	addr := ln.Addr().String()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("serving", log.String("addr", addr))
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	// gctx is also canceled when the serve goroutine fails; Shutdown on
	// a server that is no longer serving returns immediately.
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		err := s.srv.Shutdown(shutdownCtx)
		if err == nil {
			return nil
		}
		_ = s.srv.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("connections still open after shutdown timeout, closed",
				log.Duration("timeout", s.shutdownTimeout))
			return fmt.Errorf("%w: %v", domain.ErrShutdownTimeout, err)
		}
		return fmt.Errorf("shutdown: %w", err)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped", log.String("addr", addr))
	return nil
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/invoiceiq/vanna-service/internal/config"
	"github.com/invoiceiq/vanna-service/internal/vanna"
	"github.com/rs/zerolog/log"
)

type Server struct {
	cfg   *config.Config
	state *vanna.State // closed on shutdown
	http  *http.Server
}

func New(cfg *config.Config, state *vanna.State) (*Server, error) {
	if state == nil {
		return nil, errors.New("vanna state is required")
	}
	s := &Server{cfg: cfg, state: state}

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// generation plus execution can take a while on a cold LLM
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Startup initializes the engine ahead of the first request. Failure is
// logged and left for the first /query to retry.
func (s *Server) Startup(ctx context.Context) {
	if err := s.state.EnsureInitialized(ctx); err != nil {
		log.Error().Err(err).Msg("startup initialization failed, will retry on first query")
		return
	}
	log.Info().Msg("Vanna AI ready")
}

// Run serves until ctx is canceled or the listener fails. Either way the
// engine's database connection is released before returning.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeState()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) closeState() {
	if err := s.state.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing database connection")
		return
	}
	log.Info().Msg("engine resources released")
}

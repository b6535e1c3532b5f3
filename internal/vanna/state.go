package vanna

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/invoiceiq/vanna-service/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Factory constructs a ready-to-train engine: LLM client plus, when
// configured, a database connection.
type Factory func(ctx context.Context) (Engine, error)

// State is the process-wide handle to the engine. It initializes lazily and
// at most once successfully; a failed attempt leaves it uninitialized so the
// next caller retries.
type State struct {
	factory Factory
	corpus  Corpus

	sf          singleflight.Group // concurrent first callers share one attempt
	mu          sync.RWMutex
	engine      Engine
	initialized atomic.Bool
}

func NewState(factory Factory, corpus Corpus) *State {
	return &State{factory: factory, corpus: corpus}
}

// IsInitialized reports whether the engine is ready. It never triggers
// initialization.
func (s *State) IsInitialized() bool {
	return s.initialized.Load()
}

// EnsureInitialized builds and trains the engine if that has not happened
// yet. Calls after a success are no-ops.
func (s *State) EnsureInitialized(ctx context.Context) error {
	if s.initialized.Load() {
		return nil
	}
	// The attempt is shared by every waiting caller, so it must not die with
	// the request that happened to start it.
	initCtx := context.WithoutCancel(ctx)
	_, err, _ := s.sf.Do("initialize", func() (interface{}, error) {
		// Another caller may have finished while this one waited to enter.
		if s.initialized.Load() {
			return nil, nil
		}
		return nil, s.initialize(initCtx)
	})
	return err
}

func (s *State) initialize(ctx context.Context) error {
	log.Info().Msg("initializing Vanna AI")

	engine, err := s.factory(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error initializing Vanna AI")
		return &InitializationError{Err: err}
	}

	Train(ctx, engine, s.corpus)

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	s.initialized.Store(true)
	metrics.SetEngineInitialized(true)

	log.Info().Msg("Vanna AI initialized successfully")
	return nil
}

// Engine returns the initialized engine.
func (s *State) Engine() (Engine, error) {
	if !s.initialized.Load() {
		return nil, ErrNotInitialized
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, nil
}

// Close releases the engine's database connection, if any.
func (s *State) Close() error {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()
	if engine == nil {
		return nil
	}
	return engine.Close()
}

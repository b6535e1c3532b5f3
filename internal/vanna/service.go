package vanna

import (
	"context"

	"github.com/invoiceiq/vanna-service/internal/database"
	"github.com/invoiceiq/vanna-service/internal/metrics"
)

// Service exposes generation and execution with uniform error translation.
// Both operations initialize the engine on first use.
type Service struct {
	state *State
}

func NewService(state *State) *Service {
	return &Service{state: state}
}

func (s *Service) State() *State { return s.state }

func (s *Service) engine(ctx context.Context) (Engine, error) {
	if err := s.state.EnsureInitialized(ctx); err != nil {
		return nil, err
	}
	return s.state.Engine()
}

// GenerateSQL returns the engine's SQL for question verbatim, which may be
// empty.
func (s *Service) GenerateSQL(ctx context.Context, question string) (string, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return "", err
	}
	sql, err := engine.GenerateSQL(ctx, question)
	if err != nil {
		metrics.ObserveGeneration(metrics.OutcomeError)
		return "", &GenerationError{Err: err}
	}
	if sql == "" {
		metrics.ObserveGeneration(metrics.OutcomeEmpty)
	} else {
		metrics.ObserveGeneration(metrics.OutcomeSuccess)
	}
	return sql, nil
}

// RunQuery executes sql and returns every row in result order. No rows yields
// an empty slice.
func (s *Service) RunQuery(ctx context.Context, sql string) ([]database.Row, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	result, err := engine.RunSQL(ctx, sql)
	if err != nil {
		metrics.ObserveExecution(metrics.OutcomeError)
		return nil, &ExecutionError{Err: err}
	}
	metrics.ObserveExecution(metrics.OutcomeSuccess)
	if result == nil || result.Rows == nil {
		return []database.Row{}, nil
	}
	return result.Rows, nil
}

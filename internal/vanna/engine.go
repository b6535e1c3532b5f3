// Package vanna turns natural-language questions into SQL against a trained
// schema, and manages the process-wide engine lifecycle.
package vanna

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/invoiceiq/vanna-service/internal/database"
	"github.com/invoiceiq/vanna-service/internal/llm"
)

// Trainer accepts grounding material for future generations.
type Trainer interface {
	TrainDDL(ctx context.Context, ddl string) error
	TrainQuestionSQL(ctx context.Context, question, sql string) error
}

// Engine is the NL-to-SQL collaborator used by the HTTP layer.
type Engine interface {
	Trainer
	GenerateSQL(ctx context.Context, question string) (string, error)
	RunSQL(ctx context.Context, sql string) (*database.Result, error)
	Close() error
}

// Querier runs SQL text against a connected database.
type Querier interface {
	Query(ctx context.Context, sql string) (*database.Result, error)
	Close() error
}

// Example is a question paired with the SQL that answers it.
type Example struct {
	Question string
	SQL      string
}

const defaultMaxExamples = 10

// SQLEngine generates SQL with an LLM, grounded in the DDL and examples it
// has been trained on.
type SQLEngine struct {
	llm         llm.Completer
	dialect     string
	maxExamples int

	mu       sync.RWMutex
	ddl      []string
	examples []Example
	db       Querier
}

type Option func(*SQLEngine)

// WithDialect names the SQL dialect the model is asked to write.
func WithDialect(dialect string) Option {
	return func(e *SQLEngine) { e.dialect = dialect }
}

// WithMaxExamples caps how many example pairs go into a prompt.
func WithMaxExamples(n int) Option {
	return func(e *SQLEngine) { e.maxExamples = n }
}

func NewSQLEngine(completer llm.Completer, opts ...Option) *SQLEngine {
	e := &SQLEngine{
		llm:         completer,
		dialect:     "PostgreSQL",
		maxExamples: defaultMaxExamples,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Connect attaches the database RunSQL executes against.
func (e *SQLEngine) Connect(db Querier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.db = db
}

func (e *SQLEngine) Connected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.db != nil
}

func (e *SQLEngine) TrainDDL(_ context.Context, ddl string) error {
	ddl = strings.TrimSpace(ddl)
	if ddl == "" {
		return errors.New("ddl is empty")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ddl = append(e.ddl, ddl)
	return nil
}

func (e *SQLEngine) TrainQuestionSQL(_ context.Context, question, sql string) error {
	question = strings.TrimSpace(question)
	sql = strings.TrimSpace(sql)
	if question == "" || sql == "" {
		return errors.New("question and sql are both required")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.examples = append(e.examples, Example{Question: question, SQL: sql})
	return nil
}

// GenerateSQL asks the model for a query answering question. It returns ""
// when the reply contains no recognizable SQL.
func (e *SQLEngine) GenerateSQL(ctx context.Context, question string) (string, error) {
	e.mu.RLock()
	system := buildSystemPrompt(e.dialect, e.ddl, rankExamples(question, e.examples, e.maxExamples))
	e.mu.RUnlock()

	reply, err := e.llm.Complete(ctx, system, question)
	if err != nil {
		return "", err
	}
	return llm.ExtractSQL(reply), nil
}

func (e *SQLEngine) RunSQL(ctx context.Context, sql string) (*database.Result, error) {
	e.mu.RLock()
	db := e.db
	e.mu.RUnlock()
	if db == nil {
		return nil, ErrNoDatabase
	}
	return db.Query(ctx, sql)
}

func (e *SQLEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

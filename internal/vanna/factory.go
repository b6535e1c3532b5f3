package vanna

import (
	"context"
	"fmt"

	"github.com/invoiceiq/vanna-service/internal/database"
	"github.com/invoiceiq/vanna-service/internal/llm"
	"github.com/rs/zerolog/log"
)

type FactoryConfig struct {
	LLM      llm.Config
	Database database.Config
}

// NewFactory returns the production Factory: it builds the LLM client and,
// when a database URL is configured, connects to it.
func NewFactory(cfg FactoryConfig) Factory {
	return func(ctx context.Context) (Engine, error) {
		completer, err := llm.New(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("create llm client: %w", err)
		}
		log.Info().Str("provider", cfg.LLM.Provider).Str("model", completer.Model()).Msg("llm client ready")

		if cfg.Database.URL == "" {
			log.Warn().Msg("DATABASE_URL not set - SQL will be generated but cannot be executed")
			return NewSQLEngine(completer), nil
		}

		driver, _, err := database.DriverFor(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		dialect := "PostgreSQL"
		if driver == "sqlite3" {
			dialect = "SQLite"
		}

		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		engine := NewSQLEngine(completer, WithDialect(dialect))
		engine.Connect(database.NewExecutor(db))
		log.Info().Str("driver", driver).Msg("connected to database")
		return engine, nil
	}
}

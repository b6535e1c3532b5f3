package vanna

import (
	"context"

	"github.com/invoiceiq/vanna-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

// TrainReport counts the outcome of one registration pass.
type TrainReport struct {
	DDL      int
	Examples int
	Failed   int
}

// Train submits every DDL statement and then every example pair to t. A
// failing item is logged and skipped; it never stops the rest of the batch.
func Train(ctx context.Context, t Trainer, corpus Corpus) TrainReport {
	var report TrainReport

	for i, ddl := range corpus.DDL {
		if err := t.TrainDDL(ctx, ddl); err != nil {
			report.Failed++
			metrics.ObserveTrainingItem("ddl", metrics.OutcomeError)
			log.Warn().Err(err).Int("index", i).Msg("error training ddl")
			continue
		}
		report.DDL++
		metrics.ObserveTrainingItem("ddl", metrics.OutcomeSuccess)
	}

	for _, ex := range corpus.Examples {
		if err := t.TrainQuestionSQL(ctx, ex.Question, ex.SQL); err != nil {
			report.Failed++
			metrics.ObserveTrainingItem("question_sql", metrics.OutcomeError)
			log.Warn().Err(err).Str("question", ex.Question).Msg("error training example")
			continue
		}
		report.Examples++
		metrics.ObserveTrainingItem("question_sql", metrics.OutcomeSuccess)
	}

	log.Info().
		Int("ddl", report.DDL).
		Int("examples", report.Examples).
		Int("failed", report.Failed).
		Msg("schema and training data loaded")
	return report
}

package vanna

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceiq/vanna-service/internal/database"
)

func trainedEngine(t *testing.T, completer *fakeCompleter) *SQLEngine {
	t.Helper()
	engine := NewSQLEngine(completer)
	report := Train(context.Background(), engine, DefaultCorpus())
	require.Zero(t, report.Failed)
	return engine
}

func TestGenerateSQLGroundsPrompt(t *testing.T) {
	completer := &fakeCompleter{reply: "```sql\nSELECT SUM(total_amount) as total_spend FROM invoices;\n```"}
	engine := trainedEngine(t, completer)

	sql, err := engine.GenerateSQL(context.Background(), "What is the total spend this year?")
	require.NoError(t, err)
	assert.Equal(t, "SELECT SUM(total_amount) as total_spend FROM invoices;", sql)

	assert.Equal(t, "What is the total spend this year?", completer.user)
	assert.Contains(t, completer.system, "PostgreSQL expert")
	assert.Contains(t, completer.system, "CREATE TABLE payments (")
	assert.Contains(t, completer.system, "Question: What is the total spend this year?")

	// the closest example is listed first
	examples := completer.system[strings.Index(completer.system, "===Examples"):]
	assert.True(t, strings.HasPrefix(examples, "===Examples\nQuestion: What is the total spend this year?"))
}

func TestGenerateSQLNoSQLInReply(t *testing.T) {
	engine := trainedEngine(t, &fakeCompleter{reply: "The schema has no table for employee salaries."})

	sql, err := engine.GenerateSQL(context.Background(), "What is the average salary?")
	require.NoError(t, err)
	assert.Empty(t, sql)
}

func TestGenerateSQLCompleterError(t *testing.T) {
	engine := trainedEngine(t, &fakeCompleter{err: errors.New("LLM call failed: 429")})

	_, err := engine.GenerateSQL(context.Background(), "anything")
	assert.EqualError(t, err, "LLM call failed: 429")
}

func TestTrainRejectsEmptyInput(t *testing.T) {
	engine := NewSQLEngine(&fakeCompleter{})
	assert.Error(t, engine.TrainDDL(context.Background(), "  "))
	assert.Error(t, engine.TrainQuestionSQL(context.Background(), "q", ""))
	assert.Error(t, engine.TrainQuestionSQL(context.Background(), "", "SELECT 1"))
}

func TestRunSQLWithoutDatabase(t *testing.T) {
	engine := NewSQLEngine(&fakeCompleter{})
	require.False(t, engine.Connected())

	_, err := engine.RunSQL(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestRunSQLAndClose(t *testing.T) {
	row := database.NewRow([]string{"total_spend"}, []any{12345.67})
	db := &fakeQuerier{result: &database.Result{Columns: []string{"total_spend"}, Rows: []database.Row{row}}}
	engine := NewSQLEngine(&fakeCompleter{}, WithDialect("SQLite"))
	engine.Connect(db)

	result, err := engine.RunSQL(context.Background(), "SELECT SUM(total_amount) as total_spend FROM invoices")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	require.NoError(t, engine.Close())
	assert.True(t, db.closed)
	assert.False(t, engine.Connected())
}

func TestRankExamples(t *testing.T) {
	examples := []Example{
		{Question: "List all pending invoices", SQL: "SELECT 1"},
		{Question: "Show me the top 10 vendors by spend", SQL: "SELECT 2"},
		{Question: "What are the overdue invoices?", SQL: "SELECT 3"},
	}

	got := rankExamples("top vendors by spend", examples, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "SELECT 2", got[0].SQL)
	assert.Equal(t, "SELECT 1", got[1].SQL)

	assert.Nil(t, rankExamples("x", nil, 5))
	assert.Nil(t, rankExamples("x", examples, 0))
}

func TestWithMaxExamplesLimitsPrompt(t *testing.T) {
	completer := &fakeCompleter{reply: "SELECT 1"}
	engine := NewSQLEngine(completer, WithMaxExamples(1))
	Train(context.Background(), engine, DefaultCorpus())

	_, err := engine.GenerateSQL(context.Background(), "List all pending invoices")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(completer.system, "Question: "))
	assert.Contains(t, completer.system, "Question: List all pending invoices")
}

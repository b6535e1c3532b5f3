package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result is a tabular query result.
type Result struct {
	Columns []string
	Rows    []Row
}

// Executor runs arbitrary SQL text and converts whatever comes back into rows.
type Executor struct {
	db *sql.DB
}

func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Query executes sql and returns every row. A statement that yields no rows
// returns an empty, non-nil Rows slice.
func (e *Executor) Query(ctx context.Context, query string) (*Result, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		// the driver message is surfaced to the client as is
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	typeNames := make([]string, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			typeNames[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	result := &Result{Columns: columns, Rows: make([]Row, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i := range values {
			values[i] = normalizeValue(typeNames[i], values[i])
		}
		result.Rows = append(result.Rows, NewRow(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

func (e *Executor) Close() error {
	return e.db.Close()
}

func normalizeValue(typeName string, v any) any {
	var text string
	switch val := v.(type) {
	case []byte:
		text = string(val)
	case string:
		text = val
	case float64:
		return finiteOrText(val)
	case float32:
		return finiteOrText(float64(val))
	default:
		return v
	}
	switch typeName {
	case "NUMERIC", "DECIMAL":
		if isJSONNumber(text) {
			return json.Number(text)
		}
	}
	return text
}

// isJSONNumber reports whether text is a finite number that JSON can carry
// verbatim. NUMERIC 'NaN' and 'Infinity' parse as floats but are not JSON.
func isJSONNumber(text string) bool {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return json.Valid([]byte(text))
}

// finiteOrText keeps finite floats and spells NaN and infinities the way
// PostgreSQL prints them, since encoding/json rejects them.
func finiteOrText(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

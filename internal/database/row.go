package database

import (
	"bytes"
	"encoding/json"
)

// Row is one result row. It behaves like a column-name-to-value mapping but
// keeps the column order of the result set, including when encoded as JSON.
type Row struct {
	columns []string
	values  []any
}

// NewRow pairs column names with values. When a column name repeats, the
// later value wins and keeps the position of the first occurrence.
func NewRow(columns []string, values []any) Row {
	r := Row{
		columns: make([]string, 0, len(columns)),
		values:  make([]any, 0, len(columns)),
	}
	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		var v any
		if i < len(values) {
			v = values[i]
		}
		if idx, ok := seen[col]; ok {
			r.values[idx] = v
			continue
		}
		seen[col] = len(r.columns)
		r.columns = append(r.columns, col)
		r.values = append(r.values, v)
	}
	return r
}

func (r Row) Columns() []string { return r.columns }

func (r Row) Len() int { return len(r.columns) }

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// Map copies the row into an unordered map.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

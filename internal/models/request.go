package models

import "strings"

// QueryRequest for POST /query
type QueryRequest struct {
	Question string `json:"question"`
}

// Blank reports whether the question is missing or only whitespace.
func (r *QueryRequest) Blank() bool {
	return strings.TrimSpace(r.Question) == ""
}

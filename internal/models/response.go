package models

import "github.com/invoiceiq/vanna-service/internal/database"

// Endpoints lists the documented paths returned by GET /
type Endpoints struct {
	Query  string `json:"query"`
	Health string `json:"health"`
}

// RootResponse is returned by GET /
type RootResponse struct {
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Status    string    `json:"status"`
	Endpoints Endpoints `json:"endpoints"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status           string `json:"status"`
	VannaInitialized bool   `json:"vanna_initialized"`
}

// QueryMetadata describes a /query result
type QueryMetadata struct {
	RowsReturned int    `json:"rows_returned"`
	Question     string `json:"question"`
}

// QueryResponse is returned by POST /query
type QueryResponse struct {
	SQL      string         `json:"sql"`
	Results  []database.Row `json:"results"`
	Metadata QueryMetadata  `json:"metadata"`
}

package querystore

import (
	"context"
)

// Result is the uniform outcome of executing one query against the
// relational store. Failures are reported in-band (Success=false plus a
// human-readable Message), never as a Go error across this boundary;
// downstream stages decide how to recover.
type Result struct {
	Success  bool             `json:"success"`
	Rows     []map[string]any `json:"results"`
	RowCount int              `json:"row_count"`
	Message  string           `json:"message"`
	Error    string           `json:"error,omitempty"`
}

// Store executes a query string against a tabular data source.
type Store interface {
	Execute(ctx context.Context, query string) *Result
}

// Package store persists companies and extracted financial facts.
package store

import (
	"context"

	"github.com/sells-group/edgar-cli/internal/model"
)

// Company is one tracked issuer.
type Company struct {
	CIK    string `json:"cik"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// FactFilter specifies criteria for listing facts.
type FactFilter struct {
	CIK      string         `json:"cik,omitempty"`
	Metric   string         `json:"metric,omitempty"`
	FormType model.FormType `json:"form_type,omitempty"`
	FromYear int            `json:"from_year,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset,omitempty"`
}

// Store defines the persistence interface for the extraction pipeline.
// SaveFacts upserts on (accession, metric): re-running a sync over the
// same filings rewrites rather than duplicates.
type Store interface {
	// Companies
	UpsertCompany(ctx context.Context, c Company) error
	GetCompany(ctx context.Context, cik string) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)

	// Facts
	SaveFacts(ctx context.Context, facts []model.CanonicalFact) (int, error)
	ListFacts(ctx context.Context, filter FactFilter) ([]model.CanonicalFact, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

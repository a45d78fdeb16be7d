package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/edgar-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleFacts() []model.CanonicalFact {
	return []model.CanonicalFact{
		{
			CIK: "0000320193", Accession: "0000320193-17-000070",
			Metric: "Revenues", Value: 229234000000,
			PeriodEndDate: "2017-09-30", FiscalYear: 2017, FiscalQuarter: 4,
			FormType: model.Form10K, FilingDate: "2017-11-03",
		},
		{
			CIK: "0000320193", Accession: "0000320193-17-000070",
			Metric: "NetIncomeLoss", Value: 48351000000,
			PeriodEndDate: "2017-09-30", FiscalYear: 2017, FiscalQuarter: 4,
			FormType: model.Form10K, FilingDate: "2017-11-03",
		},
	}
}

func TestSQLite_Company_UpsertAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertCompany(ctx, Company{CIK: "0000320193", Ticker: "aapl", Title: "Apple Inc."}))

	c, err := st.GetCompany(ctx, "0000320193")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "aapl", c.Ticker)

	// Re-upserting overwrites in place.
	require.NoError(t, st.UpsertCompany(ctx, Company{CIK: "0000320193", Ticker: "aapl", Title: "Apple"}))
	companies, err := st.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Apple", companies[0].Title)
}

func TestSQLite_Company_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	c, err := st.GetCompany(context.Background(), "0000000009")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSQLite_SaveFacts_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	n, err := st.SaveFacts(ctx, sampleFacts())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	facts, err := st.ListFacts(ctx, FactFilter{CIK: "0000320193"})
	require.NoError(t, err)
	require.Len(t, facts, 2)

	byMetric := map[string]model.CanonicalFact{}
	for _, f := range facts {
		byMetric[f.Metric] = f
	}
	assert.Equal(t, 48351000000.0, byMetric["NetIncomeLoss"].Value)
	assert.Equal(t, "2017-09-30", byMetric["NetIncomeLoss"].PeriodEndDate)
	assert.Equal(t, model.Form10K, byMetric["NetIncomeLoss"].FormType)
}

func TestSQLite_SaveFacts_UpsertIsIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.SaveFacts(ctx, sampleFacts())
	require.NoError(t, err)

	// A re-run with a corrected value replaces the row, never duplicates it.
	updated := sampleFacts()
	updated[0].Value = 230000000000
	_, err = st.SaveFacts(ctx, updated)
	require.NoError(t, err)

	facts, err := st.ListFacts(ctx, FactFilter{CIK: "0000320193"})
	require.NoError(t, err)
	require.Len(t, facts, 2)
	for _, f := range facts {
		if f.Metric == "Revenues" {
			assert.Equal(t, 230000000000.0, f.Value)
		}
	}
}

func TestSQLite_SaveFacts_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)
	n, err := st.SaveFacts(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSQLite_ListFacts_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	facts := sampleFacts()
	facts = append(facts, model.CanonicalFact{
		CIK: "0000320193", Accession: "0000320193-16-000001",
		Metric: "Revenues", Value: 215639000000,
		PeriodEndDate: "2016-09-24", FiscalYear: 2016, FiscalQuarter: 4,
		FormType: model.Form10K, FilingDate: "2016-10-26",
	})
	_, err := st.SaveFacts(ctx, facts)
	require.NoError(t, err)

	got, err := st.ListFacts(ctx, FactFilter{CIK: "0000320193", Metric: "Revenues"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = st.ListFacts(ctx, FactFilter{CIK: "0000320193", FromYear: 2017})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = st.ListFacts(ctx, FactFilter{CIK: "0000320193", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	// Newest fiscal period first.
	assert.Equal(t, 2017, got[0].FiscalYear)

	got, err = st.ListFacts(ctx, FactFilter{CIK: "0000999999"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

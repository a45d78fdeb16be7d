package xbrl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/edgar-cli/internal/model"
)

func selectorDoc() *ParsedDocument {
	return &ParsedDocument{
		Contexts: make(ContextMap),
		Units: UnitMap{
			"usd":    {ID: "usd", Measure: "iso4217:USD"},
			"eur":    {ID: "eur", Measure: "iso4217:EUR"},
			"shares": {ID: "shares", Measure: "xbrli:shares"},
		},
	}
}

func mustContext(t *testing.T, id, instant, start, end string, dims map[string]string) Context {
	t.Helper()
	ctx, ok := buildContext(id, instant, start, end, dims)
	require.True(t, ok)
	return ctx
}

var (
	revenueMetric = Metric{Name: "Revenues", Kind: KindDuration, Aliases: []string{"Revenues"}}
	assetsMetric  = Metric{Name: "Assets", Kind: KindInstant, Aliases: []string{"Assets"}}
)

func TestSelectCandidates_USDOnly(t *testing.T) {
	doc := selectorDoc()
	doc.Contexts["fy"] = mustContext(t, "fy", "", "2017-01-01", "2017-12-31", nil)
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "100", ContextRef: "fy", UnitRef: "eur", Order: 0},
		{Metric: "Revenues", RawValue: "200", ContextRef: "fy", UnitRef: "usd", Order: 1},
		{Metric: "Revenues", RawValue: "300", ContextRef: "fy", UnitRef: "shares", Order: 2},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 1)
	assert.Equal(t, "200", pool[0].cand.RawValue)
}

func TestSelectCandidates_UnresolvableContextDropped(t *testing.T) {
	doc := selectorDoc()
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "100", ContextRef: "missing", UnitRef: "usd"},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, selectCandidates(doc, revenueMetric, target, model.Form10K))
}

func TestSelectCandidates_DimensionalExcludedWhenUnqualifiedExists(t *testing.T) {
	doc := selectorDoc()
	doc.Contexts["fy"] = mustContext(t, "fy", "", "2017-01-01", "2017-12-31", nil)
	doc.Contexts["fy_seg"] = mustContext(t, "fy_seg", "", "2017-01-01", "2017-12-31",
		map[string]string{"us-gaap:StatementBusinessSegmentsAxis": "x:AMember"})
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "40", ContextRef: "fy_seg", UnitRef: "usd", Order: 0},
		{Metric: "Revenues", RawValue: "100", ContextRef: "fy", UnitRef: "usd", Order: 1},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 1)
	assert.Equal(t, "100", pool[0].cand.RawValue)
}

func TestSelectCandidates_AllQualifiedKept(t *testing.T) {
	// When every candidate is dimensionally qualified there is no
	// consolidated figure to prefer; the qualified pool survives.
	doc := selectorDoc()
	doc.Contexts["fy_seg"] = mustContext(t, "fy_seg", "", "2017-01-01", "2017-12-31",
		map[string]string{"us-gaap:StatementBusinessSegmentsAxis": "x:AMember"})
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "40", ContextRef: "fy_seg", UnitRef: "usd"},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 1)
	assert.Equal(t, "40", pool[0].cand.RawValue)
}

func TestSelectCandidates_PeriodProximityWins(t *testing.T) {
	doc := selectorDoc()
	doc.Contexts["fy17"] = mustContext(t, "fy17", "", "2017-01-01", "2017-12-31", nil)
	doc.Contexts["fy16"] = mustContext(t, "fy16", "", "2016-01-01", "2016-12-31", nil)
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "prior", ContextRef: "fy16", UnitRef: "usd", Order: 0},
		{Metric: "Revenues", RawValue: "current", ContextRef: "fy17", UnitRef: "usd", Order: 1},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 2)
	assert.Equal(t, "current", pool[0].cand.RawValue)
}

func TestSelectCandidates_DurationLengthMatters(t *testing.T) {
	// Both periods end on the report date; a 10-K wants the full-year
	// duration, not the fourth quarter alone.
	doc := selectorDoc()
	doc.Contexts["fy"] = mustContext(t, "fy", "", "2017-01-01", "2017-12-31", nil)
	doc.Contexts["q4"] = mustContext(t, "q4", "", "2017-10-01", "2017-12-31", nil)
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "quarter", ContextRef: "q4", UnitRef: "usd", Order: 0},
		{Metric: "Revenues", RawValue: "year", ContextRef: "fy", UnitRef: "usd", Order: 1},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 2)
	assert.Equal(t, "year", pool[0].cand.RawValue)

	// For a 10-Q the ranking flips.
	pool = selectCandidates(doc, revenueMetric, target, model.Form10Q)
	assert.Equal(t, "quarter", pool[0].cand.RawValue)
}

func TestSelectCandidates_PeriodShapeMismatchRanksLast(t *testing.T) {
	doc := selectorDoc()
	doc.Contexts["fy"] = mustContext(t, "fy", "", "2017-01-01", "2017-12-31", nil)
	doc.Contexts["asof"] = mustContext(t, "asof", "2017-12-31", "", "", nil)
	doc.Candidates = []Candidate{
		{Metric: "Assets", RawValue: "duration-shaped", ContextRef: "fy", UnitRef: "usd", Order: 0},
		{Metric: "Assets", RawValue: "instant", ContextRef: "asof", UnitRef: "usd", Order: 1},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, assetsMetric, target, model.Form10K)
	require.Len(t, pool, 2)
	assert.Equal(t, "instant", pool[0].cand.RawValue)
}

func TestSelectCandidates_PrecisionBreaksTies(t *testing.T) {
	doc := selectorDoc()
	doc.Contexts["fy"] = mustContext(t, "fy", "", "2017-01-01", "2017-12-31", nil)
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "millions", ContextRef: "fy", UnitRef: "usd", Decimals: -6, Order: 0},
		{Metric: "Revenues", RawValue: "thousands", ContextRef: "fy", UnitRef: "usd", Decimals: -3, Order: 1},
		{Metric: "Revenues", RawValue: "exact", ContextRef: "fy", UnitRef: "usd", Decimals: DecimalsExact, Order: 2},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 3)
	assert.Equal(t, "exact", pool[0].cand.RawValue)
	assert.Equal(t, "thousands", pool[1].cand.RawValue)
	assert.Equal(t, "millions", pool[2].cand.RawValue)
}

func TestSelectCandidates_DocumentOrderIsFinalTieBreak(t *testing.T) {
	doc := selectorDoc()
	doc.Contexts["fy"] = mustContext(t, "fy", "", "2017-01-01", "2017-12-31", nil)
	doc.Candidates = []Candidate{
		{Metric: "Revenues", RawValue: "second", ContextRef: "fy", UnitRef: "usd", Decimals: -6, Order: 5},
		{Metric: "Revenues", RawValue: "first", ContextRef: "fy", UnitRef: "usd", Decimals: -6, Order: 2},
	}

	target := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	pool := selectCandidates(doc, revenueMetric, target, model.Form10K)
	require.Len(t, pool, 2)
	assert.Equal(t, "first", pool[0].cand.RawValue)
}

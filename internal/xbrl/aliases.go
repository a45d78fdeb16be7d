// Package xbrl extracts canonical financial facts from SEC XBRL
// documents. It is a pure transformation: callers hand it filing
// metadata plus raw document bytes and receive normalized facts with a
// per-filing outcome. The package performs no I/O and holds no state
// across filings.
package xbrl

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PeriodKind distinguishes point-in-time metrics (balance sheet) from
// flow metrics (income and cash-flow statements).
type PeriodKind string

const (
	KindInstant  PeriodKind = "instant"
	KindDuration PeriodKind = "duration"
)

// Metric is one canonical financial concept with its accepted taxonomy
// tag spellings, ordered most common/modern first.
type Metric struct {
	Name    string     `yaml:"name"`
	Kind    PeriodKind `yaml:"kind"`
	Aliases []string   `yaml:"aliases"`
}

// AliasTable maps taxonomy tag names onto canonical metrics. It is
// read-only after construction and safe for concurrent use.
type AliasTable struct {
	metrics []Metric
	byAlias map[string]string
}

// NewAliasTable validates and indexes a metric list. An empty or
// inconsistent table is a configuration defect and fails loudly before
// any filing is processed.
func NewAliasTable(metrics []Metric) (*AliasTable, error) {
	if len(metrics) == 0 {
		return nil, eris.New("xbrl: alias table is empty")
	}

	byAlias := make(map[string]string)
	seen := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		if m.Name == "" {
			return nil, eris.New("xbrl: alias table entry with empty metric name")
		}
		if seen[m.Name] {
			return nil, eris.Errorf("xbrl: duplicate metric %q in alias table", m.Name)
		}
		seen[m.Name] = true
		if m.Kind != KindInstant && m.Kind != KindDuration {
			return nil, eris.Errorf("xbrl: metric %q has unknown period kind %q", m.Name, m.Kind)
		}
		if len(m.Aliases) == 0 {
			return nil, eris.Errorf("xbrl: metric %q has no aliases", m.Name)
		}
		for _, alias := range m.Aliases {
			key := strings.ToLower(alias)
			if prev, ok := byAlias[key]; ok && prev != m.Name {
				return nil, eris.Errorf("xbrl: alias %q claimed by both %q and %q", alias, prev, m.Name)
			}
			byAlias[key] = m.Name
		}
	}

	return &AliasTable{metrics: metrics, byAlias: byAlias}, nil
}

// LoadAliasTable reads a metric list from a YAML file. Used to swap in
// an alternate table without recompiling.
func LoadAliasTable(path string) (*AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xbrl: read alias file %s", path)
	}

	var metrics []Metric
	if err := yaml.Unmarshal(data, &metrics); err != nil {
		return nil, eris.Wrapf(err, "xbrl: parse alias file %s", path)
	}

	return NewAliasTable(metrics)
}

// Metrics returns the canonical metric list in table order. The
// engine's output preserves this order, keeping results reproducible.
func (t *AliasTable) Metrics() []Metric {
	return t.metrics
}

// Resolve maps a parsed tag name to its canonical metric. Namespace
// prefixes ("us-gaap:NetIncomeLoss") are stripped before matching.
// Returns false for tags no metric claims.
func (t *AliasTable) Resolve(tag string) (string, bool) {
	local := tag
	if i := strings.LastIndex(local, ":"); i >= 0 {
		local = local[i+1:]
	}
	metric, ok := t.byAlias[strings.ToLower(local)]
	return metric, ok
}

// DefaultMetrics is the standard target metric set, mirroring the tags
// US filers have used across taxonomy revisions since 2009.
func DefaultMetrics() []Metric {
	return []Metric{
		{
			Name: "Revenues",
			Kind: KindDuration,
			Aliases: []string{
				"RevenueFromContractWithCustomerExcludingAssessedTax",
				"RevenueFromContractWithCustomerIncludingAssessedTax",
				"Revenues",
				"SalesRevenueNet",
				"SalesRevenueGoodsNet",
				"SalesRevenueServicesNet",
			},
		},
		{
			Name: "GrossProfit",
			Kind: KindDuration,
			Aliases: []string{
				"GrossProfit",
			},
		},
		{
			Name: "OperatingIncomeLoss",
			Kind: KindDuration,
			Aliases: []string{
				"OperatingIncomeLoss",
			},
		},
		{
			Name: "NetIncomeLoss",
			Kind: KindDuration,
			Aliases: []string{
				"NetIncomeLoss",
				"ProfitLoss",
				"NetIncomeLossAvailableToCommonStockholdersBasic",
			},
		},
		{
			Name: "NetCashProvidedByOperatingActivities",
			Kind: KindDuration,
			Aliases: []string{
				"NetCashProvidedByUsedInOperatingActivities",
				"NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
			},
		},
		{
			Name: "Assets",
			Kind: KindInstant,
			Aliases: []string{
				"Assets",
			},
		},
		{
			Name: "Liabilities",
			Kind: KindInstant,
			Aliases: []string{
				"Liabilities",
			},
		},
		{
			Name: "StockholdersEquity",
			Kind: KindInstant,
			Aliases: []string{
				"StockholdersEquity",
				"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
			},
		},
		{
			Name: "CashAndCashEquivalents",
			Kind: KindInstant,
			Aliases: []string{
				"CashAndCashEquivalentsAtCarryingValue",
				"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
			},
		},
		{
			Name: "LongTermDebt",
			Kind: KindInstant,
			Aliases: []string{
				"LongTermDebt",
				"LongTermDebtNoncurrent",
			},
		},
	}
}

// DefaultAliasTable builds the standard table. Panics are deliberate
// here: a broken built-in table is a programming error caught by tests.
func DefaultAliasTable() *AliasTable {
	t, err := NewAliasTable(DefaultMetrics())
	if err != nil {
		panic(err)
	}
	return t
}

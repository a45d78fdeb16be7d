package model

// QuarterAnnual is the fiscal-quarter sentinel for full-year (10-K) facts.
const QuarterAnnual = 4

// CanonicalFact is one normalized financial fact extracted from a filing.
// Value is plain USD; no further scaling is needed downstream.
type CanonicalFact struct {
	CIK           string   `json:"cik"`
	Accession     string   `json:"accession"`
	Metric        string   `json:"metric"`
	Value         float64  `json:"value"`
	PeriodEndDate string   `json:"period_end_date"`
	FiscalYear    int      `json:"fiscal_year"`
	FiscalQuarter int      `json:"fiscal_quarter"`
	FormType      FormType `json:"form_type"`
	FilingDate    string   `json:"filing_date"`
}

// OutcomeStatus classifies the result of processing one filing.
type OutcomeStatus string

const (
	OutcomeOK      OutcomeStatus = "ok"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomePartial OutcomeStatus = "partial"
)

// Outcome is the per-filing diagnostic returned alongside extracted facts.
// Errors during extraction are captured here, never thrown past the
// per-filing call boundary.
type Outcome struct {
	Status   OutcomeStatus `json:"status"`
	Facts    int           `json:"facts"`
	Reason   string        `json:"reason,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// OK reports whether the filing produced any facts.
func (o Outcome) OK() bool { return o.Status != OutcomeSkipped }

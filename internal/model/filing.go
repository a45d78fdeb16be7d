// Package model defines the shared data shapes for the EDGAR fact pipeline.
package model

import (
	"strings"
	"time"
)

// FormType identifies the SEC form a filing was submitted under.
type FormType string

const (
	Form10K FormType = "10-K"
	Form10Q FormType = "10-Q"
)

// Filing describes one SEC filing as listed in the EDGAR submissions feed.
// Immutable once constructed; the extraction engine never mutates it.
type Filing struct {
	CIK             string   `json:"cik"`
	AccessionNumber string   `json:"accession_number"`
	FilingDate      string   `json:"filing_date"`
	ReportDate      string   `json:"report_date"`
	FormType        FormType `json:"form_type"`
	IsXBRL          bool     `json:"is_xbrl"`
	IsInlineXBRL    bool     `json:"is_inline_xbrl"`
	PrimaryDocument string   `json:"primary_document"`
}

// AccessionNoDashes returns the accession number with dashes stripped,
// as used in EDGAR archive URL paths.
func (f Filing) AccessionNoDashes() string {
	return strings.ReplaceAll(f.AccessionNumber, "-", "")
}

// ReportPeriod parses the filing's period-of-report date.
func (f Filing) ReportPeriod() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", f.ReportDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year returns the best available year for start-year filtering,
// preferring the report date over the filing date. Returns 0 when
// neither date is usable.
func (f Filing) Year() int {
	for _, d := range []string{f.ReportDate, f.FilingDate} {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return t.Year()
		}
	}
	return 0
}

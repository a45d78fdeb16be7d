package xbrl

import "strings"

// Unit is one XBRL unit definition. Ratio units (USD per share) carry a
// numerator and denominator instead of a single measure.
type Unit struct {
	ID          string
	Measure     string
	Numerator   string
	Denominator string
}

// IsUSD reports whether the unit is plain US dollars. Ratio units and
// share counts are not valid for currency metrics.
func (u Unit) IsUSD() bool {
	if u.Denominator != "" || u.Numerator != "" {
		return false
	}
	return localMeasure(u.Measure) == "usd"
}

// UnitMap indexes units by their document-unique identifier.
type UnitMap map[string]Unit

// localMeasure lowercases a measure and strips its namespace prefix
// ("iso4217:USD" → "usd").
func localMeasure(measure string) string {
	measure = strings.ToLower(strings.TrimSpace(measure))
	if i := strings.LastIndex(measure, ":"); i >= 0 {
		measure = measure[i+1:]
	}
	return measure
}

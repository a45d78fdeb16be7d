package xbrl

import (
	"time"

	"github.com/sells-group/edgar-cli/internal/model"
)

// ClassifyPeriod assigns the fiscal year and quarter for a filing's
// report period. The fiscal year is the calendar year the period ends
// in. Annual reports cover the full year and get the annual quarter
// marker; quarterly reports are bucketed by the calendar quarter of the
// period end, which tracks the fiscal quarter for the large majority of
// filers whose fiscal calendars align with month boundaries.
func ClassifyPeriod(form model.FormType, end time.Time) (year, quarter int) {
	year = end.Year()
	if form == model.Form10K {
		return year, model.QuarterAnnual
	}
	return year, (int(end.Month())-1)/3 + 1
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiling_AccessionNoDashes(t *testing.T) {
	f := Filing{AccessionNumber: "0000320193-17-000070"}
	assert.Equal(t, "000032019317000070", f.AccessionNoDashes())
}

func TestFiling_ReportPeriod(t *testing.T) {
	f := Filing{ReportDate: "2017-09-30"}
	d, ok := f.ReportPeriod()
	require.True(t, ok)
	assert.Equal(t, "2017-09-30", d.Format("2006-01-02"))

	_, ok = Filing{ReportDate: ""}.ReportPeriod()
	assert.False(t, ok)
}

func TestFiling_Year(t *testing.T) {
	assert.Equal(t, 2017, Filing{ReportDate: "2017-09-30", FilingDate: "2017-11-03"}.Year())
	// Report date missing falls back to filing date.
	assert.Equal(t, 2017, Filing{FilingDate: "2017-11-03"}.Year())
	assert.Equal(t, 0, Filing{}.Year())
}

func TestOutcome_OK(t *testing.T) {
	assert.True(t, Outcome{Status: OutcomeOK}.OK())
	assert.True(t, Outcome{Status: OutcomePartial}.OK())
	assert.False(t, Outcome{Status: OutcomeSkipped}.OK())
}

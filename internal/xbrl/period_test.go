package xbrl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/edgar-cli/internal/model"
)

func TestClassifyPeriod_AnnualReport(t *testing.T) {
	end := time.Date(2017, 9, 30, 0, 0, 0, 0, time.UTC)
	year, quarter := ClassifyPeriod(model.Form10K, end)
	assert.Equal(t, 2017, year)
	assert.Equal(t, model.QuarterAnnual, quarter)
}

func TestClassifyPeriod_QuarterlyReports(t *testing.T) {
	tests := []struct {
		end     string
		quarter int
	}{
		{"2020-03-28", 1},
		{"2020-06-27", 2},
		{"2020-09-26", 3},
		{"2020-12-26", 4},
	}
	for _, tt := range tests {
		end, err := time.Parse("2006-01-02", tt.end)
		assert.NoError(t, err)
		year, quarter := ClassifyPeriod(model.Form10Q, end)
		assert.Equal(t, 2020, year, "end=%s", tt.end)
		assert.Equal(t, tt.quarter, quarter, "end=%s", tt.end)
	}
}

func TestClassifyPeriod_FiscalYearFollowsPeriodEnd(t *testing.T) {
	// A fiscal year ending in January 2021 is classified as FY 2021
	// even though most of it fell in calendar 2020.
	end := time.Date(2021, 1, 30, 0, 0, 0, 0, time.UTC)
	year, _ := ClassifyPeriod(model.Form10K, end)
	assert.Equal(t, 2021, year)
}

package xbrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContext_Instant(t *testing.T) {
	ctx, ok := buildContext("AsOf", "2017-09-30", "", "", nil)
	require.True(t, ok)
	assert.Equal(t, PeriodInstant, ctx.Type)
	assert.Equal(t, "2017-09-30", ctx.Instant.Format("2006-01-02"))
	assert.False(t, ctx.Qualified())
	assert.Equal(t, 0, ctx.DurationDays())
}

func TestBuildContext_Duration(t *testing.T) {
	ctx, ok := buildContext("FY17", "", "2016-10-02", "2017-09-30", nil)
	require.True(t, ok)
	assert.Equal(t, PeriodDuration, ctx.Type)
	assert.Equal(t, "2017-09-30", ctx.PrimaryDate().Format("2006-01-02"))
	assert.Equal(t, 363, ctx.DurationDays())
}

func TestBuildContext_DurationWithoutStart(t *testing.T) {
	ctx, ok := buildContext("D", "", "", "2020-12-31", nil)
	require.True(t, ok)
	assert.Equal(t, PeriodDuration, ctx.Type)
	assert.Equal(t, 0, ctx.DurationDays())
}

func TestBuildContext_Unparseable(t *testing.T) {
	_, ok := buildContext("bad", "", "", "not-a-date", nil)
	assert.False(t, ok)
}

func TestBuildContext_Dimensions(t *testing.T) {
	dims := map[string]string{"us-gaap:StatementBusinessSegmentsAxis": "aapl:AmericasSegmentMember"}
	ctx, ok := buildContext("Seg", "2017-09-30", "", "", dims)
	require.True(t, ok)
	assert.True(t, ctx.Qualified())
	assert.Equal(t, dims, ctx.Dimensions)
}

func TestParseXBRLDate_TrailingTimezone(t *testing.T) {
	// Some filers append time parts; only the leading date matters.
	d, ok := parseXBRLDate("2017-09-30T00:00:00")
	require.True(t, ok)
	assert.Equal(t, "2017-09-30", d.Format("2006-01-02"))
}

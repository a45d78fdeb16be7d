package edgar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/edgar-cli/internal/model"
)

const submissionsFixture = `{
	"cik": 320193,
	"name": "Apple Inc.",
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-20-000096", "0000320193-17-000070", "0000320193-17-000009", "0000320193-16-000001"],
			"filingDate":      ["2020-10-30", "2017-11-03", "2017-02-01", "2016-04-27"],
			"reportDate":      ["2020-09-26", "2017-09-30", "2016-12-31", "2016-03-26"],
			"form":            ["10-K", "10-K", "8-K", "10-Q"],
			"isXBRL":          [1, 1, 0, 0],
			"isInlineXBRL":    [1, 0, 0, 0],
			"primaryDocument": ["aapl-20200926.htm", "a10-k20179302017.htm", "pressrelease.htm", "a10-qq220163262016.htm"]
		}
	}
}`

func TestListFilings(t *testing.T) {
	f := &fakeFetcher{responses: map[string][]byte{
		"https://data.sec.gov/submissions/CIK0000320193.json": []byte(submissionsFixture),
	}}

	filings, err := ListFilings(context.Background(), f, "320193")
	require.NoError(t, err)

	// The 8-K and the non-XBRL 10-Q are filtered out.
	require.Len(t, filings, 2)

	assert.Equal(t, "0000320193-20-000096", filings[0].AccessionNumber)
	assert.Equal(t, model.Form10K, filings[0].FormType)
	assert.True(t, filings[0].IsInlineXBRL)
	assert.Equal(t, "aapl-20200926.htm", filings[0].PrimaryDocument)
	assert.Equal(t, "0000320193", filings[0].CIK)

	assert.Equal(t, "0000320193-17-000070", filings[1].AccessionNumber)
	assert.False(t, filings[1].IsInlineXBRL)
	assert.True(t, filings[1].IsXBRL)
}

func TestListFilings_RaggedColumns(t *testing.T) {
	// Defensive against parallel arrays of unequal length.
	fixture := `{
		"filings": {"recent": {
			"accessionNumber": ["0001-01-000001", "0001-01-000002"],
			"form": ["10-K"],
			"isXBRL": [1]
		}}
	}`
	f := &fakeFetcher{responses: map[string][]byte{
		"https://data.sec.gov/submissions/CIK0000000001.json": []byte(fixture),
	}}

	filings, err := ListFilings(context.Background(), f, "1")
	require.NoError(t, err)
	require.Len(t, filings, 1)
	assert.Equal(t, "0001-01-000001", filings[0].AccessionNumber)
}

func TestListFilings_FetchError(t *testing.T) {
	f := &fakeFetcher{}
	_, err := ListFilings(context.Background(), f, "320193")
	assert.Error(t, err)
}

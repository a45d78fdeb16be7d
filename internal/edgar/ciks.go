// Package edgar implements the SEC EDGAR collaborators: ticker
// resolution, filing listing, and parsable-document resolution. The
// extraction engine itself lives in internal/xbrl and performs no I/O.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/edgar-cli/internal/fetcher"
)

const tickersURL = "https://www.sec.gov/files/company_tickers.json"

// CIKMap maps lowercase ticker symbols to 10-digit zero-padded CIKs.
type CIKMap map[string]string

// tickerRow is one entry in the SEC company_tickers.json object.
type tickerRow struct {
	CIK    json.Number `json:"cik_str"`
	Ticker string      `json:"ticker"`
	Title  string      `json:"title"`
}

// FetchCIKMap downloads the SEC ticker/CIK mapping.
func FetchCIKMap(ctx context.Context, f fetcher.Fetcher) (CIKMap, error) {
	body, err := f.Download(ctx, tickersURL)
	if err != nil {
		return nil, eris.Wrap(err, "edgar: fetch ticker map")
	}
	defer body.Close() //nolint:errcheck

	// The feed is a JSON object keyed by row index, not an array.
	var rows map[string]tickerRow
	if err := json.NewDecoder(body).Decode(&rows); err != nil {
		return nil, eris.Wrap(err, "edgar: decode ticker map")
	}

	m := make(CIKMap, len(rows))
	for _, row := range rows {
		ticker := strings.ToLower(strings.TrimSpace(row.Ticker))
		if ticker == "" {
			continue
		}
		m[ticker] = PadCIK(row.CIK.String())
	}

	return m, nil
}

// Lookup resolves a ticker (case-insensitive) to its padded CIK.
func (m CIKMap) Lookup(ticker string) (string, bool) {
	cik, ok := m[strings.ToLower(strings.TrimSpace(ticker))]
	return cik, ok
}

// PadCIK zero-pads a CIK to the 10 digits EDGAR URLs expect.
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= 10 {
		return cik
	}
	return fmt.Sprintf("%010s", cik)
}

package edgar

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/edgar-cli/internal/fetcher"
	"github.com/sells-group/edgar-cli/internal/model"
)

// submissionsJSON mirrors the columnar layout of the EDGAR
// submissions feed: parallel arrays indexed by filing.
type submissionsJSON struct {
	CIK     json.Number `json:"cik"`
	Name    string      `json:"name"`
	Filings struct {
		Recent filingColumns `json:"recent"`
	} `json:"filings"`
}

type filingColumns struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	IsXBRL          []int    `json:"isXBRL"`
	IsInlineXBRL    []int    `json:"isInlineXBRL"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// ListFilings returns every 10-K and 10-Q filing with XBRL data for a
// CIK, newest first (the order the feed reports them in).
func ListFilings(ctx context.Context, f fetcher.Fetcher, cik string) ([]model.Filing, error) {
	url := fmt.Sprintf("https://data.sec.gov/submissions/CIK%s.json", PadCIK(cik))

	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "edgar: fetch submissions for CIK %s", cik)
	}
	defer body.Close() //nolint:errcheck

	var sub submissionsJSON
	if err := json.NewDecoder(body).Decode(&sub); err != nil {
		return nil, eris.Wrapf(err, "edgar: decode submissions for CIK %s", cik)
	}

	recent := sub.Filings.Recent
	var filings []model.Filing
	for i := range recent.AccessionNumber {
		accession := recent.AccessionNumber[i]
		if accession == "" {
			continue
		}

		form := model.FormType(safeIndex(recent.Form, i))
		if form != model.Form10K && form != model.Form10Q {
			continue
		}

		isXBRL := safeIntIndex(recent.IsXBRL, i) == 1
		isInline := safeIntIndex(recent.IsInlineXBRL, i) == 1
		if !isXBRL && !isInline {
			continue
		}

		filings = append(filings, model.Filing{
			CIK:             PadCIK(cik),
			AccessionNumber: accession,
			FilingDate:      safeIndex(recent.FilingDate, i),
			ReportDate:      safeIndex(recent.ReportDate, i),
			FormType:        form,
			IsXBRL:          isXBRL,
			IsInlineXBRL:    isInline,
			PrimaryDocument: safeIndex(recent.PrimaryDocument, i),
		})
	}

	zap.L().Debug("listed filings",
		zap.String("cik", cik),
		zap.Int("count", len(filings)),
	)

	return filings, nil
}

// safeIndex returns the string at index i, or empty string if out of bounds.
func safeIndex(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// safeIntIndex returns the int at index i, or 0 if out of bounds.
func safeIntIndex(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/edgar-cli/internal/fetcher"
	"github.com/sells-group/edgar-cli/internal/model"
	"github.com/sells-group/edgar-cli/internal/xbrl"
)

// ErrNoDocument means no parsable XBRL document could be located for a
// filing. Callers report the filing as skipped, not failed.
var ErrNoDocument = eris.New("edgar: no parsable document found")

// linkbase suffixes that are never instance documents.
var linkbaseSuffixes = []string{"_cal.xml", "_def.xml", "_lab.xml", "_pre.xml"}

// ResolveDocument locates the parsable financial document for a filing
// and returns its URL with the extraction strategy to apply. Older
// filings carry a standalone .xml instance document next to the primary
// document; inline filings are parsed from the primary .htm itself.
func ResolveDocument(ctx context.Context, f fetcher.Fetcher, filing model.Filing) (string, xbrl.Strategy, error) {
	basePath := fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s",
		strings.TrimLeft(filing.CIK, "0"), filing.AccessionNoDashes())

	strategy := xbrl.SelectStrategy(filing)

	docBase := filing.PrimaryDocument
	if i := strings.LastIndex(docBase, "."); i > 0 {
		docBase = docBase[:i]
	}

	candidates := []string{
		docBase + ".xml",     // traditional instance document
		docBase + "_htm.xml", // companion export of inline filings
	}
	if strategy == xbrl.StrategyInline {
		candidates = append(candidates, filing.PrimaryDocument)
	}

	for _, name := range candidates {
		if name == "" || name == ".xml" {
			continue
		}
		url := basePath + "/" + name
		if f.Exists(ctx, url) {
			return url, strategyForName(name, strategy), nil
		}
	}

	// Fall back to the accession directory index, looking for a
	// standalone instance document among the .xml entries.
	if url, ok := instanceFromIndex(ctx, f, basePath); ok {
		return url, xbrl.StrategyInstance, nil
	}

	return "", strategy, eris.Wrapf(ErrNoDocument, "accession %s", filing.AccessionNumber)
}

// strategyForName corrects the strategy when an inline filing resolves
// to its companion .xml export, which is a plain instance document.
func strategyForName(name string, selected xbrl.Strategy) xbrl.Strategy {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".htm") || strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".xhtml") {
		return xbrl.StrategyInline
	}
	return xbrl.StrategyInstance
}

type directoryIndex struct {
	Directory struct {
		Item []struct {
			Name string `json:"name"`
		} `json:"item"`
	} `json:"directory"`
}

func instanceFromIndex(ctx context.Context, f fetcher.Fetcher, basePath string) (string, bool) {
	body, err := f.Download(ctx, basePath+"/index.json")
	if err != nil {
		zap.L().Debug("no accession index", zap.String("base", basePath), zap.Error(err))
		return "", false
	}
	defer body.Close() //nolint:errcheck

	var idx directoryIndex
	if err := json.NewDecoder(body).Decode(&idx); err != nil {
		return "", false
	}

	for _, item := range idx.Directory.Item {
		name := strings.TrimSpace(item.Name)
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".xml") {
			continue
		}
		if lower == "filingsummary.xml" || lower == "submission.xml" {
			continue
		}
		if hasAnySuffix(lower, linkbaseSuffixes) {
			continue
		}
		url := basePath + "/" + name
		if f.Exists(ctx, url) {
			return url, true
		}
	}

	return "", false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

package xbrl

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/edgar-cli/internal/model"
)

// Strategy selects how tagged values are pulled out of a document.
// Exactly two encodings exist in the EDGAR corpus: a standalone XML
// instance document, or inline tags embedded in the primary HTML.
type Strategy int

const (
	StrategyInstance Strategy = iota
	StrategyInline
)

// String returns the strategy name for logs and diagnostics.
func (s Strategy) String() string {
	switch s {
	case StrategyInstance:
		return "instance"
	case StrategyInline:
		return "inline"
	default:
		return "unknown"
	}
}

// SelectStrategy picks the extraction strategy from filing metadata:
// filings flagged inline-XBRL are parsed from the primary document,
// everything else from a standalone instance document.
func SelectStrategy(f model.Filing) Strategy {
	if f.IsInlineXBRL {
		return StrategyInline
	}
	return StrategyInstance
}

// Document is the raw material handed to the engine: the bytes of the
// resolved financial document plus its source URL for diagnostics.
type Document struct {
	URL      string
	Body     []byte
	Strategy Strategy
}

// ParseDocument dispatches to the extractor for the document's strategy.
func ParseDocument(doc Document, aliases *AliasTable) (*ParsedDocument, error) {
	switch doc.Strategy {
	case StrategyInstance:
		return ParseInstance(doc.Body, aliases)
	case StrategyInline:
		return ParseInline(doc.Body, aliases)
	default:
		return nil, eris.Errorf("xbrl: unknown strategy %d", doc.Strategy)
	}
}

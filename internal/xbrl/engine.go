package xbrl

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/edgar-cli/internal/model"
)

// Engine extracts canonical facts from financial documents. It is
// stateless across filings and safe for concurrent use; the only
// configuration is the alias table fixed at construction.
type Engine struct {
	aliases *AliasTable
	logger  *zap.Logger
}

// NewEngine builds an engine around a validated alias table.
func NewEngine(aliases *AliasTable) (*Engine, error) {
	if aliases == nil {
		return nil, eris.New("xbrl: engine requires an alias table")
	}
	return &Engine{
		aliases: aliases,
		logger:  zap.L().With(zap.String("component", "xbrl")),
	}, nil
}

// Extract processes one filing's document and returns its normalized
// facts with a per-filing outcome. Errors never escape this boundary:
// a document the engine cannot interpret yields a skipped outcome with
// the reason, so one malformed filing cannot sink a batch.
//
// Facts come out in alias-table metric order, at most one per metric.
// Running Extract twice over the same inputs produces identical output.
func (e *Engine) Extract(filing model.Filing, doc Document) ([]model.CanonicalFact, model.Outcome) {
	target, ok := filing.ReportPeriod()
	if !ok {
		return nil, model.Outcome{
			Status: model.OutcomeSkipped,
			Reason: fmt.Sprintf("unparseable report date %q", filing.ReportDate),
		}
	}

	parsed, err := ParseDocument(doc, e.aliases)
	if err != nil {
		e.logger.Warn("document parse failed",
			zap.String("accession", filing.AccessionNumber),
			zap.String("strategy", doc.Strategy.String()),
			zap.Error(err))
		return nil, model.Outcome{
			Status: model.OutcomeSkipped,
			Reason: eris.ToString(err, false),
		}
	}

	var facts []model.CanonicalFact
	var warnings []string
	for _, metric := range e.aliases.Metrics() {
		pool := selectCandidates(parsed, metric, target, filing.FormType)
		if len(pool) == 0 {
			// Nothing tagged for this metric; absence is not an error.
			if len(parsed.candidatesFor(metric.Name)) > 0 {
				warnings = append(warnings, fmt.Sprintf("%s: all candidates filtered out", metric.Name))
			}
			continue
		}

		// Walk the preference order until a candidate normalizes; a
		// garbled front-runner should not mask a clean runner-up.
		selected := false
		for _, r := range pool {
			value, err := NormalizeValue(r.cand)
			if err != nil {
				continue
			}
			// The fact's period comes from its own context, not the
			// cover page: when the best surviving candidate ends on a
			// different date than the report date, the fiscal fields
			// must follow the context.
			periodEnd := r.ctx.PrimaryDate()
			year, quarter := ClassifyPeriod(filing.FormType, periodEnd)
			facts = append(facts, model.CanonicalFact{
				CIK:           filing.CIK,
				Accession:     filing.AccessionNumber,
				Metric:        metric.Name,
				Value:         value,
				PeriodEndDate: periodEnd.Format("2006-01-02"),
				FiscalYear:    year,
				FiscalQuarter: quarter,
				FormType:      filing.FormType,
				FilingDate:    filing.FilingDate,
			})
			selected = true
			break
		}
		if !selected {
			warnings = append(warnings, fmt.Sprintf("%s: no candidate normalized", metric.Name))
		}
	}

	if len(facts) == 0 {
		reason := "no target facts in document"
		if len(warnings) > 0 {
			reason = "all target facts rejected"
		}
		return nil, model.Outcome{
			Status:   model.OutcomeSkipped,
			Reason:   reason,
			Warnings: warnings,
		}
	}

	outcome := model.Outcome{Status: model.OutcomeOK, Facts: len(facts)}
	if len(warnings) > 0 {
		outcome.Status = model.OutcomePartial
		outcome.Warnings = warnings
	}
	return facts, outcome
}

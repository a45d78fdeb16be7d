package xbrl

import (
	"math"
	"sort"
	"time"

	"github.com/sells-group/edgar-cli/internal/model"
)

// Expected duration lengths in days, used to score duration candidates
// against the filing's coverage: a 10-K reports a fiscal year, a 10-Q a
// fiscal quarter.
const (
	annualDays  = 365
	quarterDays = 91
)

// periodMismatchPenalty dominates any plausible date distance, pushing
// candidates whose period shape contradicts the metric (a duration
// context on a balance-sheet item) behind every well-shaped one.
const periodMismatchPenalty = 1 << 30

// ranked pairs a candidate with its resolved context for sorting.
type ranked struct {
	cand  Candidate
	ctx   Context
	score int
}

// selectCandidates reduces one metric's candidates to a preference
// order. Filters drop candidates that can never represent the
// consolidated figure; the survivors are ranked so the best-matching
// period wins, then the highest precision, then document order.
//
// Filtering runs in a fixed sequence:
//
//  1. Drop candidates without a resolvable context, or whose unit is
//     not plain USD.
//  2. Drop dimensionally qualified candidates, unless every survivor is
//     qualified. Segment breakdowns share the tag of the consolidated
//     total; when an unqualified context exists it is authoritative.
//  3. Score by period fit against the filing's report date.
func selectCandidates(doc *ParsedDocument, metric Metric, target time.Time, form model.FormType) []ranked {
	var pool []ranked
	for _, c := range doc.candidatesFor(metric.Name) {
		ctx, ok := doc.Contexts[c.ContextRef]
		if !ok {
			continue
		}
		unit, ok := doc.Units[c.UnitRef]
		if !ok || !unit.IsUSD() {
			continue
		}
		pool = append(pool, ranked{cand: c, ctx: ctx})
	}

	anyUnqualified := false
	for _, r := range pool {
		if !r.ctx.Qualified() {
			anyUnqualified = true
			break
		}
	}
	if anyUnqualified {
		filtered := pool[:0]
		for _, r := range pool {
			if !r.ctx.Qualified() {
				filtered = append(filtered, r)
			}
		}
		pool = filtered
	}

	for i := range pool {
		pool[i].score = periodScore(pool[i].ctx, metric.Kind, target, form)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score < pool[j].score
		}
		if pool[i].cand.Decimals != pool[j].cand.Decimals {
			return pool[i].cand.Decimals > pool[j].cand.Decimals
		}
		return pool[i].cand.Order < pool[j].cand.Order
	})

	return pool
}

// periodScore measures how well a context's period fits the filing.
// Lower is better. Instant metrics want an instant on the report date;
// duration metrics want a duration ending there with the form's
// expected length. Prior-year comparatives score worse by date
// distance, shape mismatches worse than any date distance.
func periodScore(ctx Context, kind PeriodKind, target time.Time, form model.FormType) int {
	wantInstant := kind == KindInstant
	isInstant := ctx.Type == PeriodInstant
	if wantInstant != isInstant {
		return periodMismatchPenalty + daysBetween(ctx.PrimaryDate(), target)
	}

	score := daysBetween(ctx.PrimaryDate(), target)
	if !wantInstant && ctx.DurationDays() > 0 {
		expected := quarterDays
		if form == model.Form10K {
			expected = annualDays
		}
		score += absInt(ctx.DurationDays() - expected)
	}
	return score
}

// daysBetween is the absolute calendar distance in days. A zero date on
// either side maxes the distance out rather than scoring spuriously
// well.
func daysBetween(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return math.MaxInt32
	}
	return absInt(int(a.Sub(b).Hours() / 24))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

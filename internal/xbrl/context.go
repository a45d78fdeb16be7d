package xbrl

import (
	"strings"
	"time"
)

// PeriodType is the reporting period shape of a context.
type PeriodType string

const (
	PeriodInstant  PeriodType = "instant"
	PeriodDuration PeriodType = "duration"
)

// Context is one XBRL context definition: the period a fact applies to
// plus any dimensional qualifiers narrowing it to a sub-total. Contexts
// with dimensions describe segment breakdowns and must not stand in for
// the consolidated figure while an unqualified context exists.
type Context struct {
	ID         string
	Type       PeriodType
	Instant    time.Time
	StartDate  time.Time
	EndDate    time.Time
	Dimensions map[string]string // axis → member
}

// Qualified reports whether the context carries dimensional qualifiers.
func (c Context) Qualified() bool { return len(c.Dimensions) > 0 }

// PrimaryDate is the date that anchors the context: the instant itself,
// or the end of the duration.
func (c Context) PrimaryDate() time.Time {
	if c.Type == PeriodInstant {
		return c.Instant
	}
	return c.EndDate
}

// DurationDays is the period length in days; zero for instants and for
// durations missing a start date.
func (c Context) DurationDays() int {
	if c.Type != PeriodDuration || c.StartDate.IsZero() || c.EndDate.IsZero() {
		return 0
	}
	return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
}

// ContextMap indexes contexts by their document-unique identifier.
type ContextMap map[string]Context

// parseXBRLDate parses the date format XBRL uses. Some filers append a
// timezone or time part; only the leading date matters.
func parseXBRLDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// buildContext assembles a Context from parsed parts shared by the
// instance and inline extractors. Returns false when the period cannot
// be interpreted.
func buildContext(id, instant, start, end string, dims map[string]string) (Context, bool) {
	ctx := Context{ID: id, Dimensions: dims}

	if t, ok := parseXBRLDate(instant); ok {
		ctx.Type = PeriodInstant
		ctx.Instant = t
		return ctx, true
	}

	endDate, ok := parseXBRLDate(end)
	if !ok {
		return Context{}, false
	}
	ctx.Type = PeriodDuration
	ctx.EndDate = endDate
	// Some contexts omit startDate; the end date still anchors them.
	if t, ok := parseXBRLDate(start); ok {
		ctx.StartDate = t
	}
	return ctx, true
}

package xbrl

// DecimalsExact marks a candidate whose value is exact: the decimals
// attribute was "INF", absent, or unreadable. Sorts above any finite
// precision in the tie-break.
const DecimalsExact = 1 << 20

// Candidate is one raw tagged value pulled from a document before
// selection and normalization. Several candidates per metric are normal
// (segment breakdowns, restatements, duplicate instant/duration tags);
// the selector reduces them to at most one.
type Candidate struct {
	Metric     string
	RawValue   string
	ContextRef string
	UnitRef    string

	// Decimals is the reported precision: the number of decimal places
	// the value is accurate to, negative when rounded to thousands or
	// millions. DecimalsExact when unstated.
	Decimals int

	// Scale is the power-of-ten exponent that expands the raw display
	// text to actual currency units. Inline documents render scaled-down
	// figures ("16,008" meaning millions); standalone instances report
	// full values and leave this zero.
	Scale int

	// Negated is set for inline facts displayed with a flipped sign
	// (the sign="-" attribute).
	Negated bool

	// Order is the document position, the final deterministic tie-break.
	Order int
}

// ParsedDocument is the fully resolved view of one financial document:
// its contexts, units, and every candidate matching a known alias.
type ParsedDocument struct {
	Contexts   ContextMap
	Units      UnitMap
	Candidates []Candidate
}

// candidatesFor returns the candidates for one canonical metric, in
// document order.
func (d *ParsedDocument) candidatesFor(metric string) []Candidate {
	var out []Candidate
	for _, c := range d.Candidates {
		if c.Metric == metric {
			out = append(out, c)
		}
	}
	return out
}

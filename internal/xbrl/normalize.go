package xbrl

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// NormalizeValue turns a candidate's raw text into a float in actual
// currency units. Inline documents render human-formatted figures, so
// thousands separators, currency symbols, and parenthesized negatives
// are all stripped before parsing; the scale exponent then expands the
// display value ("16,008" at scale 6 becomes 16008000000).
func NormalizeValue(c Candidate) (float64, error) {
	s := strings.TrimSpace(c.RawValue)
	if s == "" {
		return 0, eris.Errorf("xbrl: empty value for %s", c.Metric)
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ',', '$', ' ', '\u00a0':
			// formatting noise
		case '−': // typographic minus
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	s = b.String()

	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "xbrl: unparseable value %q for %s", c.RawValue, c.Metric)
	}

	if c.Scale != 0 {
		v *= math.Pow10(c.Scale)
	}
	if negative {
		v = -v
	}
	// The sign attribute applies after any format transform and forces
	// the result negative even when the display text already carried
	// parentheses.
	if c.Negated {
		v = -math.Abs(v)
	}
	return v, nil
}

package xbrl

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// contextXML mirrors an xbrli:context element. Field tags match on
// local names, so taxonomy namespace prefixes are irrelevant here.
type contextXML struct {
	ID     string `xml:"id,attr"`
	Period struct {
		Instant   string `xml:"instant"`
		StartDate string `xml:"startDate"`
		EndDate   string `xml:"endDate"`
	} `xml:"period"`
	Entity struct {
		Segment *segmentXML `xml:"segment"`
	} `xml:"entity"`
	Scenario *segmentXML `xml:"scenario"`
}

// segmentXML holds the dimensional qualifiers of a context.
type segmentXML struct {
	Members []explicitMemberXML `xml:"explicitMember"`
}

type explicitMemberXML struct {
	Dimension string `xml:"dimension,attr"`
	Member    string `xml:",chardata"`
}

// unitXML mirrors an xbrli:unit element, including divide units used
// for per-share ratios.
type unitXML struct {
	ID      string `xml:"id,attr"`
	Measure string `xml:"measure"`
	Divide  *struct {
		Numerator   string `xml:"unitNumerator>measure"`
		Denominator string `xml:"unitDenominator>measure"`
	} `xml:"divide"`
}

// ParseInstance walks a standalone XBRL instance document and collects
// contexts, units, and every tagged value matching a known alias. Fact
// elements are recognized the way the taxonomy defines them: any
// element carrying a contextRef attribute.
func ParseInstance(data []byte, aliases *AliasTable) (*ParsedDocument, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	// Old instance documents are not always UTF-8.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "xbrl: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	doc := &ParsedDocument{
		Contexts: make(ContextMap),
		Units:    make(UnitMap),
	}
	sawRoot := false
	order := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "xbrl: parse instance document")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		switch se.Name.Local {
		case "context":
			var cx contextXML
			if err := decoder.DecodeElement(&cx, &se); err != nil {
				return nil, eris.Wrap(err, "xbrl: decode context")
			}
			if cx.ID == "" {
				continue
			}
			if ctx, ok := buildContext(cx.ID, cx.Period.Instant, cx.Period.StartDate, cx.Period.EndDate, dimensionsOf(cx)); ok {
				doc.Contexts[cx.ID] = ctx
			}

		case "unit":
			var ux unitXML
			if err := decoder.DecodeElement(&ux, &se); err != nil {
				return nil, eris.Wrap(err, "xbrl: decode unit")
			}
			if ux.ID == "" {
				continue
			}
			unit := Unit{ID: ux.ID, Measure: strings.TrimSpace(ux.Measure)}
			if ux.Divide != nil {
				unit.Numerator = strings.TrimSpace(ux.Divide.Numerator)
				unit.Denominator = strings.TrimSpace(ux.Divide.Denominator)
			}
			doc.Units[ux.ID] = unit

		default:
			contextRef := attrValue(se.Attr, "contextRef")
			if contextRef == "" {
				continue
			}
			metric, ok := aliases.Resolve(se.Name.Local)
			if !ok {
				continue
			}

			var raw string
			if err := decoder.DecodeElement(&raw, &se); err != nil {
				// One broken fact element should not sink the filing.
				continue
			}

			unitRef := attrValue(se.Attr, "unitRef")
			if unitRef == "" {
				// No unit means the value is not numeric for our purposes.
				continue
			}

			doc.Candidates = append(doc.Candidates, Candidate{
				Metric:     metric,
				RawValue:   strings.TrimSpace(raw),
				ContextRef: contextRef,
				UnitRef:    unitRef,
				Decimals:   parseDecimals(attrValue(se.Attr, "decimals")),
				Order:      order,
			})
			order++
		}
	}

	if !sawRoot {
		return nil, eris.New("xbrl: empty instance document")
	}

	return doc, nil
}

// dimensionsOf flattens a context's segment and scenario members into
// an axis → member map; nil when unqualified.
func dimensionsOf(cx contextXML) map[string]string {
	var dims map[string]string
	add := func(s *segmentXML) {
		if s == nil {
			return
		}
		for _, m := range s.Members {
			if m.Dimension == "" {
				continue
			}
			if dims == nil {
				dims = make(map[string]string)
			}
			dims[m.Dimension] = strings.TrimSpace(m.Member)
		}
	}
	add(cx.Entity.Segment)
	add(cx.Scenario)
	return dims
}

// attrValue returns an attribute by local name, ignoring namespaces.
func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}

// parseDecimals interprets the decimals attribute. "INF", absence, and
// unreadable values all mean the figure is exact as reported.
func parseDecimals(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "INF") {
		return DecimalsExact
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return DecimalsExact
	}
	return d
}

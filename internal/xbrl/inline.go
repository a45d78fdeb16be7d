package xbrl

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// ParseInline walks an inline-XBRL document: a human-readable HTML
// filing with ix:nonFraction tags wrapping the reported figures and the
// context/unit definitions tucked into the ix:header resources block.
// The HTML parser lowercases foreign element and attribute names, so
// all matching here is against lowercase local names.
func ParseInline(data []byte, aliases *AliasTable) (*ParsedDocument, error) {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "xbrl: parse inline document")
	}

	doc := &ParsedDocument{
		Contexts: make(ContextMap),
		Units:    make(UnitMap),
	}

	root := gq.Get(0)
	if root == nil {
		return nil, eris.New("xbrl: empty inline document")
	}

	order := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch inlineLocalName(n.Data) {
			case "context":
				if ctx, ok := inlineContext(n); ok {
					doc.Contexts[ctx.ID] = ctx
				}
			case "unit":
				if unit, ok := inlineUnit(n); ok {
					doc.Units[unit.ID] = unit
				}
			default:
				if c, ok := inlineCandidate(n, aliases); ok {
					c.Order = order
					order++
					doc.Candidates = append(doc.Candidates, c)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return doc, nil
}

// inlineCandidate converts a tagged fact element into a Candidate.
// Any element with name and contextRef attributes counts; the alias
// table decides whether it is a target.
func inlineCandidate(n *html.Node, aliases *AliasTable) (Candidate, bool) {
	name := nodeAttr(n, "name")
	contextRef := nodeAttr(n, "contextref")
	if name == "" || contextRef == "" {
		return Candidate{}, false
	}

	metric, ok := aliases.Resolve(name)
	if !ok {
		return Candidate{}, false
	}

	unitRef := nodeAttr(n, "unitref")
	if unitRef == "" {
		// Non-numeric inline fact (ix:nonNumeric); not a value candidate.
		return Candidate{}, false
	}

	raw := strings.TrimSpace(nodeText(n))
	if raw == "" {
		// Some filers put the figure in a value attribute instead.
		raw = strings.TrimSpace(nodeAttr(n, "value"))
	}
	if raw == "" {
		return Candidate{}, false
	}

	decimals := parseDecimals(nodeAttr(n, "decimals"))

	// Inline figures are display values: "16,008" shown in millions.
	// The scale attribute carries the expansion exponent; older filings
	// omit it, leaving negative decimals as the only scaling hint.
	scale := 0
	if s := strings.TrimSpace(nodeAttr(n, "scale")); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			scale = v
		}
	} else if decimals != DecimalsExact && decimals < 0 {
		scale = -decimals
	}

	return Candidate{
		Metric:     metric,
		RawValue:   raw,
		ContextRef: contextRef,
		UnitRef:    unitRef,
		Decimals:   decimals,
		Scale:      scale,
		Negated:    strings.TrimSpace(nodeAttr(n, "sign")) == "-",
	}, true
}

// inlineContext rebuilds a Context from the xbrli:context markup inside
// the ix:header.
func inlineContext(n *html.Node) (Context, bool) {
	id := nodeAttr(n, "id")
	if id == "" {
		return Context{}, false
	}

	var instant, start, end string
	var dims map[string]string

	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch inlineLocalName(c.Data) {
			case "instant":
				instant = nodeText(c)
			case "startdate":
				start = nodeText(c)
			case "enddate":
				end = nodeText(c)
			case "explicitmember":
				if axis := nodeAttr(c, "dimension"); axis != "" {
					if dims == nil {
						dims = make(map[string]string)
					}
					dims[axis] = strings.TrimSpace(nodeText(c))
				}
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return buildContext(id, instant, start, end, dims)
}

// inlineUnit rebuilds a Unit, distinguishing plain measures from divide
// (ratio) units.
func inlineUnit(n *html.Node) (Unit, bool) {
	id := nodeAttr(n, "id")
	if id == "" {
		return Unit{}, false
	}
	unit := Unit{ID: id}

	var inNumerator, inDenominator bool
	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch inlineLocalName(c.Data) {
			case "unitnumerator":
				inNumerator = true
				defer func() { inNumerator = false }()
			case "unitdenominator":
				inDenominator = true
				defer func() { inDenominator = false }()
			case "measure":
				m := strings.TrimSpace(nodeText(c))
				switch {
				case inNumerator:
					unit.Numerator = m
				case inDenominator:
					unit.Denominator = m
				default:
					unit.Measure = m
				}
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return unit, true
}

// inlineLocalName strips the namespace prefix from a lowercased element
// name ("ix:nonfraction" → "nonfraction").
func inlineLocalName(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// nodeAttr returns an attribute by lowercased key.
func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates all descendant text, the inline equivalent of
// reading an element's character data.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// Package parsers holds the per-issuer field extraction tables. Every
// issuer parser is a data table of ordered regex patterns; the shared
// runner applies them and types the captured values.
package parsers

import (
	"regexp"
	"strings"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/dates"
	"github.com/priya-raghavan/statement-parser/internal/mask"
	"github.com/priya-raghavan/statement-parser/internal/money"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// Parser is one issuer's pattern table. CanParse checks a parser against
// raw statement text: the boolean accepts or rejects the document, the
// float is the acceptance confidence.
type Parser interface {
	Issuer() constants.IssuerType
	Patterns() []FieldPattern
	CanParse(text string) (bool, float64)
}

// SpatialParser is implemented by issuers with a coordinate-based path
// that runs before the regex table.
type SpatialParser interface {
	Parser
	ParseSpatial(doc *pdftext.Document) ([]statement.Field, error)
}

// FieldPattern is the ordered pattern list for one field. Patterns are
// tried in order; the first match wins. Capture group 1 is the value.
type FieldPattern struct {
	Field      constants.FieldType
	Patterns   []*regexp.Regexp
	Confidence float64 // base confidence for the first pattern
}

const (
	// defaultPatternConfidence is used when a table entry leaves
	// Confidence zero.
	defaultPatternConfidence = 0.9
	// fallbackPenalty lowers confidence for each later pattern that had
	// to be tried.
	fallbackPenalty = 0.05
	// minPatternConfidence floors the penalty ladder.
	minPatternConfidence = 0.5
)

// ParseText runs a parser's table over statement text and returns the
// typed fields. Unmatched fields are skipped, not errors; a value that
// matches but cannot be typed is skipped with the next pattern tried.
func ParseText(p Parser, text string, method constants.ExtractionMethod) []statement.Field {
	var out []statement.Field
	for _, fp := range p.Patterns() {
		base := fp.Confidence
		if base == 0 {
			base = defaultPatternConfidence
		}
		for i, re := range fp.Patterns {
			match := re.FindStringSubmatch(text)
			if match == nil || len(match) < 2 {
				continue
			}
			raw := strings.TrimSpace(match[1])
			value, ok := typeValue(fp.Field, raw)
			if !ok {
				continue
			}

			conf := base - fallbackPenalty*float64(i)
			if conf < minPatternConfidence {
				conf = minPatternConfidence
			}
			f, err := statement.NewField(fp.Field, value, conf, method)
			if err != nil {
				continue
			}
			out = append(out, f.WithRawText(raw))
			break
		}
	}
	return out
}

// typeValue converts a captured string into the field's Go type.
func typeValue(field constants.FieldType, raw string) (any, bool) {
	switch {
	case field == constants.FieldCardNumber:
		last := mask.LastFour(raw)
		return last, last != ""
	case field.IsAmount():
		d, err := money.Parse(raw)
		if err != nil {
			return nil, false
		}
		return d, true
	case field.IsDate():
		t, err := dates.Parse(raw)
		if err != nil {
			return nil, false
		}
		return t, true
	default:
		s := strings.TrimSpace(raw)
		return s, s != ""
	}
}

// Pattern helpers shared by the issuer tables.

func res(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// amountAfter builds the usual "<label> [:] ₹/Rs amount" pattern.
func amountAfter(label string) string {
	return `(?i)` + label + `\s*[:\-]?\s*(?:rs\.?|inr|₹)?\s*([\d,]+(?:\.\d{1,2})?\s*(?:cr|dr)?)`
}

// dateAfter builds the usual "<label> [:] date" pattern.
func dateAfter(label string) string {
	return `(?i)` + label + `\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{1,2}\s+[A-Za-z]{3,9},?\s+\d{4}|[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4})`
}

// cardAfter builds the usual "<label> [:] digits/mask" pattern.
func cardAfter(label string) string {
	return `(?i)` + label + `\s*[:\-]?\s*((?:[\dxX*]{4}[\s\-]?){3}\d{4}|\d{4})`
}

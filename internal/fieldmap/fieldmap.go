// Package fieldmap merges fields from the extraction sources into one
// result. Sources are applied in priority order and never overwrite:
// a field set by an earlier source is kept, later sources only fill gaps.
package fieldmap

import (
	"fmt"
	"log/slog"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/dates"
	"github.com/priya-raghavan/statement-parser/internal/layout"
	"github.com/priya-raghavan/statement-parser/internal/mask"
	"github.com/priya-raghavan/statement-parser/internal/money"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// requiredForMapping are the fields a statement is expected to yield;
// missing ones become result warnings, not errors.
var requiredForMapping = []constants.FieldType{
	constants.FieldCardNumber,
	constants.FieldStatementDate,
	constants.FieldTotalDue,
	constants.FieldMinimumDue,
}

type Mapper struct {
	analyzer *layout.Analyzer
	log      *slog.Logger
}

func NewMapper(analyzer *layout.Analyzer, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if analyzer == nil {
		analyzer = layout.NewAnalyzer(logger)
	}
	return &Mapper{analyzer: analyzer, log: logger}
}

// Merge applies fields to the result under the fill-only-if-empty policy
// and reports how many were actually stored.
func (m *Mapper) Merge(res *statement.ExtractionResult, fields []statement.Field) int {
	stored := 0
	for _, f := range fields {
		if res.SetIfEmpty(f) {
			stored++
		}
	}
	return stored
}

// LayoutFields turns label-proximity candidates from every page into typed
// fields. Unlike the issuer spatial path, a candidate that fails to type
// is skipped individually; layout is a supplementary source.
func (m *Mapper) LayoutFields(doc *pdftext.Document) []statement.Field {
	var out []statement.Field
	seen := map[constants.FieldType]bool{}
	for _, page := range doc.Pages {
		for _, c := range m.analyzer.FindFields(page) {
			if seen[c.Field] {
				continue
			}
			value, ok := typeCandidate(c.Field, c.Value.Text)
			if !ok {
				m.log.Debug("layout candidate rejected", "field", string(c.Field), "raw", c.Value.Text)
				continue
			}
			f, err := statement.NewField(c.Field, value, c.Confidence, constants.MethodLayout)
			if err != nil {
				continue
			}
			bbox := c.Value.BBox
			out = append(out, f.WithRawText(c.Value.Text).WithLocation(c.Value.Page, &bbox))
			seen[c.Field] = true
		}
	}
	return out
}

// MissingRequired returns warnings for expected fields the merge did not
// produce.
func (m *Mapper) MissingRequired(res *statement.ExtractionResult) []string {
	var warnings []string
	for _, ft := range requiredForMapping {
		if _, ok := res.Get(ft); !ok {
			warnings = append(warnings, fmt.Sprintf("required field %s not extracted", ft))
		}
	}
	return warnings
}

func typeCandidate(field constants.FieldType, raw string) (any, bool) {
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
	case field == constants.FieldBillingCycle:
		if _, _, err := dates.ParseCycle(raw); err != nil {
			return nil, false
		}
		return raw, true
	default:
		return raw, raw != ""
	}
}

package parsers

import (
	"fmt"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/dates"
	"github.com/priya-raghavan/statement-parser/internal/layout"
	"github.com/priya-raghavan/statement-parser/internal/mask"
	"github.com/priya-raghavan/statement-parser/internal/money"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// spatialFields are the field types worth resolving by coordinates on SBI
// statements; the rest stay with the regex table.
var spatialFields = map[constants.FieldType]bool{
	constants.FieldCardNumber:      true,
	constants.FieldStatementDate:   true,
	constants.FieldPaymentDueDate:  true,
	constants.FieldTotalDue:        true,
	constants.FieldMinimumDue:      true,
	constants.FieldCreditLimit:     true,
	constants.FieldAvailableCredit: true,
}

// ParseSpatial resolves SBI summary fields by label/value proximity on the
// first page. Any value that fails to type poisons the whole pass: the
// caller discards spatial output entirely and reruns the regex table, so a
// half-broken layout never produces a mixed result.
func (p sbiParser) ParseSpatial(doc *pdftext.Document) ([]statement.Field, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no pages for spatial extraction")
	}

	analyzer := layout.NewAnalyzer(nil)
	candidates := analyzer.FindFields(doc.Pages[0])

	var out []statement.Field
	for _, c := range candidates {
		if !spatialFields[c.Field] {
			continue
		}
		value, err := typeSpatialValue(c.Field, c.Value.Text)
		if err != nil {
			return nil, fmt.Errorf("spatial value for %s: %w", c.Field, err)
		}
		f, err := statement.NewField(c.Field, value, c.Confidence, constants.MethodSpatial)
		if err != nil {
			return nil, err
		}
		bbox := c.Value.BBox
		out = append(out, f.WithRawText(c.Value.Text).WithLocation(c.Value.Page, &bbox))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no spatial fields resolved")
	}
	return out, nil
}

func typeSpatialValue(field constants.FieldType, raw string) (any, error) {
	switch {
	case field == constants.FieldCardNumber:
		last := mask.LastFour(raw)
		if last == "" {
			return nil, fmt.Errorf("no card digits in %q", raw)
		}
		return last, nil
	case field.IsAmount():
		return money.Parse(raw)
	case field.IsDate():
		return dates.Parse(raw)
	default:
		return raw, nil
	}
}

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

func block(text string, x, y, w float64) pdftext.Block {
	return pdftext.Block{
		Text: text,
		Page: 1,
		BBox: statement.BoundingBox{X0: x, Y0: y, X1: x + w, Y1: y + 10},
	}
}

func testPage(blocks ...pdftext.Block) pdftext.Page {
	return pdftext.Page{Number: 1, Width: 612, Height: 792, Blocks: blocks}
}

func TestFindFieldsSameLineValue(t *testing.T) {
	page := testPage(
		block("Total Amount Due", 40, 300, 120),
		block("₹45,230.50", 420, 302, 70),
		block("Payment Due Date", 40, 330, 120),
		block("05/02/2024", 420, 331, 70),
	)

	got := NewAnalyzer(nil).FindFields(page)
	require.Len(t, got, 2)

	byField := map[constants.FieldType]Candidate{}
	for _, c := range got {
		byField[c.Field] = c
	}

	total := byField[constants.FieldTotalDue]
	assert.Equal(t, "₹45,230.50", total.Value.Text)
	assert.InDelta(t, 0.8, total.Confidence, 1e-9)

	due := byField[constants.FieldPaymentDueDate]
	assert.Equal(t, "05/02/2024", due.Value.Text)
}

func TestFindFieldsValueBelowLabel(t *testing.T) {
	page := testPage(
		block("Credit Limit", 40, 200, 90),
		block("₹3,00,000", 45, 222, 70), // 12pt below, near-left-aligned
	)

	got := NewAnalyzer(nil).FindFields(page)
	require.Len(t, got, 1)
	assert.Equal(t, constants.FieldCreditLimit, got[0].Field)
	assert.Equal(t, "₹3,00,000", got[0].Value.Text)
}

func TestFindFieldsPrefersNearestOnLine(t *testing.T) {
	page := testPage(
		block("Minimum Amount Due", 40, 100, 140),
		block("₹2,500.00", 250, 100, 60),
		block("₹99,999.00", 500, 100, 60),
	)

	got := NewAnalyzer(nil).FindFields(page)
	require.Len(t, got, 1)
	assert.Equal(t, "₹2,500.00", got[0].Value.Text)
}

func TestFindFieldsIgnoresDistantBlocks(t *testing.T) {
	page := testPage(
		block("Statement Date", 40, 100, 100),
		block("Unrelated text", 40, 400, 100),
	)
	got := NewAnalyzer(nil).FindFields(page)
	assert.Empty(t, got)
}

func TestHeaderAndFooterRegions(t *testing.T) {
	top := block("HDFC Bank Credit Card Statement", 40, 60, 300)
	mid := block("Transaction details", 40, 400, 200)
	bottom := block("Registered office fine print", 40, 760, 300)
	page := testPage(top, mid, bottom)

	a := NewAnalyzer(nil)

	header := a.HeaderBlocks(page)
	require.Len(t, header, 1)
	assert.Equal(t, top.Text, header[0].Text)

	footer := a.FooterBlocks(page)
	require.Len(t, footer, 1)
	assert.Equal(t, bottom.Text, footer[0].Text)
}

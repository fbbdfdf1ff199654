package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/internal/statement"
)

func TestGroupBlocksMergesLineAndSplitsColumns(t *testing.T) {
	spans := []Span{
		// One label phrase on the left, a value far to the right.
		{Text: "Total", X: 40, Y: 100, W: 30, H: 10},
		{Text: "Amount", X: 72, Y: 100.5, W: 42, H: 10},
		{Text: "Due", X: 116, Y: 99.8, W: 22, H: 10},
		{Text: "₹12,345.00", X: 400, Y: 100.2, W: 60, H: 10},
		// A second line well below.
		{Text: "Payment", X: 40, Y: 120, W: 48, H: 10},
		{Text: "Due", X: 90, Y: 120, W: 22, H: 10},
		{Text: "Date", X: 114, Y: 120, W: 26, H: 10},
	}

	blocks := GroupBlocks(spans, 1)
	require.Len(t, blocks, 3)

	assert.Equal(t, "Total Amount Due", blocks[0].Text)
	assert.Equal(t, "₹12,345.00", blocks[1].Text)
	assert.Equal(t, "Payment Due Date", blocks[2].Text)

	// Reading order: first line before second, left before right.
	assert.Less(t, blocks[0].BBox.X0, blocks[1].BBox.X0)
	assert.Less(t, blocks[0].BBox.Y0, blocks[2].BBox.Y0)
}

func TestGroupBlocksToleratesJitterWithinLine(t *testing.T) {
	spans := []Span{
		{Text: "Statement", X: 40, Y: 50.0, W: 54, H: 10},
		{Text: "Date", X: 96, Y: 52.4, W: 26, H: 10}, // within 3pt tolerance
	}
	blocks := GroupBlocks(spans, 1)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Statement Date", blocks[0].Text)
}

func TestGroupBlocksSeparatesDistantLines(t *testing.T) {
	spans := []Span{
		{Text: "alpha", X: 40, Y: 50, W: 30, H: 10},
		{Text: "beta", X: 40, Y: 54, W: 30, H: 10}, // beyond tolerance
	}
	blocks := GroupBlocks(spans, 1)
	require.Len(t, blocks, 2)
}

func TestGroupBlocksSkipsEmptySpans(t *testing.T) {
	spans := []Span{
		{Text: "   ", X: 40, Y: 50, W: 10, H: 10},
		{Text: "real", X: 60, Y: 50, W: 24, H: 10},
	}
	blocks := GroupBlocks(spans, 2)
	require.Len(t, blocks, 1)
	assert.Equal(t, "real", blocks[0].Text)
	assert.Equal(t, 2, blocks[0].Page)
}

func TestRenderText(t *testing.T) {
	blocks := []Block{
		{Text: "Card Number", BBox: boxAt(40, 50)},
		{Text: "XXXX 1234", BBox: boxAt(300, 50)},
		{Text: "Total Due", BBox: boxAt(40, 70)},
		{Text: "₹500.00", BBox: boxAt(300, 70)},
	}
	text := RenderText(blocks)
	assert.Equal(t, "Card Number  XXXX 1234\nTotal Due  ₹500.00", text)
}

func TestTextInRegion(t *testing.T) {
	blocks := []Block{
		{Text: "HDFC Bank", BBox: boxAt(40, 20)},
		{Text: "Statement Date  15/01/2024", BBox: boxAt(40, 50)},
		{Text: "Fine print", BBox: boxAt(40, 700)},
	}
	header := statement.BoundingBox{X0: 0, Y0: 0, X1: 612, Y1: 120}
	text := TextInRegion(blocks, header)
	assert.Contains(t, text, "HDFC Bank")
	assert.Contains(t, text, "Statement Date")
	assert.NotContains(t, text, "Fine print")

	assert.Equal(t, "", TextInRegion(blocks, statement.BoundingBox{X0: 0, Y0: 300, X1: 612, Y1: 400}))
}

func boxAt(x, y float64) statement.BoundingBox {
	return statement.BoundingBox{X0: x, Y0: y, X1: x + 50, Y1: y + 10}
}

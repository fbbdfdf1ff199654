package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

func cell(text string, x, y float64) pdftext.Block {
	return pdftext.Block{
		Text: text,
		Page: 1,
		BBox: statement.BoundingBox{X0: x, Y0: y, X1: x + 60, Y1: y + 10},
	}
}

// gridPage lays out a clean three-column transaction table with a header.
func gridPage() pdftext.Page {
	blocks := []pdftext.Block{
		cell("Date", 40, 100), cell("Description", 180, 100), cell("Amount", 420, 100),
		cell("02/01/2024", 40, 120), cell("AMAZON RETAIL", 180, 120), cell("1,299.00", 420, 120),
		cell("05/01/2024", 40, 140), cell("GROCERY MART", 180, 140), cell("456.50", 420, 140),
		cell("08/01/2024", 40, 160), cell("PAYMENT RECEIVED", 180, 160), cell("2,000.00 CR", 420, 160),
	}
	return pdftext.Page{Number: 1, Width: 612, Height: 792, Blocks: blocks}
}

func docWith(pages ...pdftext.Page) *pdftext.Document {
	return &pdftext.Document{Pages: pages, PageCount: len(pages)}
}

func TestLatticeExtractsAlignedTable(t *testing.T) {
	res, err := NewExtractor(nil).Extract(docWith(gridPage()), StrategyLattice)
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, StrategyLattice, table.Strategy)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, table.Header)
	assert.Len(t, table.Rows, 3)
	assert.InDelta(t, 1.0, table.Accuracy, 1e-9)
}

func TestTransactionsParsedWithCreditNegative(t *testing.T) {
	res, err := NewExtractor(nil).Extract(docWith(gridPage()), StrategyAuto)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 3)
	// Both strategies find the same single table; the tie keeps lattice.
	assert.Equal(t, StrategyLattice, res.Strategy)

	first := res.Transactions[0]
	require.NotNil(t, first.Date)
	assert.Equal(t, "2024-01-02", first.Date.Format("2006-01-02"))
	assert.Equal(t, "AMAZON RETAIL", first.Description)
	assert.Equal(t, "1299", first.Amount.String())
	assert.False(t, first.IsCredit())

	payment := res.Transactions[2]
	assert.True(t, payment.IsCredit())
	assert.Equal(t, "-2000", payment.Amount.String())
}

func TestDebitCreditColumns(t *testing.T) {
	table := &Table{
		Page:     1,
		Accuracy: 0.9,
		Header:   []string{"Date", "Details", "Debit", "Credit"},
		Rows: [][]string{
			{"02/01/2024", "FUEL STATION", "900.00", ""},
			{"03/01/2024", "REFUND", "", "150.00"},
		},
	}
	txs := ParseTransactions(table)
	require.Len(t, txs, 2)
	assert.Equal(t, "900", txs[0].Amount.String())
	assert.Equal(t, "-150", txs[1].Amount.String())
}

func TestRowsMissingDateAndDescriptionDropped(t *testing.T) {
	table := &Table{
		Page:     1,
		Accuracy: 0.9,
		Header:   []string{"Date", "Description", "Amount"},
		Rows: [][]string{
			{"02/01/2024", "REAL SPEND", "100.00"},
			{"", "", ""},
			{"", "", "45.00"},
		},
	}
	txs := ParseTransactions(table)
	require.Len(t, txs, 1)
	assert.Equal(t, "REAL SPEND", txs[0].Description)
}

func TestRowWithoutAmountKept(t *testing.T) {
	table := &Table{
		Page:     1,
		Accuracy: 0.9,
		Header:   []string{"Date", "Description", "Amount"},
		Rows: [][]string{
			{"02/01/2024", "REAL SPEND", "100.00"},
			{"", "Please see reverse for terms", ""},
			{"05/01/2024", "PENDING REVERSAL", ""},
		},
	}
	txs := ParseTransactions(table)
	require.Len(t, txs, 3)
	assert.Nil(t, txs[1].Amount)
	assert.Equal(t, "Please see reverse for terms", txs[1].Description)
	require.NotNil(t, txs[2].Date)
	assert.Nil(t, txs[2].Amount)
}

func TestBalanceColumnStaysOutOfDescription(t *testing.T) {
	table := &Table{
		Page:     1,
		Accuracy: 0.9,
		Header:   []string{"Date", "Description", "Amount", "Balance"},
		Rows: [][]string{
			{"02/01/2024", "AMAZON RETAIL", "1,299.00", "10,500.00"},
		},
	}
	txs := ParseTransactions(table)
	require.Len(t, txs, 1)
	assert.Equal(t, "AMAZON RETAIL", txs[0].Description)
	require.NotNil(t, txs[0].Balance)
	assert.Equal(t, "10500", txs[0].Balance.String())
	require.NotNil(t, txs[0].Amount)
	assert.Equal(t, "1299", txs[0].Amount.String())
}

func TestHeaderlessTableInfersRoles(t *testing.T) {
	table := &Table{
		Page:     1,
		Accuracy: 0.8,
		Rows: [][]string{
			{"02/01/2024", "STORE ONE", "100.00"},
			{"03/01/2024", "STORE TWO", "250.00"},
			{"04/01/2024", "STORE THREE", "75.25"},
		},
	}
	txs := ParseTransactions(table)
	require.Len(t, txs, 3)
	require.NotNil(t, txs[0].Date)
	assert.Equal(t, "STORE TWO", txs[1].Description)
	assert.Equal(t, "250", txs[1].Amount.String())
}

func TestShortRunsAreNotTables(t *testing.T) {
	page := pdftext.Page{Number: 1, Blocks: []pdftext.Block{
		cell("Label", 40, 100), cell("Value", 300, 100),
		cell("Other", 40, 200), cell("Thing", 300, 200),
	}}
	res, err := NewExtractor(nil).Extract(docWith(page), StrategyAuto)
	require.NoError(t, err)
	assert.Empty(t, res.Tables)
}

func TestUnknownStrategyRejected(t *testing.T) {
	_, err := NewExtractor(nil).Extract(docWith(gridPage()), Strategy("magic"))
	require.Error(t, err)
}

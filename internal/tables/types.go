// Package tables finds transaction tables in statement pages and turns
// their rows into typed transactions. Two detection strategies exist:
// lattice expects grid-aligned columns, stream infers columns from
// whitespace. Auto runs both and keeps the better harvest.
package tables

import (
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// Strategy selects the table detection algorithm.
type Strategy string

const (
	StrategyAuto    Strategy = "auto"
	StrategyLattice Strategy = "lattice"
	StrategyStream  Strategy = "stream"
)

// Table is one detected tabular region as a string grid.
type Table struct {
	Page     int
	Strategy Strategy
	// Accuracy is the fraction of rows conforming to the detected column
	// structure.
	Accuracy float64
	Header   []string
	Rows     [][]string
	BBox     statement.BoundingBox
}

// Result is the outcome of table extraction over a whole document.
type Result struct {
	Tables       []Table
	Transactions []statement.Transaction
	Strategy     Strategy
}

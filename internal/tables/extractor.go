package tables

import (
	"log/slog"
	"sort"

	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

const (
	// rowTolerance groups blocks into table rows by vertical proximity.
	rowTolerance = 5.0
	// columnTolerance buckets cell x-origins into columns.
	columnTolerance = 10.0
	// minTableRows is the smallest run of multi-cell rows treated as a table.
	minTableRows = 3
	// minLatticeAccuracy rejects lattice tables whose rows mostly miss the
	// detected grid.
	minLatticeAccuracy = 0.8
)

type Extractor struct {
	log *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{log: logger}
}

// Extract detects tables in every page of the document and parses their
// rows into transactions.
func (e *Extractor) Extract(doc *pdftext.Document, strategy Strategy) (*Result, error) {
	if doc == nil {
		return nil, common.ExtractionError("no document for table extraction", nil)
	}

	switch strategy {
	case StrategyLattice, StrategyStream:
		return e.extractWith(doc, strategy), nil
	case StrategyAuto, "":
		return pickBetter(e.extractWith(doc, StrategyLattice), e.extractWith(doc, StrategyStream)), nil
	default:
		return nil, common.NewAppError("TABLE_STRATEGY", "unknown strategy "+string(strategy), common.ErrInvalidInput)
	}
}

// pickBetter prefers the strategy that found more tables; a tie keeps
// the bordered (lattice) result.
func pickBetter(lattice, stream *Result) *Result {
	if len(stream.Tables) > len(lattice.Tables) {
		return stream
	}
	return lattice
}

func (e *Extractor) extractWith(doc *pdftext.Document, strategy Strategy) *Result {
	res := &Result{Strategy: strategy}
	for _, page := range doc.Pages {
		regions := findRegions(page.Blocks)
		for _, region := range regions {
			var table *Table
			if strategy == StrategyLattice {
				table = buildLattice(region, page.Number)
			} else {
				table = buildStream(region, page.Number)
			}
			if table == nil {
				continue
			}
			res.Tables = append(res.Tables, *table)
		}
	}
	for i := range res.Tables {
		res.Transactions = append(res.Transactions, ParseTransactions(&res.Tables[i])...)
	}
	e.log.Debug("table extraction",
		"strategy", string(strategy),
		"tables", len(res.Tables),
		"transactions", len(res.Transactions))
	return res
}

// tableRow is one visual row of cell blocks, left to right.
type tableRow struct {
	y     float64
	cells []pdftext.Block
}

// findRegions groups page blocks into rows and returns maximal runs of
// consecutive multi-cell rows long enough to be tables.
func findRegions(blocks []pdftext.Block) [][]tableRow {
	rows := groupRows(blocks)

	var regions [][]tableRow
	var run []tableRow
	for _, r := range rows {
		if len(r.cells) >= 2 {
			run = append(run, r)
			continue
		}
		if len(run) >= minTableRows {
			regions = append(regions, run)
		}
		run = nil
	}
	if len(run) >= minTableRows {
		regions = append(regions, run)
	}
	return regions
}

func groupRows(blocks []pdftext.Block) []tableRow {
	sorted := make([]pdftext.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y0 != sorted[j].BBox.Y0 {
			return sorted[i].BBox.Y0 < sorted[j].BBox.Y0
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	var rows []tableRow
	for _, b := range sorted {
		if len(rows) > 0 && b.BBox.Y0-rows[len(rows)-1].y <= rowTolerance {
			last := &rows[len(rows)-1]
			last.cells = append(last.cells, b)
			continue
		}
		rows = append(rows, tableRow{y: b.BBox.Y0, cells: []pdftext.Block{b}})
	}
	for i := range rows {
		sort.SliceStable(rows[i].cells, func(a, b int) bool {
			return rows[i].cells[a].BBox.X0 < rows[i].cells[b].BBox.X0
		})
	}
	return rows
}

// buildLattice fits a column grid to the region: cell x-origins are
// clustered, and each row must place its cells on the grid. Regions whose
// rows mostly miss the grid are rejected.
func buildLattice(region []tableRow, page int) *Table {
	columns := clusterColumns(region)
	if len(columns) < 2 {
		return nil
	}

	var grid [][]string
	aligned := 0
	for _, row := range region {
		cells := make([]string, len(columns))
		ok := true
		for _, c := range row.cells {
			idx := columnIndex(columns, c.BBox.X0)
			if idx < 0 {
				ok = false
				break
			}
			if cells[idx] != "" {
				cells[idx] += " "
			}
			cells[idx] += c.Text
		}
		if ok {
			aligned++
			grid = append(grid, cells)
		}
	}
	if len(grid) < minTableRows {
		return nil
	}
	accuracy := float64(aligned) / float64(len(region))
	if accuracy < minLatticeAccuracy {
		return nil
	}

	t := &Table{Page: page, Strategy: StrategyLattice, Accuracy: accuracy, Rows: grid, BBox: regionBBox(region)}
	splitHeader(t)
	return t
}

// buildStream takes each row's whitespace-separated cells as columns,
// scoring accuracy by how many rows share the modal cell count.
func buildStream(region []tableRow, page int) *Table {
	counts := map[int]int{}
	var grid [][]string
	for _, row := range region {
		cells := make([]string, 0, len(row.cells))
		for _, c := range row.cells {
			cells = append(cells, c.Text)
		}
		grid = append(grid, cells)
		counts[len(cells)]++
	}

	modal, modalCount := 0, 0
	for n, c := range counts {
		if c > modalCount || (c == modalCount && n > modal) {
			modal, modalCount = n, c
		}
	}
	if modal < 2 {
		return nil
	}

	t := &Table{
		Page:     page,
		Strategy: StrategyStream,
		Accuracy: float64(modalCount) / float64(len(region)),
		Rows:     grid,
		BBox:     regionBBox(region),
	}
	splitHeader(t)
	return t
}

// clusterColumns buckets cell x-origins across the region into column
// positions that at least 80% of rows use.
func clusterColumns(region []tableRow) []float64 {
	type bucket struct {
		x     float64
		count int
	}
	var buckets []bucket
	for _, row := range region {
		for _, c := range row.cells {
			placed := false
			for i := range buckets {
				if abs(c.BBox.X0-buckets[i].x) <= columnTolerance {
					// running average keeps the bucket centered
					buckets[i].x = (buckets[i].x*float64(buckets[i].count) + c.BBox.X0) / float64(buckets[i].count+1)
					buckets[i].count++
					placed = true
					break
				}
			}
			if !placed {
				buckets = append(buckets, bucket{x: c.BBox.X0, count: 1})
			}
		}
	}

	minCount := int(0.8 * float64(len(region)))
	if minCount < 2 {
		minCount = 2
	}
	var columns []float64
	for _, b := range buckets {
		if b.count >= minCount {
			columns = append(columns, b.x)
		}
	}
	sort.Float64s(columns)
	return columns
}

func columnIndex(columns []float64, x float64) int {
	for i, cx := range columns {
		if abs(x-cx) <= columnTolerance {
			return i
		}
	}
	return -1
}

func regionBBox(region []tableRow) statement.BoundingBox {
	bbox := region[0].cells[0].BBox
	for _, row := range region {
		for _, c := range row.cells {
			if c.BBox.X0 < bbox.X0 {
				bbox.X0 = c.BBox.X0
			}
			if c.BBox.Y0 < bbox.Y0 {
				bbox.Y0 = c.BBox.Y0
			}
			if c.BBox.X1 > bbox.X1 {
				bbox.X1 = c.BBox.X1
			}
			if c.BBox.Y1 > bbox.Y1 {
				bbox.Y1 = c.BBox.Y1
			}
		}
	}
	return bbox
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

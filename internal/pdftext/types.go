// Package pdftext extracts embedded text with coordinates from statement
// PDFs. Two library backends are tried in order; coordinates are normalized
// to a top-left origin so downstream layout code reads like the page.
package pdftext

import "github.com/priya-raghavan/statement-parser/internal/statement"

// Span is a raw positioned text fragment from a backend, already in
// top-left-origin page points.
type Span struct {
	Text string
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Block is a run of adjacent spans on one line, the unit layout analysis
// and table detection work with.
type Block struct {
	Text string
	Page int
	BBox statement.BoundingBox
}

// Page holds one page's blocks and reassembled text.
type Page struct {
	Number  int
	Width   float64
	Height  float64
	Blocks  []Block
	Text    string
	Scanned bool
}

// Document is the embedded-text view of a whole PDF.
type Document struct {
	Pages        []Page
	Text         string
	PageCount    int
	Scanned      bool
	ScannedPages []int
	Backend      string
}

// BlocksForPage returns the blocks of a 1-based page number.
func (d *Document) BlocksForPage(n int) []Block {
	for _, p := range d.Pages {
		if p.Number == n {
			return p.Blocks
		}
	}
	return nil
}

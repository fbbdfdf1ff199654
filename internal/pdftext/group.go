package pdftext

import (
	"sort"
	"strings"

	"github.com/priya-raghavan/statement-parser/internal/statement"
)

const (
	// lineTolerance groups spans whose vertical centers are within this
	// many points into one line.
	lineTolerance = 3.0
	// columnGap is the horizontal gap beyond which adjacent spans on a
	// line are separate blocks (columns) rather than one phrase.
	columnGap = 15.0
)

// GroupBlocks merges raw spans into line-ordered blocks. Spans are grouped
// into lines by vertical proximity, sorted left to right, and split into
// blocks at column-sized gaps. Reading order is top-to-bottom then
// left-to-right.
func GroupBlocks(spans []Span, page int) []Block {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]Span
	var current []Span
	lineY := sorted[0].Y
	for _, s := range sorted {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		if len(current) > 0 && s.Y-lineY > lineTolerance {
			lines = append(lines, current)
			current = nil
		}
		if len(current) == 0 {
			lineY = s.Y
		}
		current = append(current, s)
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	var blocks []Block
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
		blocks = append(blocks, splitLine(line, page)...)
	}
	return blocks
}

// splitLine turns one line of spans into blocks, breaking at column gaps.
func splitLine(line []Span, page int) []Block {
	var blocks []Block
	var run []Span
	for i, s := range line {
		if i > 0 {
			prev := line[i-1]
			if s.X-(prev.X+prev.W) > columnGap {
				blocks = append(blocks, joinRun(run, page))
				run = nil
			}
		}
		run = append(run, s)
	}
	if len(run) > 0 {
		blocks = append(blocks, joinRun(run, page))
	}
	return blocks
}

func joinRun(run []Span, page int) Block {
	var sb strings.Builder
	bbox := statement.BoundingBox{X0: run[0].X, Y0: run[0].Y, X1: run[0].X + run[0].W, Y1: run[0].Y + run[0].H}
	for i, s := range run {
		if i > 0 {
			prev := run[i-1]
			if s.X-(prev.X+prev.W) > 1.0 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(s.Text)
		if s.X < bbox.X0 {
			bbox.X0 = s.X
		}
		if s.Y < bbox.Y0 {
			bbox.Y0 = s.Y
		}
		if s.X+s.W > bbox.X1 {
			bbox.X1 = s.X + s.W
		}
		if s.Y+s.H > bbox.Y1 {
			bbox.Y1 = s.Y + s.H
		}
	}
	return Block{Text: strings.TrimSpace(sb.String()), Page: page, BBox: bbox}
}

// TextInRegion renders the text of the blocks overlapping a page region,
// in reading order.
func TextInRegion(blocks []Block, region statement.BoundingBox) string {
	var inside []Block
	for _, b := range blocks {
		if b.BBox.X0 < region.X1 && b.BBox.X1 > region.X0 &&
			b.BBox.Y0 < region.Y1 && b.BBox.Y1 > region.Y0 {
			inside = append(inside, b)
		}
	}
	return RenderText(inside)
}

// RenderText reassembles page text from blocks: blocks sharing a line are
// joined with double spaces, lines with newlines.
func RenderText(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	var lines []string
	var line []string
	lineY := blocks[0].BBox.Y0
	for _, b := range blocks {
		if len(line) > 0 && b.BBox.Y0-lineY > lineTolerance {
			lines = append(lines, strings.Join(line, "  "))
			line = nil
		}
		if len(line) == 0 {
			lineY = b.BBox.Y0
		}
		line = append(line, b.Text)
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, "  "))
	}
	return strings.Join(lines, "\n")
}

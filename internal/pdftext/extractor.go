package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	dslipak "github.com/dslipak/pdf"
	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/priya-raghavan/statement-parser/internal/common"
)

const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Extractor pulls positioned text out of PDFs using two library backends.
// The primary backend preserves glyph coordinates; the secondary is a
// row-oriented fallback for files the primary cannot decode.
type Extractor struct {
	cfg common.ExtractionConfig
	log *slog.Logger
}

// NewExtractor builds an extractor. A nil logger discards output.
func NewExtractor(cfg common.ExtractionConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 50
	}
	return &Extractor{cfg: cfg, log: logger}
}

// Extract reads embedded text from a PDF. The file is preflighted first;
// structurally broken files fail with a file error before any backend runs.
func (e *Extractor) Extract(ctx context.Context, pdfBytes []byte) (*Document, error) {
	if len(pdfBytes) == 0 {
		return nil, common.FileError("empty PDF input", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pageCount, err := e.preflight(pdfBytes)
	if err != nil {
		return nil, err
	}

	doc, primaryErr := extractPrimary(pdfBytes, pageCount)
	if primaryErr != nil {
		e.log.Warn("primary text backend failed, trying fallback", "error", primaryErr)
	}

	// The fallback backend runs when the primary errored or rendered less
	// text than the scanned-page threshold; whichever document carries
	// more total text wins.
	best := doc
	if primaryErr != nil || textLength(doc) < e.cfg.MinTextLength {
		doc2, secondaryErr := extractSecondary(pdfBytes, pageCount)
		switch {
		case secondaryErr == nil:
			best = richerDocument(best, doc2)
		case primaryErr != nil:
			return nil, common.ExtractionError("all text backends failed",
				fmt.Errorf("primary: %v; fallback: %v", primaryErr, secondaryErr))
		}
	}

	e.finalize(best)
	return best, nil
}

// textLength sums rendered block text across pages, before finalize has
// filled in the page text.
func textLength(d *Document) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len(strings.TrimSpace(RenderText(p.Blocks)))
	}
	return n
}

// richerDocument keeps whichever extraction carries more text.
func richerDocument(a, b *Document) *Document {
	if a == nil {
		return b
	}
	if b != nil && textLength(b) > textLength(a) {
		return b
	}
	return a
}

// preflight validates PDF structure and returns the page count.
func (e *Extractor) preflight(pdfBytes []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return 0, common.FileError("PDF failed validation", err)
	}
	if pdfCtx.PageCount == 0 {
		return 0, common.FileError("PDF has no pages", nil)
	}
	return pdfCtx.PageCount, nil
}

// finalize computes page/document text and scanned flags.
func (e *Extractor) finalize(doc *Document) {
	var pageTexts []string
	scanned := 0
	for i := range doc.Pages {
		p := &doc.Pages[i]
		p.Text = RenderText(p.Blocks)
		if len(strings.TrimSpace(p.Text)) < e.cfg.MinTextLength {
			p.Scanned = true
			scanned++
			doc.ScannedPages = append(doc.ScannedPages, p.Number)
		}
		pageTexts = append(pageTexts, p.Text)
	}
	doc.Text = strings.Join(pageTexts, "\n\n")
	doc.Scanned = doc.PageCount > 0 && scanned*2 > doc.PageCount
	e.log.Debug("text extraction finished",
		"backend", doc.Backend, "pages", doc.PageCount,
		"scanned_pages", len(doc.ScannedPages), "chars", len(doc.Text))
}

// extractPrimary uses the coordinate-preserving backend. The library can
// panic on malformed xref tables, so the whole pass is recover-protected.
func extractPrimary(pdfBytes []byte, pageCount int) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("text backend panicked: %v", r)
		}
	}()

	reader, err := ledongthuc.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, err
	}

	doc = &Document{PageCount: pageCount, Backend: "ledongthuc"}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{Number: i, Width: defaultPageWidth, Height: defaultPageHeight})
			continue
		}
		width, height := mediaBoxSize(page.V)

		var spans []Span
		for _, t := range page.Content().Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			h := t.FontSize
			if h <= 0 {
				h = 10
			}
			spans = append(spans, Span{
				Text: t.S,
				X:    t.X,
				Y:    height - t.Y, // PDF Y grows upward; flip to top-left origin
				W:    t.W,
				H:    h,
			})
		}
		doc.Pages = append(doc.Pages, Page{
			Number: i,
			Width:  width,
			Height: height,
			Blocks: GroupBlocks(spans, i),
		})
	}
	return doc, nil
}

// extractSecondary uses the row-oriented backend. Row positions are
// bottom-up; glyph widths are kept from the word entries.
func extractSecondary(pdfBytes []byte, pageCount int) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("fallback backend panicked: %v", r)
		}
	}()

	reader, err := dslipak.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, err
	}

	doc = &Document{PageCount: pageCount, Backend: "dslipak"}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{Number: i, Width: defaultPageWidth, Height: defaultPageHeight})
			continue
		}

		var spans []Span
		rows, rerr := page.GetTextByRow()
		if rerr == nil {
			for _, row := range rows {
				for _, word := range row.Content {
					if strings.TrimSpace(word.S) == "" {
						continue
					}
					h := word.FontSize
					if h <= 0 {
						h = 10
					}
					spans = append(spans, Span{
						Text: word.S,
						X:    word.X,
						Y:    defaultPageHeight - float64(row.Position),
						W:    word.W,
						H:    h,
					})
				}
			}
		}
		doc.Pages = append(doc.Pages, Page{
			Number: i,
			Width:  defaultPageWidth,
			Height: defaultPageHeight,
			Blocks: GroupBlocks(spans, i),
		})
	}
	return doc, nil
}

// mediaBoxSize reads page dimensions from the MediaBox, defaulting to
// US Letter when absent.
func mediaBoxSize(v ledongthuc.Value) (w, h float64) {
	w, h = defaultPageWidth, defaultPageHeight
	box := v.Key("MediaBox")
	if box.Len() != 4 {
		return w, h
	}
	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		w, h = x1-x0, y1-y0
	}
	return w, h
}

// Package ocr rasterizes scanned statement pages and recognizes their text
// with tesseract, reporting word-level confidence from TSV output.
package ocr

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/imageprep"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // default "eng"
	DPI      int    // rasterization DPI, default 300
	MaxPages int    // 0 = no limit

	TessdataDir string
	PSM         int // 6 = uniform block of text, the statement default
	OEM         int // 3 = default engine

	// Preprocess toggles the raster cleanup chain before recognition.
	Preprocess bool
}

// ConfigFromApp derives an engine config from application settings.
func ConfigFromApp(app common.OCRConfig) Config {
	return Config{
		Language:    app.Language,
		DPI:         app.DPI,
		PSM:         app.PSM,
		OEM:         app.OEM,
		TessdataDir: app.TessdataDir,
		Preprocess:  true,
	}
}

// Word is one recognized token with its raster-pixel box and confidence.
type Word struct {
	Text       string
	Page       int
	Line       int
	Left       int
	Top        int
	Width      int
	Height     int
	Confidence float64 // 0..1
}

// PageResult holds recognition output for one rasterized page.
type PageResult struct {
	Number     int
	Text       string
	Words      []Word
	Confidence float64
}

// Result is the whole-document OCR outcome.
type Result struct {
	Pages      []PageResult
	Text       string
	Confidence float64
	Duration   time.Duration
	Warnings   []string
}

type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	if cfg.OEM <= 0 {
		cfg.OEM = 3
	}
	return &Engine{cfg: cfg, runner: execRunner{log: logger}, logger: logger}
}

// WithRunner swaps the command runner, for tests.
func (e *Engine) WithRunner(r Runner) *Engine {
	e.runner = r
	return e
}

// ExtractPDF rasterizes a PDF and recognizes every page. Page images and
// intermediate artifacts live in a temp dir removed before return.
func (e *Engine) ExtractPDF(ctx context.Context, pdfBytes []byte) (*Result, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "stmt-ocr-*")
	if err != nil {
		return nil, common.ExtractionError("create OCR workdir", err)
	}
	defer func(path string) {
		if rmErr := os.RemoveAll(path); rmErr != nil {
			e.logger.Warn("failed to remove temp dir", "path", path, "error", rmErr)
		}
	}(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o600); err != nil {
		return nil, common.ExtractionError("write OCR input", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, common.ExtractionError("pdftoppm failed: "+truncate(string(errb), 512), err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, common.ExtractionError("pdftoppm produced no images", nil)
	}

	res := &Result{}
	var confSum float64
	var confPages int
	for i, img := range matches {
		pageNum := i + 1
		imgPath := img
		if e.cfg.Preprocess {
			if cleaned, perr := e.preprocessImage(img); perr != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("page %d preprocess: %v", pageNum, perr))
			} else {
				imgPath = cleaned
			}
		}

		page, perr := e.recognizePage(ctx, imgPath, pageNum)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", pageNum, perr))
			continue
		}
		res.Pages = append(res.Pages, page)
		if page.Confidence > 0 {
			confSum += page.Confidence
			confPages++
		}
	}

	var texts []string
	for _, p := range res.Pages {
		texts = append(texts, p.Text)
	}
	res.Text = strings.Join(texts, "\n\f\n")
	if confPages > 0 {
		res.Confidence = confSum / float64(confPages)
	}
	res.Duration = time.Since(start)

	e.logger.Info("ocr finished",
		"pages", len(res.Pages),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
		"warnings", len(res.Warnings))
	return res, nil
}

// preprocessImage runs the raster cleanup chain and writes the result next
// to the original.
func (e *Engine) preprocessImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	img, err := png.Decode(f)
	_ = f.Close()
	if err != nil {
		return "", err
	}

	cleaned := imageprep.Preprocess(img)

	outPath := strings.TrimSuffix(path, ".png") + ".prep.png"
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(out, cleaned); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}

// recognizePage runs tesseract once in TSV mode, which carries both the
// token stream and per-word confidence.
func (e *Engine) recognizePage(ctx context.Context, imgPath string, pageNum int) (PageResult, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.Language,
		"--psm", fmt.Sprintf("%d", e.cfg.PSM),
		"--oem", fmt.Sprintf("%d", e.cfg.OEM),
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return PageResult{}, fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}

	words, mean := ParseTSV(out, pageNum)
	text := AssembleText(words)
	conf := 0.0
	if len(words) > 0 {
		// TSV confidence blended with content heuristics; a page with no
		// recognized words stays at zero.
		conf = BlendConfidence(mean, text)
	}
	return PageResult{
		Number:     pageNum,
		Text:       text,
		Words:      words,
		Confidence: conf,
	}, nil
}

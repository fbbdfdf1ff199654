// Command exportstmt parses a statement PDF and writes the result as an
// XLSX workbook.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/export"
	"github.com/priya-raghavan/statement-parser/internal/fieldmap"
	"github.com/priya-raghavan/statement-parser/internal/ocr"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/pipeline"
	"github.com/priya-raghavan/statement-parser/internal/tables"
)

func main() {
	var (
		file   = flag.String("file", "", "path to the statement PDF (required)")
		out    = flag.String("o", "", "output path (default: <file>.xlsx in EXPORT_OUTPUT_DIR)")
		issuer = flag.String("issuer", "", "issuer hint, skips classification")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *file == "" {
		logger.Error("usage", "cmd", "exportstmt -file statement.pdf [-o out.xlsx]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	pdfBytes, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read statement", "path", *file, "error", err)
		os.Exit(1)
	}

	var hint constants.IssuerType
	if *issuer != "" {
		hint = constants.IssuerType(*issuer)
		if !hint.Supported() {
			logger.Error("unsupported issuer hint", "issuer", *issuer)
			os.Exit(2)
		}
	}

	orch := pipeline.NewOrchestrator(
		pdftext.NewExtractor(cfg.Extraction, logger),
		ocr.NewEngine(ocr.ConfigFromApp(cfg.OCR), logger),
		tables.NewExtractor(logger),
		fieldmap.NewMapper(nil, logger),
		cfg.Extraction,
		logger,
	)

	start := time.Now()
	res, err := orch.Run(context.Background(), pdfBytes, pipeline.Options{IssuerHint: hint})
	if err != nil {
		logger.Error("extraction failed", "path", *file, "error", err)
		os.Exit(1)
	}

	data, err := export.NewService(cfg.Export, logger).ExportXLSX(res)
	if err != nil {
		logger.Error("build workbook", "error", err)
		os.Exit(1)
	}

	dest := *out
	if dest == "" {
		base := strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
		dest = filepath.Join(cfg.Export.OutputDir, base+".xlsx")
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		logger.Error("write workbook", "path", dest, "error", err)
		os.Exit(1)
	}

	logger.Info("export OK",
		"path", dest,
		"fields", len(res.Fields),
		"transactions", len(res.Transactions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

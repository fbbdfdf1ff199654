// Command parsestmt extracts structured fields and transactions from a
// credit card statement PDF and prints the result as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
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
		file     = flag.String("file", "", "path to the statement PDF (required)")
		issuer   = flag.String("issuer", "", "issuer hint, skips classification (HDFC|ICICI|SBI|AXIS|AMEX)")
		strategy = flag.String("table-strategy", "auto", "table extraction strategy (auto|lattice|stream)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *file == "" {
		logger.Error("usage", "cmd", "parsestmt -file statement.pdf [-issuer HDFC] [-table-strategy auto]")
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
	res, err := orch.Run(context.Background(), pdfBytes, pipeline.Options{
		IssuerHint:    hint,
		TableStrategy: tables.Strategy(*strategy),
	})
	if err != nil {
		logger.Error("extraction failed",
			"path", *file, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	out, err := export.NewService(cfg.Export, logger).ExportJSON(res)
	if err != nil {
		logger.Error("serialize result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	logger.Info("extraction OK",
		"issuer", string(res.Issuer),
		"fields", len(res.Fields),
		"transactions", len(res.Transactions),
		"confidence", res.OverallConfidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

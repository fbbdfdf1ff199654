// Package export renders finished extraction results as XLSX workbooks
// and JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// Service is a tiny façade that turns extraction results into XLSX bytes.
type Service struct {
	cfg    common.ExportConfig
	logger *slog.Logger
}

func NewService(cfg common.ExportConfig, logger *slog.Logger) *Service {
	if cfg.DateCellFormat == "" {
		cfg.DateCellFormat = "2006-01-02"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{cfg: cfg, logger: logger}
}

// ExportXLSX returns a workbook with a Summary sheet of extracted fields
// and a Transactions sheet when the result carries any.
func (s *Service) ExportXLSX(res *statement.ExtractionResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const summarySheet = "Summary"
	if index, _ := f.GetSheetIndex(summarySheet); index == -1 {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(summarySheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet if excelize created one.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	writeCell := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	writeCell(summarySheet, 1, 1, "Issuer")
	writeCell(summarySheet, 2, 1, res.Issuer.DisplayName())
	writeCell(summarySheet, 1, 2, "Extracted At")
	writeCell(summarySheet, 2, 2, res.CreatedAt.Format("2006-01-02 15:04:05"))
	writeCell(summarySheet, 1, 3, "Overall Confidence")
	writeCell(summarySheet, 2, 3, res.OverallConfidence)

	headers := []string{"Field", "Value", "Confidence", "Method"}
	headerRow := 5
	for i, h := range headers {
		writeCell(summarySheet, i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, ft := range constants.AllFields {
		field, ok := res.Get(ft)
		if !ok {
			continue
		}
		writeCell(summarySheet, 1, row, string(ft))
		writeCell(summarySheet, 2, row, s.cellValue(field.Value))
		writeCell(summarySheet, 3, row, field.Confidence)
		writeCell(summarySheet, 4, row, string(field.Method))
		row++
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 26)
	_ = f.SetColWidth(summarySheet, "B", "B", 24)
	_ = f.SetColWidth(summarySheet, "C", "D", 14)

	if len(res.Transactions) > 0 {
		if err := s.writeTransactions(f, res.Transactions); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"result_id", res.ID,
		"fields", len(res.Fields),
		"transactions", len(res.Transactions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeTransactions(f *excelize.File, txs []statement.Transaction) error {
	const sheet = "Transactions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeCell := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"Date", "Description", "Amount", "Type", "Page"}
	for i, h := range headers {
		writeCell(i+1, 1, h)
	}

	row := 2
	for _, tx := range txs {
		if tx.Date != nil {
			writeCell(1, row, tx.Date.Format(s.cfg.DateCellFormat))
		} else {
			writeCell(1, row, "")
		}
		writeCell(2, row, truncate(tx.Description, 140))
		if tx.Amount != nil {
			amount, _ := tx.Amount.Float64()
			writeCell(3, row, amount)
		} else {
			writeCell(3, row, "")
		}
		if tx.IsCredit() {
			writeCell(4, row, "CREDIT")
		} else {
			writeCell(4, row, "DEBIT")
		}
		writeCell(5, row, tx.Page)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	return nil
}

// ExportJSON renders the result in its canonical serialized form.
func (s *Service) ExportJSON(res *statement.ExtractionResult) ([]byte, error) {
	m, err := res.ToMap()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(m, "", "  ")
}

func (s *Service) cellValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(s.cfg.DateCellFormat)
	case decimal.Decimal:
		f, _ := t.Float64()
		return f
	case *decimal.Decimal:
		if t == nil {
			return ""
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

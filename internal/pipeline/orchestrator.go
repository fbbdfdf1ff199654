// Package pipeline wires the extraction stages into one run per document:
// embedded text, OCR fallback, classification, parser selection, spatial
// and layout passes, table extraction, merge, and validation. Every stage
// failure leaves the pipeline as a single parsing error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/classify"
	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/fieldmap"
	"github.com/priya-raghavan/statement-parser/internal/mask"
	"github.com/priya-raghavan/statement-parser/internal/ocr"
	"github.com/priya-raghavan/statement-parser/internal/parsers"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
	"github.com/priya-raghavan/statement-parser/internal/tables"
	"github.com/priya-raghavan/statement-parser/internal/validate"
)

// TextSource yields the embedded-text view of a PDF.
type TextSource interface {
	Extract(ctx context.Context, pdfBytes []byte) (*pdftext.Document, error)
}

// OCRSource recognizes text on rasterized pages.
type OCRSource interface {
	ExtractPDF(ctx context.Context, pdfBytes []byte) (*ocr.Result, error)
}

// TableSource detects and parses transaction tables.
type TableSource interface {
	Extract(doc *pdftext.Document, strategy tables.Strategy) (*tables.Result, error)
}

// Options tune a single run.
type Options struct {
	// IssuerHint names the bank the caller expects; the hinted parser is
	// verified against the text before it is used.
	IssuerHint constants.IssuerType
	// TableStrategy defaults to auto.
	TableStrategy tables.Strategy
}

type Orchestrator struct {
	text   TextSource
	ocr    OCRSource
	tables TableSource
	mapper *fieldmap.Mapper
	cfg    common.ExtractionConfig
	log    *slog.Logger
}

func NewOrchestrator(text TextSource, ocrSrc OCRSource, tableSrc TableSource, mapper *fieldmap.Mapper, cfg common.ExtractionConfig, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if mapper == nil {
		mapper = fieldmap.NewMapper(nil, logger)
	}
	return &Orchestrator{text: text, ocr: ocrSrc, tables: tableSrc, mapper: mapper, cfg: cfg, log: logger}
}

// Run extracts one statement end to end. All stage errors surface as a
// parsing error wrapping the stage's sentinel, so callers branch with
// errors.Is while handling exactly one failure type.
func (o *Orchestrator) Run(ctx context.Context, pdfBytes []byte, opts Options) (res *statement.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = common.ParsingError("pipeline panicked", fmt.Errorf("%v", r))
		}
	}()

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = common.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}
	ctx = common.WithDocumentID(ctx, uuid.NewString())
	log := o.log.With("document_id", common.DocumentIDFromContext(ctx))
	start := time.Now()

	doc, err := o.text.Extract(ctx, pdfBytes)
	if err != nil {
		return nil, common.ParsingError("text extraction", err)
	}

	// Scanned documents swap the working text to OCR output; field
	// confidences from that text are discounted later.
	workingText := doc.Text
	usedOCR := false
	var ocrRes *ocr.Result
	if doc.Scanned {
		if o.ocr == nil {
			return nil, common.ParsingError("scanned document but OCR is not configured", nil)
		}
		ocrRes, err = o.ocr.ExtractPDF(ctx, pdfBytes)
		if err != nil {
			return nil, common.ParsingError("ocr", err)
		}
		workingText = ocrRes.Text
		usedOCR = true
		log.Info("scanned document, using OCR text",
			"pages", len(ocrRes.Pages), "ocr_confidence", ocrRes.Confidence)
	}

	// Classification reads only the leading pages; an issuer hint is
	// verified against the text, falling through to the scan when the
	// hinted parser rejects the document.
	sample := classifySample(doc, ocrRes, usedOCR)
	if sample == "" {
		sample = workingText
	}
	classified, classifiedConf := classify.ScoreText(sample)
	log.Debug("issuer markers scored", "issuer", string(classified), "confidence", classifiedConf)

	parser, issuerConf, err := parsers.Select(sample, opts.IssuerHint, o.cfg.MinParserConfidence)
	if err != nil {
		return nil, common.ParsingError("parser selection", err)
	}
	issuer := parser.Issuer()

	res = statement.NewResult(issuer)
	res.IssuerConfidence = issuerConf
	res.Scanned = doc.Scanned
	if usedOCR {
		res.QualityScore = QualityScoreForText(workingText, len(ocrRes.Pages))
	} else {
		res.QualityScore = QualityScore(doc)
	}

	// Source priority: issuer spatial path, layout proximity, regex table.
	if sp, ok := parser.(parsers.SpatialParser); ok && !usedOCR {
		spatialFields, spErr := sp.ParseSpatial(doc)
		if spErr != nil {
			// Discard the whole spatial pass and fall back to text.
			res.Warn("spatial extraction discarded: " + spErr.Error())
		} else {
			o.mapper.Merge(res, spatialFields)
		}
	}
	if !usedOCR {
		o.mapper.Merge(res, o.mapper.LayoutFields(doc))
	}

	o.mapper.Merge(res, parsers.ParseText(parser, workingText, textMethod(usedOCR)))

	if o.tables != nil && !usedOCR {
		tableRes, tErr := o.tables.Extract(doc, opts.TableStrategy)
		if tErr != nil {
			res.Warn("table extraction failed: " + tErr.Error())
		} else {
			res.Transactions = tableRes.Transactions
			res.Metadata["table_strategy"] = string(tableRes.Strategy)
			res.Metadata["tables_found"] = len(tableRes.Tables)
		}
	}

	if o.cfg.MaskCardNumbers {
		if f, ok := res.Get(constants.FieldCardNumber); ok && f.RawText != "" {
			f.RawText = mask.Card(f.RawText)
			res.AddField(f)
		}
	}

	if missing := o.mapper.MissingRequired(res); len(missing) > 0 {
		log.Debug("expected fields not mapped", "count", len(missing))
	}

	// Validation never aborts the run: schema errors invalidate the
	// result, everything else rides along as warnings. Only a result that
	// cannot be serialized is fatal.
	for _, v := range validate.CheckBusinessRules(res) {
		res.Warn("business rule: " + v)
	}
	for _, a := range validate.DetectAnomalies(res) {
		res.Warn("anomaly: " + a)
	}

	validate.ApplyConfidence(res)
	report, verr := validate.CheckSchema(res)
	if verr != nil {
		return nil, common.ParsingError("result validation", verr)
	}
	for _, e := range report.Errors {
		res.Invalidate(e)
	}
	for _, w := range report.Warnings {
		res.Warn(w)
	}

	if res.OverallConfidence < o.cfg.MinResultConfidence {
		return nil, common.ParsingError("result confidence",
			common.ConfidenceThresholdError("extraction result", res.OverallConfidence, o.cfg.MinResultConfidence))
	}

	res.Metadata["text_backend"] = doc.Backend
	res.Metadata["page_count"] = doc.PageCount
	res.Metadata["parser_used"] = string(parser.Issuer())
	res.Metadata["completeness"] = report.Completeness
	res.Metadata["used_ocr"] = usedOCR
	if ocrRes != nil {
		res.Metadata["ocr_confidence"] = ocrRes.Confidence
	}
	res.Metadata["duration_ms"] = time.Since(start).Milliseconds()

	log.Info("extraction finished",
		"issuer", string(res.Issuer),
		"fields", len(res.Fields),
		"transactions", len(res.Transactions),
		"confidence", res.OverallConfidence,
		"warnings", len(res.Warnings))
	return res, nil
}

func textMethod(usedOCR bool) constants.ExtractionMethod {
	if usedOCR {
		return constants.MethodOCR
	}
	return constants.MethodText
}

// classifySample joins the leading pages of whichever text source is in
// play into the classification input.
func classifySample(doc *pdftext.Document, ocrRes *ocr.Result, usedOCR bool) string {
	var pageTexts []string
	if usedOCR {
		for _, p := range ocrRes.Pages {
			pageTexts = append(pageTexts, p.Text)
		}
	} else {
		for _, p := range doc.Pages {
			pageTexts = append(pageTexts, p.Text)
		}
	}
	return classify.SampleText(pageTexts)
}

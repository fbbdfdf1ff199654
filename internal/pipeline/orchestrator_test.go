package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/ocr"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
	"github.com/priya-raghavan/statement-parser/internal/statement"
	"github.com/priya-raghavan/statement-parser/internal/tables"
)

const hdfcText = `HDFC Bank Credit Card Statement www.hdfcbank.com
Card Number: 4321 56XX XXXX 9876
Statement Date: 15/01/2024
Payment Due Date: 04/02/2024
Total Amount Due: Rs. 45,230.50
Minimum Amount Due: Rs. 2,270.00
Credit Limit: Rs. 3,00,000.00
`

type stubText struct {
	doc *pdftext.Document
	err error
}

func (s stubText) Extract(context.Context, []byte) (*pdftext.Document, error) {
	return s.doc, s.err
}

type stubOCR struct {
	res *ocr.Result
	err error
}

func (s stubOCR) ExtractPDF(context.Context, []byte) (*ocr.Result, error) {
	return s.res, s.err
}

type stubTables struct{ res *tables.Result }

func (s stubTables) Extract(*pdftext.Document, tables.Strategy) (*tables.Result, error) {
	return s.res, nil
}

func digitalDoc(text string) *pdftext.Document {
	return &pdftext.Document{
		Text:      text,
		PageCount: 1,
		Backend:   "ledongthuc",
		Pages:     []pdftext.Page{{Number: 1, Width: 612, Height: 792, Text: text}},
	}
}

func TestRunDigitalStatement(t *testing.T) {
	txs := []statement.Transaction{{Description: "AMAZON", Page: 1, Confidence: 0.9}}
	o := NewOrchestrator(
		stubText{doc: digitalDoc(hdfcText)},
		nil,
		stubTables{res: &tables.Result{Strategy: tables.StrategyLattice, Transactions: txs}},
		nil,
		common.ExtractionConfig{MinTextLength: 50, MinParserConfidence: 0.6},
		nil,
	)

	res, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.NoError(t, err)

	assert.Equal(t, constants.IssuerHDFC, res.Issuer)
	assert.GreaterOrEqual(t, res.IssuerConfidence, 0.6)
	assert.False(t, res.Scanned)

	card, _ := res.Text(constants.FieldCardNumber)
	assert.Equal(t, "9876", card)

	total, ok := res.Amount(constants.FieldTotalDue)
	require.True(t, ok)
	assert.Equal(t, "45230.5", total.String())

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "lattice", res.Metadata["table_strategy"])
	assert.Equal(t, false, res.Metadata["used_ocr"])
	assert.Equal(t, 1, res.Metadata["page_count"])
	assert.Equal(t, string(constants.IssuerHDFC), res.Metadata["parser_used"])
	assert.Greater(t, res.OverallConfidence, 0.5)
	assert.True(t, res.Valid)
}

func TestRunScannedStatementDiscountsOCRFields(t *testing.T) {
	doc := digitalDoc("")
	doc.Scanned = true
	o := NewOrchestrator(
		stubText{doc: doc},
		stubOCR{res: &ocr.Result{Text: hdfcText, Confidence: 0.9, Pages: []ocr.PageResult{{Number: 1, Text: hdfcText}}}},
		nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6},
		nil,
	)

	res, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.NoError(t, err)
	assert.True(t, res.Scanned)
	assert.Equal(t, true, res.Metadata["used_ocr"])

	total, ok := res.Get(constants.FieldTotalDue)
	require.True(t, ok)
	assert.Equal(t, constants.MethodOCR, total.Method)
	// Base pattern confidence 0.9 scaled by the OCR method multiplier.
	assert.InDelta(t, 0.9*constants.OCRConfidenceMultiplier, total.Confidence, 1e-9)
}

func TestRunScannedWithoutOCRConfigured(t *testing.T) {
	doc := digitalDoc("")
	doc.Scanned = true
	o := NewOrchestrator(stubText{doc: doc}, nil, nil, nil, common.ExtractionConfig{}, nil)

	_, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParsing)
}

func TestRunUnclassifiableDocument(t *testing.T) {
	o := NewOrchestrator(
		stubText{doc: digitalDoc("a plain letter about nothing in particular")},
		nil, nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6},
		nil,
	)

	_, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParsing)
	assert.ErrorIs(t, err, common.ErrIssuerNotSupported)
}

func TestRunIssuerHintVerifiedAgainstText(t *testing.T) {
	o := NewOrchestrator(
		stubText{doc: digitalDoc(hdfcText)},
		nil, nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6},
		nil,
	)

	res, err := o.Run(context.Background(), []byte("%PDF"), Options{IssuerHint: constants.IssuerHDFC})
	require.NoError(t, err)
	assert.Equal(t, constants.IssuerHDFC, res.Issuer)
	assert.GreaterOrEqual(t, res.IssuerConfidence, 0.6)
}

func TestRunWrongIssuerHintFallsThrough(t *testing.T) {
	// The hinted parser rejects the text, so the scan picks the real bank.
	o := NewOrchestrator(
		stubText{doc: digitalDoc(hdfcText)},
		nil, nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6},
		nil,
	)

	res, err := o.Run(context.Background(), []byte("%PDF"), Options{IssuerHint: constants.IssuerAmex})
	require.NoError(t, err)
	assert.Equal(t, constants.IssuerHDFC, res.Issuer)
}

func TestRunMasksCardRawText(t *testing.T) {
	o := NewOrchestrator(
		stubText{doc: digitalDoc(hdfcText)},
		nil, nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6, MaskCardNumbers: true},
		nil,
	)

	res, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.NoError(t, err)

	card, ok := res.Get(constants.FieldCardNumber)
	require.True(t, ok)
	assert.Equal(t, "XXXX-XXXX-XXXX-9876", card.RawText)
}

func TestRunTextExtractionFailure(t *testing.T) {
	o := NewOrchestrator(
		stubText{err: common.FileError("broken xref", nil)},
		nil, nil, nil, common.ExtractionConfig{}, nil,
	)

	_, err := o.Run(context.Background(), []byte("junk"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParsing)
	assert.ErrorIs(t, err, common.ErrFile)
}

func TestRunResultConfidenceFloor(t *testing.T) {
	o := NewOrchestrator(
		stubText{doc: digitalDoc(hdfcText)},
		nil, nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6, MinResultConfidence: 0.99},
		nil,
	)

	_, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfidenceThreshold)
}

func TestRunMissingRequiredFieldsInvalidatesResult(t *testing.T) {
	// Classifiable as HDFC, but no card number or amounts anywhere. The
	// run still succeeds; the result carries the validation errors.
	o := NewOrchestrator(
		stubText{doc: digitalDoc("HDFC Bank statement hdfcbank.com with no figures")},
		nil, nil, nil,
		common.ExtractionConfig{MinParserConfidence: 0.6},
		nil,
	)

	res, err := o.Run(context.Background(), []byte("%PDF"), Options{})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.ValidationErrors, 3)
	assert.Contains(t, res.ValidationErrors[0], string(constants.FieldCardNumber))
}

func TestQualityScoreTiers(t *testing.T) {
	mk := func(chars, pages int) *pdftext.Document {
		b := make([]byte, chars)
		for i := range b {
			b[i] = 'a'
		}
		return &pdftext.Document{Text: string(b), PageCount: pages}
	}

	assert.Equal(t, 0.95, QualityScore(mk(2500, 2)))
	assert.Equal(t, 0.85, QualityScore(mk(700, 1)))
	assert.Equal(t, 0.65, QualityScore(mk(150, 1)))
	assert.Equal(t, 0.40, QualityScore(mk(50, 1)))
	assert.Equal(t, 0.40, QualityScore(nil))
}

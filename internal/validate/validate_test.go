package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/statement"
	"github.com/priya-raghavan/statement-parser/internal/validate"
)

func addField(t *testing.T, res *statement.ExtractionResult, ft constants.FieldType, value any, conf float64) {
	t.Helper()
	f, err := statement.NewField(ft, value, conf, constants.MethodText)
	require.NoError(t, err)
	res.AddField(f)
}

func completeResult(t *testing.T) *statement.ExtractionResult {
	t.Helper()
	res := statement.NewResult(constants.IssuerHDFC)
	res.IssuerConfidence = 0.9
	addField(t, res, constants.FieldCardNumber, "9876", 0.95)
	addField(t, res, constants.FieldStatementDate, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 0.9)
	addField(t, res, constants.FieldPaymentDueDate, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), 0.9)
	addField(t, res, constants.FieldTotalDue, decimal.RequireFromString("45230.50"), 0.9)
	addField(t, res, constants.FieldMinimumDue, decimal.RequireFromString("2270.00"), 0.85)
	return res
}

func TestCheckSchemaAcceptsCompleteResult(t *testing.T) {
	rep, err := validate.CheckSchema(completeResult(t))
	require.NoError(t, err)
	assert.Empty(t, rep.Errors)
	assert.Empty(t, rep.Warnings)
	assert.InDelta(t, 5.0/float64(len(constants.AllFields)), rep.Completeness, 1e-9)
}

func TestCheckSchemaReportsMissingRequiredFields(t *testing.T) {
	res := statement.NewResult(constants.IssuerHDFC)
	addField(t, res, constants.FieldTotalDue, decimal.RequireFromString("100"), 0.9)

	rep, err := validate.CheckSchema(res)
	require.NoError(t, err)
	require.Len(t, rep.Errors, 2)
	assert.Contains(t, rep.Errors[0], string(constants.FieldCardNumber))
	assert.Contains(t, rep.Errors[1], string(constants.FieldPaymentDueDate))
}

func TestCheckSchemaReportsUnmaskedCardNumber(t *testing.T) {
	res := completeResult(t)
	f, err := statement.NewField(constants.FieldCardNumber, "4321000099991234", 0.9, constants.MethodText)
	require.NoError(t, err)
	res.AddField(f)

	rep, err := validate.CheckSchema(res)
	require.NoError(t, err)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "masked")
}

func TestCheckSchemaWarnsOnEmptyRequiredValue(t *testing.T) {
	res := completeResult(t)
	f, err := statement.NewField(constants.FieldCardNumber, "  ", 0.9, constants.MethodText)
	require.NoError(t, err)
	res.AddField(f)

	rep, err := validate.CheckSchema(res)
	require.NoError(t, err)
	assert.Empty(t, rep.Errors)
	require.NotEmpty(t, rep.Warnings)
	assert.Contains(t, rep.Warnings[0], "present but empty")
}

func TestBusinessRulesPassOnConsistentResult(t *testing.T) {
	assert.Empty(t, validate.CheckBusinessRules(completeResult(t)))
}

func TestBusinessRulesDueDateWindow(t *testing.T) {
	res := completeResult(t)
	addField(t, res, constants.FieldPaymentDueDate, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 0.9)

	violations := validate.CheckBusinessRules(res)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "more than 90 days")
	require.Error(t, validate.BusinessRulesError(violations))
}

func TestBusinessRulesMinimumExceedsTotal(t *testing.T) {
	res := completeResult(t)
	addField(t, res, constants.FieldMinimumDue, decimal.RequireFromString("99999.00"), 0.85)

	violations := validate.CheckBusinessRules(res)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "exceeds total due")
}

func TestBusinessRulesAvailableCreditCap(t *testing.T) {
	res := completeResult(t)
	addField(t, res, constants.FieldCreditLimit, decimal.RequireFromString("100000"), 0.9)
	addField(t, res, constants.FieldAvailableCredit, decimal.RequireFromString("150000"), 0.9)

	violations := validate.CheckBusinessRules(res)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "exceeds credit limit")
}

func TestBusinessRulesNegativeAmount(t *testing.T) {
	res := completeResult(t)
	addField(t, res, constants.FieldTotalDue, decimal.RequireFromString("-500"), 0.9)

	violations := validate.CheckBusinessRules(res)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "is negative")
	assert.Contains(t, violations[0], string(constants.FieldTotalDue))
}

func TestScoreConfidenceFormula(t *testing.T) {
	res := completeResult(t)
	// 5 fields: mean = (0.95+0.9+0.9+0.9+0.85)/5 = 0.9; coverage = 0.5
	got := validate.ScoreConfidence(res)
	assert.InDelta(t, 0.7*0.9+0.3*0.5, got, 1e-9)
}

func TestScoreConfidenceEmptyResult(t *testing.T) {
	res := statement.NewResult(constants.IssuerUnknown)
	assert.Equal(t, 0.0, validate.ScoreConfidence(res))
}

func TestScoreConfidenceCoverageSaturates(t *testing.T) {
	res := statement.NewResult(constants.IssuerHDFC)
	for _, ft := range constants.AllFields[:12] {
		addField(t, res, ft, "v", 1.0)
	}
	assert.InDelta(t, 1.0, validate.ScoreConfidence(res), 1e-9)
}

func TestDetectAnomalies(t *testing.T) {
	res := completeResult(t)
	assert.Empty(t, validate.DetectAnomalies(res))

	addField(t, res, constants.FieldTotalDue, decimal.RequireFromString("-500"), 0.9)
	flags := validate.DetectAnomalies(res)
	require.Len(t, flags, 1)
	assert.Contains(t, flags[0], "negative")

	addField(t, res, constants.FieldCreditLimit, decimal.RequireFromString("99000000"), 0.9)
	flags = validate.DetectAnomalies(res)
	assert.Len(t, flags, 2)
}

func TestDetectAnomaliesDuplicateRun(t *testing.T) {
	res := completeResult(t)
	amt := decimal.RequireFromString("99.00")
	for i := 0; i < 5; i++ {
		res.Transactions = append(res.Transactions, statement.Transaction{
			Description: "REPEAT", Amount: &amt, RowIndex: i,
		})
	}
	flags := validate.DetectAnomalies(res)
	require.Len(t, flags, 1)
	assert.Contains(t, flags[0], "consecutive transactions")
}

func TestDetectAnomaliesIgnoresAmountlessRows(t *testing.T) {
	res := completeResult(t)
	amt := decimal.RequireFromString("99.00")
	for i := 0; i < 6; i++ {
		tx := statement.Transaction{Description: "ROW", RowIndex: i}
		if i != 3 {
			tx.Amount = &amt
		}
		res.Transactions = append(res.Transactions, tx)
	}
	// The amount-less row breaks the run; neither side reaches five.
	assert.Empty(t, validate.DetectAnomalies(res))
}

func TestApplyConfidenceMethodMultipliers(t *testing.T) {
	res := statement.NewResult(constants.IssuerHDFC)

	ocrField, err := statement.NewField(constants.FieldTotalDue, decimal.RequireFromString("100"), 0.9, constants.MethodOCR)
	require.NoError(t, err)
	res.AddField(ocrField)
	spatialField, err := statement.NewField(constants.FieldMinimumDue, decimal.RequireFromString("10"), 0.8, constants.MethodSpatial)
	require.NoError(t, err)
	res.AddField(spatialField)
	cardField, err := statement.NewField(constants.FieldCardNumber, "9876", 0.9, constants.MethodText)
	require.NoError(t, err)
	res.AddField(cardField)

	validate.ApplyConfidence(res)

	total, _ := res.Get(constants.FieldTotalDue)
	assert.InDelta(t, 0.9*constants.OCRConfidenceMultiplier, total.Confidence, 1e-9)
	minimum, _ := res.Get(constants.FieldMinimumDue)
	assert.InDelta(t, 0.8*constants.SpatialConfidenceMultiplier, minimum.Confidence, 1e-9)
	// Sensitive fields take the extra discount on top of their method's.
	card, _ := res.Get(constants.FieldCardNumber)
	assert.InDelta(t, 0.9*constants.SensitiveConfidenceMultiplier, card.Confidence, 1e-9)
}

func TestApplyConfidenceSensitiveOCRStacks(t *testing.T) {
	res := statement.NewResult(constants.IssuerHDFC)
	card, err := statement.NewField(constants.FieldCardNumber, "9876", 1.0, constants.MethodOCR)
	require.NoError(t, err)
	res.AddField(card)

	validate.ApplyConfidence(res)

	got, _ := res.Get(constants.FieldCardNumber)
	assert.InDelta(t, constants.OCRConfidenceMultiplier*constants.SensitiveConfidenceMultiplier, got.Confidence, 1e-9)
}

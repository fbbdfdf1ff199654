package parsers

import "github.com/priya-raghavan/statement-parser/constants"

// hdfcParser reads HDFC Bank statements. HDFC prints labels and values on
// the same line with colon separators.
type hdfcParser struct{}

func (hdfcParser) Issuer() constants.IssuerType { return constants.IssuerHDFC }

var hdfcTable = []FieldPattern{
	{
		Field: constants.FieldCardNumber,
		Patterns: res(
			cardAfter(`card\s*(?:no|number)\.?`),
			cardAfter(`credit\s*card\s*(?:no|number)\.?`),
		),
	},
	{
		Field: constants.FieldCardVariant,
		Patterns: res(
			`(?i)\b(regalia(?:\s+gold)?|millennia|moneyback\+?|infinia|diners\s*club\s*black|freedom)\b`,
		),
		Confidence: 0.8,
	},
	{
		Field: constants.FieldCardholderName,
		Patterns: res(
			`(?i)name\s*[:\-]\s*([A-Z][A-Z\s.]{2,40})\n`,
			`(?i)dear\s+((?:mr|ms|mrs)\.?\s+[A-Z][A-Za-z\s.]{2,40}),`,
		),
		Confidence: 0.75,
	},
	{
		Field:    constants.FieldStatementDate,
		Patterns: res(dateAfter(`statement\s*date`)),
	},
	{
		Field: constants.FieldBillingCycle,
		Patterns: res(
			`(?i)statement\s*period\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\s*(?:to|-)\s*\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
		),
		Confidence: 0.85,
	},
	{
		Field:    constants.FieldPaymentDueDate,
		Patterns: res(dateAfter(`payment\s*due\s*date`), dateAfter(`due\s*date`)),
	},
	{
		Field: constants.FieldTotalDue,
		Patterns: res(
			amountAfter(`total\s*(?:amount\s*)?due`),
			amountAfter(`total\s*dues`),
		),
	},
	{
		Field: constants.FieldMinimumDue,
		Patterns: res(
			amountAfter(`minimum\s*(?:amount\s*)?due`),
			amountAfter(`min(?:imum)?\s*payment\s*due`),
		),
	},
	{
		Field:    constants.FieldCreditLimit,
		Patterns: res(amountAfter(`credit\s*limit`)),
	},
	{
		Field:    constants.FieldAvailableCredit,
		Patterns: res(amountAfter(`available\s*credit\s*(?:limit)?`)),
	},
	{
		Field:    constants.FieldOpeningBalance,
		Patterns: res(amountAfter(`opening\s*balance`)),
	},
	{
		Field:    constants.FieldClosingBalance,
		Patterns: res(amountAfter(`closing\s*balance`)),
	},
	{
		Field:      constants.FieldTotalPurchases,
		Patterns:   res(amountAfter(`(?:purchases?|debits)\s*(?:/|&)?\s*(?:charges)?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldTotalPayments,
		Patterns:   res(amountAfter(`payments?\s*(?:/|&)?\s*(?:credits)?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldTotalFees,
		Patterns:   res(amountAfter(`(?:finance|fees)\s*(?:&\s*)?charges`)),
		Confidence: 0.75,
	},
	{
		Field:      constants.FieldRewardPoints,
		Patterns:   res(`(?i)reward\s*points?\s*(?:balance|earned)?\s*[:\-]?\s*([\d,]+)`),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldCustomerID,
		Patterns:   res(`(?i)customer\s*(?:id|no)\.?\s*[:\-]?\s*(\w{4,15})`),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldStatementNumber,
		Patterns:   res(`(?i)statement\s*(?:no|number)\.?\s*[:\-]?\s*(\w{4,20})`),
		Confidence: 0.8,
	},
}

func (hdfcParser) Patterns() []FieldPattern { return hdfcTable }

func (hdfcParser) CanParse(text string) (bool, float64) {
	return canParse(constants.IssuerHDFC, text)
}

package parsers

import "github.com/priya-raghavan/statement-parser/constants"

// sbiParser reads SBI Card statements. SBI's layout spreads labels and
// values across columns, so this textual table is the fallback behind the
// spatial path in sbi_spatial.go.
type sbiParser struct{}

func (sbiParser) Issuer() constants.IssuerType { return constants.IssuerSBI }

var sbiTable = []FieldPattern{
	{
		Field: constants.FieldCardNumber,
		Patterns: res(
			cardAfter(`(?:credit\s*)?card\s*(?:no|number)\.?`),
		),
	},
	{
		Field: constants.FieldCardVariant,
		Patterns: res(
			`(?i)\b(simplyclick|simplysave|elite|prime|pulse|cashback(?:\s*sbi)?)\b`,
		),
		Confidence: 0.8,
	},
	{
		Field: constants.FieldCardholderName,
		Patterns: res(
			`(?i)name\s*[:\-]\s*([A-Z][A-Z\s.]{2,40})\n`,
			`(?i)dear\s+([A-Z][A-Za-z\s.]{2,40}),`,
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
			`(?i)statement\s*period\s*[:\-]?\s*(\d{1,2}\s+[A-Za-z]{3}\s+\d{2,4}\s*(?:to|-)\s*\d{1,2}\s+[A-Za-z]{3}\s+\d{2,4})`,
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
			amountAfter(`total\s*outstanding`),
		),
	},
	{
		Field: constants.FieldMinimumDue,
		Patterns: res(
			amountAfter(`minimum\s*(?:amount\s*)?due`),
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
		Patterns: res(amountAfter(`(?:previous|opening)\s*balance`)),
	},
	{
		Field:    constants.FieldClosingBalance,
		Patterns: res(amountAfter(`closing\s*balance`)),
	},
	{
		Field:      constants.FieldTotalPurchases,
		Patterns:   res(amountAfter(`purchases?\s*(?:&|and)?\s*(?:other\s*)?debits?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldTotalPayments,
		Patterns:   res(amountAfter(`payments?\s*(?:&|and)?\s*(?:other\s*)?credits?`)),
		Confidence: 0.8,
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
}

func (sbiParser) Patterns() []FieldPattern { return sbiTable }

func (sbiParser) CanParse(text string) (bool, float64) {
	return canParse(constants.IssuerSBI, text)
}

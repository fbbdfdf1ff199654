package parsers

import "github.com/priya-raghavan/statement-parser/constants"

// iciciParser reads ICICI Bank statements, which favor "Statement Summary"
// tables and spell the minimum as "Minimum Amount Due (MAD)".
type iciciParser struct{}

func (iciciParser) Issuer() constants.IssuerType { return constants.IssuerICICI }

var iciciTable = []FieldPattern{
	{
		Field: constants.FieldCardNumber,
		Patterns: res(
			cardAfter(`card\s*(?:no|number)\.?`),
			cardAfter(`card\s*account\s*(?:no|number)\.?`),
		),
	},
	{
		Field: constants.FieldCardVariant,
		Patterns: res(
			`(?i)\b(coral|sapphiro|rubyx|emeralde|amazon\s*pay(?:\s*icici)?|platinum\s*chip)\b`,
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
		Patterns: res(dateAfter(`statement\s*date`), dateAfter(`statement\s*generation\s*date`)),
	},
	{
		Field: constants.FieldBillingCycle,
		Patterns: res(
			`(?i)statement\s*period\s*[:\-]?\s*(\d{1,2}\s+[A-Za-z]{3,9},?\s+\d{4}\s*(?:to|-)\s*\d{1,2}\s+[A-Za-z]{3,9},?\s+\d{4})`,
			`(?i)billing\s*(?:cycle|period)\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\s*(?:to|-)\s*\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
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
			amountAfter(`total\s*amount\s*due(?:\s*\(tad\))?`),
			amountAfter(`total\s*due`),
		),
	},
	{
		Field: constants.FieldMinimumDue,
		Patterns: res(
			amountAfter(`minimum\s*amount\s*due(?:\s*\(mad\))?`),
			amountAfter(`minimum\s*due`),
		),
	},
	{
		Field:    constants.FieldCreditLimit,
		Patterns: res(amountAfter(`credit\s*limit(?:\s*\(including\s*cash\))?`)),
	},
	{
		Field:    constants.FieldAvailableCredit,
		Patterns: res(amountAfter(`available\s*credit(?:\s*limit)?`)),
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
		Patterns:   res(amountAfter(`purchases?\s*(?:&|and)?\s*(?:other\s*)?(?:charges|debits)?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldTotalPayments,
		Patterns:   res(amountAfter(`payments?\s*(?:&|and)?\s*(?:other\s*)?credits?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldTotalInterest,
		Patterns:   res(amountAfter(`interest\s*(?:charged|charges)?`)),
		Confidence: 0.75,
	},
	{
		Field:      constants.FieldRewardPoints,
		Patterns:   res(`(?i)(?:payback|reward)\s*points?\s*(?:balance|earned)?\s*[:\-]?\s*([\d,]+)`),
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

func (iciciParser) Patterns() []FieldPattern { return iciciTable }

func (iciciParser) CanParse(text string) (bool, float64) {
	return canParse(constants.IssuerICICI, text)
}

package parsers

import "github.com/priya-raghavan/statement-parser/constants"

// amexParser reads American Express statements. Amex uses "Membership
// Rewards" and a "Closing Balance" framing for the amount owed.
type amexParser struct{}

func (amexParser) Issuer() constants.IssuerType { return constants.IssuerAmex }

var amexTable = []FieldPattern{
	{
		Field: constants.FieldCardNumber,
		Patterns: res(
			cardAfter(`(?:card|account)\s*(?:no|number)\.?`),
			`(?i)account\s*ending\s*(?:in\s*)?[:\-]?\s*(\d{4,5})`,
		),
	},
	{
		Field: constants.FieldCardVariant,
		Patterns: res(
			`(?i)\b(platinum\s*(?:travel|reserve|charge)?|gold\s*(?:charge)?|smartearn|membership\s*rewards\s*credit)\b`,
		),
		Confidence: 0.8,
	},
	{
		Field: constants.FieldCardholderName,
		Patterns: res(
			`(?i)prepared\s*for\s*[:\-]?\s*([A-Z][A-Z\s.]{2,40})\n`,
			`(?i)name\s*[:\-]\s*([A-Z][A-Z\s.]{2,40})\n`,
		),
		Confidence: 0.75,
	},
	{
		Field:    constants.FieldStatementDate,
		Patterns: res(dateAfter(`statement\s*(?:closing\s*)?date`)),
	},
	{
		Field: constants.FieldBillingCycle,
		Patterns: res(
			`(?i)(?:billing|statement)\s*period\s*[:\-]?\s*([A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4}\s*(?:to|-)\s*[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4})`,
		),
		Confidence: 0.85,
	},
	{
		Field:    constants.FieldPaymentDueDate,
		Patterns: res(dateAfter(`payment\s*due\s*date`), dateAfter(`please\s*pay\s*by`)),
	},
	{
		Field: constants.FieldTotalDue,
		Patterns: res(
			amountAfter(`total\s*(?:amount\s*)?due`),
			amountAfter(`closing\s*balance`),
			amountAfter(`new\s*balance`),
		),
	},
	{
		Field: constants.FieldMinimumDue,
		Patterns: res(
			amountAfter(`minimum\s*(?:amount|payment)\s*due`),
		),
	},
	{
		Field:    constants.FieldCreditLimit,
		Patterns: res(amountAfter(`(?:credit|spending)\s*limit`)),
	},
	{
		Field:    constants.FieldAvailableCredit,
		Patterns: res(amountAfter(`available\s*(?:credit|spending)\s*(?:limit)?`)),
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
		Patterns:   res(amountAfter(`new\s*(?:charges|debits)`), amountAfter(`purchases?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldTotalPayments,
		Patterns:   res(amountAfter(`payments?\s*(?:&|and)?\s*credits?`)),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldRewardPoints,
		Patterns:   res(`(?i)membership\s*rewards?\s*(?:points?|balance)?\s*[:\-]?\s*([\d,]+)`),
		Confidence: 0.8,
	},
	{
		Field:      constants.FieldStatementNumber,
		Patterns:   res(`(?i)statement\s*(?:no|number)\.?\s*[:\-]?\s*(\w{4,20})`),
		Confidence: 0.8,
	},
}

func (amexParser) Patterns() []FieldPattern { return amexTable }

func (amexParser) CanParse(text string) (bool, float64) {
	return canParse(constants.IssuerAmex, text)
}

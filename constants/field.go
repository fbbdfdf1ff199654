package constants

// FieldType is the canonical name for an extracted statement field.
type FieldType string

// Stable values (these exact strings are the keys in serialized results).
const (
	FieldCardNumber      FieldType = "CARD_LAST_4_DIGITS"
	FieldCardVariant     FieldType = "CARD_VARIANT"
	FieldCardholderName  FieldType = "CARDHOLDER_NAME"
	FieldStatementDate   FieldType = "STATEMENT_DATE"
	FieldBillingCycle    FieldType = "BILLING_CYCLE"
	FieldPaymentDueDate  FieldType = "PAYMENT_DUE_DATE"
	FieldTotalDue        FieldType = "TOTAL_AMOUNT_DUE"
	FieldMinimumDue      FieldType = "MINIMUM_AMOUNT_DUE"
	FieldCreditLimit     FieldType = "CREDIT_LIMIT"
	FieldAvailableCredit FieldType = "AVAILABLE_CREDIT"
	FieldOpeningBalance  FieldType = "OPENING_BALANCE"
	FieldClosingBalance  FieldType = "CLOSING_BALANCE"
	FieldTotalPurchases  FieldType = "TOTAL_PURCHASES"
	FieldTotalPayments   FieldType = "TOTAL_PAYMENTS"
	FieldTotalFees       FieldType = "TOTAL_FEES"
	FieldTotalInterest   FieldType = "TOTAL_INTEREST"
	FieldRewardPoints    FieldType = "REWARD_POINTS"
	FieldCustomerID      FieldType = "CUSTOMER_ID"
	FieldStatementNumber FieldType = "STATEMENT_NUMBER"
)

// RequiredFields must be present for a result to pass schema validation.
var RequiredFields = []FieldType{FieldCardNumber, FieldPaymentDueDate, FieldTotalDue}

// AllFields lists every known field, used for completeness scoring.
var AllFields = []FieldType{
	FieldCardNumber, FieldCardVariant, FieldCardholderName,
	FieldStatementDate, FieldBillingCycle, FieldPaymentDueDate,
	FieldTotalDue, FieldMinimumDue, FieldCreditLimit, FieldAvailableCredit,
	FieldOpeningBalance, FieldClosingBalance,
	FieldTotalPurchases, FieldTotalPayments, FieldTotalFees, FieldTotalInterest,
	FieldRewardPoints, FieldCustomerID, FieldStatementNumber,
}

// IsAmount reports whether the field carries a monetary value.
func (f FieldType) IsAmount() bool {
	switch f {
	case FieldTotalDue, FieldMinimumDue, FieldCreditLimit, FieldAvailableCredit,
		FieldOpeningBalance, FieldClosingBalance,
		FieldTotalPurchases, FieldTotalPayments, FieldTotalFees, FieldTotalInterest:
		return true
	}
	return false
}

// IsDate reports whether the field carries a calendar date.
func (f FieldType) IsDate() bool {
	return f == FieldStatementDate || f == FieldPaymentDueDate
}

// IsSensitive reports whether the field identifies the cardholder or the
// account; these carry an extra confidence discount.
func (f FieldType) IsSensitive() bool {
	switch f {
	case FieldCardNumber, FieldCardholderName, FieldCustomerID:
		return true
	}
	return false
}

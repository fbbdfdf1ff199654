// Package money parses and formats the monetary amounts found on card
// statements. Amounts are held as decimals, never floats.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/priya-raghavan/statement-parser/internal/common"
)

var (
	currencyTokens = regexp.MustCompile(`(?i)(₹|rs\.?|inr|\$|usd)`)
	lakhSuffix     = regexp.MustCompile(`(?i)\b(lakhs?|lacs?)\b`)
	croreSuffix    = regexp.MustCompile(`(?i)\b(crores?|cr\.)\b`)
	drSuffix       = regexp.MustCompile(`(?i)\bdr\.?\s*$`)
	crSuffix       = regexp.MustCompile(`(?i)\bcr\.?\s*$`)
	numberPattern  = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

var (
	lakhFactor  = decimal.NewFromInt(100_000)
	croreFactor = decimal.NewFromInt(10_000_000)
)

// Parse converts a statement amount string into a decimal. It understands
// currency markers (₹, Rs, INR, $), thousands separators in both western and
// Indian grouping, parenthesized and DR-suffixed negatives, and lakh/crore
// scale words.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, common.NewAppError("AMOUNT_PARSE", "empty amount", common.ErrInvalidInput)
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if drSuffix.MatchString(s) {
		negative = true
		s = drSuffix.ReplaceAllString(s, "")
	} else if crSuffix.MatchString(s) {
		s = crSuffix.ReplaceAllString(s, "")
	}

	scale := decimal.NewFromInt(1)
	if croreSuffix.MatchString(s) {
		scale = croreFactor
		s = croreSuffix.ReplaceAllString(s, "")
	} else if lakhSuffix.MatchString(s) {
		scale = lakhFactor
		s = lakhSuffix.ReplaceAllString(s, "")
	}

	s = currencyTokens.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	match := numberPattern.FindString(s)
	if match == "" {
		return decimal.Zero, common.NewAppError("AMOUNT_PARSE", "no numeric value in "+strings.TrimSpace(raw), common.ErrInvalidInput)
	}

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, common.NewAppError("AMOUNT_PARSE", "malformed number "+match, err)
	}
	d = d.Mul(scale)
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseOptional behaves like Parse but maps empty input to a nil amount
// instead of an error.
func ParseOptional(raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatINR renders an amount with the rupee symbol and Indian digit
// grouping (12,34,567.89).
func FormatINR(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(intPart) + "." + fracPart
}

// groupIndian inserts commas after the first three digits from the right,
// then every two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

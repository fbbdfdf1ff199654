package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// Anomaly detection flags values that are legal but suspicious, so review
// can be targeted. Anomalies never fail validation.

var (
	// suspiciouslyLargeAmount is far beyond retail card limits.
	suspiciouslyLargeAmount = decimal.NewFromInt(10_000_000)
	// duplicateAmountRunLength flags this many identical consecutive
	// transaction amounts as a possible extraction loop.
	duplicateAmountRunLength = 5
)

// DetectAnomalies inspects a result and returns human-readable flags.
func DetectAnomalies(res *statement.ExtractionResult) []string {
	var flags []string

	for _, ft := range constants.AllFields {
		if !ft.IsAmount() {
			continue
		}
		amt, ok := res.Amount(ft)
		if !ok {
			continue
		}
		if amt.Abs().GreaterThan(suspiciouslyLargeAmount) {
			flags = append(flags, fmt.Sprintf("%s amount %s is implausibly large", ft, amt))
		}
	}

	if total, ok := res.Amount(constants.FieldTotalDue); ok && total.IsNegative() {
		flags = append(flags, "total due is negative (credit balance); verify sign handling")
	}

	if run := longestAmountRun(res.Transactions); run >= duplicateAmountRunLength {
		flags = append(flags, fmt.Sprintf("%d consecutive transactions share one amount", run))
	}

	if len(res.Transactions) > 0 {
		zero := 0
		for _, tx := range res.Transactions {
			if tx.Amount != nil && tx.Amount.IsZero() {
				zero++
			}
		}
		if zero*2 > len(res.Transactions) {
			flags = append(flags, "over half the transactions have zero amounts")
		}
	}

	return flags
}

func longestAmountRun(txs []statement.Transaction) int {
	longest, run := 0, 0
	var prev *decimal.Decimal
	for _, tx := range txs {
		switch {
		case tx.Amount == nil:
			run = 0
		case prev != nil && tx.Amount.Equal(*prev):
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = tx.Amount
	}
	return longest
}

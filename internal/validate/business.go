package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/dates"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// dueDateWindowDays bounds how far a payment due date may sit from the
// statement date in either direction.
const dueDateWindowDays = 90

// CheckBusinessRules evaluates cross-field consistency and returns every
// violation found. An empty slice means the result is plausible.
func CheckBusinessRules(res *statement.ExtractionResult) []string {
	var violations []string

	stmtDate, haveStmt := res.Date(constants.FieldStatementDate)
	dueDate, haveDue := res.Date(constants.FieldPaymentDueDate)
	if haveStmt && haveDue {
		window := dueDateWindowDays * 24 * time.Hour
		diff := dueDate.Sub(stmtDate)
		if diff < -window || diff > window {
			violations = append(violations, fmt.Sprintf(
				"payment due date %s is more than %d days from statement date %s",
				dueDate.Format("2006-01-02"), dueDateWindowDays, stmtDate.Format("2006-01-02")))
		}
	}

	total, haveTotal := res.Amount(constants.FieldTotalDue)
	minimum, haveMin := res.Amount(constants.FieldMinimumDue)
	if haveTotal && haveMin && total.IsPositive() && minimum.GreaterThan(total) {
		violations = append(violations, fmt.Sprintf(
			"minimum due %s exceeds total due %s", minimum, total))
	}

	limit, haveLimit := res.Amount(constants.FieldCreditLimit)
	avail, haveAvail := res.Amount(constants.FieldAvailableCredit)
	if haveLimit && haveAvail && avail.GreaterThan(limit) {
		violations = append(violations, fmt.Sprintf(
			"available credit %s exceeds credit limit %s", avail, limit))
	}
	if haveLimit && !limit.IsPositive() {
		violations = append(violations, "credit limit is not positive")
	}

	// Statement summary amounts are printed unsigned; a negative value
	// means a sign leaked in from parsing. Credit balances are flagged by
	// anomaly detection instead.
	for _, ft := range constants.AllFields {
		if !ft.IsAmount() {
			continue
		}
		if amt, ok := res.Amount(ft); ok && amt.IsNegative() {
			violations = append(violations, fmt.Sprintf("%s is negative (%s)", ft, amt))
		}
	}

	if cycle, ok := res.Text(constants.FieldBillingCycle); ok && haveStmt {
		if start, end, err := dates.ParseCycle(cycle); err == nil {
			if end.Before(start) {
				violations = append(violations, "billing cycle ends before it starts")
			} else if stmtDate.Before(start.AddDate(0, 0, -5)) || stmtDate.After(end.AddDate(0, 0, 5)) {
				violations = append(violations, "statement date falls outside the billing cycle")
			}
		}
	}

	return violations
}

// BusinessRulesError folds violations into a single validation error, or
// nil when there are none.
func BusinessRulesError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return common.ValidationError(strings.Join(violations, "; "), nil)
}

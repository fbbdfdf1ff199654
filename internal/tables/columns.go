package tables

import (
	"strings"
	"time"

	"github.com/priya-raghavan/statement-parser/internal/dates"
	"github.com/priya-raghavan/statement-parser/internal/money"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// columnRole classifies what a table column holds.
type columnRole int

const (
	roleUnknown columnRole = iota
	roleDate
	roleDescription
	roleAmount
	roleDebit
	roleCredit
	roleBalance
	rolePoints
)

// headerKeywords maps header-cell vocabulary to roles. Matching is
// case-insensitive substring.
var headerKeywords = []struct {
	keyword string
	role    columnRole
}{
	{"date", roleDate},
	{"description", roleDescription},
	{"details", roleDescription},
	{"particulars", roleDescription},
	{"transaction", roleDescription},
	{"merchant", roleDescription},
	{"narration", roleDescription},
	{"debit", roleDebit},
	{"withdrawal", roleDebit},
	{"credit", roleCredit},
	{"deposit", roleCredit},
	{"balance", roleBalance},
	{"amount", roleAmount},
	{"value", roleAmount},
	{"points", rolePoints},
	{"reward", rolePoints},
}

// splitHeader pops the first row into Table.Header when it reads like a
// header (at least two cells match the vocabulary).
func splitHeader(t *Table) {
	if len(t.Rows) == 0 {
		return
	}
	first := t.Rows[0]
	matches := 0
	for _, cell := range first {
		if roleFor(cell) != roleUnknown {
			matches++
		}
	}
	if matches >= 2 {
		t.Header = first
		t.Rows = t.Rows[1:]
	}
}

func roleFor(header string) columnRole {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return roleUnknown
	}
	for _, kw := range headerKeywords {
		if strings.Contains(h, kw.keyword) {
			return kw.role
		}
	}
	return roleUnknown
}

// columnRoles resolves each column's role from the header, or infers it
// from cell content when no header was detected.
func columnRoles(t *Table) []columnRole {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	roles := make([]columnRole, width)

	if len(t.Header) > 0 {
		for i, h := range t.Header {
			if i < width {
				roles[i] = roleFor(h)
			}
		}
		return roles
	}

	// Headerless: vote per column over row content.
	for col := 0; col < width; col++ {
		dateVotes, amountVotes, textVotes := 0, 0, 0
		for _, row := range t.Rows {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}
			cell := row[col]
			if _, err := dates.Parse(cell); err == nil {
				dateVotes++
			} else if _, err := money.Parse(cell); err == nil {
				amountVotes++
			} else {
				textVotes++
			}
		}
		switch {
		case dateVotes > amountVotes && dateVotes > textVotes:
			roles[col] = roleDate
		case amountVotes > textVotes:
			roles[col] = roleAmount
		case textVotes > 0:
			roles[col] = roleDescription
		}
	}
	return roles
}

// ParseTransactions converts a table's data rows into transactions.
// Credits become negative amounts, whether marked by a CR suffix or a
// dedicated credit column. A row missing both its date and description
// is discarded as separator noise; a missing amount alone is kept.
func ParseTransactions(t *Table) []statement.Transaction {
	roles := columnRoles(t)

	var out []statement.Transaction
	for rowIdx, row := range t.Rows {
		tx := statement.Transaction{Page: t.Page, RowIndex: rowIdx, Confidence: t.Accuracy}
		var descParts []string

		for col, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" || col >= len(roles) {
				continue
			}
			switch roles[col] {
			case roleDate:
				if d, err := dates.Parse(cell); err == nil && tx.Date == nil {
					tx.Date = timePtr(d)
				}
			case roleDescription:
				descParts = append(descParts, cell)
			case roleAmount:
				if amt, err := money.Parse(cell); err == nil && tx.Amount == nil {
					isCredit := strings.HasSuffix(strings.ToUpper(cell), "CR")
					if isCredit && amt.IsPositive() {
						amt = amt.Neg()
					}
					tx.Amount = &amt
				}
			case roleDebit:
				if amt, err := money.Parse(cell); err == nil && tx.Debit == nil {
					d := amt.Abs()
					tx.Debit = &d
					if tx.Amount == nil {
						tx.Amount = &d
					}
				}
			case roleCredit:
				if amt, err := money.Parse(cell); err == nil && tx.Credit == nil {
					c := amt.Abs()
					tx.Credit = &c
					if tx.Amount == nil {
						n := c.Neg()
						tx.Amount = &n
					}
				}
			case roleBalance:
				if amt, err := money.Parse(cell); err == nil && tx.Balance == nil {
					tx.Balance = &amt
				}
			case rolePoints:
				if pts, ok := parseInt(cell); ok {
					tx.RewardPts = &pts
				}
			case roleUnknown:
				// Unclassified cells join the description rather than vanish.
				descParts = append(descParts, cell)
			}
		}

		tx.Description = strings.Join(descParts, " ")
		if tx.Date == nil && tx.Description == "" {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func parseInt(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func timePtr(t time.Time) *time.Time { return &t }

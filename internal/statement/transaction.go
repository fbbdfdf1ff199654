package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row from a statement's transaction table. Credits
// (payments, reversals) carry negative amounts. Any monetary column may
// be absent on a given row, so all of them are nullable; a row survives
// as long as it has a date or a description.
type Transaction struct {
	Date        *time.Time       `json:"date,omitempty"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	RewardPts   *int             `json:"reward_points,omitempty"`
	Page        int              `json:"page"`
	RowIndex    int              `json:"row_index"`
	Confidence  float64          `json:"confidence"`
}

// IsCredit reports whether the row reduces the outstanding balance.
func (t Transaction) IsCredit() bool {
	if t.Credit != nil {
		return true
	}
	return t.Amount != nil && t.Amount.IsNegative()
}

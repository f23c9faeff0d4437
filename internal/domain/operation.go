package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is one atomic entry-fee, profit, exit-fee cycle applied to a
// running balance. Operations are created once per operation slot within a
// day and never mutated afterwards except during a full day replay.
//
// The id is derived from the day counter and the slot within the day
// ("012-03" is the 3rd operation of day 12), so a replayed day regenerates
// its operations under the same identities with new field values.
//
// Invariants:
//
//	EntryFee           = InitialAmount * entryFeePct/100
//	AmountAfterEntry   = InitialAmount - EntryFee
//	Profit             = AmountAfterEntry * profitRatePct/100
//	AmountAfterProfit  = AmountAfterEntry + Profit
//	ExitFee            = AmountAfterProfit * exitFeePct/100
//	FinalAmount        = AmountAfterProfit - ExitFee
type Operation struct {
	ID                string          `json:"id"`
	Timestamp         time.Time       `json:"timestamp"`
	InitialAmount     decimal.Decimal `json:"initialAmount"`
	EntryFee          decimal.Decimal `json:"entryFee"`
	AmountAfterEntry  decimal.Decimal `json:"amountAfterEntryFee"`
	Profit            decimal.Decimal `json:"profit"`
	AmountAfterProfit decimal.Decimal `json:"amountAfterProfit"`
	ExitFee           decimal.Decimal `json:"exitFee"`
	FinalAmount       decimal.Decimal `json:"finalAmount"`
}

// Fees returns the total fees charged by this operation (entry + exit)
func (o *Operation) Fees() decimal.Decimal {
	return o.EntryFee.Add(o.ExitFee)
}

package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// pctOf returns amount * pct / 100 without any intermediate rounding
func pctOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// ApplyOperation computes one operation starting from balance: the entry fee
// is deducted, profit is applied to the remainder, and the exit fee is
// deducted from the result. Pure function, no side effects.
//
// Negative fee or profit percentages are legal and flow through the same
// arithmetic (a negative fee models a rebate).
func ApplyOperation(id string, balance decimal.Decimal, ts time.Time, cfg domain.RateConfig) domain.Operation {
	entryFee := pctOf(balance, cfg.EntryFeePct)
	afterEntry := balance.Sub(entryFee)
	profit := pctOf(afterEntry, cfg.ProfitRatePct)
	afterProfit := afterEntry.Add(profit)
	exitFee := pctOf(afterProfit, cfg.ExitFeePct)

	return domain.Operation{
		ID:                id,
		Timestamp:         ts,
		InitialAmount:     balance,
		EntryFee:          entryFee,
		AmountAfterEntry:  afterEntry,
		Profit:            profit,
		AmountAfterProfit: afterProfit,
		ExitFee:           exitFee,
		FinalAmount:       afterProfit.Sub(exitFee),
	}
}

// OperationID formats a day-slot pair into an operation id ("012-03")
func OperationID(day, slot int) string {
	return fmt.Sprintf("%03d-%02d", day, slot)
}

// DayID formats a global day counter into the zero-padded form transaction
// targets use ("007")
func DayID(day int) string {
	return fmt.Sprintf("%03d", day)
}

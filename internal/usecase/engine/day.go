package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
)

// DayMeta carries the calendar identity of a day being computed
type DayMeta struct {
	Day       int // global day counter, 1-based
	Date      time.Time
	IsWeekend bool
}

// ComputeDay runs cfg.OperationsPerDay operations starting from initial,
// threading each operation's final amount into the next one's opening
// balance, then applies the daily fee once to the cumulative transacted
// amount (not to the final balance) and deducts it from the last operation's
// final amount.
//
// A weekend day in a weekends-excluded simulation runs no operations and
// carries the balance through unchanged.
func ComputeDay(initial decimal.Decimal, meta DayMeta, cfg domain.RateConfig) domain.Day {
	day := domain.Day{
		Day:             meta.Day,
		Date:            meta.Date,
		IsWeekend:       meta.IsWeekend,
		InitialAmount:   initial,
		FinalAmount:     initial,
		Operations:      []domain.Operation{},
		TotalTransacted: decimal.Zero,
		DailyFee:        decimal.Zero,
	}

	if meta.IsWeekend && !cfg.IncludeWeekends {
		return day
	}

	balance := initial
	for slot := 1; slot <= cfg.OperationsPerDay; slot++ {
		op := ApplyOperation(OperationID(meta.Day, slot), balance, meta.Date, cfg)
		day.TotalTransacted = day.TotalTransacted.Add(op.InitialAmount)
		day.Operations = append(day.Operations, op)
		balance = op.FinalAmount
	}

	day.DailyFee = pctOf(day.TotalTransacted, cfg.DailyFeePct)
	day.FinalAmount = balance.Sub(day.DailyFee)
	return day
}

// IsWeekend reports whether date falls on a Saturday or Sunday
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

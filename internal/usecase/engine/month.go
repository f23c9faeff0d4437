package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
)

// ComputeMonth iterates the calendar days of the month containing first
// (which must be the month's first day), threading the running balance from
// each day's final amount into the next day's opening balance.
//
// monthIndex is the 1-based position within the projection; firstDayNumber
// is the global day counter value assigned to the month's first day.
// Weekend days always produce a day record, so the counter advances for
// them whether or not weekends trade.
func ComputeMonth(initial decimal.Decimal, monthIndex int, first time.Time, firstDayNumber int, cfg domain.RateConfig) domain.Month {
	daysInMonth := first.AddDate(0, 1, -1).Day()

	month := domain.Month{
		Month: monthIndex,
		Days:  make([]domain.Day, 0, daysInMonth),
	}

	balance := initial
	for d := 0; d < daysInMonth; d++ {
		date := first.AddDate(0, 0, d)
		day := ComputeDay(balance, DayMeta{
			Day:       firstDayNumber + d,
			Date:      date,
			IsWeekend: IsWeekend(date),
		}, cfg)
		balance = day.FinalAmount
		month.Days = append(month.Days, day)
	}

	month.Recompute()
	return month
}

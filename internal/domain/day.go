package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Day is a calendar day containing zero or more operations plus a single
// daily fee deduction. A weekend day in a weekends-excluded simulation runs
// no operations and carries its opening balance through unchanged.
//
// A day is mutated wholesale (all operations regenerated) whenever its
// InitialAmount changes due to an upstream transaction.
type Day struct {
	Day             int             `json:"day"` // global day counter across the whole simulation, 1-based
	Date            time.Time       `json:"date"`
	IsWeekend       bool            `json:"isWeekend"`
	InitialAmount   decimal.Decimal `json:"initialAmount"`
	FinalAmount     decimal.Decimal `json:"finalAmount"`
	Operations      []Operation     `json:"operations"`
	TotalTransacted decimal.Decimal `json:"totalTransacted"`
	DailyFee        decimal.Decimal `json:"dailyFee"`
}

// Fees returns the total fees charged during this day, including the daily fee
func (d *Day) Fees() decimal.Decimal {
	total := d.DailyFee
	for i := range d.Operations {
		total = total.Add(d.Operations[i].Fees())
	}
	return total
}

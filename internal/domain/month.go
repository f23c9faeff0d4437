package domain

import (
	"github.com/shopspring/decimal"
)

// Month is a calendar month's sequence of days with aggregate growth
// metrics. Every summary field is derived from the contained days and is
// recomputed, never independently mutated, whenever any day changes.
type Month struct {
	Month            int             `json:"month"` // 1-based index within the projection
	Days             []Day           `json:"days"`
	InitialAmount    decimal.Decimal `json:"initialAmount"`
	FinalAmount      decimal.Decimal `json:"finalAmount"`
	Growth           decimal.Decimal `json:"growth"`
	GrowthPercentage decimal.Decimal `json:"growthPercentage"`
	TotalOperations  int             `json:"totalOperations"`
	TotalTransacted  decimal.Decimal `json:"totalTransacted"`
	TotalFees        decimal.Decimal `json:"totalFees"`
}

// Recompute rederives every summary field from the month's days.
// A month with no days is left zeroed.
func (m *Month) Recompute() {
	if len(m.Days) == 0 {
		return
	}

	m.InitialAmount = m.Days[0].InitialAmount
	m.FinalAmount = m.Days[len(m.Days)-1].FinalAmount
	m.Growth = m.FinalAmount.Sub(m.InitialAmount)
	m.GrowthPercentage = percentageOf(m.Growth, m.InitialAmount)

	m.TotalOperations = 0
	m.TotalTransacted = decimal.Zero
	m.TotalFees = decimal.Zero
	for i := range m.Days {
		m.TotalOperations += len(m.Days[i].Operations)
		m.TotalTransacted = m.TotalTransacted.Add(m.Days[i].TotalTransacted)
		m.TotalFees = m.TotalFees.Add(m.Days[i].Fees())
	}
}

// percentageOf returns part/base*100, treating a zero base as 0%
func percentageOf(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(decimal.NewFromInt(100))
}

package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/simulak/simulak-backend/internal/domain"
)

// RunSimulation projects cfg over its full horizon starting from the
// calendar month of startDate, threading the balance month to month exactly
// as days thread within a month. This is the only place a new simulation
// identity is minted.
//
// cfg must already be validated; now stamps CreatedAt/UpdatedAt so callers
// control the clock.
func RunSimulation(cfg domain.RateConfig, startDate time.Time, now time.Time) *domain.Simulation {
	firstOfMonth := time.Date(startDate.Year(), startDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	balance := cfg.InitialInvestment
	dayNumber := 1
	months := make([]domain.Month, 0, cfg.ProjectionMonths)
	for i := 0; i < cfg.ProjectionMonths; i++ {
		month := ComputeMonth(balance, i+1, firstOfMonth.AddDate(0, i, 0), dayNumber, cfg)
		dayNumber += len(month.Days)
		balance = month.FinalAmount
		months = append(months, month)
	}

	sim := &domain.Simulation{
		ID:           uuid.New(),
		Date:         startDate,
		Currency:     cfg.Currency,
		SetupParams:  cfg,
		MonthlyData:  months,
		Transactions: []domain.Transaction{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sim.RecomputeTotals()
	return sim
}

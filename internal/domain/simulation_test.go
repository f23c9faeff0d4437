package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dayWith(num int, initial, final string) Day {
	return Day{
		Day:             num,
		InitialAmount:   decimal.RequireFromString(initial),
		FinalAmount:     decimal.RequireFromString(final),
		Operations:      []Operation{},
		TotalTransacted: decimal.Zero,
		DailyFee:        decimal.Zero,
	}
}

func TestMonthRecompute_DerivesFromDays(t *testing.T) {
	month := Month{
		Month: 1,
		Days: []Day{
			dayWith(1, "100", "110"),
			dayWith(2, "110", "121"),
		},
	}

	month.Recompute()

	assert.True(t, month.InitialAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, month.FinalAmount.Equal(decimal.NewFromInt(121)))
	assert.True(t, month.Growth.Equal(decimal.NewFromInt(21)))
	assert.True(t, month.GrowthPercentage.Equal(decimal.NewFromInt(21)))
}

func TestSimulationRecomputeTotals(t *testing.T) {
	first := Month{Month: 1, Days: []Day{dayWith(1, "100", "150")}}
	first.Recompute()
	second := Month{Month: 2, Days: []Day{dayWith(2, "150", "130")}}
	second.Recompute()

	sim := Simulation{MonthlyData: []Month{first, second}}
	sim.RecomputeTotals()

	assert.True(t, sim.InitialAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, sim.FinalAmount.Equal(decimal.NewFromInt(130)))
	assert.True(t, sim.ProfitAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, sim.ProfitPercentage.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, sim.DayCount())
}

func TestSimulationRecomputeTotals_ZeroInitial(t *testing.T) {
	month := Month{Month: 1, Days: []Day{dayWith(1, "0", "0")}}
	month.Recompute()

	sim := Simulation{MonthlyData: []Month{month}}
	sim.RecomputeTotals()

	assert.True(t, sim.ProfitPercentage.IsZero())
}

func TestOperationFees(t *testing.T) {
	op := Operation{
		EntryFee: decimal.RequireFromString("0.6"),
		ExitFee:  decimal.RequireFromString("0.4"),
	}
	assert.True(t, op.Fees().Equal(decimal.NewFromInt(1)))
}

func TestDayFees_IncludesDailyFee(t *testing.T) {
	day := Day{
		DailyFee: decimal.NewFromInt(2),
		Operations: []Operation{
			{EntryFee: decimal.NewFromInt(1), ExitFee: decimal.NewFromInt(1)},
			{EntryFee: decimal.NewFromInt(3), ExitFee: decimal.Zero},
		},
	}
	assert.True(t, day.Fees().Equal(decimal.NewFromInt(7)))
}

package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func baseConfig() domain.RateConfig {
	return domain.RateConfig{
		InitialInvestment: decimal.NewFromInt(600),
		Currency:          domain.CurrencyUSD,
		EntryFeePct:       decimal.RequireFromString("0.1"),
		ExitFeePct:        decimal.RequireFromString("0.1"),
		ProfitRatePct:     decimal.RequireFromString("0.7"),
		DailyFeePct:       decimal.Zero,
		OperationsPerDay:  4,
		ProjectionMonths:  1,
		IncludeWeekends:   true,
	}
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual.String())
}

func TestApplyOperation_Breakdown(t *testing.T) {
	cfg := baseConfig()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Execute: one operation on a 600 balance
	op := ApplyOperation("001-01", decimal.NewFromInt(600), ts, cfg)

	// Assert: every intermediate amount of the entry -> profit -> exit cycle
	assert.Equal(t, "001-01", op.ID)
	assertDecimalEqual(t, "600", op.InitialAmount)
	assertDecimalEqual(t, "0.6", op.EntryFee)
	assertDecimalEqual(t, "599.4", op.AmountAfterEntry)
	assertDecimalEqual(t, "4.1958", op.Profit)
	assertDecimalEqual(t, "603.5958", op.AmountAfterProfit)
	assertDecimalEqual(t, "0.6035958", op.ExitFee)
	assertDecimalEqual(t, "602.9922042", op.FinalAmount)
}

func TestApplyOperation_ClosedForm(t *testing.T) {
	// The final amount must match ((b - b*e/100) * (1 + p/100)) * (1 - x/100)
	cases := []struct {
		name                string
		balance, e, p, x    string
	}{
		{"typical rates", "600", "0.1", "0.7", "0.1"},
		{"zero everything", "1000", "0", "0", "0"},
		{"high fees", "250.50", "5", "12", "3.5"},
		{"fractional balance", "0.01", "0.25", "1.5", "0.25"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.EntryFeePct = decimal.RequireFromString(tc.e)
			cfg.ProfitRatePct = decimal.RequireFromString(tc.p)
			cfg.ExitFeePct = decimal.RequireFromString(tc.x)

			balance := decimal.RequireFromString(tc.balance)
			op := ApplyOperation("001-01", balance, time.Time{}, cfg)

			b, _ := balance.Float64()
			e, _ := cfg.EntryFeePct.Float64()
			p, _ := cfg.ProfitRatePct.Float64()
			x, _ := cfg.ExitFeePct.Float64()
			expected := ((b - b*e/100) * (1 + p/100)) * (1 - x/100)

			if expected == 0 {
				assert.True(t, op.FinalAmount.IsZero())
			} else {
				assert.InEpsilon(t, expected, op.FinalAmount.InexactFloat64(), 1e-9)
			}
		})
	}
}

func TestApplyOperation_NegativeFeeActsAsRebate(t *testing.T) {
	cfg := baseConfig()
	cfg.EntryFeePct = decimal.RequireFromString("-1")
	cfg.ProfitRatePct = decimal.Zero
	cfg.ExitFeePct = decimal.Zero

	op := ApplyOperation("001-01", decimal.NewFromInt(100), time.Time{}, cfg)

	// A -1% entry fee credits the balance instead of charging it
	assertDecimalEqual(t, "-1", op.EntryFee)
	assertDecimalEqual(t, "101", op.AmountAfterEntry)
	assertDecimalEqual(t, "101", op.FinalAmount)
}

func TestApplyOperation_ZeroBalance(t *testing.T) {
	op := ApplyOperation("001-01", decimal.Zero, time.Time{}, baseConfig())

	assert.True(t, op.EntryFee.IsZero())
	assert.True(t, op.Profit.IsZero())
	assert.True(t, op.FinalAmount.IsZero())
}

func TestOperationID_Format(t *testing.T) {
	assert.Equal(t, "001-01", OperationID(1, 1))
	assert.Equal(t, "012-03", OperationID(12, 3))
	assert.Equal(t, "365-10", OperationID(365, 10))
}

func TestDayID_Format(t *testing.T) {
	assert.Equal(t, "001", DayID(1))
	assert.Equal(t, "007", DayID(7))
	assert.Equal(t, "030", DayID(30))
	assert.Equal(t, "1000", DayID(1000))
}

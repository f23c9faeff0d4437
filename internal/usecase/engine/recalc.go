package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
)

var (
	ErrInvalidTransactionType   = errors.New("transaction type must be deposit or withdrawal")
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")
)

// ApplyTransaction inserts a deposit or withdrawal at the day addressed by
// operationID, then replays every day from that point to the end of the
// simulation: the target day's opening balance is adjusted and recomputed,
// each subsequent day's opening balance is rethreaded from the previous
// day's new final amount, affected month summaries are rederived, and the
// simulation totals are recomputed. The cascade is unconditional; there is
// no early exit even when the adjustment nets out.
//
// A withdrawal exceeding the target day's opening balance is clamped: the
// day opens at zero and the appended transaction records the amount actually
// taken. An operationID matching no day counter returns
// OperationNotFoundError and leaves the simulation untouched.
//
// The simulation is mutated in place; the caller owns making it durable.
func ApplyTransaction(sim *domain.Simulation, txType domain.TransactionType, amount decimal.Decimal, operationID string, now time.Time) (*domain.Transaction, error) {
	if txType != domain.TransactionTypeDeposit && txType != domain.TransactionTypeWithdrawal {
		return nil, ErrInvalidTransactionType
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidTransactionAmount
	}

	targetMonth, targetDay, ok := locateDay(sim, operationID)
	if !ok {
		return nil, &domain.OperationNotFoundError{OperationID: operationID}
	}

	balanceBefore := sim.FinalAmount

	day := &sim.MonthlyData[targetMonth].Days[targetDay]
	effective := amount
	var opening decimal.Decimal
	if txType == domain.TransactionTypeDeposit {
		opening = day.InitialAmount.Add(amount)
	} else {
		if amount.GreaterThan(day.InitialAmount) {
			effective = day.InitialAmount
		}
		opening = day.InitialAmount.Sub(effective)
	}

	replayFrom(sim, targetMonth, targetDay, opening)
	sim.RecomputeTotals()

	tx := domain.Transaction{
		ID:            uuid.New(),
		Date:          now,
		Type:          txType,
		Amount:        effective,
		BalanceBefore: balanceBefore,
		BalanceAfter:  sim.FinalAmount,
		OperationID:   operationID,
	}
	sim.Transactions = append(sim.Transactions, tx)
	sim.UpdatedAt = now
	return &tx, nil
}

// locateDay walks months in order, then days within each month, incrementing
// a global day counter until its zero-padded value equals operationID
func locateDay(sim *domain.Simulation, operationID string) (monthIdx, dayIdx int, ok bool) {
	counter := 0
	for mi := range sim.MonthlyData {
		for di := range sim.MonthlyData[mi].Days {
			counter++
			if DayID(counter) == operationID {
				return mi, di, true
			}
		}
	}
	return 0, 0, false
}

// replayFrom recomputes the day at (monthIdx, dayIdx) with the given opening
// balance and cascades through every later day and month summary
func replayFrom(sim *domain.Simulation, monthIdx, dayIdx int, opening decimal.Decimal) {
	balance := opening
	for mi := monthIdx; mi < len(sim.MonthlyData); mi++ {
		month := &sim.MonthlyData[mi]
		start := 0
		if mi == monthIdx {
			start = dayIdx
		}
		for di := start; di < len(month.Days); di++ {
			day := &month.Days[di]
			*day = ComputeDay(balance, DayMeta{
				Day:       day.Day,
				Date:      day.Date,
				IsWeekend: day.IsWeekend,
			}, sim.SetupParams)
			balance = day.FinalAmount
		}
		month.Recompute()
	}
}

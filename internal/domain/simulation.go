package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a balance adjustment
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// Transaction is a deposit or withdrawal inserted retroactively at a target
// day. Transactions are append-only history attached to a simulation; each
// one is immutable once created.
//
// OperationID is a zero-padded global day counter (e.g. "007" targets the
// 7th day across the whole simulation, month boundaries ignored). The field
// name is kept for compatibility with the original ledger data even though
// targeting is day-level, not per-operation.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // effective amount: a clamped withdrawal records what was actually taken
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	OperationID   string          `json:"operationId"`
}

// Simulation is the full persisted run: the RateConfig snapshot, every
// month/day/operation it produced, summary totals, and the transaction
// history. It is the root aggregate and owns all months by composition.
//
// A simulation is created once by a run and thereafter only mutated through
// the recalculation engine, which rewrites days at or after a transaction's
// target and every summary field upward, but never deletes prior months.
type Simulation struct {
	ID               uuid.UUID       `json:"id"`
	Date             time.Time       `json:"date"`
	Currency         Currency        `json:"currency"`
	SetupParams      RateConfig      `json:"setupParams"`
	MonthlyData      []Month         `json:"monthlyData"`
	InitialAmount    decimal.Decimal `json:"initialAmount"`
	FinalAmount      decimal.Decimal `json:"finalAmount"`
	ProfitAmount     decimal.Decimal `json:"profitAmount"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	TotalFees        decimal.Decimal `json:"totalFees"`
	Transactions     []Transaction   `json:"transactions"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// RecomputeTotals rederives the simulation-level summary fields from the
// monthly data. Month summaries must already be up to date.
func (s *Simulation) RecomputeTotals() {
	if len(s.MonthlyData) == 0 {
		return
	}

	first := &s.MonthlyData[0]
	last := &s.MonthlyData[len(s.MonthlyData)-1]

	s.InitialAmount = first.InitialAmount
	s.FinalAmount = last.FinalAmount
	s.ProfitAmount = s.FinalAmount.Sub(s.InitialAmount)
	s.ProfitPercentage = percentageOf(s.ProfitAmount, s.InitialAmount)

	s.TotalFees = decimal.Zero
	for i := range s.MonthlyData {
		s.TotalFees = s.TotalFees.Add(s.MonthlyData[i].TotalFees)
	}
}

// DayCount returns the number of day records across all months
func (s *Simulation) DayCount() int {
	n := 0
	for i := range s.MonthlyData {
		n += len(s.MonthlyData[i].Days)
	}
	return n
}

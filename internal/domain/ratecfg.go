package domain

import (
	"github.com/shopspring/decimal"
)

// Currency represents the currency a simulation is denominated in
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyBRL Currency = "BRL"
)

// knownCurrencies is the set of currencies the dashboard can render
var knownCurrencies = map[Currency]bool{
	CurrencyUSD: true,
	CurrencyEUR: true,
	CurrencyGBP: true,
	CurrencyBRL: true,
}

// RateConfig is the user-supplied parameter set driving all fee/profit math.
// It is immutable once a simulation run starts: the run copies it into the
// persisted Simulation as SetupParams and never reads it again.
type RateConfig struct {
	InitialInvestment decimal.Decimal `json:"initialInvestment"`
	Currency          Currency        `json:"currency"`
	EntryFeePct       decimal.Decimal `json:"entryFeePct"`
	ExitFeePct        decimal.Decimal `json:"exitFeePct"`
	ProfitRatePct     decimal.Decimal `json:"profitRatePct"`
	DailyFeePct       decimal.Decimal `json:"dailyFeePct"`
	OperationsPerDay  int             `json:"operationsPerDay"`
	ProjectionMonths  int             `json:"projectionMonths"`
	IncludeWeekends   bool            `json:"includeWeekends"`
}

// Validate ensures the config adheres to domain rules.
// Percentage fields are unbounded on purpose: negative fees model rebates
// and flow through the same arithmetic without special-casing.
func (c *RateConfig) Validate() error {
	if c.InitialInvestment.LessThanOrEqual(decimal.Zero) {
		return &InvalidConfigError{Field: "initialInvestment", Reason: "must be positive"}
	}
	if !knownCurrencies[c.Currency] {
		return &InvalidConfigError{Field: "currency", Reason: "unknown currency " + string(c.Currency)}
	}
	if c.OperationsPerDay < 1 {
		return &InvalidConfigError{Field: "operationsPerDay", Reason: "must be at least 1"}
	}
	if c.ProjectionMonths < 1 {
		return &InvalidConfigError{Field: "projectionMonths", Reason: "must be at least 1"}
	}
	return nil
}

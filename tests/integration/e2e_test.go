//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simulak/simulak-backend/internal/adapter/httpapi"
	"github.com/simulak/simulak-backend/internal/adapter/repository/sqlite"
	"github.com/simulak/simulak-backend/internal/domain"
	"github.com/simulak/simulak-backend/internal/usecase/marketdata"
	"github.com/simulak/simulak-backend/internal/usecase/report"
	"github.com/simulak/simulak-backend/internal/usecase/setup"
	"github.com/simulak/simulak-backend/internal/usecase/simulation"
)

// startServer boots the full stack against a fresh on-disk database:
// migrations, repositories, services and the HTTP router
func startServer(t *testing.T) (*httptest.Server, *sqlite.DB) {
	t.Helper()

	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "simulak.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	simService := simulation.NewService(sqlite.NewSimulationRepository(db))
	setupService := setup.NewService(sqlite.NewSetupRepository(db))
	reportService := report.NewService(nil)
	quoteService := marketdata.NewService(marketdata.DefaultStaticProvider(), nil)

	api := httpapi.NewServer(simService, setupService, reportService, quoteService)
	server := httptest.NewServer(api.Router())
	t.Cleanup(server.Close)

	return server, db
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func baseConfig() map[string]any {
	return map[string]any{
		"initialInvestment": 600,
		"currency":          "USD",
		"entryFeePct":       0.1,
		"exitFeePct":        0.1,
		"profitRatePct":     0.7,
		"dailyFeePct":       0.01,
		"operationsPerDay":  4,
		"projectionMonths":  3,
		"includeWeekends":   false,
	}
}

// TestEndToEndFlow runs the complete dashboard flow: project a simulation,
// save a setup, apply a retroactive deposit and read the reports back
func TestEndToEndFlow(t *testing.T) {
	server, _ := startServer(t)

	// Step A: save the parameter preset
	resp := postJSON(t, server.URL+"/api/setups", map[string]any{
		"name":   "default strategy",
		"params": baseConfig(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "saving a setup should succeed")
	var savedSetup domain.Setup
	decodeBody(t, resp, &savedSetup)
	assert.Equal(t, "default strategy", savedSetup.Name)

	// Step B: run a simulation from the first of January
	resp = postJSON(t, server.URL+"/api/simulations", map[string]any{
		"config":    baseConfig(),
		"startDate": "2025-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "running a simulation should succeed")
	var sim domain.Simulation
	decodeBody(t, resp, &sim)

	require.Len(t, sim.MonthlyData, 3, "projection should cover three months")
	assert.Equal(t, 31, len(sim.MonthlyData[0].Days), "January should have 31 days")
	assert.Equal(t, 28, len(sim.MonthlyData[1].Days), "February 2025 should have 28 days")
	assert.True(t, sim.FinalAmount.GreaterThan(sim.InitialAmount),
		"a profitable config should grow the balance: got %s from %s",
		sim.FinalAmount.String(), sim.InitialAmount.String())

	// Step C: the persisted record round-trips through the store
	resp, err := http.Get(server.URL + "/api/simulations/" + sim.ID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stored domain.Simulation
	decodeBody(t, resp, &stored)
	assert.True(t, stored.FinalAmount.Equal(sim.FinalAmount), "stored final amount should match the run")

	// Step D: apply a deposit at day 3 and verify the cascade
	finalBefore := sim.FinalAmount
	resp = postJSON(t, fmt.Sprintf("%s/api/simulations/%s/transactions", server.URL, sim.ID), map[string]any{
		"type":        "deposit",
		"amount":      1000,
		"operationId": "003",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "applying a deposit should succeed")
	var txResp struct {
		Transaction *domain.Transaction `json:"transaction"`
		Simulation  *domain.Simulation  `json:"simulation"`
	}
	decodeBody(t, resp, &txResp)

	require.NotNil(t, txResp.Transaction)
	assert.Equal(t, domain.TransactionTypeDeposit, txResp.Transaction.Type)
	assert.True(t, txResp.Transaction.BalanceBefore.Equal(finalBefore),
		"recorded balance before should be the pre-deposit final amount")
	require.NotNil(t, txResp.Simulation)
	assert.True(t, txResp.Simulation.FinalAmount.GreaterThan(finalBefore),
		"a deposit should raise the final amount")
	assert.Len(t, txResp.Simulation.Transactions, 1)

	// Step E: the recalculated ledger is durable
	resp, err = http.Get(server.URL + "/api/simulations/" + sim.ID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recalculated domain.Simulation
	decodeBody(t, resp, &recalculated)
	assert.True(t, recalculated.FinalAmount.Equal(txResp.Simulation.FinalAmount))
	assert.Len(t, recalculated.Transactions, 1)

	// Step F: reports agree across granularities
	var monthly, daily []report.Row
	resp, err = http.Get(server.URL + "/api/simulations/" + sim.ID.String() + "/report?granularity=monthly")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &monthly)
	require.Len(t, monthly, 3)

	resp, err = http.Get(server.URL + "/api/simulations/" + sim.ID.String() + "/report?granularity=daily")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &daily)
	require.Len(t, daily, 31+28+31)

	monthlyFees := decimal.Zero
	for _, row := range monthly {
		monthlyFees = monthlyFees.Add(row.TotalFees)
	}
	dailyFees := decimal.Zero
	for _, row := range daily {
		dailyFees = dailyFees.Add(row.TotalFees)
	}
	assert.True(t, monthlyFees.Equal(dailyFees),
		"total fees should agree across granularities: monthly %s, daily %s",
		monthlyFees.String(), dailyFees.String())

	// Step G: latest points at the simulation we just touched
	resp, err = http.Get(server.URL + "/api/simulations/latest")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var latest domain.Simulation
	decodeBody(t, resp, &latest)
	assert.Equal(t, sim.ID, latest.ID)
}

// TestNegativeScenarios tests error handling for invalid inputs
func TestNegativeScenarios(t *testing.T) {
	server, _ := startServer(t)

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := baseConfig()
		cfg["initialInvestment"] = 0

		resp := postJSON(t, server.URL+"/api/simulations", map[string]any{"config": cfg})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NonExistentSimulation", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/simulations/" + uuid.NewString())
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("MalformedUUID", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/simulations/not-a-uuid")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownOperation", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/simulations", map[string]any{
			"config":    baseConfig(),
			"startDate": "2025-01-01",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var sim domain.Simulation
		decodeBody(t, resp, &sim)

		resp = postJSON(t, fmt.Sprintf("%s/api/simulations/%s/transactions", server.URL, sim.ID), map[string]any{
			"type":        "withdrawal",
			"amount":      100,
			"operationId": "999",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("EmptyStoreLatest", func(t *testing.T) {
		fresh, _ := startServer(t)

		resp, err := http.Get(fresh.URL + "/api/simulations/latest")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

// TestWithdrawalClampPersists verifies an over-large withdrawal is clamped to
// the target day's opening balance and the clamped ledger survives a reload
func TestWithdrawalClampPersists(t *testing.T) {
	server, _ := startServer(t)

	cfg := baseConfig()
	cfg["operationsPerDay"] = 1
	cfg["entryFeePct"] = 0
	cfg["exitFeePct"] = 0
	cfg["profitRatePct"] = 0
	cfg["dailyFeePct"] = 0
	cfg["includeWeekends"] = true
	cfg["projectionMonths"] = 1

	resp := postJSON(t, server.URL+"/api/simulations", map[string]any{
		"config":    cfg,
		"startDate": "2025-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sim domain.Simulation
	decodeBody(t, resp, &sim)

	resp = postJSON(t, fmt.Sprintf("%s/api/simulations/%s/transactions", server.URL, sim.ID), map[string]any{
		"type":        "withdrawal",
		"amount":      5000,
		"operationId": "001",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var txResp struct {
		Transaction *domain.Transaction `json:"transaction"`
	}
	decodeBody(t, resp, &txResp)

	require.NotNil(t, txResp.Transaction)
	assert.True(t, txResp.Transaction.Amount.Equal(decimal.NewFromInt(600)),
		"withdrawal should be clamped to the opening balance: got %s", txResp.Transaction.Amount.String())

	resp, err := http.Get(server.URL + "/api/simulations/" + sim.ID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reloaded domain.Simulation
	decodeBody(t, resp, &reloaded)
	assert.True(t, reloaded.FinalAmount.IsZero(),
		"draining day one of a flat ledger should zero the final amount")
}

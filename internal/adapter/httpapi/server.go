package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/simulak/simulak-backend/internal/domain"
	"github.com/simulak/simulak-backend/internal/logger"
	"github.com/simulak/simulak-backend/internal/usecase/engine"
	"github.com/simulak/simulak-backend/internal/usecase/marketdata"
	"github.com/simulak/simulak-backend/internal/usecase/report"
	"github.com/simulak/simulak-backend/internal/usecase/setup"
	"github.com/simulak/simulak-backend/internal/usecase/simulation"
)

// Server wires the use case services into the dashboard's JSON API.
type Server struct {
	simulations *simulation.Service
	setups      *setup.Service
	reports     *report.Service
	quotes      *marketdata.Service

	allowedOrigins []string
	limiter        *rate.Limiter
}

type Option func(*Server)

// WithCORS sets the origins allowed to call the API from a browser.
func WithCORS(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// WithRateLimit installs a global token-bucket limiter.
func WithRateLimit(interval time.Duration, burst int) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Every(interval), burst) }
}

func NewServer(
	simulations *simulation.Service,
	setups *setup.Service,
	reports *report.Service,
	quotes *marketdata.Service,
	opts ...Option,
) *Server {
	s := &Server{
		simulations: simulations,
		setups:      setups,
		reports:     reports,
		quotes:      quotes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all API routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(contextualLogger)
	if s.limiter != nil {
		r.Use(rateLimit(s.limiter))
	}
	if len(s.allowedOrigins) > 0 {
		r.Use(cors(s.allowedOrigins))
	}

	r.Get("/api/health", s.handleHealth)

	r.Route("/api/simulations", func(r chi.Router) {
		r.Post("/", s.handleRunSimulation)
		r.Get("/", s.handleListSimulations)
		r.Get("/latest", s.handleLatestSimulation)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSimulation)
			r.Delete("/", s.handleDeleteSimulation)
			r.Post("/transactions", s.handleApplyTransaction)
			r.Get("/report", s.handleReport)
		})
	})

	r.Route("/api/setups", func(r chi.Router) {
		r.Post("/", s.handleSaveSetup)
		r.Get("/", s.handleListSetups)
		r.Get("/current", s.handleCurrentSetup)
	})

	r.Get("/api/market/quotes", s.handleQuotes)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type runSimulationRequest struct {
	Config    domain.RateConfig `json:"config"`
	StartDate string            `json:"startDate,omitempty"`
}

func (s *Server) handleRunSimulation(w http.ResponseWriter, r *http.Request) {
	var req runSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "startDate must be formatted as YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	sim, err := s.simulations.Run(r.Context(), req.Config, startDate)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sim)
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	sims, err := s.simulations.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sims)
}

func (s *Server) handleLatestSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := s.simulations.Latest(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	id, ok := s.simulationID(w, r)
	if !ok {
		return
	}
	sim, err := s.simulations.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	id, ok := s.simulationID(w, r)
	if !ok {
		return
	}
	if err := s.simulations.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type applyTransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	OperationID string          `json:"operationId"`
}

type applyTransactionResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	Simulation  *domain.Simulation  `json:"simulation"`
}

func (s *Server) handleApplyTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.simulationID(w, r)
	if !ok {
		return
	}

	var req applyTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	sim, err := s.simulations.ApplyTransaction(r.Context(), id, domain.TransactionType(req.Type), req.Amount, req.OperationID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := applyTransactionResponse{Simulation: sim}
	if n := len(sim.Transactions); n > 0 {
		resp.Transaction = &sim.Transactions[n-1]
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.simulationID(w, r)
	if !ok {
		return
	}

	granularity := report.Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = report.GranularityMonthly
	}

	sim, err := s.simulations.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	rows, err := s.reports.Rows(sim, granularity)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type saveSetupRequest struct {
	Name   string            `json:"name"`
	Params domain.RateConfig `json:"params"`
}

func (s *Server) handleSaveSetup(w http.ResponseWriter, r *http.Request) {
	var req saveSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.setups.Save(r.Context(), req.Name, req.Params)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleListSetups(w http.ResponseWriter, r *http.Request) {
	setups, err := s.setups.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setups)
}

func (s *Server) handleCurrentSetup(w http.ResponseWriter, r *http.Request) {
	st, err := s.setups.Current(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	var symbols []string
	for _, sym := range strings.Split(raw, ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			symbols = append(symbols, sym)
		}
	}

	quotes := s.quotes.GetQuotes(r.Context(), symbols)
	writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) simulationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid simulation id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidCfg *domain.InvalidConfigError
	var opNotFound *domain.OperationNotFoundError

	switch {
	case errors.As(err, &invalidCfg),
		errors.Is(err, engine.ErrInvalidTransactionType),
		errors.Is(err, engine.ErrInvalidTransactionAmount):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &opNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrSimulationNotFound),
		errors.Is(err, domain.ErrSetupNotFound),
		errors.Is(err, domain.ErrNoSimulations):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		logger.FromContext(r.Context()).Error("Request failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		logger.FromContext(r.Context()).Warn("Request rejected", "status", status, "reason", msg)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("Failed to encode response", "error", err)
	}
}

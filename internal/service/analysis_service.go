// Package service exposes the analysis engine over HTTP.
package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/unsubby/backend/internal/engine"
)

// AnalysisService handles analysis requests: records in, annotated
// recurring groups and the savings total out.
type AnalysisService struct {
	analyzer *engine.Analyzer
	log      zerolog.Logger
}

// NewAnalysisService creates the service around a configured analyzer.
func NewAnalysisService(analyzer *engine.Analyzer, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{analyzer: analyzer, log: log}
}

// RegisterRoutes attaches the service's handlers to mux.
func (s *AnalysisService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
}

// recordDTO is the wire form of a transaction record.
type recordDTO struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	Merchant string          `json:"merchant"`
	Amount   decimal.Decimal `json:"amount"`
}

type analyzeRequest struct {
	Records []recordDTO `json:"records"`

	// Exclude lists group IDs or merchant names the caller wants
	// dropped from the result (subscriptions they intend to keep).
	Exclude []string `json:"exclude,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *AnalysisService) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	records := make([]engine.TransactionRecord, 0, len(req.Records))
	for i, dto := range req.Records {
		date, err := time.Parse("2006-01-02", dto.Date)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("record %d: invalid date %q, want YYYY-MM-DD", i, dto.Date))
			return
		}
		records = append(records, engine.TransactionRecord{
			Date:     date,
			Merchant: dto.Merchant,
			Amount:   dto.Amount,
		})
	}

	result := s.analyzer.Analyze(r.Context(), records).Excluding(req.Exclude...)

	s.log.Info().
		Int("records", len(records)).
		Int("groups", len(result.Groups)).
		Str("total_monthly_savings", result.TotalMonthlySavings.String()).
		Dur("duration", time.Since(start)).
		Msg("analysis completed")

	s.writeJSON(w, http.StatusOK, result)
}

func (s *AnalysisService) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *AnalysisService) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

package http

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"scorecard/internal/core"
	"scorecard/internal/log"
	"scorecard/internal/services"
	appweb "scorecard/web"
)

const maxSearchResults = 10

// handleIndex serves the embedded dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := fs.ReadFile(appweb.StaticFS, "static/index.html")
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard page not embedded", "error", err)
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleSearchCandidates proxies a candidate name search upstream, capped at
// ten results.
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name parameter is required"))
		return
	}
	office := strings.ToUpper(strings.TrimSpace(q.Get("office")))
	cycle := parseIntParam(q.Get("cycle"), s.defaultCycle)

	key := strings.ToLower(name) + "|" + office + "|" + itoa(cycle)
	results, found := s.searchCache.Get(key)
	if !found {
		var err error
		results, err = s.searcher.SearchCandidates(r.Context(), name, cycle, office)
		if err != nil {
			slog.ErrorContext(r.Context(), "Candidate search failed",
				log.FieldCandidateName, name,
				log.FieldCycle, cycle,
				log.FieldError, err)
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
			return
		}
		s.searchCache.Set(key, results)
	}

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	if results == nil {
		results = []core.Candidate{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleAnalyzeCandidate runs the full analysis pipeline for one candidate.
// Distinct outcomes: 400 missing candidate_id, 404 no committees, 200 with a
// warning when the committee has no receipts yet, 500 on anything else.
func (s *Server) handleAnalyzeCandidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	q := r.URL.Query()
	candidateID := strings.TrimSpace(q.Get("candidate_id"))
	if candidateID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("candidate_id parameter is required"))
		return
	}

	params := services.AnalyzeParams{
		CandidateID:   candidateID,
		CandidateName: strings.TrimSpace(q.Get("name")),
		Party:         strings.TrimSpace(q.Get("party")),
		State:         strings.TrimSpace(q.Get("state")),
		Cycle: parseIntParam(q.Get("cycle"), s.defaultCycle),
		// max_pages=0 means one page here, not unlimited: every fetch this
		// server issues runs under a finite cap.
		MaxPages: clamp(parseIntParam(q.Get("max_pages"), 10), 1, s.maxPagesCap),
	}

	// Every parameter echoed in the response participates in the key, so a
	// cached analysis never carries another caller's candidate block.
	key := strings.Join([]string{
		candidateID,
		itoa(params.Cycle),
		itoa(params.MaxPages),
		strings.ToLower(params.CandidateName),
		params.Party,
		params.State,
	}, "|")
	if analysis, found := s.analysisCache.Get(key); found {
		writeJSON(w, http.StatusOK, analysis)
		return
	}

	analysis, err := s.analyzer.AnalyzeCandidate(r.Context(), params)
	if err != nil {
		var noReceipts *services.NoReceiptsError
		switch {
		case errors.Is(err, services.ErrNoCommittees):
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":        "No committees found for candidate",
				"candidate_id": candidateID,
			})
		case errors.As(err, &noReceipts):
			writeJSON(w, http.StatusOK, map[string]any{
				"warning":   "No contribution records found for this committee yet",
				"committee": noReceipts.Committee,
			})
		default:
			slog.ErrorContext(r.Context(), "Candidate analysis failed",
				log.FieldCandidateID, candidateID,
				log.FieldCycle, params.Cycle,
				log.FieldError, err)
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		}
		return
	}

	s.analysisCache.Set(key, analysis)
	slog.InfoContext(r.Context(), "Candidate analyzed",
		log.FieldCandidateID, candidateID,
		log.FieldCommitteeID, analysis.Committee.CommitteeID,
		log.FieldCycle, params.Cycle,
		log.FieldReceiptCount, analysis.Analysis.TotalReceipts,
		log.FieldBigMoneyPct, analysis.Analysis.BigMoneyPercentage)

	writeJSON(w, http.StatusOK, analysis)
}

// handleCandidateSummary returns the upstream cycle totals for a candidate.
func (s *Server) handleCandidateSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	q := r.URL.Query()
	candidateID := strings.TrimSpace(q.Get("candidate_id"))
	if candidateID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("candidate_id parameter is required"))
		return
	}
	cycle := parseIntParam(q.Get("cycle"), s.defaultCycle)

	summary, err := s.summaries.ReadSummary(r.Context(), candidateID, cycle)
	if err != nil {
		slog.ErrorContext(r.Context(), "Candidate summary fetch failed",
			log.FieldCandidateID, candidateID,
			log.FieldCycle, cycle,
			log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.searcher == nil || s.analyzer == nil {
		checks["upstream"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["upstream"] = "ok"
	}

	checks["cache"] = map[string]any{
		"search_entries":   s.searchCache.Size(),
		"analysis_entries": s.analysisCache.Size(),
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.limiter.ActiveClients(),
	}
	checks["requests"] = s.tracer.GetMetrics().TotalRequests

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

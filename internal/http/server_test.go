package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"scorecard/internal/core"
	"scorecard/internal/fec/memory"
	"scorecard/internal/services"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	store := memory.New()
	store.AddCandidate(core.Candidate{
		CandidateID: "H0CA01234",
		Name:        "DOE, JANE",
		Party:       "DEM",
		State:       "CA",
		District:    "12",
		Office:      "H",
		OfficeFull:  "House",
	})
	store.AddCommittee("H0CA01234", core.Committee{
		CommitteeID: "C00123456",
		Name:        "DOE FOR CONGRESS",
		Designation: "P",
	})
	store.AddReceipts("C00123456",
		core.ContributionRecord{Amount: decimal.NewFromInt(500), EntityType: core.EntityPAC, ContributorName: "BIG PAC"},
		core.ContributionRecord{Amount: decimal.NewFromInt(100), EntityType: core.EntityInd, ContributorName: "ALICE SMITH"},
	)
	store.SetSummary("H0CA01234", core.FinancialSummary{
		CandidateID: "H0CA01234",
		Cycle:       2026,
		Receipts:    600,
	})

	// Candidate with a committee but no receipts yet.
	store.AddCandidate(core.Candidate{CandidateID: "S4TX00456", Name: "SMITH, JOHN", Office: "S"})
	store.AddCommittee("S4TX00456", core.Committee{CommitteeID: "C00999999", Name: "SMITH FOR SENATE", Designation: "P"})

	analyzer := services.NewAnalyzer(store, store, nil)
	srv := NewServer(Options{Addr: ":0", DefaultCycle: 2026, MaxPagesCap: 10}, store, analyzer, store)
	t.Cleanup(func() {
		srv.cacheManager.Stop()
		srv.limiter.Stop()
	})
	return srv, store
}

func doGet(t *testing.T, srv *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rr.Body.String())
	}
	return body
}

func TestSearchCandidates(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/search_candidates?name=doe")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	results, ok := body["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("unexpected results: %v", body)
	}
	first := results[0].(map[string]any)
	if first["candidate_id"] != "H0CA01234" || first["office_full"] != "House" {
		t.Errorf("unexpected candidate payload: %v", first)
	}
}

func TestSearchCandidates_MissingName(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/search_candidates")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if body := decodeBody(t, rr); body["error"] == "" {
		t.Errorf("expected error message, got %v", body)
	}
}

func TestSearchCandidates_CapsAtTen(t *testing.T) {
	srv, store := newTestServer(t)
	for i := 0; i < 15; i++ {
		store.AddCandidate(core.Candidate{
			CandidateID: fmt.Sprintf("H1NY%05d", i),
			Name:        fmt.Sprintf("RIVERA, ANA %d", i),
			Office:      "H",
		})
	}

	rr := doGet(t, srv, "/api/search_candidates?name=rivera")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	results := decodeBody(t, rr)["results"].([]any)
	if len(results) != 10 {
		t.Errorf("results capped at 10, got %d", len(results))
	}
}

func TestSearchCandidates_EmptyResults(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/search_candidates?name=nobody")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	results, ok := decodeBody(t, rr)["results"].([]any)
	if !ok {
		t.Fatal("results should be an empty array, not null")
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestAnalyzeCandidate_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/analyze_candidate?candidate_id=H0CA01234&name=Jane+Doe&party=DEM&state=CA")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)

	candidate := body["candidate"].(map[string]any)
	if candidate["candidate_id"] != "H0CA01234" {
		t.Errorf("unexpected candidate: %v", candidate)
	}
	committee := body["committee"].(map[string]any)
	if committee["committee_id"] != "C00123456" {
		t.Errorf("unexpected committee: %v", committee)
	}
	analysis := body["analysis"].(map[string]any)
	if analysis["total_raised"].(float64) != 600 {
		t.Errorf("total_raised = %v, want 600", analysis["total_raised"])
	}
	if analysis["big_money_percentage"].(float64) != 83.3 {
		t.Errorf("big_money_percentage = %v, want 83.3", analysis["big_money_percentage"])
	}
	if body["note"] != "Analysis based on 2 contribution records" {
		t.Errorf("unexpected note: %v", body["note"])
	}
}

func TestAnalyzeCandidate_MissingID(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/analyze_candidate")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAnalyzeCandidate_NoCommittees(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/analyze_candidate?candidate_id=H9ZZ00000")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["candidate_id"] != "H9ZZ00000" {
		t.Errorf("404 body should echo the candidate ID, got %v", body)
	}
}

func TestAnalyzeCandidate_NoReceiptsWarning(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/analyze_candidate?candidate_id=S4TX00456")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["warning"] == nil {
		t.Fatalf("expected warning payload, got %v", body)
	}
	committee := body["committee"].(map[string]any)
	if committee["committee_id"] != "C00999999" {
		t.Errorf("warning should carry the committee, got %v", committee)
	}
}

func TestAnalyzeCandidate_CachedSecondCall(t *testing.T) {
	srv, store := newTestServer(t)

	first := doGet(t, srv, "/api/analyze_candidate?candidate_id=H0CA01234")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	// More receipts arrive upstream; cached analysis still served.
	store.AddReceipts("C00123456",
		core.ContributionRecord{Amount: decimal.NewFromInt(1000), EntityType: core.EntityPAC},
	)
	second := doGet(t, srv, "/api/analyze_candidate?candidate_id=H0CA01234")
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	analysis := decodeBody(t, second)["analysis"].(map[string]any)
	if analysis["total_raised"].(float64) != 600 {
		t.Errorf("expected cached result with total 600, got %v", analysis["total_raised"])
	}
}

func TestAnalyzeCandidate_CacheKeyedOnPartyAndState(t *testing.T) {
	srv, _ := newTestServer(t)

	first := doGet(t, srv, "/api/analyze_candidate?candidate_id=H0CA01234&name=DOE,+JANE&party=DEM&state=CA")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := doGet(t, srv, "/api/analyze_candidate?candidate_id=H0CA01234&name=DOE,+JANE&party=REP&state=TX")
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}

	candidate := decodeBody(t, second)["candidate"].(map[string]any)
	if candidate["party"] != "REP" {
		t.Errorf("party = %v, want REP (first caller's cached candidate block leaked)", candidate["party"])
	}
	if candidate["state"] != "TX" {
		t.Errorf("state = %v, want TX", candidate["state"])
	}
}

func TestCandidateSummary(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/candidate_summary?candidate_id=H0CA01234")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["candidate_id"] != "H0CA01234" || body["receipts"].(float64) != 600 {
		t.Errorf("unexpected summary: %v", body)
	}

	rr = doGet(t, srv, "/api/candidate_summary")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing candidate_id status = %d, want 400", rr.Code)
	}
}

func TestHealthAndReady(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doGet(t, srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rr.Code)
		}
		body := decodeBody(t, rr)
		if body["status"] == "" {
			t.Errorf("%s missing status field: %v", path, body)
		}
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/api/search_candidates?name=doe")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search_candidates?name=doe", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

package openfec

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:        srv.URL,
		APIKey:         "TEST_KEY",
		RequestTimeout: 5 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     time.Millisecond,
		RateDelay:      0,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func receiptsPage(pages int, amounts ...float64) string {
	results := ""
	for i, amt := range amounts {
		if i > 0 {
			results += ","
		}
		results += fmt.Sprintf(`{"contribution_receipt_amount": %v, "entity_type": "IND", "contributor_name": "DONOR %d"}`, amt, i)
	}
	return fmt.Sprintf(`{"results": [%s], "pagination": {"pages": %d}}`, results, pages)
}

func TestSearchCandidates(t *testing.T) {
	var gotQuery atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candidates/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery.Store(r.URL.Query())
		fmt.Fprint(w, `{"results": [
			{"candidate_id": "S8MA00000", "name": "WARREN, ELIZABETH", "party": "DEM", "state": "MA", "office": "S", "office_full": "Senate"}
		], "pagination": {"pages": 1}}`)
	}))

	candidates, err := client.SearchCandidates(context.Background(), "Warren", 2026, "S")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].CandidateID != "S8MA00000" || candidates[0].Name != "WARREN, ELIZABETH" {
		t.Fatalf("unexpected candidate %+v", candidates[0])
	}

	q := gotQuery.Load().(url.Values)
	for key, want := range map[string]string{
		"name": "Warren", "cycle": "2026", "office": "S", "per_page": "100", "api_key": "TEST_KEY",
	} {
		if got := q[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
}

func TestListCommitteesEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [], "pagination": {"pages": 0}}`)
	}))

	committees, err := client.ListCommittees(context.Background(), "S8MA00000", 2026)
	if err != nil {
		t.Fatalf("list committees: %v", err)
	}
	if len(committees) != 0 {
		t.Fatalf("got %d committees, want 0", len(committees))
	}
}

func TestFetchReceiptsPagination(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules/schedule_a" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			fmt.Fprint(w, receiptsPage(2, 100, 200))
		case 2:
			fmt.Fprint(w, receiptsPage(2, 300))
		default:
			t.Errorf("unexpected page %d", page)
		}
	}))

	receipts, err := client.FetchReceipts(context.Background(), "C00000001", 2026, 0)
	if err != nil {
		t.Fatalf("fetch receipts: %v", err)
	}
	if len(receipts) != 3 {
		t.Fatalf("got %d receipts, want 3", len(receipts))
	}
	if receipts[2].Amount.InexactFloat64() != 300 {
		t.Fatalf("last amount = %v, want 300", receipts[2].Amount)
	}
}

func TestFetchReceiptsMaxPagesCap(t *testing.T) {
	var pagesServed int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pagesServed, 1)
		fmt.Fprint(w, receiptsPage(10, 1, 2))
	}))

	receipts, err := client.FetchReceipts(context.Background(), "C00000001", 2026, 2)
	if err != nil {
		t.Fatalf("fetch receipts: %v", err)
	}
	if len(receipts) != 4 {
		t.Fatalf("got %d receipts, want 4", len(receipts))
	}
	if n := atomic.LoadInt32(&pagesServed); n != 2 {
		t.Fatalf("served %d pages, want 2", n)
	}
}

func TestFetchReceiptsPartialOnPageFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 1 {
			fmt.Fprint(w, receiptsPage(3, 100, 200))
			return
		}
		http.Error(w, "upstream blew up", http.StatusInternalServerError)
	}))

	receipts, err := client.FetchReceipts(context.Background(), "C00000001", 2026, 0)
	if err != nil {
		t.Fatalf("expected partial results without error, got %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("got %d receipts, want 2 from the successful page", len(receipts))
	}
}

func TestGetJSONRetriesTransientErrors(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"results": [], "pagination": {"pages": 1}}`)
	}))

	_, err := client.SearchCandidates(context.Background(), "Warren", 2026, "")
	if err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("made %d calls, want 3", n)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))

	_, err := client.SearchCandidates(context.Background(), "Warren", 2026, "")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("made %d calls, want 1 (no retry on 4xx)", n)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

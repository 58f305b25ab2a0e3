// Package openfec implements the fec ports against the live OpenFEC REST API.
package openfec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scorecard/internal/core"
	"scorecard/internal/fec"
	"scorecard/internal/retry"
)

// DefaultBaseURL is the public OpenFEC API endpoint.
const DefaultBaseURL = "https://api.open.fec.gov/v1"

const perPage = 100

// Config holds the OpenFEC client configuration.
type Config struct {
	BaseURL string
	// APIKey authenticates requests. The public DEMO_KEY works with a much
	// lower hourly quota.
	APIKey string
	// RequestTimeout bounds each individual page request.
	RequestTimeout time.Duration
	// RetryAttempts and RetryDelay parameterize the per-request retry policy.
	RetryAttempts int
	RetryDelay    time.Duration
	// RateDelay is a fixed pause inserted before every request to stay under
	// the API rate limit.
	RateDelay time.Duration
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("fec api key is required")
	}
	return nil
}

// Client talks to the OpenFEC API with pagination, bounded retry, and a
// fixed pre-request rate delay.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retryOpts  retry.Policy
	rateDelay  time.Duration
}

// Ensure interface conformance
var (
	_ fec.CandidateSearcher = (*Client)(nil)
	_ fec.CommitteeLister   = (*Client)(nil)
	_ fec.ReceiptFetcher    = (*Client)(nil)
	_ fec.SummaryReader     = (*Client)(nil)
)

// NewClient creates an OpenFEC client from cfg, filling in defaults for the
// base URL, timeout, retry policy, and rate delay.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.RateDelay < 0 {
		cfg.RateDelay = 0
	}

	return &Client{
		httpClient: newHTTPClientWithPooling(cfg.RequestTimeout),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		retryOpts:  retry.Policy{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay},
		rateDelay:  cfg.RateDelay,
	}, nil
}

// newHTTPClientWithPooling creates an HTTP client with connection pooling and
// timeouts tuned for a single external API host.
func newHTTPClientWithPooling(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// envelope is the common OpenFEC response shape.
type envelope struct {
	Results    []json.RawMessage `json:"results"`
	Pagination struct {
		Pages int `json:"pages"`
	} `json:"pagination"`
}

type candidateResult struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	State       string `json:"state"`
	District    string `json:"district"`
	Office      string `json:"office"`
	OfficeFull  string `json:"office_full"`
}

type committeeResult struct {
	CommitteeID string `json:"committee_id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

type receiptResult struct {
	Amount          float64 `json:"contribution_receipt_amount"`
	EntityType      string  `json:"entity_type"`
	ContributorName string  `json:"contributor_name"`
}

type totalsResult struct {
	Cycle         int     `json:"cycle"`
	Receipts      float64 `json:"receipts"`
	Disbursements float64 `json:"disbursements"`
	CashOnHand    float64 `json:"last_cash_on_hand_end_period"`
}

// getJSON performs one rate-limited, retried GET against endpoint and decodes
// the response envelope. Client errors (4xx) are not retried.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) (envelope, error) {
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()

	var env envelope
	err := retry.Do(ctx, c.retryOpts, func() error {
		if c.rateDelay > 0 {
			select {
			case <-ctx.Done():
				return retry.Permanent(ctx.Err())
			case <-time.After(c.rateDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("build request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", endpoint, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("request %s: status %d: %s", endpoint, resp.StatusCode, body)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(err)
			}
			return err
		}

		env = envelope{}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return nil
	})
	return env, err
}

// SearchCandidates implements fec.CandidateSearcher.
func (c *Client) SearchCandidates(ctx context.Context, name string, cycle int, office string) ([]core.Candidate, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("cycle", strconv.Itoa(cycle))
	params.Set("per_page", strconv.Itoa(perPage))
	if office != "" {
		params.Set("office", office)
	}

	env, err := c.getJSON(ctx, "candidates/search", params)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	out := make([]core.Candidate, 0, len(env.Results))
	for _, raw := range env.Results {
		var cr candidateResult
		if err := json.Unmarshal(raw, &cr); err != nil {
			slog.WarnContext(ctx, "Skipping malformed candidate result", "error", err)
			continue
		}
		out = append(out, core.Candidate{
			CandidateID: cr.CandidateID,
			Name:        cr.Name,
			Party:       cr.Party,
			State:       cr.State,
			District:    cr.District,
			Office:      cr.Office,
			OfficeFull:  cr.OfficeFull,
		})
	}
	return out, nil
}

// ListCommittees implements fec.CommitteeLister.
func (c *Client) ListCommittees(ctx context.Context, candidateID string, cycle int) ([]core.Committee, error) {
	params := url.Values{}
	params.Set("candidate_id", candidateID)
	params.Set("cycle", strconv.Itoa(cycle))
	params.Set("per_page", strconv.Itoa(perPage))

	env, err := c.getJSON(ctx, "candidate/"+url.PathEscape(candidateID)+"/committees", params)
	if err != nil {
		return nil, fmt.Errorf("list committees for %s: %w", candidateID, err)
	}

	out := make([]core.Committee, 0, len(env.Results))
	for _, raw := range env.Results {
		var cr committeeResult
		if err := json.Unmarshal(raw, &cr); err != nil {
			slog.WarnContext(ctx, "Skipping malformed committee result", "error", err)
			continue
		}
		out = append(out, core.Committee{
			CommitteeID: cr.CommitteeID,
			Name:        cr.Name,
			Designation: cr.Designation,
		})
	}
	return out, nil
}

// FetchReceipts implements fec.ReceiptFetcher. Pages are fetched newest
// first; when one page fails after retries the loop stops and the receipts
// accumulated so far are returned without error, trading completeness for
// availability of partial data.
func (c *Client) FetchReceipts(ctx context.Context, committeeID string, cycle int, maxPages int) ([]core.ContributionRecord, error) {
	var all []core.ContributionRecord
	page := 1

	for {
		if maxPages > 0 && page > maxPages {
			break
		}

		params := url.Values{}
		params.Set("committee_id", committeeID)
		params.Set("two_year_transaction_period", strconv.Itoa(cycle))
		params.Set("per_page", strconv.Itoa(perPage))
		params.Set("page", strconv.Itoa(page))
		params.Set("sort", "-contribution_receipt_date")

		env, err := c.getJSON(ctx, "schedules/schedule_a", params)
		if err != nil {
			slog.WarnContext(ctx, "Receipt page fetch failed, returning partial results",
				"committee_id", committeeID,
				"page", page,
				"accumulated", len(all),
				"error", err)
			break
		}

		if len(env.Results) == 0 {
			break
		}

		for _, raw := range env.Results {
			all = append(all, decodeReceipt(ctx, raw))
		}

		if page >= env.Pagination.Pages {
			break
		}
		page++

		slog.DebugContext(ctx, "Fetched receipt page",
			"committee_id", committeeID,
			"page", page-1,
			"total_receipts", len(all))
	}

	return all, nil
}

// ReadSummary implements fec.SummaryReader. A candidate with no totals for
// the cycle yields a zero-valued summary, not an error.
func (c *Client) ReadSummary(ctx context.Context, candidateID string, cycle int) (core.FinancialSummary, error) {
	params := url.Values{}
	params.Set("candidate_id", candidateID)
	params.Set("cycle", strconv.Itoa(cycle))

	env, err := c.getJSON(ctx, "candidate/"+url.PathEscape(candidateID)+"/totals", params)
	if err != nil {
		return core.FinancialSummary{}, fmt.Errorf("read summary for %s: %w", candidateID, err)
	}

	summary := core.FinancialSummary{CandidateID: candidateID, Cycle: cycle}
	if len(env.Results) > 0 {
		var tr totalsResult
		if err := json.Unmarshal(env.Results[0], &tr); err != nil {
			return core.FinancialSummary{}, fmt.Errorf("decode totals for %s: %w", candidateID, err)
		}
		summary.Receipts = tr.Receipts
		summary.Disbursements = tr.Disbursements
		summary.CashOnHand = tr.CashOnHand
		if tr.Cycle != 0 {
			summary.Cycle = tr.Cycle
		}
	}
	return summary, nil
}

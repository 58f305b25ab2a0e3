package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"scorecard/internal/adapters"
	"scorecard/internal/core"
	"scorecard/internal/fec"
	"scorecard/internal/fec/memory"
	"scorecard/internal/fec/openfec"
	"scorecard/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case OpenFECBackend:
		return f.createOpenFECBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// openFECBackend combines the live client with an optional cached fetcher.
type openFECBackend struct {
	*openfec.Client
	fetcher fec.ReceiptFetcher
}

func (b *openFECBackend) FetchReceipts(ctx context.Context, committeeID string, cycle int, maxPages int) ([]core.ContributionRecord, error) {
	return b.fetcher.FetchReceipts(ctx, committeeID, cycle, maxPages)
}

func (f *DefaultFactory) createOpenFECBackend(ctx context.Context, config Config) (*BackendResult, error) {
	client, err := openfec.NewClient(openfec.Config{
		BaseURL:        config.BaseURL,
		APIKey:         config.APIKey,
		RequestTimeout: config.RequestTimeout,
		RetryAttempts:  config.RetryAttempts,
		RetryDelay:     config.RetryDelay,
		RateDelay:      config.RateDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenFEC client: %w", err)
	}

	backend := &openFECBackend{Client: client, fetcher: client}
	cleanup := func() error { return nil }

	if config.SQLiteDBPath != "" {
		receiptCache, err := storage.NewReceiptCache(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize receipt cache: %w", err)
		}

		if pruned, err := receiptCache.PruneExpired(ctx, config.CacheMaxAge); err != nil {
			f.logger.WarnContext(ctx, "Failed to prune expired receipt cache", "error", err)
		} else if pruned > 0 {
			f.logger.InfoContext(ctx, "Pruned expired receipt cache entries", "count", pruned)
		}

		backend.fetcher = adapters.NewCachedReceiptFetcher(client, receiptCache, config.CacheMaxAge)
		cleanup = receiptCache.Close

		f.logger.InfoContext(ctx, "OpenFEC backend initialized with receipt cache",
			"db_path", config.SQLiteDBPath,
			"max_age", config.CacheMaxAge)
	} else {
		f.logger.InfoContext(ctx, "OpenFEC backend initialized without receipt cache")
	}

	return &BackendResult{Backend: backend, Cleanup: cleanup}, nil
}

// createMemoryBackend returns a fixture-backed store for local development
// and demos, seeded with two candidates.
func (f *DefaultFactory) createMemoryBackend() *BackendResult {
	store := memory.New()

	store.AddCandidate(core.Candidate{
		CandidateID: "H0DEMO0001",
		Name:        "SAMPLE, ALEX",
		Party:       "DEM",
		State:       "CA",
		District:    "12",
		Office:      "H",
		OfficeFull:  "House",
	})
	store.AddCommittee("H0DEMO0001", core.Committee{
		CommitteeID: "C00DEMO001",
		Name:        "SAMPLE FOR CONGRESS",
		Designation: "P",
	})
	store.AddReceipts("C00DEMO001",
		core.ContributionRecord{Amount: decimal.NewFromInt(5000), EntityType: core.EntityPAC, ContributorName: "GOOD GOVERNMENT PAC"},
		core.ContributionRecord{Amount: decimal.NewFromInt(2500), EntityType: core.EntityOrg, ContributorName: "EXAMPLE INDUSTRIES"},
		core.ContributionRecord{Amount: decimal.NewFromInt(150), EntityType: core.EntityInd, ContributorName: "RIVERA MARIA"},
		core.ContributionRecord{Amount: decimal.NewFromInt(800), EntityType: core.EntityInd, ContributorName: "CHEN WEI"},
		core.ContributionRecord{Amount: decimal.NewFromInt(75), EntityType: core.EntityInd, ContributorName: "ACTBLUE"},
	)
	store.SetSummary("H0DEMO0001", core.FinancialSummary{
		CandidateID: "H0DEMO0001",
		Cycle:       2026,
		Receipts:    8525,
	})

	store.AddCandidate(core.Candidate{
		CandidateID: "S0DEMO0002",
		Name:        "EXAMPLE, JORDAN",
		Party:       "REP",
		State:       "TX",
		Office:      "S",
		OfficeFull:  "Senate",
	})
	store.AddCommittee("S0DEMO0002", core.Committee{
		CommitteeID: "C00DEMO002",
		Name:        "EXAMPLE FOR SENATE",
		Designation: "P",
	})

	return &BackendResult{
		Backend: store,
		Cleanup: func() error { return nil },
	}
}

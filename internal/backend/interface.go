package backend

import (
	"context"

	"scorecard/internal/fec"
)

// Backend bundles every upstream data port the server needs.
type Backend interface {
	fec.CandidateSearcher
	fec.CommitteeLister
	fec.ReceiptFetcher
	fec.SummaryReader
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// BackendType represents the type of backend
type BackendType string

const (
	OpenFECBackend BackendType = "openfec"
	MemoryBackend  BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case OpenFECBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

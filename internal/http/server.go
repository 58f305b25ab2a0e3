package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"scorecard/internal/cache"
	"scorecard/internal/core"
	"scorecard/internal/fec"
	"scorecard/internal/middleware/ratelimit"
	"scorecard/internal/middleware/security"
	"scorecard/internal/middleware/trace"
	"scorecard/internal/services"
	appweb "scorecard/web"
)

// Options configures the HTTP server.
type Options struct {
	Addr              string
	DefaultCycle      int
	MaxPagesCap       int
	RequestsPerMinute int
}

type Server struct {
	http.Server

	searcher  fec.CandidateSearcher
	analyzer  *services.Analyzer
	summaries fec.SummaryReader

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	searchCache   *cache.LRUCache[[]core.Candidate]
	analysisCache *cache.LRUCache[*services.CandidateAnalysis]
	cacheManager  *cache.Manager

	defaultCycle int
	maxPagesCap  int
	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options, searcher fec.CandidateSearcher, analyzer *services.Analyzer, summaries fec.SummaryReader) *Server {
	if opts.DefaultCycle == 0 {
		opts.DefaultCycle = 2026
	}
	if opts.MaxPagesCap <= 0 {
		opts.MaxPagesCap = 10
	}

	detector := security.NewDetector()
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		searcher:      searcher,
		analyzer:      analyzer,
		summaries:     summaries,
		limiter:       ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RequestsPerMinute}),
		detector:      detector,
		tracer:        trace.NewMiddleware(detector.ExtractClientIP),
		searchCache:   cache.NewLRUCache[[]core.Candidate](200, 5*time.Minute),
		analysisCache: cache.NewLRUCache[*services.CandidateAnalysis](100, 10*time.Minute),
		cacheManager:  cache.NewManager(),
		defaultCycle:  opts.DefaultCycle,
		maxPagesCap:   opts.MaxPagesCap,
		startedAt:     time.Now(),
	}

	s.cacheManager.Register(s.searchCache)
	s.cacheManager.Register(s.analysisCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Static dashboard (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/search_candidates", s.withAPIGuard(s.handleSearchCandidates))
	mux.HandleFunc("/api/analyze_candidate", s.withAPIGuard(s.handleAnalyzeCandidate))
	mux.HandleFunc("/api/candidate_summary", s.withAPIGuard(s.handleCandidateSummary))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Handler = s.tracer.Middleware(headers.Middleware(mux))

	return s
}

// withAPIGuard applies per-IP rate limiting and suspicious-request logging
// to the JSON API endpoints.
func (s *Server) withAPIGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := s.detector.ExtractClientIP(r)

		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", clientIP,
				"method", r.Method,
				"path", r.URL.Path)
		}

		if !s.limiter.Allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP,
				"path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorBody("Rate limit exceeded. Please try again later."))
			return
		}

		next(w, r)
	}
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

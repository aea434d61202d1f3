package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"expensewise/internal/cache"
	"expensewise/internal/log"
	"expensewise/internal/middleware/security"
	"expensewise/internal/middleware/trace"
	"expensewise/internal/services"
)

// Options tunes the server. Zero values select the defaults; a negative
// CacheSize disables view caching.
type Options struct {
	Logger       *log.Logger
	CacheSize    int
	CacheTTL     time.Duration
	CleanupEvery time.Duration
	Now          func() time.Time
}

type Server struct {
	http.Server
	svc    *services.Services
	logger *log.Logger

	// views caches dashboard and analytics rollups; every write purges it.
	views        *cache.LRUCache[any]
	cacheManager *cache.Manager
	trace        *trace.Middleware

	started      time.Time
	now          func() time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *services.Services, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = 64
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	if opts.CleanupEvery <= 0 {
		opts.CleanupEvery = time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		svc:          svc,
		logger:       logger,
		views:        cache.NewLRUCache[any](opts.CacheSize, opts.CacheTTL),
		cacheManager: cache.NewManager(opts.Logger.WithComponent(log.ComponentCache).Slog()),
		now:          opts.Now,
	}
	s.started = s.now()
	s.cacheManager.Register(s.views)
	s.cacheManager.StartCleanup(opts.CleanupEvery)

	resolver := security.NewIPResolver()
	s.trace = trace.NewMiddleware(logger, resolver.ExtractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	mux := http.NewServeMux()
	s.routes(mux)

	var h http.Handler = mux
	h = headers.Middleware(h)
	h = s.trace.Middleware(h)
	h = log.Middleware(logger)(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.writes(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/search", s.handleSearchExpenses)
	mux.HandleFunc("POST /api/expenses/delete", s.writes(s.handleDeleteExpenses))
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.writes(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.writes(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /api/subscriptions", s.writes(s.handleCreateSubscription))
	mux.HandleFunc("PUT /api/subscriptions/{id}", s.writes(s.handleUpdateSubscription))
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.writes(s.handleDeleteSubscription))
	mux.HandleFunc("POST /api/subscriptions/{id}/toggle", s.writes(s.handleToggleSubscription))

	mux.HandleFunc("GET /api/loans", s.handleListLoans)
	mux.HandleFunc("POST /api/loans", s.writes(s.handleCreateLoan))
	mux.HandleFunc("PUT /api/loans/{id}", s.writes(s.handleUpdateLoan))
	mux.HandleFunc("DELETE /api/loans/{id}", s.writes(s.handleDeleteLoan))
	mux.HandleFunc("POST /api/loans/{id}/paid", s.writes(s.handleMarkLoanPaid))

	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.writes(s.handleUpdateProfile))
	mux.HandleFunc("POST /api/onboarding", s.writes(s.handleOnboarding))

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.writes(s.handleCreateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.writes(s.handleDeleteBudget))

	mux.HandleFunc("GET /api/filters", s.handleListFilters)
	mux.HandleFunc("POST /api/filters", s.writes(s.handleCreateFilter))
	mux.HandleFunc("DELETE /api/filters/{id}", s.writes(s.handleDeleteFilter))
	mux.HandleFunc("GET /api/filters/{id}/expenses", s.handleApplyFilter)

	mux.HandleFunc("POST /api/reset", s.writes(s.handleReset))
}

// writes wraps a mutating handler so cached views are dropped once it
// returns. Successful writes are logged as entity changes.
func (s *Server) writes(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer s.InvalidateViews()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		if rec.status < http.StatusBadRequest {
			op, resource := changeOf(r)
			log.NewStructuredLogger(log.FromContextOr(r.Context(), s.logger)).
				LogEntityChange(r.Context(), op, resource, r.PathValue("id"))
		}
	}
}

// changeOf names the operation and resource a write request performs.
func changeOf(r *http.Request) (op, resource string) {
	segments := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/"), "/")
	resource = segments[0]
	last := segments[len(segments)-1]
	switch {
	case resource == "reset":
		op = log.OpReset
	case r.Method == http.MethodDelete || (len(segments) > 1 && last == "delete"):
		op = log.OpDelete
	case r.Method == http.MethodPut || r.PathValue("id") != "":
		op = log.OpUpdate
	default:
		op = log.OpCreate
	}
	return op, resource
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true
	return rec.ResponseWriter.Write(b)
}

// InvalidateViews drops every cached rollup.
func (s *Server) InvalidateViews() {
	s.views.Purge()
}

// Shutdown stops the cache cleanup routine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	})
}

// handleReady verifies the store answers a read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"store": "ok"}
	status, code := "ready", http.StatusOK
	if _, err := s.svc.Profile.NeedsOnboarding(ctx); err != nil {
		checks["store"] = "failed: " + err.Error()
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": s.now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics exposes request and cache counters in plain text.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := s.trace.GetMetrics()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "http_requests_total %d\n", m.TotalRequests)
	fmt.Fprintf(w, "http_server_errors_total %d\n", m.ServerErrors)
	fmt.Fprintf(w, "http_requests_in_flight %d\n", m.InFlight)
	fmt.Fprintf(w, "view_cache_entries %d\n", s.views.Size())
	fmt.Fprintf(w, "uptime_seconds %d\n", int64(s.now().Sub(s.started).Seconds()))
}

type categoriesResponse struct {
	Categories     []taxonomy.Entry     `json:"categories"`
	PaymentMethods []core.PaymentMethod `json:"paymentMethods"`
	Currencies     []core.Currency      `json:"currencies"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{
		Categories:     taxonomy.Entries(),
		PaymentMethods: core.PaymentMethods(),
		Currencies:     core.Currencies,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var d core.ProfileDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.svc.Profile.Update(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var d core.ProfileDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.svc.Profile.Setup(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// handleReset wipes every namespace. The body must carry {"confirm": true}.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if !req.Confirm {
		writeError(w, r, &core.ValidationError{Entity: "reset", Reasons: []string{"confirm must be true"}})
		return
	}
	if err := s.svc.Reset.ClearAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

// pathID returns the {id} path segment or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, &decodeError{msg: "missing id"})
		return "", false
	}
	return id, true
}

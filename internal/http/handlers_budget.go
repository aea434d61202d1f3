package http

import (
	"net/http"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
)

type budgetsResponse struct {
	Budgets  []core.Budget            `json:"budgets"`
	Progress []analytics.BudgetStatus `json:"progress"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Budgets.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	progress, err := s.svc.Budgets.Progress(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetsResponse{Budgets: list, Progress: progress})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var d core.BudgetDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.svc.Budgets.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Budgets.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleListFilters(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Filters.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateFilter(w http.ResponseWriter, r *http.Request) {
	var d core.FilterDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	f, err := s.svc.Filters.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleDeleteFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Filters.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleApplyFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.svc.Filters.Apply(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

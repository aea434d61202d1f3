package http

import (
	"net/http"

	"expensewise/internal/core"
)

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Loans.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var d core.LoanDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	l, err := s.svc.Loans.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// handleUpdateLoan edits loan details. The body has no status field;
// settlement only happens through handleMarkLoanPaid.
func (s *Server) handleUpdateLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var d core.LoanDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	l, err := s.svc.Loans.Update(r.Context(), id, d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleMarkLoanPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := s.svc.Loans.MarkPaid(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Loans.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

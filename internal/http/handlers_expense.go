package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

// handleListExpenses lists expenses newest first. Query parameters
// category, paymentMethod, tag (all repeatable), from, to, min and max
// narrow the list.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f, filtered, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var list []core.Expense
	if filtered {
		list, err = s.svc.Expenses.Filter(r.Context(), f)
	} else {
		list, err = s.svc.Expenses.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearchExpenses(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Expenses.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.svc.Expenses.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var d core.ExpenseDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := s.svc.Expenses.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+e.ID).
		Body(e).
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var d core.ExpenseDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := s.svc.Expenses.Update(r.Context(), id, d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Expenses.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

// handleDeleteExpenses deletes a batch of ids independently. Partial
// failure answers 207 with the per-id outcome.
func (s *Server) handleDeleteExpenses(w http.ResponseWriter, r *http.Request) {
	var req idList
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ids := cleanIDs(req.IDs)
	if len(ids) == 0 {
		writeError(w, r, &core.ValidationError{Entity: "batch delete", Reasons: []string{"ids must not be empty"}})
		return
	}
	res := s.svc.Expenses.DeleteMany(r.Context(), ids)
	status := http.StatusOK
	if len(res.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, res)
}

// parseFilterQuery builds filter criteria from query parameters. filtered
// is false when no parameter constrains the list.
func parseFilterQuery(q url.Values) (f core.FilterCriteria, filtered bool, err error) {
	for _, raw := range q["category"] {
		c, perr := taxonomy.Parse(raw)
		if perr != nil {
			return f, false, &decodeError{msg: perr.Error()}
		}
		f.Categories = append(f.Categories, c)
	}
	for _, raw := range q["paymentMethod"] {
		pm, ok := core.ParsePaymentMethod(raw)
		if !ok {
			return f, false, &decodeError{msg: "unknown payment method " + raw}
		}
		f.PaymentMethods = append(f.PaymentMethods, pm)
	}
	for _, tag := range q["tag"] {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	if f.StartDate, err = optionalDate(q.Get("from")); err != nil {
		return f, false, err
	}
	if f.EndDate, err = optionalDate(q.Get("to")); err != nil {
		return f, false, err
	}
	if f.MinAmount, err = optionalAmount(q.Get("min")); err != nil {
		return f, false, err
	}
	if f.MaxAmount, err = optionalAmount(q.Get("max")); err != nil {
		return f, false, err
	}
	filtered = len(f.Categories) > 0 || len(f.PaymentMethods) > 0 || len(f.Tags) > 0 ||
		!f.StartDate.IsZero() || !f.EndDate.IsZero() || f.MinAmount != nil || f.MaxAmount != nil
	return f, filtered, nil
}

func optionalDate(s string) (core.Date, error) {
	if strings.TrimSpace(s) == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, &decodeError{msg: err.Error()}
	}
	return d, nil
}

func optionalAmount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := core.ParseAmount(s)
	if err != nil {
		return nil, &decodeError{msg: err.Error()}
	}
	return &d, nil
}

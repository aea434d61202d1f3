package http

import (
	"net/http"

	"expensewise/internal/analytics"
	"expensewise/internal/cache"
	"expensewise/internal/log"
	"expensewise/internal/services"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := analytics.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, &decodeError{msg: err.Error()})
		return
	}
	view, err := cache.Memo(s.views, "dashboard:"+string(period), func() (any, error) {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Computing dashboard", log.FieldPeriod, period)
		return s.svc.Analytics.Dashboard(r.Context(), period)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type analyticsResponse struct {
	Monthly       analytics.MonthlyView         `json:"monthly"`
	Loans         analytics.LoanLedger          `json:"loans"`
	Subscriptions services.SubscriptionOverview `json:"subscriptions"`
	Budgets       []analytics.BudgetStatus      `json:"budgets"`
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	view, err := cache.Memo(s.views, "analytics", func() (any, error) {
		return s.buildAnalytics(r)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) buildAnalytics(r *http.Request) (analyticsResponse, error) {
	ctx := r.Context()
	var (
		out analyticsResponse
		err error
	)
	if out.Monthly, err = s.svc.Analytics.Monthly(ctx); err != nil {
		return out, err
	}
	if out.Loans, err = s.svc.Analytics.Loans(ctx); err != nil {
		return out, err
	}
	if out.Subscriptions, err = s.svc.Analytics.Subscriptions(ctx); err != nil {
		return out, err
	}
	if out.Budgets, err = s.svc.Budgets.Progress(ctx); err != nil {
		return out, err
	}
	return out, nil
}

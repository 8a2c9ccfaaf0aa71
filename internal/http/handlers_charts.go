package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"expensetracker/internal/charts"
	"expensetracker/internal/core"
)

// Chart data endpoints feed the analytics tab; the browser renders the
// returned Chart structures.

const chartExpenseLimit = 1000

func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	expenses, err := s.store.GetExpenses(r.Context(), sess.User.ID, chartExpenseLimit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Daily chart data failed", "error", err)
		http.Error(w, "failed to load chart data", http.StatusBadGateway)
		return
	}
	writeChart(w, charts.Daily(expenses))
}

func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	expenses, err := s.store.GetExpenses(r.Context(), sess.User.ID, chartExpenseLimit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly chart data failed", "error", err)
		http.Error(w, "failed to load chart data", http.StatusBadGateway)
		return
	}
	writeChart(w, charts.Monthly(expenses))
}

// handleCategoryChart breaks the last 30 days down by category.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	end := core.Today()
	start := end.AddDays(-30)

	totals, err := s.store.CategoryTotalsForPeriod(r.Context(), sess.User.ID, start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category chart data failed", "error", err)
		http.Error(w, "failed to load chart data", http.StatusBadGateway)
		return
	}
	writeChart(w, charts.CategoryPie(totals))
}

func writeChart(w http.ResponseWriter, chart charts.Chart) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chart)
}

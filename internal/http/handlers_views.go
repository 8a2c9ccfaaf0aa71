package http

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"expensetracker/internal/core"
)

// pageHeader is the chrome shared by every authenticated view: who is
// logged in, the display currency, and the active tab.
type pageHeader struct {
	Username   string
	Currency   string
	Currencies []string
	Symbol     string
	Active     string
	Notice     string
	Error      string
}

func (s *Server) header(r *http.Request, active string) pageHeader {
	sess := sessionFrom(r)
	currency := s.store.GetUserCurrency(r.Context(), sess.User.ID)
	return pageHeader{
		Username:   sess.User.Username,
		Currency:   currency,
		Currencies: core.Currencies,
		Symbol:     core.SymbolFor(currency),
		Active:     active,
		Notice:     noticeFrom(r),
		Error:      errorFrom(r),
	}
}

func (s *Server) categoryNames(r *http.Request, userID core.ID) []string {
	cats, err := s.store.GetCategories(r.Context(), userID)
	if err != nil {
		slog.WarnContext(r.Context(), "Could not load categories", "error", err)
		return nil
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

type dashboardData struct {
	pageHeader
	DailyTotal   float64
	WeeklyTotal  float64
	MonthlyTotal float64
	Recent       []core.Expense
	Categories   []string
	FormDate     string
	FormTime     string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	userID := sess.User.ID
	today := core.Today()

	data := dashboardData{
		pageHeader: s.header(r, "dashboard"),
		Categories: s.categoryNames(r, userID),
		FormDate:   today.String(),
		FormTime:   time.Now().Format(core.ClockLayout),
	}

	var loadFailed bool
	var err error
	if data.DailyTotal, err = s.store.DailyTotal(r.Context(), userID, today); err != nil {
		slog.ErrorContext(r.Context(), "Daily total failed", "error", err)
		loadFailed = true
	}
	if data.WeeklyTotal, err = s.store.WeeklyTotal(r.Context(), userID, today); err != nil {
		slog.ErrorContext(r.Context(), "Weekly total failed", "error", err)
		loadFailed = true
	}
	if data.MonthlyTotal, err = s.store.MonthlyTotal(r.Context(), userID, today); err != nil {
		slog.ErrorContext(r.Context(), "Monthly total failed", "error", err)
		loadFailed = true
	}
	if data.Recent, err = s.store.GetRecentExpenses(r.Context(), userID, 10); err != nil {
		slog.ErrorContext(r.Context(), "Recent expenses failed", "error", err)
		loadFailed = true
	}
	if loadFailed && data.Error == "" {
		data.Error = errorTexts["load_failed"]
	}

	s.render(w, r, "dashboard_page", data)
}

type historyData struct {
	pageHeader
	Categories []string
	Category   string
	FromDate   string
	ToDate     string
	Expenses   []core.Expense
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	userID := sess.User.ID
	today := core.Today()

	from := today.AddDate(0, -1, 0).Format(core.DateLayout)
	if v := r.URL.Query().Get("from"); v != "" {
		from = v
	}
	to := today.String()
	if v := r.URL.Query().Get("to"); v != "" {
		to = v
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "All"
	}

	data := historyData{
		pageHeader: s.header(r, "history"),
		Categories: s.categoryNames(r, userID),
		Category:   category,
		FromDate:   from,
		ToDate:     to,
	}

	start, errFrom := core.ParseDate(from)
	end, errTo := core.ParseDate(to)
	if errFrom != nil || errTo != nil {
		data.Error = errorTexts["invalid_date"]
		s.render(w, r, "history_page", data)
		return
	}

	expenses, err := s.store.GetExpensesByDateRange(r.Context(), userID, start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "History fetch failed", "error", err)
		data.Error = errorTexts["load_failed"]
		s.render(w, r, "history_page", data)
		return
	}

	// Category narrowing happens here, after the range fetch; it is not
	// pushed into the backend filter.
	if category != "All" {
		filtered := expenses[:0]
		for _, e := range expenses {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}
	data.Expenses = expenses

	s.render(w, r, "history_page", data)
}

type searchData struct {
	pageHeader
	Categories []string
	Query      string
	Category   string
	MinAmount  string
	MaxAmount  string
	Submitted  bool
	Expenses   []core.Expense
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	userID := sess.User.ID
	q := r.URL.Query()

	data := searchData{
		pageHeader: s.header(r, "search"),
		Categories: s.categoryNames(r, userID),
		Query:      q.Get("q"),
		Category:   q.Get("category"),
		MinAmount:  q.Get("min"),
		MaxAmount:  q.Get("max"),
		Submitted:  q.Get("submitted") != "",
	}
	if data.Category == "" {
		data.Category = "All"
	}
	if !data.Submitted {
		s.render(w, r, "search_page", data)
		return
	}

	minAmount := 0.0
	if data.MinAmount != "" {
		v, err := core.ParseAmount(data.MinAmount)
		if err != nil {
			data.Error = errorTexts["invalid_amount"]
			s.render(w, r, "search_page", data)
			return
		}
		minAmount = v
	}
	maxAmount := math.Inf(1)
	if data.MaxAmount != "" {
		v, err := core.ParseAmount(data.MaxAmount)
		if err != nil {
			data.Error = errorTexts["invalid_amount"]
			s.render(w, r, "search_page", data)
			return
		}
		maxAmount = v
	}

	category := data.Category
	if category == "All" {
		category = ""
	}

	expenses, err := s.store.SearchExpenses(r.Context(), userID, data.Query, category, minAmount, maxAmount)
	if err != nil {
		slog.ErrorContext(r.Context(), "Search failed", "error", err)
		data.Error = errorTexts["load_failed"]
		s.render(w, r, "search_page", data)
		return
	}
	data.Expenses = expenses

	s.render(w, r, "search_page", data)
}

type analyticsData struct {
	pageHeader
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "analytics_page", analyticsData{pageHeader: s.header(r, "analytics")})
}

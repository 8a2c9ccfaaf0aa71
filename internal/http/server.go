// Package http implements the application shell: the session/login flow and
// the tabbed views (dashboard, history, analytics, search) rendered over the
// remote data access layer. All data calls are synchronous within the
// request; every mutation redirects into a full reload of the affected view.
package http

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
	"expensetracker/internal/supabase"
	appweb "expensetracker/web"
)

// Store is the port over the remote data access module; the shell never
// talks to the backend directly.
type Store interface {
	RegisterUser(ctx context.Context, username, password, email string) error
	LoginUser(ctx context.Context, username, password string) (*core.User, error)
	GetUserCurrency(ctx context.Context, id core.ID) string
	SetUserCurrency(ctx context.Context, id core.ID, currency string) error

	AddExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id core.ID) error
	GetExpenses(ctx context.Context, userID core.ID, limit int) ([]core.Expense, error)
	GetRecentExpenses(ctx context.Context, userID core.ID, limit int) ([]core.Expense, error)
	GetExpensesByDateRange(ctx context.Context, userID core.ID, start, end core.Date) ([]core.Expense, error)
	SearchExpenses(ctx context.Context, userID core.ID, query, category string, minAmount, maxAmount float64) ([]core.Expense, error)

	DailyTotal(ctx context.Context, userID core.ID, day core.Date) (float64, error)
	WeeklyTotal(ctx context.Context, userID core.ID, ref core.Date) (float64, error)
	MonthlyTotal(ctx context.Context, userID core.ID, ref core.Date) (float64, error)
	CategoryTotalsForPeriod(ctx context.Context, userID core.ID, start, end core.Date) (map[string]float64, error)

	GetCategories(ctx context.Context, userID core.ID) ([]core.Category, error)
	AddCategory(ctx context.Context, userID core.ID, name, color string) error
}

// The remote client is the production Store.
var _ Store = (*supabase.Client)(nil)

const sessionTTL = 12 * time.Hour

type Server struct {
	http.Server
	store     Store
	sessions  *sessionStore
	creds     auth.CredentialFile
	templates *template.Template
}

func NewServer(addr string, store Store, creds auth.CredentialFile) (*Server, error) {
	funcs := template.FuncMap{
		"money": func(symbol string, amount float64) string {
			return fmt.Sprintf("%s%.2f", symbol, amount)
		},
	}
	templates, err := template.New("").Funcs(funcs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		store:     store,
		sessions:  newSessionStore(sessionTTL),
		creds:     creds,
		templates: templates,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /login/clear", s.handleClearSavedLogin)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /logout", s.requireSession(s.handleLogout))

	mux.HandleFunc("GET /{$}", s.requireSession(s.handleDashboard))
	mux.HandleFunc("GET /history", s.requireSession(s.handleHistory))
	mux.HandleFunc("GET /analytics", s.requireSession(s.handleAnalytics))
	mux.HandleFunc("GET /search", s.requireSession(s.handleSearch))

	mux.HandleFunc("POST /expenses", s.requireSession(s.handleAddExpense))
	mux.HandleFunc("GET /expenses/delete", s.requireSession(s.handleDeleteConfirm))
	mux.HandleFunc("POST /expenses/delete", s.requireSession(s.handleDeleteExpense))
	mux.HandleFunc("POST /currency", s.requireSession(s.handleChangeCurrency))

	mux.HandleFunc("GET /api/charts/daily", s.requireSession(s.handleDailyChart))
	mux.HandleFunc("GET /api/charts/monthly", s.requireSession(s.handleMonthlyChart))
	mux.HandleFunc("GET /api/charts/category", s.requireSession(s.handleCategoryChart))

	mux.Handle("GET /static/", http.FileServer(http.FS(appweb.StaticFS)))

	s.Addr = addr
	s.Handler = logRequests(s.withSession(mux))
	return s, nil
}

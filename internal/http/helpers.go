package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Flash messages travel as short codes in the query string so a redirect
// never reflects user-controlled text back into a page.
var noticeTexts = map[string]string{
	"registered":          "Registration successful! Please log in.",
	"expense_added":       "Expense added successfully!",
	"expense_deleted":     "Expense deleted!",
	"currency_changed":    "Currency updated.",
	"saved_login_cleared": "Saved login cleared.",
}

var errorTexts = map[string]string{
	"invalid_amount":  "Invalid amount entered",
	"invalid_date":    "Invalid date entered",
	"invalid_time":    "Invalid time entered",
	"add_failed":      "Failed to add expense",
	"delete_failed":   "Failed to delete expense",
	"currency_failed": "Failed to change currency",
	"load_failed":     "Some data could not be loaded",
}

func noticeFrom(r *http.Request) string {
	return noticeTexts[r.URL.Query().Get("notice")]
}

func errorFrom(r *http.Request) string {
	return errorTexts[r.URL.Query().Get("error")]
}

func redirectWith(w http.ResponseWriter, r *http.Request, path, kind, code string) {
	u := url.URL{Path: path}
	if code != "" {
		q := url.Values{kind: {code}}
		u.RawQuery = q.Encode()
	}
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// safeReturnPath keeps post-action redirects on-site.
func safeReturnPath(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}
	return raw
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

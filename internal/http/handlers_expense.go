package http

import (
	"log/slog"
	"net/http"
	"strings"

	"expensetracker/internal/core"
)

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	amount, err := core.ParseAmount(r.FormValue("amount"))
	if err != nil {
		redirectWith(w, r, "/", "error", "invalid_amount")
		return
	}
	date, err := core.ParseDate(r.FormValue("date"))
	if err != nil {
		redirectWith(w, r, "/", "error", "invalid_date")
		return
	}
	clock, err := core.ParseClock(r.FormValue("time"))
	if err != nil {
		redirectWith(w, r, "/", "error", "invalid_time")
		return
	}

	expense := core.Expense{
		UserID:        sess.User.ID,
		Amount:        amount,
		Category:      r.FormValue("category"),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Date:          date,
		Time:          clock,
		PaymentMethod: strings.TrimSpace(r.FormValue("payment_method")),
		TransactionID: strings.TrimSpace(r.FormValue("transaction_id")),
	}

	if err := s.store.AddExpense(r.Context(), expense); err != nil {
		slog.ErrorContext(r.Context(), "Add expense failed", "error", err)
		redirectWith(w, r, "/", "error", "add_failed")
		return
	}
	redirectWith(w, r, "/", "notice", "expense_added")
}

type confirmDeleteData struct {
	pageHeader
	ExpenseID  string
	ReturnPath string
}

// handleDeleteConfirm shows the explicit confirmation step; the actual
// delete only happens on the POST it leads to.
func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/history", http.StatusSeeOther)
		return
	}
	s.render(w, r, "confirm_delete_page", confirmDeleteData{
		pageHeader: s.header(r, "history"),
		ExpenseID:  id,
		ReturnPath: safeReturnPath(r.URL.Query().Get("return"), "/history"),
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	returnPath := safeReturnPath(r.FormValue("return"), "/history")
	if id == "" {
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteExpense(r.Context(), core.ID(id)); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", "id", id, "error", err)
		redirectWith(w, r, returnPath, "error", "delete_failed")
		return
	}
	redirectWith(w, r, returnPath, "notice", "expense_deleted")
}

func (s *Server) handleChangeCurrency(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	returnPath := safeReturnPath(r.FormValue("return"), "/")

	code := r.FormValue("currency")
	if _, ok := core.CurrencySymbols[code]; !ok {
		redirectWith(w, r, returnPath, "error", "currency_failed")
		return
	}

	if err := s.store.SetUserCurrency(r.Context(), sess.User.ID, code); err != nil {
		slog.ErrorContext(r.Context(), "Currency change failed", "currency", code, "error", err)
		redirectWith(w, r, returnPath, "error", "currency_failed")
		return
	}
	redirectWith(w, r, returnPath, "notice", "currency_changed")
}

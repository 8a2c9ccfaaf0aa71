package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"expensetracker/internal/core"
)

func decodeExpenses(data []byte) ([]core.Expense, error) {
	var expenses []core.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("expense row %d: %w", i, err)
		}
	}
	return expenses, nil
}

func (c *Client) listExpenses(ctx context.Context, query url.Values) ([]core.Expense, error) {
	data, err := c.do(ctx, http.MethodGet, "expenses", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeExpenses(data)
}

// AddExpense inserts a new expense row for its owner.
func (c *Client) AddExpense(ctx context.Context, e core.Expense) error {
	row := map[string]any{
		"user_id":        e.UserID,
		"amount":         e.Amount,
		"category":       e.Category,
		"description":    e.Description,
		"date":           e.Date.String(),
		"time":           e.Time,
		"payment_method": e.PaymentMethod,
		"transaction_id": e.TransactionID,
	}
	if _, err := c.do(ctx, http.MethodPost, "expenses", nil, row); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// UpdateExpense patches the given columns on one expense row.
func (c *Client) UpdateExpense(ctx context.Context, id core.ID, fields map[string]any) error {
	query := url.Values{"id": {eq(string(id))}}
	if _, err := c.do(ctx, http.MethodPatch, "expenses", query, fields); err != nil {
		return fmt.Errorf("update expense %s: %w", id, err)
	}
	return nil
}

// DeleteExpense removes one expense row by primary key.
func (c *Client) DeleteExpense(ctx context.Context, id core.ID) error {
	query := url.Values{"id": {eq(string(id))}}
	if _, err := c.do(ctx, http.MethodDelete, "expenses", query, nil); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	return nil
}

// GetExpenses lists a user's expenses, newest date first.
func (c *Client) GetExpenses(ctx context.Context, userID core.ID, limit int) ([]core.Expense, error) {
	query := url.Values{
		"user_id": {eq(string(userID))},
		"limit":   {strconv.Itoa(limit)},
		"order":   {"date.desc"},
	}
	return c.listExpenses(ctx, query)
}

// GetRecentExpenses lists the most recent expenses, breaking date ties on
// the time-of-day column.
func (c *Client) GetRecentExpenses(ctx context.Context, userID core.ID, limit int) ([]core.Expense, error) {
	query := url.Values{
		"user_id": {eq(string(userID))},
		"limit":   {strconv.Itoa(limit)},
		"order":   {"date.desc,time.desc"},
	}
	return c.listExpenses(ctx, query)
}

// GetExpensesByDateRange lists expenses with inclusive date bounds, newest
// first. This is the building block for every time-window aggregate and the
// history view.
func (c *Client) GetExpensesByDateRange(ctx context.Context, userID core.ID, start, end core.Date) ([]core.Expense, error) {
	query := url.Values{
		"user_id": {eq(string(userID))},
		"date":    {"gte." + start.String(), "lte." + end.String()},
		"order":   {"date.desc"},
	}
	return c.listExpenses(ctx, query)
}

// GetExpensesByCategory lists a user's expenses for one category, newest
// first.
func (c *Client) GetExpensesByCategory(ctx context.Context, userID core.ID, category string) ([]core.Expense, error) {
	query := url.Values{
		"user_id":  {eq(string(userID))},
		"category": {eq(category)},
		"order":    {"date.desc"},
	}
	return c.listExpenses(ctx, query)
}

// SearchExpenses filters server-side on the amount bounds and an optional
// category. The free-text query is matched client-side against description
// and transaction id, case-insensitively; the filter grammar used here has
// no convenient OR-across-columns text search. An infinite or non-positive
// max bound is treated as unbounded and omitted from the filter.
func (c *Client) SearchExpenses(ctx context.Context, userID core.ID, textQuery, category string, minAmount, maxAmount float64) ([]core.Expense, error) {
	query := url.Values{
		"user_id": {eq(string(userID))},
		"amount":  {"gte." + formatAmount(minAmount)},
		"order":   {"date.desc"},
	}
	if !math.IsInf(maxAmount, 1) && maxAmount > 0 {
		query.Add("amount", "lte."+formatAmount(maxAmount))
	}
	if category != "" {
		query.Set("category", eq(category))
	}

	expenses, err := c.listExpenses(ctx, query)
	if err != nil {
		return nil, err
	}

	textQuery = strings.ToLower(strings.TrimSpace(textQuery))
	if textQuery == "" {
		return expenses, nil
	}
	matched := expenses[:0]
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Description), textQuery) ||
			strings.Contains(strings.ToLower(e.TransactionID), textQuery) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

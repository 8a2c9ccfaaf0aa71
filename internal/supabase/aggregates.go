package supabase

import (
	"context"

	"expensetracker/internal/core"
)

func sumAmounts(expenses []core.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// DailyTotal sums a single calendar day.
func (c *Client) DailyTotal(ctx context.Context, userID core.ID, day core.Date) (float64, error) {
	expenses, err := c.GetExpensesByDateRange(ctx, userID, day, day)
	if err != nil {
		return 0, err
	}
	return sumAmounts(expenses), nil
}

// WeeklyTotal sums the Monday..Sunday week containing the reference date.
func (c *Client) WeeklyTotal(ctx context.Context, userID core.ID, ref core.Date) (float64, error) {
	start, end := core.WeekRange(ref)
	expenses, err := c.GetExpensesByDateRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}
	return sumAmounts(expenses), nil
}

// MonthlyTotal sums the calendar month containing the reference date.
func (c *Client) MonthlyTotal(ctx context.Context, userID core.ID, ref core.Date) (float64, error) {
	start, end := core.MonthRange(ref)
	expenses, err := c.GetExpensesByDateRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}
	return sumAmounts(expenses), nil
}

// YearlyTotal sums one calendar year.
func (c *Client) YearlyTotal(ctx context.Context, userID core.ID, year int) (float64, error) {
	start, end := core.YearRange(year)
	expenses, err := c.GetExpensesByDateRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}
	return sumAmounts(expenses), nil
}

// CategoryTotalsForPeriod groups a date window's expenses by category name
// and sums the amounts per group.
func (c *Client) CategoryTotalsForPeriod(ctx context.Context, userID core.ID, start, end core.Date) (map[string]float64, error) {
	expenses, err := c.GetExpensesByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(expenses))
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals, nil
}

package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"expensetracker/internal/core"
)

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#3B82F6"

// GetCategories lists a user's categories.
func (c *Client) GetCategories(ctx context.Context, userID core.ID) ([]core.Category, error) {
	query := url.Values{"user_id": {eq(string(userID))}}
	data, err := c.do(ctx, http.MethodGet, "categories", query, nil)
	if err != nil {
		return nil, err
	}
	var categories []core.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// AddCategory inserts a category row for the given owner.
func (c *Client) AddCategory(ctx context.Context, userID core.ID, name, color string) error {
	if color == "" {
		color = DefaultCategoryColor
	}
	row := map[string]any{
		"user_id": userID,
		"name":    name,
		"color":   color,
	}
	if _, err := c.do(ctx, http.MethodPost, "categories", nil, row); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

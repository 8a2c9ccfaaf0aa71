package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/config"
	"expensetracker/internal/core"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		SupabaseURL: baseURL,
		SupabaseKey: "test-anon-key",
		HTTPTimeout: 5 * time.Second,
	}
}

func TestNewRequiresURLAndKey(t *testing.T) {
	_, err := New(&config.Config{SupabaseKey: "k", HTTPTimeout: time.Second})
	require.Error(t, err)

	_, err = New(&config.Config{SupabaseURL: "https://x", HTTPTimeout: time.Second})
	require.Error(t, err)

	c, err := New(testConfig("https://project.supabase.co/"))
	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co", c.baseURL)
}

func TestRequestShapeAndHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	start := core.NewDate(2024, 1, 1)
	end := core.NewDate(2024, 1, 31)
	_, err = c.GetExpensesByDateRange(context.Background(), "u-1", start, end)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/rest/v1/expenses", got.URL.Path)
	assert.Equal(t, "test-anon-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer test-anon-key", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))

	q := got.URL.Query()
	assert.Equal(t, "eq.u-1", q.Get("user_id"))
	assert.ElementsMatch(t, []string{"gte.2024-01-01", "lte.2024-01-31"}, q["date"])
	assert.Equal(t, "date.desc", q.Get("order"))
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.GetExpenses(context.Background(), "u-1", 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Body, "permission denied")
}

func TestTransportFailureIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.GetExpenses(context.Background(), "u-1", 10)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not APIErrors")
}

func TestEmptyBodyOnInsertIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	err = c.AddExpense(context.Background(), core.Expense{
		UserID:   "u-1",
		Amount:   12.00,
		Category: "Other",
		Date:     core.NewDate(2024, 1, 15),
		Time:     "09:00:00",
	})
	assert.NoError(t, err)
}

func TestMalformedRowFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Row with no id and an unparseable date must be rejected at the
		// boundary instead of flowing into the views.
		_, _ = w.Write([]byte(`[{"user_id":"u-1","amount":5,"date":"01/15/2024"}]`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.GetExpenses(context.Background(), "u-1", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidDate)
}

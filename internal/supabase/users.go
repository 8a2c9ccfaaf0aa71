package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
)

func (c *Client) getUserByUsername(ctx context.Context, username string) (*core.User, error) {
	query := url.Values{"username": {eq(username)}}
	data, err := c.do(ctx, http.MethodGet, "users", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeSingleUser(data)
}

func decodeSingleUser(data []byte) (*core.User, error) {
	var users []core.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	u := users[0]
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("user row: %w", err)
	}
	return &u, nil
}

// RegisterUser creates a new account after checking that the username is
// free. The check and the insert are two separate calls, so a concurrent
// registration elsewhere can still slip in between them; the backend is
// assumed to enforce uniqueness server-side.
func (c *Client) RegisterUser(ctx context.Context, username, password, email string) error {
	existing, err := c.getUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hash, salt, err := auth.DeriveCredential(password)
	if err != nil {
		return fmt.Errorf("derive credential: %w", err)
	}

	row := map[string]any{
		"username":      username,
		"password_hash": hash,
		"password_salt": salt,
	}
	if email != "" {
		row["email"] = email
	}

	if _, err := c.do(ctx, http.MethodPost, "users", nil, row); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	slog.InfoContext(ctx, "User registered", "username", username)
	return nil
}

// LoginUser fetches the account row and verifies the password. Unknown
// username and wrong password collapse into the same error so the login
// form cannot be used to enumerate accounts.
func (c *Client) LoginUser(ctx context.Context, username, password string) (*core.User, error) {
	u, err := c.getUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !auth.VerifyCredential(u.PasswordHash, u.PasswordSalt, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetUserByID fetches a single account row.
func (c *Client) GetUserByID(ctx context.Context, id core.ID) (*core.User, error) {
	query := url.Values{"id": {eq(string(id))}}
	data, err := c.do(ctx, http.MethodGet, "users", query, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeSingleUser(data)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// GetUserCurrency returns the user's preferred display currency. Absence
// and fetch failures both fall back to the default; currency is cosmetic
// and must never block a view.
func (c *Client) GetUserCurrency(ctx context.Context, id core.ID) string {
	u, err := c.GetUserByID(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "Falling back to default currency", "user_id", id, "error", err)
		return core.DefaultCurrency
	}
	if u.Currency == "" {
		return core.DefaultCurrency
	}
	return u.Currency
}

// SetUserCurrency patches the single currency column on the user row.
func (c *Client) SetUserCurrency(ctx context.Context, id core.ID, currency string) error {
	query := url.Values{"id": {eq(string(id))}}
	if _, err := c.do(ctx, http.MethodPatch, "users", query, map[string]any{"currency": currency}); err != nil {
		return fmt.Errorf("set currency: %w", err)
	}
	return nil
}

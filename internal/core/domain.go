package core

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format exchanged verbatim with the
	// backend and the UI controls.
	DateLayout = "2006-01-02"

	// ClockLayout is the wall-clock time format for expense timestamps.
	ClockLayout = "15:04:05"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidClock  = errors.New("invalid time of day")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMissingID     = errors.New("missing record id")
)

type (
	// ID is an opaque record identifier assigned by the backend. PostgREST
	// backends return either uuid strings or numeric primary keys; both are
	// accepted and carried as text.
	ID string

	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	// User is a registered account row.
	User struct {
		ID           ID     `json:"id"`
		Username     string `json:"username"`
		PasswordHash string `json:"password_hash"`
		PasswordSalt string `json:"password_salt"`
		Email        string `json:"email,omitempty"`
		Currency     string `json:"currency,omitempty"`
	}

	// Expense is a single spending record owned by one user.
	Expense struct {
		ID            ID      `json:"id,omitempty"`
		UserID        ID      `json:"user_id"`
		Amount        float64 `json:"amount"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Date          Date    `json:"date"`
		Time          string  `json:"time"`
		PaymentMethod string  `json:"payment_method"`
		TransactionID string  `json:"transaction_id"`
	}

	// Category is a user-defined expense category used to populate
	// selection lists. The expense column holds the name as free text and
	// is not foreign-keyed to it on the client side.
	Category struct {
		ID     ID     `json:"id,omitempty"`
		UserID ID     `json:"user_id"`
		Name   string `json:"name"`
		Color  string `json:"color"`
	}
)

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMissingID, data)
		}
		*id = ID(s)
		return nil
	}
	// Numeric primary key; keep the digits as-is.
	if _, err := strconv.ParseInt(string(data), 10, 64); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingID, data)
	}
	*id = ID(data)
	return nil
}

// NewDate builds a Date from calendar components in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseClock validates a time-of-day string and returns it normalized to
// HH:MM:SS. Browsers submit time inputs without seconds unless the user set
// them, so HH:MM is accepted too.
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// ParseAmount parses a user-entered amount. Only finite, non-negative
// decimal numbers are accepted.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// Validate checks that a record fetched from the backend is usable. Records
// with missing identifiers or malformed fields are rejected at the
// data-access boundary instead of leaking gaps into the views.
func (e Expense) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (u User) Validate() error {
	if u.ID == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("empty username")
	}
	return nil
}

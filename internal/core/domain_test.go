package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"42.50", 42.50, false},
		{" 7 ", 7, false},
		{"0", 0, false},
		{"", 0, true},
		{"-1.50", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1e400", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q): expected ErrInvalidAmount, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	if got, err := ParseClock("12:30:00"); err != nil || got != "12:30:00" {
		t.Fatalf("ParseClock: got %q, %v", got, err)
	}
	if got, err := ParseClock("12:30"); err != nil || got != "12:30:00" {
		t.Fatalf("ParseClock without seconds: got %q, %v", got, err)
	}
	for _, s := range []string{"25:00:00", "noonish", ""} {
		if _, err := ParseClock(s); !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("ParseClock(%q): expected ErrInvalidClock, got %v", s, err)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)
	raw, err := json.Marshal(d)
	if err != nil || string(raw) != `"2024-01-15"` {
		t.Fatalf("marshal: %s, %v", raw, err)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("roundtrip mismatch: %v != %v", back, d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "15/01/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", s, err)
		}
	}
}

func TestIDUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var e Expense
	payload := `{"id": 17, "user_id": "u-1", "amount": 5, "date": "2024-01-15"}`
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.ID != "17" || e.UserID != "u-1" {
		t.Fatalf("unexpected ids: %q %q", e.ID, e.UserID)
	}
	if err := json.Unmarshal([]byte(`{"id": true}`), &e); err == nil {
		t.Fatal("expected error for boolean id")
	}
}

func TestExpenseValidate(t *testing.T) {
	ok := Expense{ID: "1", UserID: "u", Amount: 1.5, Date: NewDate(2024, 1, 15)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	missing := ok
	missing.ID = ""
	if err := missing.Validate(); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}

	negative := ok
	negative.Amount = -3
	if err := negative.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	zeroDate := ok
	zeroDate.Date = Date{}
	if err := zeroDate.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

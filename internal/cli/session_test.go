package cli

import (
	"errors"
	"testing"
	"time"

	"riseyn/internal/auth"
)

var issued = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}
	want := Session{AccessToken: "a", RefreshToken: "r", Email: "dre@example.com", UserID: "u1", ExpiresAt: issued}
	if err := SaveSession(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadSession()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
	if err := ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := ClearSession(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected no session after clear, got %v", err)
	}
}

func TestNewSessionRecordsExpiry(t *testing.T) {
	s := NewSession("typed@example.com", auth.Session{
		AccessToken:  "a",
		RefreshToken: "r",
		ExpiresIn:    3600,
		User:         auth.User{ID: "u1"},
	}, issued)
	if s.Email != "typed@example.com" || s.UserID != "u1" {
		t.Fatalf("unexpected identity %+v", s)
	}
	if !s.ExpiresAt.Equal(issued.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", s.ExpiresAt)
	}
}

func TestSessionNeedsRefresh(t *testing.T) {
	s := Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: issued.Add(time.Hour)}
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "fresh", at: issued, want: false},
		{name: "inside skew", at: issued.Add(time.Hour - 10*time.Second), want: true},
		{name: "expired", at: issued.Add(2 * time.Hour), want: true},
	}
	for _, tc := range tests {
		if got := s.NeedsRefresh(tc.at); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}

	noExpiry := Session{AccessToken: "a", RefreshToken: "r"}
	if noExpiry.NeedsRefresh(issued.Add(24 * time.Hour)) {
		t.Fatalf("session without expiry should wait for a 401")
	}
	noRefresh := Session{AccessToken: "a", ExpiresAt: issued}
	if noRefresh.NeedsRefresh(issued.Add(time.Hour)) {
		t.Fatalf("nothing to refresh with")
	}
}

func TestSessionRenew(t *testing.T) {
	s := Session{AccessToken: "old", RefreshToken: "keep", ExpiresAt: issued}
	s.Renew(auth.Session{AccessToken: "new", ExpiresIn: 600}, issued)
	if s.AccessToken != "new" || s.RefreshToken != "keep" || !s.ExpiresAt.Equal(issued.Add(10*time.Minute)) {
		t.Fatalf("unexpected renewed session %+v", s)
	}
	s.Renew(auth.Session{AccessToken: "newer", RefreshToken: "rotated"}, issued)
	if s.RefreshToken != "rotated" || !s.ExpiresAt.IsZero() {
		t.Fatalf("unexpected rotation %+v", s)
	}
}

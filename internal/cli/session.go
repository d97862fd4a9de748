package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"riseyn/internal/auth"
)

// refreshSkew refreshes a little before the server would start answering 401.
const refreshSkew = 30 * time.Second

var ErrNoSession = errors.New("no saved session")

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Email        string    `json:"email"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
}

// NewSession keeps what the CLI needs from an auth response. email is used
// when the provider does not echo the user back.
func NewSession(email string, s auth.Session, now time.Time) Session {
	out := Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Email:        s.User.Email,
		UserID:       s.User.ID,
	}
	if out.Email == "" {
		out.Email = email
	}
	if s.ExpiresIn > 0 {
		out.ExpiresAt = now.Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return out
}

// NeedsRefresh reports whether the access token is expired or about to be.
// Sessions without a recorded expiry rely on the server's 401.
func (s Session) NeedsRefresh(now time.Time) bool {
	if s.RefreshToken == "" || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(refreshSkew).Before(s.ExpiresAt)
}

// Renew applies a refresh response. Providers that do not rotate refresh
// tokens leave the old one in place.
func (s *Session) Renew(fresh auth.Session, now time.Time) {
	s.AccessToken = fresh.AccessToken
	if fresh.RefreshToken != "" {
		s.RefreshToken = fresh.RefreshToken
	}
	s.ExpiresAt = time.Time{}
	if fresh.ExpiresIn > 0 {
		s.ExpiresAt = now.Add(time.Duration(fresh.ExpiresIn) * time.Second)
	}
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".rise")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func sessionPath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func SaveSession(s Session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

func LoadSession() (Session, error) {
	path, err := sessionPath()
	if err != nil {
		return Session{}, err
	}
	body, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(body, &s); err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(s.AccessToken) == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func ClearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

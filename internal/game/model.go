package game

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrDuplicateIdempotency = errors.New("duplicate idempotency key")
	ErrTxConflict           = errors.New("transaction conflict, retry")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrCrewNotFound         = errors.New("crew not found")
	ErrCrewTaken            = errors.New("crew name or tag already taken")
	ErrUnknownCommand       = errors.New("unknown sync command")
	ErrIdempotencyRequired  = errors.New("idempotency key is required")
	ErrTooManyCommands      = errors.New("too many queued commands")
)

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]{3,24}$`)

var blockedNameFragments = []string{
	"admin",
	"mod",
	"support",
	"shit",
	"fuck",
	"bitch",
	"nazi",
}

func ValidUsername(name string) bool {
	if !usernameRE.MatchString(strings.TrimSpace(name)) {
		return false
	}
	return !blockedName(name)
}

func blockedName(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range blockedNameFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func usernameFromEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	parts := strings.Split(email, "@")
	if len(parts) == 0 || parts[0] == "" {
		return "player"
	}
	return sanitizeUsername(parts[0])
}

func sanitizeUsername(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "player"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	res := strings.Trim(string(out), "_")
	if len(res) < 3 {
		res = "player_" + res
	}
	if len(res) > 24 {
		res = res[:24]
	}
	if blockedName(res) {
		return "player"
	}
	return res
}

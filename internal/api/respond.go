package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"riseyn/internal/economy"
	"riseyn/internal/game"
	"riseyn/internal/leaderboard"

	"github.com/google/uuid"
)

var errInvalidID = errors.New("id must be a positive integer")

var reasonCodes = []struct {
	err  error
	code string
}{
	{economy.ErrInsufficientCash, "insufficient_cash"},
	{economy.ErrInsufficientEnergy, "insufficient_energy"},
	{economy.ErrTierLocked, "tier_locked"},
	{economy.ErrCooldown, "cooldown"},
	{economy.ErrAlreadyOwned, "already_owned"},
	{economy.ErrPrestigeLocked, "prestige_locked"},
	{economy.ErrMaxTier, "max_tier"},
	{economy.ErrUnderpowered, "underpowered"},
	{economy.ErrBetAboveLimit, "bet_above_limit"},
	{economy.ErrOpponentCannotCover, "opponent_cannot_cover"},
	{economy.ErrCrewFull, "crew_full"},
	{economy.ErrAlreadyInCrew, "already_in_crew"},
	{economy.ErrNotInCrew, "not_in_crew"},
	{economy.ErrLeaderCannotLeave, "leader_cannot_leave"},
	{economy.ErrNothingToCollect, "nothing_to_collect"},
}

func reasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "rejected"
}

func (s *Server) respond(w http.ResponseWriter, payload any, err error) {
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrDuplicateIdempotency):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "duplicate": true})
	case errors.Is(err, game.ErrTxConflict):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "retryable": true})
	case economy.IsValidation(err),
		errors.Is(err, game.ErrIdempotencyRequired),
		errors.Is(err, game.ErrUnknownCommand),
		errors.Is(err, game.ErrTooManyCommands),
		errors.Is(err, leaderboard.ErrUnknownKind):
		writeError(w, http.StatusBadRequest, err.Error())
	case economy.IsNotFound(err), errors.Is(err, game.ErrPlayerNotFound), errors.Is(err, game.ErrCrewNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrCrewTaken):
		writeError(w, http.StatusConflict, err.Error())
	case economy.IsPrecondition(err):
		body := map[string]any{"error": err.Error(), "reason": reasonCode(err)}
		var rej *economy.RejectError
		if errors.As(err, &rej) {
			if rej.Shortfall > 0 {
				body["shortfall"] = rej.Shortfall
			}
			if rej.RetryAfter > 0 {
				secs := int64(math.Ceil(rej.RetryAfter.Seconds()))
				body["retry_after_seconds"] = secs
				w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
			}
		}
		writeJSON(w, http.StatusConflict, body)
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func idempotencyKey(r *http.Request) string {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key != "" {
		return key
	}
	return uuid.NewString()
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

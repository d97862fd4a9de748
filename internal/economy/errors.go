package economy

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors. Returned before any state is touched.
var (
	ErrInvalidBet       = errors.New("bet must be greater than zero")
	ErrInvalidPercent   = errors.New("bet percent must be between 5 and 25")
	ErrInvalidMove      = errors.New("invalid shootout move")
	ErrInvalidMoveCount = errors.New("shootout takes exactly 5 moves")
	ErrInvalidTier      = errors.New("tier must be between 1 and 5")
	ErrInvalidTrack     = errors.New("manager track must be speed or income")
	ErrInvalidAction    = errors.New("unknown business action")
	ErrInvalidCategory  = errors.New("unknown asset category")
	ErrInvalidStrategy  = errors.New("npc strategy must be counter or random")
	ErrInvalidName      = errors.New("invalid name")
	ErrUnknownAsset     = errors.New("asset not found")
	ErrUnknownBusiness  = errors.New("business not found")
	ErrUnknownHustle    = errors.New("hustle not found")
	ErrSelfTarget       = errors.New("cannot target yourself")
)

// Precondition failures. The player asked for something the current state
// does not allow yet.
var (
	ErrInsufficientCash    = errors.New("insufficient cash")
	ErrInsufficientEnergy  = errors.New("insufficient energy")
	ErrTierLocked          = errors.New("tier not unlocked")
	ErrCooldown            = errors.New("not ready to collect")
	ErrAlreadyOwned        = errors.New("already owned")
	ErrPrestigeLocked      = errors.New("prestige requirements not met")
	ErrMaxTier             = errors.New("max tier reached")
	ErrUnderpowered        = errors.New("not enough power to fight")
	ErrBetAboveLimit       = errors.New("bet above tier limit")
	ErrOpponentCannotCover = errors.New("opponent cannot cover the bet")
	ErrCrewFull            = errors.New("crew is full")
	ErrAlreadyInCrew       = errors.New("already in a crew")
	ErrNotInCrew           = errors.New("not in a crew")
	ErrLeaderCannotLeave   = errors.New("leader cannot leave a crew with members")
	ErrNothingToCollect    = errors.New("nothing to collect")
)

var validationErrors = []error{
	ErrInvalidBet, ErrInvalidPercent, ErrInvalidMove, ErrInvalidMoveCount,
	ErrInvalidTier, ErrInvalidTrack, ErrInvalidAction, ErrInvalidCategory,
	ErrInvalidStrategy, ErrInvalidName, ErrSelfTarget,
}

var preconditionErrors = []error{
	ErrInsufficientCash, ErrInsufficientEnergy, ErrTierLocked, ErrCooldown,
	ErrAlreadyOwned, ErrPrestigeLocked, ErrMaxTier, ErrUnderpowered,
	ErrBetAboveLimit, ErrOpponentCannotCover, ErrCrewFull, ErrAlreadyInCrew,
	ErrNotInCrew, ErrLeaderCannotLeave, ErrNothingToCollect,
}

// RejectError carries the remediation value for a precondition failure:
// how much cash or energy is missing, or how long until the action opens.
type RejectError struct {
	Reason     error
	Shortfall  int64
	RetryAfter time.Duration
}

func (e *RejectError) Error() string {
	switch {
	case e.RetryAfter > 0:
		return fmt.Sprintf("%v: ready in %s", e.Reason, FormatDuration(e.RetryAfter))
	case e.Shortfall > 0:
		return fmt.Sprintf("%v: short by %d", e.Reason, e.Shortfall)
	default:
		return e.Reason.Error()
	}
}

func (e *RejectError) Unwrap() error { return e.Reason }

func reject(reason error, shortfall int64) error {
	return &RejectError{Reason: reason, Shortfall: shortfall}
}

func rejectUntil(reason error, wait time.Duration) error {
	return &RejectError{Reason: reason, RetryAfter: wait}
}

func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsPrecondition(err error) bool {
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownAsset) || errors.Is(err, ErrUnknownBusiness) || errors.Is(err, ErrUnknownHustle)
}

package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"riseyn/internal/economy"
	"riseyn/internal/leaderboard"
)

const MaxReplayCommands = 200

const (
	ReplayApplied   = "applied"
	ReplayDuplicate = "duplicate"
	ReplayRejected  = "rejected"
)

// Replayable actions. Mini-games and prestige need a live opponent or an
// explicit confirmation, so they never go through the offline queue.
const (
	CmdHustle          = "hustle"
	CmdTap             = "hustle.tap"
	CmdBusinessBuy     = "business.buy"
	CmdBusinessUpgrade = "business.upgrade"
	CmdBusinessHire    = "business.hire"
	CmdBusinessCollect = "business.collect"
	CmdCollectAll      = "business.collect_all"
	CmdAssetBuy        = "asset.buy"
	CmdBossFight       = "boss.fight"
	CmdEnergySync      = "energy.sync"
	CmdOfflineClaim    = "offline.claim"
)

type commandArgs struct {
	HustleID   string `json:"hustle_id"`
	TemplateID string `json:"template_id"`
	BusinessID int64  `json:"business_id"`
	Track      string `json:"track"`
	AssetID    string `json:"asset_id"`
}

// ReplaySync applies queued commands in order. Domain rejections are reported
// per command and replay continues; a storage failure stops the replay.
func (s *Service) ReplaySync(ctx context.Context, userID string, commands []Command) ([]CommandResult, error) {
	if len(commands) > MaxReplayCommands {
		return nil, ErrTooManyCommands
	}
	results := make([]CommandResult, 0, len(commands))
	for _, cmd := range commands {
		res := CommandResult{Action: cmd.Action, IdempotencyKey: cmd.IdempotencyKey}
		out, err := s.dispatch(ctx, userID, cmd)
		switch {
		case err == nil:
			res.Status, res.Result = ReplayApplied, out
		case errors.Is(err, ErrDuplicateIdempotency):
			res.Status = ReplayDuplicate
		case IsRejection(err):
			res.Status, res.Error = ReplayRejected, err.Error()
		default:
			return results, fmt.Errorf("replay %s: %w", cmd.Action, err)
		}
		results = append(results, res)
	}
	s.log.Info("sync replayed", "user_id", userID, "commands", len(commands))
	return results, nil
}

// IsRejection reports whether err is a player-facing refusal rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	return economy.IsValidation(err) ||
		economy.IsPrecondition(err) ||
		economy.IsNotFound(err) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrCrewNotFound) ||
		errors.Is(err, ErrCrewTaken) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrIdempotencyRequired) ||
		errors.Is(err, leaderboard.ErrUnknownKind)
}

func decodeArgs(raw json.RawMessage) (commandArgs, error) {
	var args commandArgs
	if len(raw) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, fmt.Errorf("%w: %v", ErrUnknownCommand, err)
	}
	return args, nil
}

func (s *Service) dispatch(ctx context.Context, userID string, cmd Command) (any, error) {
	args, err := decodeArgs(cmd.Args)
	if err != nil {
		return nil, err
	}
	idem := cmd.IdempotencyKey
	switch cmd.Action {
	case CmdHustle:
		return s.Hustle(ctx, userID, args.HustleID, idem)
	case CmdTap:
		return s.TapHustle(ctx, userID, idem)
	case CmdBusinessBuy:
		return s.BuyBusiness(ctx, userID, args.TemplateID, idem)
	case CmdBusinessUpgrade:
		return s.UpgradeBusiness(ctx, userID, args.BusinessID, idem)
	case CmdBusinessHire:
		track, err := economy.ParseManagerTrack(args.Track)
		if err != nil {
			return nil, err
		}
		return s.HireManager(ctx, userID, args.BusinessID, track, idem)
	case CmdBusinessCollect:
		return s.CollectBusiness(ctx, userID, args.BusinessID, idem)
	case CmdCollectAll:
		return s.CollectAll(ctx, userID, idem)
	case CmdAssetBuy:
		return s.BuyAsset(ctx, userID, args.AssetID, idem)
	case CmdBossFight:
		return s.FightBoss(ctx, userID, idem)
	case CmdEnergySync:
		return s.SyncEnergy(ctx, userID)
	case CmdOfflineClaim:
		return s.ClaimOffline(ctx, userID)
	default:
		return nil, ErrUnknownCommand
	}
}

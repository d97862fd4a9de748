package game

import (
	"context"

	"riseyn/internal/economy"

	"github.com/jackc/pgx/v5"
)

func (s *Service) BossStatus(ctx context.Context, userID string) (BossStatus, error) {
	var out BossStatus
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = buildBossStatus(row.Player)
		return nil
	})
	return out, err
}

// FightBoss fights the boss guarding the next tier. An underpowered player is
// rejected before any roll and nothing is written.
func (s *Service) FightBoss(ctx context.Context, userID, idem string) (economy.BossOutcome, error) {
	var out economy.BossOutcome
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "boss_fight"); err != nil {
			return err
		}
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		out, err = economy.FightBoss(row.Player, s.rand)
		if err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, out.Player); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "boss_fight", walletLegs(userID, out.CashDelta)...); err != nil {
			return err
		}
		row.Player = out.Player
		return recordGameResult(ctx, tx, "boss", userID, "", 0, out.Win, out.BossFight)
	})
	if err != nil {
		return economy.BossOutcome{}, err
	}
	s.log.Info("boss fight resolved",
		"user_id", userID,
		"boss", out.Boss.Name,
		"win", out.Win,
		"power", out.Power,
		"tier", out.Player.Tier,
		"cash_delta", out.CashDelta,
	)
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

func (s *Service) PrestigeStatus(ctx context.Context, userID string) (PrestigeStatus, error) {
	var out PrestigeStatus
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = buildPrestigeStatus(row.Player)
		return nil
	})
	return out, err
}

// Prestige resets the run. Businesses and assets are kept.
func (s *Service) Prestige(ctx context.Context, userID, idem string) (PrestigeResult, error) {
	var out PrestigeResult
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "prestige"); err != nil {
			return err
		}
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		next, err := economy.ResolvePrestige(row.Player)
		if err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, next); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "prestige", walletLegs(userID, next.Cash-row.Cash)...); err != nil {
			return err
		}
		out = PrestigeResult{Before: row.Player, After: next, Status: buildPrestigeStatus(next)}
		row.Player = next
		return nil
	})
	if err != nil {
		return PrestigeResult{}, err
	}
	s.log.Info("prestige",
		"user_id", userID,
		"count", out.After.PrestigeLevel,
		"badge", out.Status.Badge,
		"respect_kept", out.After.Respect,
	)
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

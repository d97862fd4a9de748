package game

import (
	"context"

	"riseyn/internal/economy"

	"github.com/jackc/pgx/v5"
)

// lockOpponents resolves the target by username and locks both rows.
func lockOpponents(ctx context.Context, tx pgx.Tx, userID, targetName string) (playerRow, playerRow, error) {
	targetID, err := lookupUserID(ctx, tx, targetName)
	if err != nil {
		return playerRow{}, playerRow{}, err
	}
	if targetID == userID {
		return playerRow{}, playerRow{}, economy.ErrSelfTarget
	}
	return loadPairForUpdate(ctx, tx, userID, targetID)
}

func (s *Service) PlayDice(ctx context.Context, userID, targetName string, bet int64, idem string) (DiceResult, error) {
	var out DiceResult
	var me, them playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "dice"); err != nil {
			return err
		}
		var err error
		me, them, err = lockOpponents(ctx, tx, userID, targetName)
		if err != nil {
			return err
		}
		res, err := economy.ResolveDice(bet, me.Player, them.Player, s.rand)
		if err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, me.UserID, res.Player); err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, them.UserID, res.Target); err != nil {
			return err
		}
		winner, loser := me.UserID, them.UserID
		if !res.PlayerWon {
			winner, loser = loser, winner
		}
		if err := appendLedger(ctx, tx, "dice",
			ledgerLeg{UserID: winner, Account: "wallet", Delta: res.Payout},
			ledgerLeg{UserID: loser, Account: "wallet", Delta: -res.Bet},
			ledgerLeg{UserID: loser, Account: "house", Delta: res.HouseCut},
		); err != nil {
			return err
		}
		if err := recordGameResult(ctx, tx, "dice", me.UserID, them.UserID, bet, res.PlayerWon, res); err != nil {
			return err
		}
		me.Player, them.Player = res.Player, res.Target
		out = DiceResult{DiceOutcome: res, Opponent: them.Username}
		return nil
	})
	if err != nil {
		return DiceResult{}, err
	}
	s.log.Info("mini-game resolved",
		"game", "dice",
		"user_id", userID,
		"target_id", them.UserID,
		"bet", bet,
		"player_won", out.PlayerWon,
		"rerolls", out.Rerolls,
	)
	s.publish(ctx, me.UserID, me.Username, me.Player)
	s.publish(ctx, them.UserID, them.Username, them.Player)
	return out, nil
}

// PlayShootout plays five scripted moves against the house NPC.
func (s *Service) PlayShootout(ctx context.Context, userID string, moves []economy.Move, stake int64, idem string) (economy.ShootoutOutcome, error) {
	var out economy.ShootoutOutcome
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "shootout"); err != nil {
			return err
		}
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		out, err = economy.ResolveShootout(moves, stake, row.Player, s.npc, s.rand)
		if err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, out.Player); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "shootout", walletLegs(userID, out.Player.Cash-row.Cash)...); err != nil {
			return err
		}
		row.Player = out.Player
		return recordGameResult(ctx, tx, "shootout", userID, "", stake, out.PlayerWon, out.Rounds)
	})
	if err != nil {
		return economy.ShootoutOutcome{}, err
	}
	s.log.Info("mini-game resolved",
		"game", "shootout",
		"user_id", userID,
		"stake", stake,
		"player_won", out.PlayerWon,
		"player_wins", out.PlayerWins,
		"npc_wins", out.NPCWins,
	)
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

func (s *Service) PlayBigBank(ctx context.Context, userID, targetName string, percent int, idem string) (BigBankResult, error) {
	var out BigBankResult
	var me, them playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "big_bank"); err != nil {
			return err
		}
		var err error
		me, them, err = lockOpponents(ctx, tx, userID, targetName)
		if err != nil {
			return err
		}
		res, err := economy.ResolveBigBank(percent, me.Player, them.Player, s.rand)
		if err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, me.UserID, res.Player); err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, them.UserID, res.Target); err != nil {
			return err
		}
		winner, loser := me.UserID, them.UserID
		if !res.PlayerWon {
			winner, loser = loser, winner
		}
		if err := appendLedger(ctx, tx, "big_bank",
			ledgerLeg{UserID: winner, Account: "wallet", Delta: res.Transfer},
			ledgerLeg{UserID: loser, Account: "wallet", Delta: -res.Transfer},
		); err != nil {
			return err
		}
		if err := recordGameResult(ctx, tx, "big_bank", me.UserID, them.UserID, res.Bet, res.PlayerWon, res); err != nil {
			return err
		}
		me.Player, them.Player = res.Player, res.Target
		out = BigBankResult{BigBankOutcome: res, Opponent: them.Username}
		return nil
	})
	if err != nil {
		return BigBankResult{}, err
	}
	s.log.Info("mini-game resolved",
		"game", "big_bank",
		"user_id", userID,
		"target_id", them.UserID,
		"percent", percent,
		"transfer", out.Transfer,
		"player_won", out.PlayerWon,
	)
	s.publish(ctx, me.UserID, me.Username, me.Player)
	s.publish(ctx, them.UserID, them.Username, them.Player)
	return out, nil
}

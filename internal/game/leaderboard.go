package game

import (
	"context"

	"riseyn/internal/leaderboard"

	"github.com/jackc/pgx/v5"
)

// levelExpr derives level in SQL the way economy.ComputeLevel does; the
// stored level column can lag behind xp after a prestige.
const levelExpr = "greatest(floor(sqrt(xp / 100.0) + asset_count * 0.05), 1)"

var leaderboardOrder = map[leaderboard.Kind]string{
	leaderboard.KindWealth:   "cash DESC",
	leaderboard.KindRespect:  "respect DESC",
	leaderboard.KindLevel:    levelExpr + " DESC, xp DESC",
	leaderboard.KindPrestige: "prestige_level DESC, " + levelExpr + " DESC",
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > leaderboard.MaxTop {
		return leaderboard.MaxTop
	}
	return limit
}

// Leaderboard serves the cached board when one is configured and falls back
// to Postgres when the cache is empty or unavailable.
func (s *Service) Leaderboard(ctx context.Context, kind leaderboard.Kind, limit int) ([]LeaderboardRow, error) {
	if _, ok := leaderboardOrder[kind]; !ok {
		return nil, leaderboard.ErrUnknownKind
	}
	limit = clampLimit(limit)
	if s.boards != nil {
		rows, err := s.boards.Top(ctx, kind, int64(limit))
		if err == nil && len(rows) > 0 {
			return rows, nil
		}
		if err != nil {
			s.log.Warn("leaderboard cache read failed", "kind", kind, "error", err)
		}
	}

	out := make([]LeaderboardRow, 0, limit)
	err := s.read(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+playerColumns+`
			FROM rise.players
			ORDER BY `+leaderboardOrder[kind]+`, user_id
			LIMIT $1
		`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		var rank int64
		for rows.Next() {
			r, err := scanPlayer(rows)
			if err != nil {
				return err
			}
			rank++
			out = append(out, LeaderboardRow{
				Rank:     rank,
				UserID:   r.UserID,
				Username: r.Username,
				Score:    leaderboard.Score(kind, r.Player),
			})
		}
		return rows.Err()
	})
	return out, err
}

// Standings reads every player for a full leaderboard rebuild.
func (s *Service) Standings(ctx context.Context) ([]leaderboard.Standing, error) {
	var out []leaderboard.Standing
	err := s.read(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+playerColumns+` FROM rise.players`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r, err := scanPlayer(rows)
			if err != nil {
				return err
			}
			out = append(out, leaderboard.Standing{UserID: r.UserID, Username: r.Username, Player: r.Player})
		}
		return rows.Err()
	})
	return out, err
}

// PlayerRank is the player's position on a board. The cached board answers
// when it has the player; otherwise the rank is computed in Postgres.
func (s *Service) PlayerRank(ctx context.Context, userID string, kind leaderboard.Kind) (*LeaderboardRow, error) {
	column, ok := leaderboardOrder[kind]
	if !ok {
		return nil, leaderboard.ErrUnknownKind
	}
	if s.boards != nil {
		entry, err := s.boards.Rank(ctx, kind, userID)
		if err == nil && entry != nil && entry.Username != "" {
			return entry, nil
		}
		if err != nil {
			s.log.Warn("leaderboard cache rank failed", "kind", kind, "error", err)
		}
	}
	var out *LeaderboardRow
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		var rank int64
		if err := tx.QueryRow(ctx, `
			SELECT pos FROM (
				SELECT user_id, row_number() OVER (ORDER BY `+column+`, user_id) AS pos
				FROM rise.players
			) ranked
			WHERE user_id = $1
		`, userID).Scan(&rank); err != nil {
			return err
		}
		out = &LeaderboardRow{Rank: rank, UserID: userID, Username: row.Username, Score: leaderboard.Score(kind, row.Player)}
		return nil
	})
	return out, err
}

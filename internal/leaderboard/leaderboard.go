package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"riseyn/internal/cache"
	"riseyn/internal/economy"

	"github.com/redis/go-redis/v9"
)

var ErrUnknownKind = errors.New("leaderboard must be wealth, respect, level, or prestige")

type Kind string

const (
	KindWealth   Kind = "wealth"
	KindRespect  Kind = "respect"
	KindLevel    Kind = "level"
	KindPrestige Kind = "prestige"
)

var Kinds = []Kind{KindWealth, KindRespect, KindLevel, KindPrestige}

const MaxTop = 100

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindWealth, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

// Score ranks a player on one board. Prestige is ordered by prestige count,
// then level.
func Score(kind Kind, p economy.Player) float64 {
	switch kind {
	case KindRespect:
		return float64(p.Respect)
	case KindLevel:
		return float64(p.EffectiveLevel())
	case KindPrestige:
		return float64(p.PrestigeLevel)*10_000 + float64(min(p.EffectiveLevel(), 9_999))
	default:
		return float64(p.Cash)
	}
}

type Entry struct {
	Rank     int64   `json:"rank"`
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// Standing is one player's input to a full board rebuild.
type Standing struct {
	UserID   string
	Username string
	Player   economy.Player
}

type Service struct {
	rdb *redis.Client
}

func NewService(rdb *redis.Client) *Service {
	return &Service{rdb: rdb}
}

// Record writes the player's current scores to every board.
func (s *Service) Record(ctx context.Context, userID, username string, p economy.Player) error {
	pipe := s.rdb.Pipeline()
	for _, kind := range Kinds {
		pipe.ZAdd(ctx, boardKey(kind), redis.Z{Score: Score(kind, p), Member: userID})
	}
	if username != "" {
		pipe.HSet(ctx, cache.KeyPlayerName, userID, username)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Top returns the first count entries of a board, highest score first.
func (s *Service) Top(ctx context.Context, kind Kind, count int64) ([]Entry, error) {
	if count <= 0 || count > MaxTop {
		count = MaxTop
	}
	results, err := s.rdb.ZRevRangeWithScores(ctx, boardKey(kind), 0, count-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(results))
	ids := make([]string, 0, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		ids = append(ids, member)
		entries = append(entries, Entry{Rank: int64(i + 1), UserID: member, Score: z.Score})
	}
	if len(ids) == 0 {
		return entries, nil
	}
	names, err := s.rdb.HMGet(ctx, cache.KeyPlayerName, ids...).Result()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if name, ok := names[i].(string); ok {
			entries[i].Username = name
		}
	}
	return entries, nil
}

// Rank returns nil when the player is not on the board.
func (s *Service) Rank(ctx context.Context, kind Kind, userID string) (*Entry, error) {
	key := boardKey(kind)
	rank, err := s.rdb.ZRevRank(ctx, key, userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	score, err := s.rdb.ZScore(ctx, key, userID).Result()
	if err != nil {
		return nil, err
	}
	name, err := s.rdb.HGet(ctx, cache.KeyPlayerName, userID).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return &Entry{Rank: rank + 1, UserID: userID, Username: name, Score: score}, nil
}

// Rebuild replaces every board with the given standings, keeping the top keep
// entries when keep > 0. Each board is built under a staging key and renamed
// into place so readers never see it half full.
func (s *Service) Rebuild(ctx context.Context, standings []Standing, keep int) error {
	pipe := s.rdb.TxPipeline()
	for _, kind := range Kinds {
		staging := boardKey(kind) + ":staging"
		pipe.Del(ctx, staging)
		if len(standings) == 0 {
			pipe.Del(ctx, boardKey(kind))
			continue
		}
		members := make([]redis.Z, 0, len(standings))
		for _, st := range standings {
			members = append(members, redis.Z{Score: Score(kind, st.Player), Member: st.UserID})
		}
		pipe.ZAdd(ctx, staging, members...)
		if keep > 0 && len(members) > keep {
			pipe.ZRemRangeByRank(ctx, staging, 0, int64(-keep-1))
		}
		pipe.Rename(ctx, staging, boardKey(kind))
	}
	for _, st := range standings {
		if st.Username != "" {
			pipe.HSet(ctx, cache.KeyPlayerName, st.UserID, st.Username)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func boardKey(kind Kind) string {
	return fmt.Sprintf(cache.KeyLeaderboard, kind)
}

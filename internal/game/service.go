package game

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"riseyn/internal/economy"
	"riseyn/internal/leaderboard"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Scoreboard receives player scores after every committed mutation and
// serves the cached top lists.
type Scoreboard interface {
	Record(ctx context.Context, userID, username string, p economy.Player) error
	Top(ctx context.Context, kind leaderboard.Kind, count int64) ([]leaderboard.Entry, error)
	Rank(ctx context.Context, kind leaderboard.Kind, userID string) (*leaderboard.Entry, error)
}

var _ Scoreboard = (*leaderboard.Service)(nil)

type Service struct {
	db     *pgxpool.Pool
	log    *slog.Logger
	boards Scoreboard
	rand   economy.Rand
	npc    economy.NPCStrategy
	now    func() time.Time
}

type Option func(*Service)

func WithScoreboard(b Scoreboard) Option {
	return func(s *Service) { s.boards = b }
}

func WithNPCStrategy(st economy.NPCStrategy) Option {
	return func(s *Service) { s.npc = st }
}

func WithRand(r economy.Rand) Option {
	return func(s *Service) { s.rand = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *pgxpool.Pool, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		db:   db,
		log:  logger,
		rand: newLockedRand(time.Now().UnixNano()),
		npc:  economy.StrategyCounter,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockedRand makes a math/rand source safe for concurrent requests.
type lockedRand struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{r: mathrand.New(mathrand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// withTx runs fn in a serializable transaction, retrying on serialization
// failures with backoff. fn must be safe to run more than once.
func (s *Service) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	const maxAttempts = 8
	retryDelay := 75 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.runTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
		if err == nil {
			return nil
		}
		if !isSerializationError(err) {
			return err
		}
		if attempt == maxAttempts-1 {
			break
		}
		s.log.Debug("retrying serializable tx", "attempt", attempt+1, "delay", retryDelay)
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		if retryDelay < 1200*time.Millisecond {
			retryDelay *= 2
		}
	}
	return ErrTxConflict
}

func (s *Service) read(ctx context.Context, fn func(pgx.Tx) error) error {
	return s.runTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadOnly}, fn)
}

func (s *Service) runTx(ctx context.Context, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// publish pushes fresh scores to the leaderboard cache. The database stays
// authoritative, so a cache failure is only logged.
func (s *Service) publish(ctx context.Context, userID, username string, p economy.Player) {
	if s.boards == nil {
		return
	}
	if err := s.boards.Record(ctx, userID, username, p); err != nil {
		s.log.Warn("leaderboard update failed", "user_id", userID, "error", err)
	}
}

// EnsurePlayer creates the player row on first login. A taken username gets a
// random suffix.
func (s *Service) EnsurePlayer(ctx context.Context, userID, email, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		username = usernameFromEmail(email)
	}
	if !ValidUsername(username) {
		username = sanitizeUsername(usernameFromEmail(email))
	}
	start := economy.NewPlayer(s.clock())

	candidate := username
	for attempt := 0; attempt < 5; attempt++ {
		_, err := s.db.Exec(ctx, `
			INSERT INTO rise.players (user_id, email, username, cash, energy, max_energy, last_energy_regen, last_seen)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (user_id) DO NOTHING
		`, userID, email, candidate, start.Cash, start.Energy, start.MaxEnergy, start.LastEnergyRegen)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		suffix, err := randomCode(4)
		if err != nil {
			return err
		}
		candidate = username[:min(len(username), 19)] + "_" + strings.ToLower(suffix)
	}
	return ErrTxConflict
}

func randomCode(n int) (string, error) {
	const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = letters[int(buf[i])%len(letters)]
	}
	return string(buf), nil
}

// State is a read-only snapshot. Energy is shown as of now without moving the
// stored checkpoint.
func (s *Service) State(ctx context.Context, userID string) (PlayerView, error) {
	var out PlayerView
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		row.Player, _ = row.Player.SyncEnergy(s.clock())
		businesses, err := loadBusinesses(ctx, tx, userID)
		if err != nil {
			return err
		}
		crew, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = buildPlayerView(row, businesses, crew, s.clock())
		return nil
	})
	return out, err
}

// Dashboard syncs energy, pays out offline earnings since last_seen and
// returns everything the home screen shows.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	var out Dashboard
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		now := s.clock()
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		businesses, err := loadBusinesses(ctx, tx, userID)
		if err != nil {
			return err
		}
		p, _ := row.Player.SyncEnergy(now)
		p, offline := economy.ClaimOffline(p, businesses, row.LastSeen, now)
		row.Player = p
		if err := savePlayer(ctx, tx, userID, p); err != nil {
			return err
		}
		if err := touchLastSeen(ctx, tx, userID, now); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "offline_earnings", walletLegs(userID, offline.Earned)...); err != nil {
			return err
		}
		assets, err := loadOwnedAssets(ctx, tx, userID)
		if err != nil {
			return err
		}
		crew, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}

		out = Dashboard{
			Player:     buildPlayerView(row, businesses, crew, now),
			Offline:    offline,
			Businesses: buildBusinessViews(p, businesses, now),
			Assets:     assets,
			Boss:       buildBossStatus(p),
			Prestige:   buildPrestigeStatus(p),
		}
		return nil
	})
	if err != nil {
		return Dashboard{}, err
	}
	if out.Offline.Earned > 0 {
		s.log.Info("offline earnings claimed", "user_id", userID, "minutes", out.Offline.Minutes, "earned", out.Offline.Earned)
	}
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

// ClaimOffline pays out offline earnings without building the full dashboard.
func (s *Service) ClaimOffline(ctx context.Context, userID string) (economy.OfflineEarnings, error) {
	var out economy.OfflineEarnings
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		now := s.clock()
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		businesses, err := loadBusinesses(ctx, tx, userID)
		if err != nil {
			return err
		}
		row.Player, out = economy.ClaimOffline(row.Player, businesses, row.LastSeen, now)
		if err := savePlayer(ctx, tx, userID, row.Player); err != nil {
			return err
		}
		if err := touchLastSeen(ctx, tx, userID, now); err != nil {
			return err
		}
		return appendLedger(ctx, tx, "offline_earnings", walletLegs(userID, out.Earned)...)
	})
	if err != nil {
		return out, err
	}
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

// SyncEnergy moves the stored energy checkpoint forward to now.
func (s *Service) SyncEnergy(ctx context.Context, userID string) (EnergyView, error) {
	var out EnergyView
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		p, regen := row.Player.SyncEnergy(s.clock())
		if err := savePlayer(ctx, tx, userID, p); err != nil {
			return err
		}
		out = EnergyView{
			Energy:           p.Energy,
			MaxEnergy:        p.MaxEnergy,
			Restored:         regen.Restored,
			TimeUntilFullSec: ceilSeconds(regen.TimeUntilFull),
			TimeUntilFull:    economy.FormatDuration(regen.TimeUntilFull),
		}
		return nil
	})
	return out, err
}

package game

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"riseyn/internal/economy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const playerColumns = `
	user_id, username, last_seen,
	cash, xp, respect, level, tier, energy, max_energy, last_energy_regen,
	prestige_level, total_prestiges, cosmetic_bonus, asset_count`

const businessColumns = `
	id, template_id, name, tier, base_income, base_speed,
	upgrade_level, speed_manager_level, income_manager_level, last_collected`

// playerRow is a locked players row: the core attributes plus the columns
// only storage cares about.
type playerRow struct {
	UserID   string
	Username string
	LastSeen time.Time
	economy.Player
}

func scanPlayer(row pgx.Row) (playerRow, error) {
	var r playerRow
	err := row.Scan(
		&r.UserID, &r.Username, &r.LastSeen,
		&r.Cash, &r.XP, &r.Respect, &r.Level, &r.Tier, &r.Energy, &r.MaxEnergy, &r.LastEnergyRegen,
		&r.PrestigeLevel, &r.TotalPrestiges, &r.CosmeticBonus, &r.AssetCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return r, ErrPlayerNotFound
	}
	if err != nil {
		return r, err
	}
	r.Level = r.EffectiveLevel()
	return r, nil
}

func loadPlayer(ctx context.Context, tx pgx.Tx, userID string) (playerRow, error) {
	return scanPlayer(tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM rise.players WHERE user_id = $1`, userID))
}

func loadPlayerForUpdate(ctx context.Context, tx pgx.Tx, userID string) (playerRow, error) {
	return scanPlayer(tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM rise.players WHERE user_id = $1 FOR UPDATE`, userID))
}

// loadPairForUpdate locks both players in user_id order so two opposing
// matches between the same pair cannot deadlock.
func loadPairForUpdate(ctx context.Context, tx pgx.Tx, userID, targetID string) (playerRow, playerRow, error) {
	ids := []string{userID, targetID}
	sort.Strings(ids)
	locked := make(map[string]playerRow, 2)
	for _, id := range ids {
		row, err := loadPlayerForUpdate(ctx, tx, id)
		if err != nil {
			return playerRow{}, playerRow{}, err
		}
		locked[id] = row
	}
	return locked[userID], locked[targetID], nil
}

func lookupUserID(ctx context.Context, tx pgx.Tx, username string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `SELECT user_id FROM rise.players WHERE lower(username) = lower($1)`, username).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPlayerNotFound
	}
	return id, err
}

func savePlayer(ctx context.Context, tx pgx.Tx, userID string, p economy.Player) error {
	_, err := tx.Exec(ctx, `
		UPDATE rise.players
		SET cash = $2, xp = $3, respect = $4, level = $5, tier = $6,
			energy = $7, max_energy = $8, last_energy_regen = $9,
			prestige_level = $10, total_prestiges = $11, cosmetic_bonus = $12, asset_count = $13,
			updated_at = now()
		WHERE user_id = $1
	`, userID, p.Cash, p.XP, p.Respect, p.Level, p.Tier,
		p.Energy, p.MaxEnergy, p.LastEnergyRegen,
		p.PrestigeLevel, p.TotalPrestiges, p.CosmeticBonus, p.AssetCount)
	return err
}

func touchLastSeen(ctx context.Context, tx pgx.Tx, userID string, now time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE rise.players SET last_seen = $2 WHERE user_id = $1`, userID, now)
	return err
}

func scanBusiness(row pgx.Row) (economy.Business, error) {
	var b economy.Business
	err := row.Scan(
		&b.ID, &b.TemplateID, &b.Name, &b.Tier, &b.BaseIncome, &b.BaseSpeed,
		&b.UpgradeLevel, &b.SpeedManagerLevel, &b.IncomeManagerLevel, &b.LastCollected,
	)
	return b, err
}

func loadBusinesses(ctx context.Context, tx pgx.Tx, userID string) ([]economy.Business, error) {
	rows, err := tx.Query(ctx, `SELECT `+businessColumns+` FROM rise.businesses WHERE user_id = $1 ORDER BY tier, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []economy.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func loadBusinessForUpdate(ctx context.Context, tx pgx.Tx, userID string, businessID int64) (economy.Business, error) {
	b, err := scanBusiness(tx.QueryRow(ctx, `
		SELECT `+businessColumns+`
		FROM rise.businesses
		WHERE user_id = $1 AND id = $2
		FOR UPDATE
	`, userID, businessID))
	if errors.Is(err, pgx.ErrNoRows) {
		return b, economy.ErrUnknownBusiness
	}
	return b, err
}

func ownsTemplate(ctx context.Context, tx pgx.Tx, userID, templateID string) (bool, error) {
	var owned bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM rise.businesses WHERE user_id = $1 AND template_id = $2)
	`, userID, templateID).Scan(&owned)
	return owned, err
}

func insertBusiness(ctx context.Context, tx pgx.Tx, userID string, b economy.Business) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO rise.businesses
			(user_id, template_id, name, tier, base_income, base_speed, current_income, last_collected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, userID, b.TemplateID, b.Name, b.Tier, b.BaseIncome, b.BaseSpeed, b.Income(), b.LastCollected).Scan(&id)
	return id, err
}

func saveBusiness(ctx context.Context, tx pgx.Tx, userID string, b economy.Business) error {
	_, err := tx.Exec(ctx, `
		UPDATE rise.businesses
		SET upgrade_level = $3, speed_manager_level = $4, income_manager_level = $5,
			current_income = $6, last_collected = $7
		WHERE user_id = $1 AND id = $2
	`, userID, b.ID, b.UpgradeLevel, b.SpeedManagerLevel, b.IncomeManagerLevel, b.Income(), b.LastCollected)
	return err
}

func loadOwnedAssets(ctx context.Context, tx pgx.Tx, userID string) ([]OwnedAsset, error) {
	rows, err := tx.Query(ctx, `
		SELECT asset_id, purchased_at
		FROM rise.assets
		WHERE user_id = $1
		ORDER BY purchased_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OwnedAsset
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		a, err := economy.AssetByID(id)
		if err != nil {
			// Retired catalog entry; still counted in asset_count.
			continue
		}
		out = append(out, OwnedAsset{Asset: a, PurchasedAt: at})
	}
	return out, rows.Err()
}

// crewSynergy is the per-mille income bonus for the player's crew, 0 without one.
func crewSynergy(ctx context.Context, tx pgx.Tx, userID string) (int64, error) {
	var members int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(1)
		FROM rise.crew_members m
		JOIN rise.crew_members mine ON mine.crew_id = m.crew_id
		WHERE mine.user_id = $1
	`, userID).Scan(&members)
	if err != nil {
		return 0, err
	}
	return economy.CrewSynergy(members), nil
}

func claimIdempotency(ctx context.Context, tx pgx.Tx, userID, key, action string) error {
	if key == "" {
		return ErrIdempotencyRequired
	}
	cmd, err := tx.Exec(ctx, `
		INSERT INTO rise.idempotency_keys (user_id, key, action, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO NOTHING
	`, userID, key, action)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDuplicateIdempotency
	}
	return nil
}

// ledgerLeg is one balanced row of a ledger group.
type ledgerLeg struct {
	UserID  string
	Account string
	Delta   int64
}

// walletLegs books a single-player cash change against the game itself.
func walletLegs(userID string, delta int64) []ledgerLeg {
	if delta == 0 {
		return nil
	}
	return []ledgerLeg{
		{UserID: userID, Account: "wallet", Delta: delta},
		{UserID: userID, Account: "counterparty", Delta: -delta},
	}
}

func appendLedger(ctx context.Context, tx pgx.Tx, action string, legs ...ledgerLeg) error {
	if len(legs) == 0 {
		return nil
	}
	groupID := uuid.NewString()
	meta, _ := json.Marshal(map[string]any{"action": action})
	for _, leg := range legs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO rise.ledger_entries (tx_group_id, user_id, account, delta, metadata)
			VALUES ($1, $2, $3, $4, $5::jsonb)
		`, groupID, leg.UserID, leg.Account, leg.Delta, string(meta)); err != nil {
			return err
		}
	}
	return nil
}

func recordGameResult(ctx context.Context, tx pgx.Tx, kind, userID, targetID string, stake int64, won bool, detail any) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	var target *string
	if targetID != "" {
		target = &targetID
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO rise.game_results (kind, user_id, target_id, stake, won, detail)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
	`, kind, userID, target, stake, won, string(raw))
	return err
}

package game

import (
	"context"

	"riseyn/internal/economy"

	"github.com/jackc/pgx/v5"
)

func (s *Service) ListHustles(ctx context.Context, userID string) (HustleListing, error) {
	var out HustleListing
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		p, _ := row.Player.SyncEnergy(s.clock())
		out = buildHustleListing(p)
		return nil
	})
	return out, err
}

func (s *Service) Hustle(ctx context.Context, userID, hustleID, idem string) (economy.HustleResult, error) {
	h, err := economy.HustleByID(hustleID)
	if err != nil {
		return economy.HustleResult{}, err
	}
	return s.runHustle(ctx, userID, idem, func(economy.Player) economy.Hustle { return h })
}

// TapHustle runs the quick hustle scaled to the player's current tier.
func (s *Service) TapHustle(ctx context.Context, userID, idem string) (economy.HustleResult, error) {
	return s.runHustle(ctx, userID, idem, func(p economy.Player) economy.Hustle { return economy.TapHustle(p.Tier) })
}

func (s *Service) runHustle(ctx context.Context, userID, idem string, pick func(economy.Player) economy.Hustle) (economy.HustleResult, error) {
	var out economy.HustleResult
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "hustle"); err != nil {
			return err
		}
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		out, err = economy.RunHustle(row.Player, pick(row.Player), s.clock())
		if err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, out.Player); err != nil {
			return err
		}
		row.Player = out.Player
		return appendLedger(ctx, tx, "hustle:"+out.Hustle.ID, walletLegs(userID, out.Earned)...)
	})
	if err != nil {
		return economy.HustleResult{}, err
	}
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

// ListAssets returns the catalog, optionally narrowed to one category.
func (s *Service) ListAssets(ctx context.Context, userID string, category *economy.AssetCategory) ([]CatalogAsset, error) {
	var out []CatalogAsset
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		owned, err := loadOwnedAssets(ctx, tx, userID)
		if err != nil {
			return err
		}
		have := make(map[string]bool, len(owned))
		for _, a := range owned {
			have[a.ID] = true
		}
		items := economy.Assets()
		if category != nil {
			items = economy.AssetsIn(*category)
		}
		out = buildAssetCatalog(row.Player, items, have)
		return nil
	})
	return out, err
}

func (s *Service) BuyAsset(ctx context.Context, userID, assetID, idem string) (AssetPurchase, error) {
	asset, err := economy.AssetByID(assetID)
	if err != nil {
		return AssetPurchase{}, err
	}
	var out AssetPurchase
	var row playerRow
	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "asset_buy"); err != nil {
			return err
		}
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		var owned bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM rise.assets WHERE user_id = $1 AND asset_id = $2)
		`, userID, asset.ID).Scan(&owned); err != nil {
			return err
		}
		p, cost, err := economy.BuyAsset(row.Player, asset, owned)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO rise.assets (user_id, asset_id, category)
			VALUES ($1, $2, $3)
		`, userID, asset.ID, asset.Category.String()); err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, p); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "asset_buy:"+asset.ID, walletLegs(userID, -cost)...); err != nil {
			return err
		}
		row.Player = p
		out = AssetPurchase{Asset: asset, Cost: cost, Player: p}
		return nil
	})
	if err != nil {
		return AssetPurchase{}, err
	}
	s.log.Info("asset bought", "user_id", userID, "asset", asset.ID, "cost", out.Cost)
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

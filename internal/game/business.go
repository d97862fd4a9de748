package game

import (
	"context"

	"riseyn/internal/economy"

	"github.com/jackc/pgx/v5"
)

func (s *Service) ListBusinesses(ctx context.Context, userID string) (BusinessListing, error) {
	var out BusinessListing
	err := s.read(ctx, func(tx pgx.Tx) error {
		row, err := loadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		owned, err := loadBusinesses(ctx, tx, userID)
		if err != nil {
			return err
		}
		out.Owned = buildBusinessViews(row.Player, owned, s.clock())
		out.Catalog = buildBusinessCatalog(row.Player, owned)
		return nil
	})
	return out, err
}

func (s *Service) BuyBusiness(ctx context.Context, userID, templateID, idem string) (BusinessView, error) {
	tmpl, err := economy.BusinessTemplateByID(templateID)
	if err != nil {
		return BusinessView{}, err
	}
	var out BusinessView
	var row playerRow
	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "business_buy"); err != nil {
			return err
		}
		now := s.clock()
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		owned, err := ownsTemplate(ctx, tx, userID, tmpl.ID)
		if err != nil {
			return err
		}
		p, b, cost, err := economy.BuyBusiness(row.Player, tmpl, owned, now)
		if err != nil {
			return err
		}
		if b.ID, err = insertBusiness(ctx, tx, userID, b); err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, p); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "business_buy", walletLegs(userID, -cost)...); err != nil {
			return err
		}
		row.Player = p
		out = buildBusinessView(p, b, now)
		return nil
	})
	if err != nil {
		return BusinessView{}, err
	}
	s.log.Info("business bought", "user_id", userID, "template", tmpl.ID, "business_id", out.ID)
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

func (s *Service) UpgradeBusiness(ctx context.Context, userID string, businessID int64, idem string) (BusinessOutcome, error) {
	return s.ApplyBusinessAction(ctx, userID, businessID, economy.ActionUpgrade, idem)
}

func (s *Service) HireManager(ctx context.Context, userID string, businessID int64, track economy.ManagerTrack, idem string) (BusinessOutcome, error) {
	action := economy.ActionHireIncomeManager
	switch track {
	case economy.TrackSpeed:
		action = economy.ActionHireSpeedManager
	case economy.TrackIncome:
	default:
		return BusinessOutcome{}, economy.ErrInvalidTrack
	}
	return s.ApplyBusinessAction(ctx, userID, businessID, action, idem)
}

func (s *Service) CollectBusiness(ctx context.Context, userID string, businessID int64, idem string) (BusinessOutcome, error) {
	return s.ApplyBusinessAction(ctx, userID, businessID, economy.ActionCollect, idem)
}

// ApplyBusinessAction locks the player and the business and runs one action.
func (s *Service) ApplyBusinessAction(ctx context.Context, userID string, businessID int64, action economy.BusinessAction, idem string) (BusinessOutcome, error) {
	if _, err := economy.ParseBusinessAction(string(action)); err != nil {
		return BusinessOutcome{}, err
	}
	var out BusinessOutcome
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "business_"+string(action)); err != nil {
			return err
		}
		now := s.clock()
		var err error
		row, err = loadPlayerForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		b, err := loadBusinessForUpdate(ctx, tx, userID, businessID)
		if err != nil {
			return err
		}
		var synergy int64
		if action == economy.ActionCollect {
			if synergy, err = crewSynergy(ctx, tx, userID); err != nil {
				return err
			}
		}
		res, err := economy.ApplyBusinessAction(row.Player, b, action, now, synergy)
		if err != nil {
			return err
		}
		if err := saveBusiness(ctx, tx, userID, res.Business); err != nil {
			return err
		}
		if err := savePlayer(ctx, tx, userID, res.Player); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "business_"+string(action), walletLegs(userID, res.Credited-res.Cost)...); err != nil {
			return err
		}
		row.Player = res.Player
		out = BusinessOutcome{BusinessResult: res, View: buildBusinessView(res.Player, res.Business, now)}
		return nil
	})
	if err != nil {
		return BusinessOutcome{}, err
	}
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

// CollectAll collects every business whose interval has elapsed.
func (s *Service) CollectAll(ctx context.Context, userID, idem string) (CollectAllResult, error) {
	var out CollectAllResult
	var row playerRow
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		out = CollectAllResult{}
		if err := claimIdempotency(ctx, tx, userID, idem, "business_collect_all"); err != nil {
			return err
		}
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
		synergy, err := crewSynergy(ctx, tx, userID)
		if err != nil {
			return err
		}
		p := row.Player
		for _, b := range businesses {
			if b.ReadyIn(now) > 0 {
				continue
			}
			res, err := economy.Collect(p, b, now, synergy)
			if err != nil {
				return err
			}
			if err := saveBusiness(ctx, tx, userID, res.Business); err != nil {
				return err
			}
			p = res.Player
			out.Credited += res.Credited
			out.Collected = append(out.Collected, buildBusinessView(p, res.Business, now))
		}
		if len(out.Collected) == 0 {
			return economy.ErrNothingToCollect
		}
		if err := savePlayer(ctx, tx, userID, p); err != nil {
			return err
		}
		if err := appendLedger(ctx, tx, "business_collect_all", walletLegs(userID, out.Credited)...); err != nil {
			return err
		}
		row.Player = p
		out.Player = p
		return nil
	})
	if err != nil {
		return CollectAllResult{}, err
	}
	s.publish(ctx, userID, row.Username, row.Player)
	return out, nil
}

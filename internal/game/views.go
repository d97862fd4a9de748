package game

import (
	"errors"
	"time"

	"riseyn/internal/economy"
)

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}

func buildPlayerView(row playerRow, businesses []economy.Business, crew *CrewView, now time.Time) PlayerView {
	p := row.Player
	regen := economy.ComputeEnergyRegen(p.LastEnergyRegen, p.MaxEnergy, p.Energy, now)
	v := PlayerView{
		UserID:             row.UserID,
		Username:           row.Username,
		Player:             p,
		Power:              p.Power(),
		XPForNextLevel:     economy.XPForNextLevel(p.Level, p.Tier),
		EnergyFullInSecs:   ceilSeconds(regen.TimeUntilFull),
		Multipliers:        p.Multipliers(),
		Crew:               crew,
		OwnedBusinessCount: len(businesses),
	}
	if rank, ok := economy.PrestigeRankFor(p.PrestigeLevel); ok {
		v.PrestigeBadge = rank.Name
	}
	for _, b := range businesses {
		v.IncomePerCollect += b.Income()
	}
	return v
}

func buildBusinessView(p economy.Player, b economy.Business, now time.Time) BusinessView {
	m := p.Multipliers()
	return BusinessView{
		Business:          b,
		Income:            b.Income(),
		SpeedSeconds:      int64(b.Speed() / time.Second),
		ReadyInSeconds:    ceilSeconds(b.ReadyIn(now)),
		UpgradeCost:       m.Price(economy.UpgradeCost(b.BaseIncome, b.UpgradeLevel)),
		SpeedManagerCost:  m.Price(economy.ManagerCost(b.Tier, b.SpeedManagerLevel)),
		IncomeManagerCost: m.Price(economy.ManagerCost(b.Tier, b.IncomeManagerLevel)),
	}
}

func buildBusinessViews(p economy.Player, businesses []economy.Business, now time.Time) []BusinessView {
	out := make([]BusinessView, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, buildBusinessView(p, b, now))
	}
	return out
}

func buildBusinessCatalog(p economy.Player, owned []economy.Business) []CatalogBusiness {
	have := make(map[string]bool, len(owned))
	for _, b := range owned {
		have[b.TemplateID] = true
	}
	m := p.Multipliers()
	templates := economy.BusinessTemplates()
	out := make([]CatalogBusiness, 0, len(templates))
	for _, t := range templates {
		out = append(out, CatalogBusiness{
			BusinessTemplate: t,
			Price:            m.Price(t.BaseCost),
			Owned:            have[t.ID],
			Locked:           p.Tier < t.Tier,
		})
	}
	return out
}

func buildAssetCatalog(p economy.Player, assets []economy.Asset, owned map[string]bool) []CatalogAsset {
	m := p.Multipliers()
	out := make([]CatalogAsset, 0, len(assets))
	for _, a := range assets {
		out = append(out, CatalogAsset{
			Asset:  a,
			Price:  m.Price(a.Price),
			Owned:  owned[a.ID],
			Locked: p.Tier < a.Tier,
		})
	}
	return out
}

func buildHustleListing(p economy.Player) HustleListing {
	m := p.Multipliers()
	all := economy.Hustles()
	out := HustleListing{
		Hustles: make([]CatalogHustle, 0, len(all)),
		Tap:     economy.TapHustle(p.Tier),
		Energy:  p.Energy,
	}
	for _, h := range all {
		out.Hustles = append(out.Hustles, CatalogHustle{
			Hustle: h,
			Payout: m.Reward(h.Reward),
			Locked: p.Tier < h.Tier,
		})
	}
	return out
}

func buildBossStatus(p economy.Player) BossStatus {
	power := p.Power()
	boss, err := economy.BossForTier(p.Tier)
	if err != nil {
		return BossStatus{Power: power, MaxTier: errors.Is(err, economy.ErrMaxTier)}
	}
	st := BossStatus{
		Boss:     &boss,
		Power:    power,
		CanFight: economy.CanFightBoss(power, boss),
	}
	if !st.CanFight {
		st.PowerGap = boss.PowerRequired - power
	}
	return st
}

func buildPrestigeStatus(p economy.Player) PrestigeStatus {
	st := PrestigeStatus{
		PrestigeCheck: economy.CheckPrestige(p),
		Count:         p.PrestigeLevel,
		Current:       p.Multipliers(),
	}
	if rank, ok := economy.PrestigeRankFor(p.PrestigeLevel); ok {
		st.Badge, st.Icon = rank.Name, rank.Icon
	}
	if next, ok := economy.NextPrestigeRank(p.PrestigeLevel); ok {
		st.Next = &next
		st.NextAfterIn = next.Threshold - p.PrestigeLevel
	}
	return st
}

package economy

import (
	"fmt"
	"time"
)

const TapEnergyCost = int64(10)

type Hustle struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tier   int    `json:"tier"`
	Reward int64  `json:"reward"`
	XP     int64  `json:"xp"`
	Energy int64  `json:"energy"`
}

var hustleCatalog = []Hustle{
	{ID: "t1-sell-water", Name: "Sell Water Bottles", Tier: 1, Reward: 100, XP: 5, Energy: 5},
	{ID: "t1-flip-shoes", Name: "Flip Thrift Shoes", Tier: 1, Reward: 150, XP: 7, Energy: 8},
	{ID: "t1-wash-cars", Name: "Wash Cars", Tier: 1, Reward: 250, XP: 12, Energy: 15},
	{ID: "t1-run-errands", Name: "Run Errands", Tier: 1, Reward: 400, XP: 18, Energy: 25},
	{ID: "t1-dj-party", Name: "DJ a House Party", Tier: 1, Reward: 600, XP: 30, Energy: 40},

	{ID: "t2-resell-tickets", Name: "Resell Concert Tickets", Tier: 2, Reward: 1_000, XP: 50, Energy: 10},
	{ID: "t2-promote-show", Name: "Promote a Show", Tier: 2, Reward: 2_500, XP: 100, Energy: 20},
	{ID: "t2-bulk-merch", Name: "Move Bulk Merch", Tier: 2, Reward: 5_000, XP: 200, Energy: 40},
	{ID: "t2-pop-up", Name: "Run a Pop-Up Shop", Tier: 2, Reward: 7_500, XP: 300, Energy: 50},
	{ID: "t2-car-flip", Name: "Flip a Car", Tier: 2, Reward: 10_000, XP: 500, Energy: 60},

	{ID: "t3-broker-deal", Name: "Broker a Deal", Tier: 3, Reward: 10_000, XP: 500, Energy: 10},
	{ID: "t3-host-event", Name: "Host a Club Event", Tier: 3, Reward: 25_000, XP: 1_000, Energy: 20},
	{ID: "t3-sign-artist", Name: "Sign an Artist", Tier: 3, Reward: 50_000, XP: 2_500, Energy: 40},
	{ID: "t3-flip-property", Name: "Flip a Property", Tier: 3, Reward: 75_000, XP: 3_500, Energy: 50},
	{ID: "t3-tour-deal", Name: "Close a Tour Deal", Tier: 3, Reward: 100_000, XP: 5_000, Energy: 60},

	{ID: "t4-import-run", Name: "Import Run", Tier: 4, Reward: 100_000, XP: 5_000, Energy: 10},
	{ID: "t4-brand-deal", Name: "Land a Brand Deal", Tier: 4, Reward: 250_000, XP: 10_000, Energy: 20},
	{ID: "t4-fleet-contract", Name: "Fleet Contract", Tier: 4, Reward: 500_000, XP: 25_000, Energy: 40},
	{ID: "t4-angel-round", Name: "Lead an Angel Round", Tier: 4, Reward: 750_000, XP: 35_000, Energy: 50},
	{ID: "t4-merger", Name: "Negotiate a Merger", Tier: 4, Reward: 1_000_000, XP: 50_000, Energy: 60},

	{ID: "t5-oil-contract", Name: "Oil Contract", Tier: 5, Reward: 1_000_000, XP: 50_000, Energy: 10},
	{ID: "t5-port-charter", Name: "Port Charter", Tier: 5, Reward: 2_500_000, XP: 100_000, Energy: 20},
	{ID: "t5-energy-grid", Name: "Energy Grid Buyout", Tier: 5, Reward: 5_000_000, XP: 250_000, Energy: 40},
	{ID: "t5-global-expo", Name: "Global Expo", Tier: 5, Reward: 7_500_000, XP: 350_000, Energy: 50},
	{ID: "t5-empire-deal", Name: "Empire Deal", Tier: 5, Reward: 10_000_000, XP: 500_000, Energy: 60},
}

func Hustles() []Hustle {
	return append([]Hustle(nil), hustleCatalog...)
}

func HustleByID(id string) (Hustle, error) {
	for _, h := range hustleCatalog {
		if h.ID == id {
			return h, nil
		}
	}
	return Hustle{}, ErrUnknownHustle
}

// TapHustle is the quick hustle available at every tier.
func TapHustle(tier int) Hustle {
	if !ValidTier(tier) {
		tier = MinTier
	}
	return Hustle{
		ID:     fmt.Sprintf("tap-t%d", tier),
		Name:   "Quick Hustle",
		Tier:   tier,
		Reward: int64(tier) * 500,
		XP:     int64(tier) * 10,
		Energy: TapEnergyCost,
	}
}

type HustleResult struct {
	Player   Player `json:"player"`
	Hustle   Hustle `json:"hustle"`
	Earned   int64  `json:"earned"`
	XPGained int64  `json:"xp_gained"`
}

// RunHustle spends energy for cash and xp. Reward and xp go through the
// prestige multipliers.
func RunHustle(p Player, h Hustle, now time.Time) (HustleResult, error) {
	if p.Tier < h.Tier {
		return HustleResult{}, reject(ErrTierLocked, 0)
	}
	next, err := p.ConsumeEnergy(h.Energy, now)
	if err != nil {
		return HustleResult{}, err
	}
	earned := next.Multipliers().Reward(h.Reward)
	next.credit(earned)
	gained := next.gainXP(h.XP)
	return HustleResult{Player: next, Hustle: h, Earned: earned, XPGained: gained}, nil
}

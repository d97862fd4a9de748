package game

import (
	"encoding/json"
	"time"

	"riseyn/internal/economy"
	"riseyn/internal/leaderboard"
)

type PlayerView struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	economy.Player
	Power              int64               `json:"power"`
	XPForNextLevel     int64               `json:"xp_for_next_level"`
	EnergyFullInSecs   int64               `json:"energy_full_in_seconds"`
	Multipliers        economy.Multipliers `json:"multipliers"`
	PrestigeBadge      string              `json:"prestige_badge,omitempty"`
	Crew               *CrewView           `json:"crew,omitempty"`
	IncomePerCollect   int64               `json:"income_per_collect"`
	OwnedBusinessCount int                 `json:"owned_business_count"`
}

type Dashboard struct {
	Player     PlayerView              `json:"player"`
	Offline    economy.OfflineEarnings `json:"offline"`
	Businesses []BusinessView          `json:"businesses"`
	Assets     []OwnedAsset            `json:"assets"`
	Boss       BossStatus              `json:"boss"`
	Prestige   PrestigeStatus          `json:"prestige"`
}

type BusinessView struct {
	economy.Business
	Income            int64 `json:"income"`
	SpeedSeconds      int64 `json:"speed_seconds"`
	ReadyInSeconds    int64 `json:"ready_in_seconds"`
	UpgradeCost       int64 `json:"upgrade_cost"`
	SpeedManagerCost  int64 `json:"speed_manager_cost"`
	IncomeManagerCost int64 `json:"income_manager_cost"`
}

// CatalogBusiness is a template as the player sees it: price after prestige
// inflation, and whether it can be bought right now.
type CatalogBusiness struct {
	economy.BusinessTemplate
	Price  int64 `json:"price"`
	Owned  bool  `json:"owned"`
	Locked bool  `json:"locked"`
}

type BusinessListing struct {
	Owned   []BusinessView    `json:"owned"`
	Catalog []CatalogBusiness `json:"catalog"`
}

type OwnedAsset struct {
	economy.Asset
	PurchasedAt time.Time `json:"purchased_at"`
}

type CatalogAsset struct {
	economy.Asset
	Price  int64 `json:"price"`
	Owned  bool  `json:"owned"`
	Locked bool  `json:"locked"`
}

type HustleListing struct {
	Hustles []CatalogHustle `json:"hustles"`
	Tap     economy.Hustle  `json:"tap"`
	Energy  int64           `json:"energy"`
}

type CatalogHustle struct {
	economy.Hustle
	Payout int64 `json:"payout"`
	Locked bool  `json:"locked"`
}

type EnergyView struct {
	Energy           int64  `json:"energy"`
	MaxEnergy        int64  `json:"max_energy"`
	Restored         int64  `json:"restored"`
	TimeUntilFullSec int64  `json:"time_until_full_seconds"`
	TimeUntilFull    string `json:"time_until_full"`
}

type BusinessOutcome struct {
	economy.BusinessResult
	View BusinessView `json:"view"`
}

type CollectAllResult struct {
	Collected []BusinessView `json:"collected"`
	Credited  int64          `json:"credited"`
	Player    economy.Player `json:"player"`
}

type AssetPurchase struct {
	Asset  economy.Asset  `json:"asset"`
	Cost   int64          `json:"cost"`
	Player economy.Player `json:"player"`
}

type BossStatus struct {
	Boss     *economy.Boss `json:"boss,omitempty"`
	Power    int64         `json:"power"`
	CanFight bool          `json:"can_fight"`
	MaxTier  bool          `json:"max_tier"`
	PowerGap int64         `json:"power_gap,omitempty"`
}

type PrestigeStatus struct {
	economy.PrestigeCheck
	Count       int64                 `json:"count"`
	Badge       string                `json:"badge,omitempty"`
	Icon        string                `json:"icon,omitempty"`
	Current     economy.Multipliers   `json:"current"`
	Next        *economy.PrestigeRank `json:"next,omitempty"`
	NextAfterIn int64                 `json:"prestiges_to_next,omitempty"`
}

type PrestigeResult struct {
	Before economy.Player `json:"before"`
	After  economy.Player `json:"after"`
	Status PrestigeStatus `json:"status"`
}

type DiceResult struct {
	economy.DiceOutcome
	Opponent string `json:"opponent"`
}

type BigBankResult struct {
	economy.BigBankOutcome
	Opponent string `json:"opponent"`
}

type CrewView struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Tag             string    `json:"tag"`
	LeaderID        string    `json:"leader_id"`
	Members         int       `json:"members"`
	SynergyPermille int64     `json:"synergy_permille"`
	Role            string    `json:"role,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type LeaveCrewResult struct {
	Crew      string `json:"crew"`
	Disbanded bool   `json:"disbanded"`
}

type LeaderboardRow = leaderboard.Entry

// Command is one offline-queued action replayed by ReplaySync.
type Command struct {
	Action         string          `json:"action"`
	Args           json.RawMessage `json:"args,omitempty"`
	IdempotencyKey string          `json:"idempotency_key"`
	QueuedAt       time.Time       `json:"queued_at"`
}

type CommandResult struct {
	Action         string `json:"action"`
	IdempotencyKey string `json:"idempotency_key"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
	Result         any    `json:"result,omitempty"`
}

package economy

const (
	PrestigeMinTier  = 5
	PrestigeMinLevel = int64(80)
	PrestigeMinCash  = int64(1_000_000_000)

	// PrestigeXPPerRank is the xp granted per cumulative prestige on reset.
	PrestigeXPPerRank = int64(50_000)
)

// Multipliers are the permanent prestige modifiers, in per-mille.
// PriceInflation and RewardReduction scale a value directly; PowerBonus and
// XPBonus are added on top of 1000.
type Multipliers struct {
	PriceInflation  int64 `json:"price_inflation_permille"`
	RewardReduction int64 `json:"reward_reduction_permille"`
	PowerBonus      int64 `json:"power_bonus_permille"`
	XPBonus         int64 `json:"xp_bonus_permille"`
}

var NoMultipliers = Multipliers{PriceInflation: 1000, RewardReduction: 1000}

func (m Multipliers) Price(cost int64) int64 { return scalePermille(cost, m.PriceInflation) }
func (m Multipliers) Reward(v int64) int64 { return scalePermille(v, m.RewardReduction) }
func (m Multipliers) XP(v int64) int64 { return scalePermille(v, 1000+m.XPBonus) }
func (m Multipliers) Power(power int64) int64 { return scalePermille(power, 1000+m.PowerBonus) }

type PrestigeRank struct {
	Threshold   int64       `json:"threshold"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Multipliers Multipliers `json:"multipliers"`
}

var prestigeRanks = []PrestigeRank{
	{Threshold: 1, Name: "Bronze", Icon: "🥉", Multipliers: Multipliers{PriceInflation: 1100, RewardReduction: 950, PowerBonus: 20, XPBonus: 10}},
	{Threshold: 5, Name: "Silver", Icon: "🥈", Multipliers: Multipliers{PriceInflation: 1250, RewardReduction: 900, PowerBonus: 20, XPBonus: 10}},
	{Threshold: 10, Name: "Gold", Icon: "🥇", Multipliers: Multipliers{PriceInflation: 1500, RewardReduction: 850, PowerBonus: 20, XPBonus: 10}},
	{Threshold: 20, Name: "Diamond", Icon: "💎", Multipliers: Multipliers{PriceInflation: 2000, RewardReduction: 750, PowerBonus: 20, XPBonus: 10}},
}

// PrestigeRankFor returns the highest rank whose threshold is <= count.
func PrestigeRankFor(count int64) (PrestigeRank, bool) {
	var (
		best  PrestigeRank
		found bool
	)
	for _, rank := range prestigeRanks {
		if rank.Threshold <= count {
			best, found = rank, true
		}
	}
	return best, found
}

func NextPrestigeRank(count int64) (PrestigeRank, bool) {
	for _, rank := range prestigeRanks {
		if rank.Threshold > count {
			return rank, true
		}
	}
	return PrestigeRank{}, false
}

func PrestigeMultipliers(count int64) Multipliers {
	rank, ok := PrestigeRankFor(count)
	if !ok {
		return NoMultipliers
	}
	return rank.Multipliers
}

type PrestigeCheck struct {
	TierOK   bool  `json:"tier_ok"`
	LevelOK  bool  `json:"level_ok"`
	CashOK   bool  `json:"cash_ok"`
	Eligible bool  `json:"eligible"`
	CashGap  int64 `json:"cash_gap"`
	LevelGap int64 `json:"level_gap"`
}

func CheckPrestige(p Player) PrestigeCheck {
	level := p.EffectiveLevel()
	c := PrestigeCheck{
		TierOK:  p.Tier == PrestigeMinTier,
		LevelOK: level >= PrestigeMinLevel,
		CashOK:  p.Cash >= PrestigeMinCash,
	}
	if !c.CashOK {
		c.CashGap = PrestigeMinCash - p.Cash
	}
	if !c.LevelOK {
		c.LevelGap = PrestigeMinLevel - level
	}
	c.Eligible = c.TierOK && c.LevelOK && c.CashOK
	return c
}

// ResolvePrestige wipes the run and bumps the permanent prestige count.
// The stored level is written as 1; readers derive the real one from the
// carried-over xp bonus.
func ResolvePrestige(p Player) (Player, error) {
	check := CheckPrestige(p)
	if !check.Eligible {
		return p, reject(ErrPrestigeLocked, check.CashGap)
	}
	count := p.PrestigeLevel + 1
	next := p
	next.PrestigeLevel = count
	next.TotalPrestiges = count
	next.Cash = StarterCash
	next.XP = PrestigeXPPerRank * count
	next.Respect = p.Respect / 10
	next.Level = 1
	next.Tier = MinTier
	return next, nil
}

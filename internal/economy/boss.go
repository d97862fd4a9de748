package economy

const (
	bossRollSpread    = 0.10
	bossLossCashFloor = int64(100)
	bossLossRespect   = int64(10)
)

// Boss guards the promotion into TargetTier.
type Boss struct {
	Name          string `json:"name"`
	TargetTier    int    `json:"target_tier"`
	PowerRequired int64  `json:"power_required"`
	CashReward    int64  `json:"cash_reward"`
	XPReward      int64  `json:"xp_reward"`
	RespectReward int64  `json:"respect_reward"`
}

var bosses = map[int]Boss{
	2: {Name: "Block Captain", TargetTier: 2, PowerRequired: 25_000, CashReward: 25_000, XPReward: 2_000, RespectReward: 150},
	3: {Name: "City Controller", TargetTier: 3, PowerRequired: 100_000, CashReward: 100_000, XPReward: 8_000, RespectReward: 400},
	4: {Name: "State Kingpin", TargetTier: 4, PowerRequired: 500_000, CashReward: 500_000, XPReward: 40_000, RespectReward: 1_500},
	5: {Name: "Global Don", TargetTier: 5, PowerRequired: 2_000_000, CashReward: 2_000_000, XPReward: 200_000, RespectReward: 5_000},
}

// BossForTier returns the boss a player at tier must beat to move up.
func BossForTier(tier int) (Boss, error) {
	if !ValidTier(tier) {
		return Boss{}, ErrInvalidTier
	}
	if tier == MaxTier {
		return Boss{}, reject(ErrMaxTier, 0)
	}
	return bosses[tier+1], nil
}

func CanFightBoss(playerPower int64, boss Boss) bool {
	return playerPower >= boss.PowerRequired
}

type BossFight struct {
	Win        bool    `json:"win"`
	PlayerRoll float64 `json:"player_roll"`
	BossRoll   float64 `json:"boss_roll"`
}

// ResolveBossFight gates on unperturbed power, then rolls both sides again
// with independent +/-10% noise. A player who clears the gate can still lose.
func ResolveBossFight(playerPower int64, boss Boss, rng Rand) (BossFight, error) {
	if !CanFightBoss(playerPower, boss) {
		return BossFight{}, reject(ErrUnderpowered, boss.PowerRequired-playerPower)
	}
	bossRoll := float64(boss.PowerRequired) * noise(rng, bossRollSpread)
	playerRoll := float64(playerPower) * noise(rng, bossRollSpread)
	return BossFight{
		Win:        playerRoll > bossRoll,
		PlayerRoll: playerRoll,
		BossRoll:   bossRoll,
	}, nil
}

type BossOutcome struct {
	BossFight
	Boss         Boss   `json:"boss"`
	Power        int64  `json:"power"`
	Player       Player `json:"player"`
	CashDelta    int64  `json:"cash_delta"`
	XPDelta      int64  `json:"xp_delta"`
	RespectDelta int64  `json:"respect_delta"`
}

// FightBoss resolves the fight for the player's current tier and applies the
// reward or the penalty.
func FightBoss(p Player, rng Rand) (BossOutcome, error) {
	boss, err := BossForTier(p.Tier)
	if err != nil {
		return BossOutcome{}, err
	}
	power := p.Power()
	roll, err := ResolveBossFight(power, boss, rng)
	if err != nil {
		return BossOutcome{}, err
	}
	next := p
	out := BossOutcome{BossFight: roll, Boss: boss, Power: power}
	if roll.Win {
		cash := next.Multipliers().Reward(boss.CashReward)
		next.credit(cash)
		out.XPDelta = next.gainXP(boss.XPReward)
		next.adjustRespect(boss.RespectReward)
		next.Tier = boss.TargetTier
		out.CashDelta = cash
		out.RespectDelta = boss.RespectReward
	} else {
		next.Cash = bossLossCash(p.Cash)
		next.adjustRespect(-bossLossRespect)
		out.CashDelta = next.Cash - p.Cash
		out.RespectDelta = next.Respect - p.Respect
	}
	out.Player = next
	return out, nil
}

// bossLossCash takes 5% but never leaves less than 100, and never adds cash
// to a player who already had less.
func bossLossCash(cash int64) int64 {
	after := cash - cash/20
	if after < bossLossCashFloor {
		if cash < bossLossCashFloor {
			return cash
		}
		return bossLossCashFloor
	}
	return after
}

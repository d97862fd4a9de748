package economy

import "time"

const (
	StarterCash   = int64(1000)
	StarterEnergy = int64(100)
	MaxEnergy     = int64(100)
)

// Player is the persisted attribute set the engine reads and returns.
// Level is a cache of ComputeLevel(XP, AssetCount). Gates and rankings read
// EffectiveLevel and never trust the stored value.
type Player struct {
	Cash            int64     `json:"cash"`
	XP              int64     `json:"xp"`
	Respect         int64     `json:"respect"`
	Level           int64     `json:"level"`
	Tier            int       `json:"tier"`
	Energy          int64     `json:"energy"`
	MaxEnergy       int64     `json:"max_energy"`
	LastEnergyRegen time.Time `json:"last_energy_regen"`
	PrestigeLevel   int64     `json:"prestige_level"`
	TotalPrestiges  int64     `json:"total_prestiges"`
	CosmeticBonus   int64     `json:"cosmetic_bonus"`
	AssetCount      int64     `json:"asset_count"`
}

func NewPlayer(now time.Time) Player {
	return Player{
		Cash:            StarterCash,
		Level:           1,
		Tier:            MinTier,
		Energy:          StarterEnergy,
		MaxEnergy:       MaxEnergy,
		LastEnergyRegen: now,
	}
}

func (p Player) Multipliers() Multipliers {
	return PrestigeMultipliers(p.PrestigeLevel)
}

// Power is the combat score used by boss fights and Big Bank.
func (p Player) Power() int64 {
	return p.Multipliers().Power(ComputePower(p.Cash, p.Respect, p.CosmeticBonus, p.PrestigeLevel))
}

// EffectiveLevel is the level derived from xp and owned assets, at least 1.
func (p Player) EffectiveLevel() int64 {
	return max(ComputeLevel(p.XP, p.AssetCount), 1)
}

func (p *Player) refreshLevel() {
	p.Level = p.EffectiveLevel()
}

// gainXP applies the prestige xp bonus and returns the amount granted.
func (p *Player) gainXP(base int64) int64 {
	gained := p.Multipliers().XP(base)
	p.XP = addCapped(p.XP, gained)
	p.refreshLevel()
	return gained
}

func (p *Player) spend(cost int64) error {
	if cost > p.Cash {
		return reject(ErrInsufficientCash, cost-p.Cash)
	}
	p.Cash -= cost
	return nil
}

func (p *Player) credit(amount int64) {
	p.Cash = addCapped(p.Cash, amount)
}

func (p *Player) debit(amount int64) {
	p.Cash = nonNeg(p.Cash - amount)
}

func (p *Player) adjustRespect(delta int64) {
	p.Respect = nonNeg(addCapped(p.Respect, delta))
}

func (p Player) maxEnergy() int64 {
	if p.MaxEnergy <= 0 {
		return MaxEnergy
	}
	return p.MaxEnergy
}

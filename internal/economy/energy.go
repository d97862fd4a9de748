package economy

import "time"

const EnergyRegenInterval = 60 * time.Second

type EnergyRegen struct {
	Restored      int64         `json:"restored"`
	NewEnergy     int64         `json:"new_energy"`
	TimeUntilFull time.Duration `json:"time_until_full"`
}

// ComputeEnergyRegen credits one unit per elapsed minute since the checkpoint,
// capped at maxEnergy. It only reads its inputs, so evaluating it for a
// countdown never moves the checkpoint. A zero checkpoint or a clock that
// went backwards restores nothing.
func ComputeEnergyRegen(lastRegen time.Time, maxEnergy, currentEnergy int64, now time.Time) EnergyRegen {
	if maxEnergy <= 0 {
		maxEnergy = MaxEnergy
	}
	current := nonNeg(currentEnergy)
	if current > maxEnergy {
		current = maxEnergy
	}
	var elapsed time.Duration
	if !lastRegen.IsZero() && now.After(lastRegen) {
		elapsed = now.Sub(lastRegen)
	}
	units := int64(elapsed / EnergyRegenInterval)
	next := current + units
	if units > maxEnergy || next > maxEnergy {
		next = maxEnergy
	}
	return EnergyRegen{
		Restored:      next - current,
		NewEnergy:     next,
		TimeUntilFull: time.Duration(maxEnergy-next) * EnergyRegenInterval,
	}
}

// SyncEnergy folds regenerated energy into the checkpoint. The checkpoint moves
// forward by whole credited minutes so partial progress toward the next unit
// is kept; a full bar resets it to now.
func (p Player) SyncEnergy(now time.Time) (Player, EnergyRegen) {
	regen := ComputeEnergyRegen(p.LastEnergyRegen, p.maxEnergy(), p.Energy, now)
	next := p
	next.Energy = regen.NewEnergy
	switch {
	case p.LastEnergyRegen.IsZero(), regen.NewEnergy >= p.maxEnergy(), now.Before(p.LastEnergyRegen):
		next.LastEnergyRegen = now
	default:
		next.LastEnergyRegen = p.LastEnergyRegen.Add(time.Duration(regen.Restored) * EnergyRegenInterval)
	}
	return next, regen
}

// ConsumeEnergy syncs, spends cost, and resets the checkpoint to now. The energy
// and the checkpoint must be persisted together.
func (p Player) ConsumeEnergy(cost int64, now time.Time) (Player, error) {
	next, _ := p.SyncEnergy(now)
	if cost > next.Energy {
		return p, reject(ErrInsufficientEnergy, cost-next.Energy)
	}
	next.Energy -= cost
	next.LastEnergyRegen = now
	return next, nil
}

// RestoreEnergy adds a one-off bonus, capped at the player's max.
func (p *Player) RestoreEnergy(bonus int64) {
	p.Energy = nonNeg(p.Energy + bonus)
	if p.Energy > p.maxEnergy() {
		p.Energy = p.maxEnergy()
	}
}

package economy

import "time"

const MaxOfflineMinutes = int64(8 * 60)

type OfflineEarnings struct {
	Minutes int64 `json:"minutes"`
	Earned  int64 `json:"earned"`
}

// ComputeOfflineEarnings pays incomePerMinute for every whole minute since
// lastSeen, capped at eight hours.
func ComputeOfflineEarnings(incomePerMinute int64, lastSeen, now time.Time, m Multipliers) OfflineEarnings {
	if lastSeen.IsZero() || !now.After(lastSeen) || incomePerMinute <= 0 {
		return OfflineEarnings{}
	}
	minutes := int64(now.Sub(lastSeen) / time.Minute)
	if minutes > MaxOfflineMinutes {
		minutes = MaxOfflineMinutes
	}
	earned := m.Reward(mulCapped(incomePerMinute, minutes))
	return OfflineEarnings{Minutes: minutes, Earned: earned}
}

// ClaimOffline credits offline earnings to the player.
func ClaimOffline(p Player, businesses []Business, lastSeen, now time.Time) (Player, OfflineEarnings) {
	var perMinute int64
	for _, b := range businesses {
		perMinute = addCapped(perMinute, b.Income())
	}
	earnings := ComputeOfflineEarnings(perMinute, lastSeen, now, p.Multipliers())
	next := p
	next.credit(earnings.Earned)
	return next, earnings
}

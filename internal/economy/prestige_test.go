package economy

import (
	"errors"
	"testing"
)

func eligiblePlayer() Player {
	p := NewPlayer(epoch)
	p.Tier = 5
	p.Level = 80
	p.XP = 640_000
	p.Cash = 1_000_000_000
	p.Respect = 500
	return p
}

func TestResolvePrestige(t *testing.T) {
	p := eligiblePlayer()
	next, err := ResolvePrestige(p)
	if err != nil {
		t.Fatalf("prestige: %v", err)
	}
	if next.Respect != 50 || next.Tier != 1 || next.Cash != 1000 || next.Level != 1 {
		t.Fatalf("unexpected reset state %+v", next)
	}
	if next.PrestigeLevel != 1 || next.TotalPrestiges != 1 || next.XP != 50_000 {
		t.Fatalf("unexpected prestige bookkeeping %+v", next)
	}

	if next.EffectiveLevel() != 22 {
		t.Fatalf("xp bonus should derive level 22, got %d", next.EffectiveLevel())
	}

	next.Tier, next.XP, next.Cash = 5, 640_000, 2_000_000_000
	again, err := ResolvePrestige(next)
	if err != nil {
		t.Fatalf("second prestige: %v", err)
	}
	if again.PrestigeLevel != 2 || again.XP != 100_000 || again.Respect != 5 {
		t.Fatalf("unexpected second prestige %+v", again)
	}
}

func TestResolvePrestigeIneligible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Player)
	}{
		{name: "tier", mutate: func(p *Player) { p.Tier = 4 }},
		{name: "level", mutate: func(p *Player) { p.XP = 624_099 }},
		{name: "stale cached level", mutate: func(p *Player) { p.XP, p.Level = 0, 80 }},
		{name: "cash", mutate: func(p *Player) { p.Cash = 999_999_999 }},
	}
	for _, tc := range tests {
		p := eligiblePlayer()
		tc.mutate(&p)
		next, err := ResolvePrestige(p)
		if !errors.Is(err, ErrPrestigeLocked) {
			t.Fatalf("%s: expected prestige locked, got %v", tc.name, err)
		}
		if next != p {
			t.Fatalf("%s: state changed on rejection", tc.name)
		}
	}
}

func TestPrestigeMultipliers(t *testing.T) {
	tests := []struct {
		count int64
		want  Multipliers
	}{
		{0, NoMultipliers},
		{1, Multipliers{1100, 950, 20, 10}},
		{4, Multipliers{1100, 950, 20, 10}},
		{5, Multipliers{1250, 900, 20, 10}},
		{19, Multipliers{1500, 850, 20, 10}},
		{20, Multipliers{2000, 750, 20, 10}},
		{250, Multipliers{2000, 750, 20, 10}},
	}
	for _, tc := range tests {
		if got := PrestigeMultipliers(tc.count); got != tc.want {
			t.Fatalf("multipliers(%d): expected %+v, got %+v", tc.count, tc.want, got)
		}
	}
	if next, ok := NextPrestigeRank(5); !ok || next.Name != "Gold" {
		t.Fatalf("expected Gold next, got %+v", next)
	}
	if _, ok := NextPrestigeRank(20); ok {
		t.Fatalf("no rank after Diamond")
	}
}

func TestMultipliersApply(t *testing.T) {
	m := PrestigeMultipliers(10)
	if got := m.Price(1_000); got != 1_500 {
		t.Fatalf("price: expected 1500, got %d", got)
	}
	if got := m.Reward(1_000); got != 850 {
		t.Fatalf("reward: expected 850, got %d", got)
	}
	if got := m.XP(1_000); got != 1_010 {
		t.Fatalf("xp: expected 1010, got %d", got)
	}
	if got := m.Power(1_000); got != 1_020 {
		t.Fatalf("power: expected 1020, got %d", got)
	}
}

package economy

import (
	"errors"
	"testing"
)

func TestBossFightRejectedBelowPower(t *testing.T) {
	boss := Boss{Name: "Test", TargetTier: 2, PowerRequired: 5_000}
	rng := &scriptedRand{floats: []float64{0.99}}
	_, err := ResolveBossFight(1_000, boss, rng)
	if !errors.Is(err, ErrUnderpowered) {
		t.Fatalf("expected underpowered, got %v", err)
	}
	var rej *RejectError
	if !errors.As(err, &rej) || rej.Shortfall != 4_000 {
		t.Fatalf("expected shortfall 4000, got %v", err)
	}
	if rng.fi != 0 {
		t.Fatalf("gate check must not draw randomness, drew %d", rng.fi)
	}
}

func TestFightBossRejectedLeavesPlayerIntact(t *testing.T) {
	p := NewPlayer(epoch)
	p.Cash = 10_000
	before := p
	_, err := FightBoss(p, &scriptedRand{})
	if !errors.Is(err, ErrUnderpowered) {
		t.Fatalf("expected underpowered, got %v", err)
	}
	if p != before {
		t.Fatalf("player mutated on rejection")
	}
}

func TestFightBossWin(t *testing.T) {
	p := NewPlayer(epoch)
	p.Cash = 250_000
	out, err := FightBoss(p, &scriptedRand{floats: []float64{0, 0.99}})
	if err != nil {
		t.Fatalf("fight: %v", err)
	}
	if !out.Win {
		t.Fatalf("expected win, rolls %.1f vs %.1f", out.PlayerRoll, out.BossRoll)
	}
	got := out.Player
	if got.Tier != 2 || got.Cash != 275_000 || got.XP != 2_000 || got.Respect != 150 {
		t.Fatalf("unexpected reward state %+v", got)
	}
	if got.Level != 4 {
		t.Fatalf("level should refresh from xp, got %d", got.Level)
	}
}

func TestFightBossLoss(t *testing.T) {
	p := NewPlayer(epoch)
	p.Cash = 250_000
	p.Respect = 4
	out, err := FightBoss(p, &scriptedRand{floats: []float64{0.99, 0}})
	if err != nil {
		t.Fatalf("fight: %v", err)
	}
	if out.Win {
		t.Fatalf("expected loss")
	}
	if out.Player.Tier != 1 || out.Player.Cash != 237_500 || out.Player.Respect != 0 {
		t.Fatalf("unexpected penalty state %+v", out.Player)
	}
	if out.CashDelta != -12_500 || out.RespectDelta != -4 {
		t.Fatalf("unexpected deltas cash=%d respect=%d", out.CashDelta, out.RespectDelta)
	}
}

func TestBossLossCash(t *testing.T) {
	tests := map[int64]int64{
		0:     0,
		50:    50,
		100:   100,
		104:   100,
		2_000: 1_900,
	}
	for in, want := range tests {
		if got := bossLossCash(in); got != want {
			t.Fatalf("bossLossCash(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestBossNeverPastMaxTier(t *testing.T) {
	p := NewPlayer(epoch)
	p.Cash = 100_000_000_000
	rng := &scriptedRand{floats: []float64{0, 0.99}}
	for i := 0; i < 10; i++ {
		out, err := FightBoss(p, rng)
		if errors.Is(err, ErrMaxTier) {
			break
		}
		if err != nil {
			t.Fatalf("fight %d: %v", i, err)
		}
		p = out.Player
		if p.Tier > MaxTier {
			t.Fatalf("tier %d beyond max", p.Tier)
		}
	}
	if p.Tier != MaxTier {
		t.Fatalf("expected to reach tier 5, got %d", p.Tier)
	}
	if _, err := FightBoss(p, rng); !errors.Is(err, ErrMaxTier) {
		t.Fatalf("expected max tier at 5, got %v", err)
	}
	if _, err := BossForTier(MaxTier); !errors.Is(err, ErrMaxTier) {
		t.Fatalf("expected max tier, got %v", err)
	}
	if _, err := BossForTier(0); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected invalid tier, got %v", err)
	}
}

// The boss gate uses the same power as Big Bank: cosmetics, prestige count
// and the prestige power bonus all count.
func TestFightBossGatesOnFullPower(t *testing.T) {
	p := NewPlayer(epoch)
	p.Cash = 200_000
	p.CosmeticBonus = 2_500
	bare := ComputePower(p.Cash, p.Respect, 0, 0)
	if bare >= bosses[2].PowerRequired {
		t.Fatalf("setup: bare power %d already clears the gate", bare)
	}
	out, err := FightBoss(p, &scriptedRand{floats: []float64{0.5}})
	if err != nil {
		t.Fatalf("cosmetics should clear the gate, got %v", err)
	}
	if out.Power != p.Power() || out.Power != 25_000 {
		t.Fatalf("expected full power 25000, got %d", out.Power)
	}

	p.CosmeticBonus = 0
	p.Cash = 246_000
	p.PrestigeLevel = 1
	if ComputePower(p.Cash, p.Respect, 0, 0) >= bosses[2].PowerRequired {
		t.Fatalf("setup: bare power already clears the gate")
	}
	out, err = FightBoss(p, &scriptedRand{floats: []float64{0.5}})
	if err != nil {
		t.Fatalf("prestige bonus should clear the gate, got %v", err)
	}
	if out.Power != p.Power() {
		t.Fatalf("expected power %d, got %d", p.Power(), out.Power)
	}
}

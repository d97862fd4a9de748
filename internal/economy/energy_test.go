package economy

import (
	"errors"
	"testing"
	"time"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestComputeEnergyRegen(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		current   int64
		restored  int64
		energy    int64
		untilFull time.Duration
	}{
		{name: "no time elapsed", elapsed: 0, current: 40, restored: 0, energy: 40, untilFull: 60 * time.Minute},
		{name: "partial minute", elapsed: 59 * time.Second, current: 40, restored: 0, energy: 40, untilFull: 60 * time.Minute},
		{name: "five minutes", elapsed: 5 * time.Minute, current: 40, restored: 5, energy: 45, untilFull: 55 * time.Minute},
		{name: "caps at max", elapsed: 3 * time.Hour, current: 40, restored: 60, energy: 100, untilFull: 0},
		{name: "already full", elapsed: 10 * time.Hour, current: 100, restored: 0, energy: 100, untilFull: 0},
		{name: "clock went backwards", elapsed: -5 * time.Minute, current: 10, restored: 0, energy: 10, untilFull: 90 * time.Minute},
	}
	for _, tc := range tests {
		got := ComputeEnergyRegen(epoch, 100, tc.current, epoch.Add(tc.elapsed))
		if got.Restored != tc.restored || got.NewEnergy != tc.energy || got.TimeUntilFull != tc.untilFull {
			t.Fatalf("%s: got %+v", tc.name, got)
		}
	}
}

func TestComputeEnergyRegenIsPure(t *testing.T) {
	now := epoch.Add(7*time.Minute + 30*time.Second)
	a := ComputeEnergyRegen(epoch, 100, 12, now)
	b := ComputeEnergyRegen(epoch, 100, 12, now)
	if a != b {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestComputeEnergyRegenZeroCheckpoint(t *testing.T) {
	got := ComputeEnergyRegen(time.Time{}, 100, 30, epoch)
	if got.Restored != 0 || got.NewEnergy != 30 {
		t.Fatalf("zero checkpoint should restore nothing, got %+v", got)
	}
}

func TestSyncEnergyKeepsPartialMinute(t *testing.T) {
	p := NewPlayer(epoch)
	p.Energy = 10
	now := epoch.Add(150 * time.Second)

	next, regen := p.SyncEnergy(now)
	if regen.Restored != 2 || next.Energy != 12 {
		t.Fatalf("expected 2 restored to 12, got %+v energy=%d", regen, next.Energy)
	}
	if want := epoch.Add(2 * time.Minute); !next.LastEnergyRegen.Equal(want) {
		t.Fatalf("checkpoint should advance by whole minutes to %s, got %s", want, next.LastEnergyRegen)
	}
	if !p.LastEnergyRegen.Equal(epoch) || p.Energy != 10 {
		t.Fatalf("sync must not mutate the receiver")
	}

	again, _ := next.SyncEnergy(now.Add(30 * time.Second))
	if again.Energy != 13 {
		t.Fatalf("carried partial minute should complete, got %d", again.Energy)
	}
}

func TestSyncEnergyFullResetsCheckpoint(t *testing.T) {
	p := NewPlayer(epoch)
	p.Energy = 95
	now := epoch.Add(time.Hour)
	next, _ := p.SyncEnergy(now)
	if next.Energy != 100 || !next.LastEnergyRegen.Equal(now) {
		t.Fatalf("expected full bar at now, got %d at %s", next.Energy, next.LastEnergyRegen)
	}
}

func TestConsumeEnergyResetsCheckpoint(t *testing.T) {
	p := NewPlayer(epoch)
	p.Energy = 10
	now := epoch.Add(5 * time.Minute)

	next, err := p.ConsumeEnergy(15, now)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if next.Energy != 0 || !next.LastEnergyRegen.Equal(now) {
		t.Fatalf("expected 0 energy at now, got %d at %s", next.Energy, next.LastEnergyRegen)
	}

	// Re-applying regen right after consumption must not credit the stale minutes.
	after := ComputeEnergyRegen(next.LastEnergyRegen, next.MaxEnergy, next.Energy, now)
	if after.NewEnergy != 0 {
		t.Fatalf("stale checkpoint credited %d energy", after.NewEnergy)
	}
}

func TestConsumeEnergyShortfall(t *testing.T) {
	p := NewPlayer(epoch)
	p.Energy = 3
	_, err := p.ConsumeEnergy(10, epoch)
	if !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("expected insufficient energy, got %v", err)
	}
	var rej *RejectError
	if !errors.As(err, &rej) || rej.Shortfall != 7 {
		t.Fatalf("expected shortfall 7, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                              "Full",
		45 * time.Second:               "45s",
		3*time.Minute + 10*time.Second: "3m 10s",
		2*time.Hour + 5*time.Minute:    "2h 5m",
	}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%s): expected %q, got %q", in, want, got)
		}
	}
}

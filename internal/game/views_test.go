package game

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"riseyn/internal/economy"
	"riseyn/internal/leaderboard"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestBuildBusinessView(t *testing.T) {
	b := economy.Business{
		ID:                 7,
		TemplateID:         "water-stand",
		Tier:               1,
		BaseIncome:         50,
		BaseSpeed:          120,
		UpgradeLevel:       1,
		IncomeManagerLevel: 1,
		LastCollected:      now.Add(-20 * time.Second),
	}

	tests := []struct {
		name     string
		prestige int64
		upgrade  int64
		speedMgr int64
		income   int64
	}{
		{name: "no prestige", prestige: 0, upgrade: 112, speedMgr: 5_000, income: 10_000},
		{name: "bronze inflation", prestige: 1, upgrade: 123, speedMgr: 5_500, income: 11_000},
	}
	for _, tc := range tests {
		p := economy.Player{Tier: 1, PrestigeLevel: tc.prestige}
		v := buildBusinessView(p, b, now)
		if v.Income != 120 || v.SpeedSeconds != 60 || v.ReadyInSeconds != 40 {
			t.Fatalf("%s: unexpected derived stats %+v", tc.name, v)
		}
		if v.UpgradeCost != tc.upgrade || v.SpeedManagerCost != tc.speedMgr || v.IncomeManagerCost != tc.income {
			t.Fatalf("%s: costs upgrade=%d speed=%d income=%d", tc.name, v.UpgradeCost, v.SpeedManagerCost, v.IncomeManagerCost)
		}
	}
}

func TestBuildBossStatus(t *testing.T) {
	weak := buildBossStatus(economy.Player{Tier: 1, Cash: 1_000})
	if weak.Boss == nil || weak.Boss.TargetTier != 2 {
		t.Fatalf("expected tier 2 boss, got %+v", weak.Boss)
	}
	if weak.CanFight || weak.PowerGap != weak.Boss.PowerRequired-weak.Power {
		t.Fatalf("expected underpowered status, got %+v", weak)
	}

	top := buildBossStatus(economy.Player{Tier: economy.MaxTier})
	if !top.MaxTier || top.Boss != nil || top.CanFight {
		t.Fatalf("expected max tier status, got %+v", top)
	}
}

func TestBuildPrestigeStatus(t *testing.T) {
	st := buildPrestigeStatus(economy.Player{Tier: 5, XP: 640_000, Cash: 999_999_000, PrestigeLevel: 4})
	if st.Eligible || !st.TierOK || !st.LevelOK || st.CashGap != 1_000 {
		t.Fatalf("unexpected check %+v", st.PrestigeCheck)
	}
	if st.Badge != "Bronze" || st.Next == nil || st.Next.Name != "Silver" || st.NextAfterIn != 1 {
		t.Fatalf("unexpected rank info %+v", st)
	}

	diamond := buildPrestigeStatus(economy.Player{PrestigeLevel: 25})
	if diamond.Badge != "Diamond" || diamond.Next != nil {
		t.Fatalf("expected top rank, got %+v", diamond)
	}
}

func TestBuildPlayerView(t *testing.T) {
	row := playerRow{
		UserID:   "u1",
		Username: "dre",
		Player: economy.Player{
			Cash:            500,
			Level:           3,
			Tier:            1,
			Energy:          90,
			MaxEnergy:       100,
			LastEnergyRegen: now,
		},
	}
	businesses := []economy.Business{
		{BaseIncome: 50, BaseSpeed: 120},
		{BaseIncome: 75, BaseSpeed: 240, UpgradeLevel: 1},
	}
	v := buildPlayerView(row, businesses, nil, now)
	if v.EnergyFullInSecs != 600 {
		t.Fatalf("expected 10 minutes to full, got %d", v.EnergyFullInSecs)
	}
	if v.IncomePerCollect != 200 || v.OwnedBusinessCount != 2 {
		t.Fatalf("unexpected business summary %+v", v)
	}
	if v.PrestigeBadge != "" || v.Multipliers != economy.NoMultipliers {
		t.Fatalf("expected no prestige effects, got %+v", v)
	}
}

func TestBuildHustleListing(t *testing.T) {
	list := buildHustleListing(economy.Player{Tier: 2, Energy: 40})
	if list.Tap.Tier != 2 || list.Energy != 40 {
		t.Fatalf("unexpected listing header %+v", list)
	}
	for _, h := range list.Hustles {
		if h.Locked != (h.Tier > 2) {
			t.Fatalf("hustle %s lock=%v at tier 2", h.ID, h.Locked)
		}
		if h.Payout != h.Reward {
			t.Fatalf("hustle %s payout %d without prestige", h.ID, h.Payout)
		}
	}
}

func TestBuildBusinessCatalog(t *testing.T) {
	p := economy.Player{Tier: 1, PrestigeLevel: 5}
	owned := []economy.Business{{TemplateID: "water-stand"}}
	for _, c := range buildBusinessCatalog(p, owned) {
		if c.Owned != (c.ID == "water-stand") {
			t.Fatalf("%s owned=%v", c.ID, c.Owned)
		}
		if c.Locked != (c.Tier > 1) {
			t.Fatalf("%s locked=%v", c.ID, c.Locked)
		}
		if c.Price != c.BaseCost*1250/1000 {
			t.Fatalf("%s price %d not inflated from %d", c.ID, c.Price, c.BaseCost)
		}
	}
}

func TestCeilSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int64
	}{
		{in: 0, want: 0},
		{in: -time.Second, want: 0},
		{in: time.Millisecond, want: 1},
		{in: time.Second, want: 1},
		{in: 90*time.Second + 1, want: 91},
		{in: 3 * time.Minute, want: 180},
	}
	for _, tc := range tests {
		if got := ceilSeconds(tc.in); got != tc.want {
			t.Fatalf("ceilSeconds(%s) got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestWalletLegsBalance(t *testing.T) {
	if legs := walletLegs("u1", 0); legs != nil {
		t.Fatalf("expected no legs for zero delta, got %+v", legs)
	}
	legs := walletLegs("u1", -250)
	var sum int64
	for _, l := range legs {
		sum += l.Delta
	}
	if len(legs) != 2 || sum != 0 || legs[0].Account != "wallet" || legs[0].Delta != -250 {
		t.Fatalf("unexpected legs %+v", legs)
	}
}

func TestDecodeArgs(t *testing.T) {
	args, err := decodeArgs([]byte(`{"business_id": 12, "track": "speed"}`))
	if err != nil || args.BusinessID != 12 || args.Track != "speed" {
		t.Fatalf("unexpected args %+v (%v)", args, err)
	}
	if _, err := decodeArgs(nil); err != nil {
		t.Fatalf("empty args should decode: %v", err)
	}
	if _, err := decodeArgs([]byte(`{"business_id": "x"}`)); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown command, got %v", err)
	}
}

func TestIsRejection(t *testing.T) {
	rejections := []error{
		economy.ErrInvalidBet,
		economy.ErrUnknownAsset,
		fmt.Errorf("wrapped: %w", economy.ErrCooldown),
		ErrPlayerNotFound,
		ErrCrewTaken,
		leaderboard.ErrUnknownKind,
	}
	for _, err := range rejections {
		if !IsRejection(err) {
			t.Fatalf("expected %v to be a rejection", err)
		}
	}
	for _, err := range []error{ErrTxConflict, errors.New("connection reset")} {
		if IsRejection(err) {
			t.Fatalf("expected %v to be an infrastructure error", err)
		}
	}
}

func TestReplaySyncLimit(t *testing.T) {
	s := &Service{}
	cmds := make([]Command, MaxReplayCommands+1)
	if _, err := s.ReplaySync(testContext(t), "u1", cmds); !errors.Is(err, ErrTooManyCommands) {
		t.Fatalf("expected too many commands, got %v", err)
	}
}

func TestLockedRandIsDeterministicPerSeed(t *testing.T) {
	a, b := newLockedRand(42), newLockedRand(42)
	for i := 0; i < 20; i++ {
		if a.Intn(6) != b.Intn(6) || a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
	for i := 0; i < 100; i++ {
		if f := a.Float64(); f < 0 || f >= 1 {
			t.Fatalf("float out of range: %v", f)
		}
	}
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{0: 100, -5: 100, 10: 10, 100: 100, 500: 100} {
		if got := clampLimit(in); got != want {
			t.Fatalf("clampLimit(%d) got=%d want=%d", in, got, want)
		}
	}
}

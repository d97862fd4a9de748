package economy

import "testing"

func TestComputePower(t *testing.T) {
	tests := []struct {
		name                    string
		cash, respect, cosmetic int64
		prestige                int64
		want                    int64
	}{
		{name: "zero", want: 0},
		{name: "cash", cash: 1000, want: 100},
		{name: "cash floors", cash: 15, want: 1},
		{name: "respect", respect: 1, want: 50},
		{name: "cosmetic", cosmetic: 1, want: 2},
		{name: "prestige squared", prestige: 10, want: 1},
		{name: "prestige below one", prestige: 9, want: 0},
		{name: "mixed", cash: 250_000, respect: 100, cosmetic: 40, prestige: 20, want: 25_000 + 5_000 + 80 + 4},
		{name: "negative inputs clamp", cash: -500, respect: -3, want: 0},
	}
	for _, tc := range tests {
		got := ComputePower(tc.cash, tc.respect, tc.cosmetic, tc.prestige)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestComputePowerMonotonic(t *testing.T) {
	values := []int64{0, 1, 9, 10, 99, 1_000, 123_456, 1_000_000_000}
	for _, a := range values {
		for _, b := range values {
			if a > b {
				continue
			}
			if ComputePower(a, 7, 3, 2) > ComputePower(b, 7, 3, 2) {
				t.Fatalf("power not monotonic in cash: %d -> %d", a, b)
			}
			if ComputePower(500, a, 3, 2) > ComputePower(500, b, 3, 2) {
				t.Fatalf("power not monotonic in respect: %d -> %d", a, b)
			}
			if ComputePower(500, 7, a, 2) > ComputePower(500, 7, b, 2) {
				t.Fatalf("power not monotonic in cosmetic bonus: %d -> %d", a, b)
			}
		}
	}
}

func TestComputeLevel(t *testing.T) {
	tests := []struct {
		xp, assets int64
		want       int64
	}{
		{0, 0, 0},
		{99, 0, 0},
		{100, 0, 1},
		{399, 0, 1},
		{400, 0, 2},
		{10_000, 0, 10},
		{640_000, 0, 80},
		{0, 19, 0},
		{0, 20, 1},
		{99, 19, 1},
		{300, 10, 2},
		{640_000, 40, 82},
	}
	for _, tc := range tests {
		if got := ComputeLevel(tc.xp, tc.assets); got != tc.want {
			t.Fatalf("level(%d, %d): expected %d, got %d", tc.xp, tc.assets, tc.want, got)
		}
	}
}

func TestXPForNextLevel(t *testing.T) {
	if got := XPForNextLevel(0, 0); got != 250 {
		t.Fatalf("expected 250, got %d", got)
	}
	if got := XPForNextLevel(1, 1); got != 1250 {
		t.Fatalf("expected 1250, got %d", got)
	}
	if got := XPForNextLevel(9, 5); got != 56250 {
		t.Fatalf("expected 56250, got %d", got)
	}
}

func TestComputeCost(t *testing.T) {
	tests := []struct {
		name              string
		base              int64
		tier              int
		manager, investor bool
		level             int64
		want              int64
	}{
		{name: "first level tier 1", base: 10_000, tier: 1, level: 1, want: 10_000},
		{name: "tier multiplier", base: 10_000, tier: 2, level: 1, want: 50_000},
		{name: "manual inflation", base: 10_000, tier: 1, level: 2, want: 11_200},
		{name: "manager inflation", base: 10_000, tier: 1, manager: true, level: 2, want: 12_800},
		{name: "investor inflation", base: 10_000, tier: 1, investor: true, level: 2, want: 14_000},
		{name: "both compounding", base: 10_000, tier: 1, manager: true, investor: true, level: 3, want: 24_025},
		{name: "level zero treated as first", base: 100, tier: 5, level: 0, want: 32_000},
	}
	for _, tc := range tests {
		got := ComputeCost(tc.base, tc.tier, tc.manager, tc.investor, tc.level)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestFormatCash(t *testing.T) {
	tests := map[int64]string{
		0:             "$0",
		999:           "$999",
		1_500:         "$1.5K",
		2_300_000:     "$2.3M",
		1_000_000_000: "$1.0B",
		-1_500:        "-$1.5K",
	}
	for in, want := range tests {
		if got := FormatCash(in); got != want {
			t.Fatalf("FormatCash(%d): expected %q, got %q", in, want, got)
		}
	}
}

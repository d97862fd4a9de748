package economy

import (
	"math"
	"math/big"
)

const (
	MinTier = 1
	MaxTier = 5
)

// Cost inflation per automation level, as hundredths.
const (
	inflationManual       = 112
	inflationWithManager  = 128
	inflationWithInvestor = 140
	inflationBoth         = 155
)

var tierCostMultipliers = [MaxTier + 1]int64{0, 1, 5, 20, 80, 320}

func ValidTier(tier int) bool {
	return tier >= MinTier && tier <= MaxTier
}

// ComputePower is floor(cash*0.1 + respect*50 + cosmeticBonus*2 + prestige^2*0.01),
// evaluated exactly over hundredths.
func ComputePower(cash, respect, cosmeticBonus, prestigeCount int64) int64 {
	cash, respect, cosmeticBonus, prestigeCount = nonNeg(cash), nonNeg(respect), nonNeg(cosmeticBonus), nonNeg(prestigeCount)
	sum := new(big.Int).Mul(big.NewInt(cash), big.NewInt(10))
	sum.Add(sum, new(big.Int).Mul(big.NewInt(respect), big.NewInt(5000)))
	sum.Add(sum, new(big.Int).Mul(big.NewInt(cosmeticBonus), big.NewInt(200)))
	sum.Add(sum, new(big.Int).Mul(big.NewInt(prestigeCount), big.NewInt(prestigeCount)))
	return saturate(sum.Quo(sum, big.NewInt(100)))
}

// ComputeLevel is floor(sqrt(xp/100) + ownedAssets*0.05). With a = 20q + r the
// sum floors to q + floor((isqrt(4*xp) + r) / 20), which avoids float error
// on perfect squares.
func ComputeLevel(xp, ownedAssets int64) int64 {
	xp, ownedAssets = nonNeg(xp), nonNeg(ownedAssets)
	root := new(big.Int).Sqrt(new(big.Int).Mul(big.NewInt(xp), big.NewInt(4)))
	q, r := ownedAssets/20, ownedAssets%20
	root.Add(root, big.NewInt(r))
	root.Quo(root, big.NewInt(20))
	return q + saturate(root)
}

// XPForNextLevel is display-only progress: floor(250 * (level+1)^2 * (1 + tier*0.25)).
func XPForNextLevel(level int64, tier int) int64 {
	next := nonNeg(level) + 1
	v := new(big.Int).Mul(big.NewInt(next), big.NewInt(next))
	v.Mul(v, big.NewInt(250*int64(4+tier)))
	return saturate(v.Quo(v, big.NewInt(4)))
}

// ComputeCost is floor(baseCost * tierMultiplier[tier] * rate^(level-1)) where
// rate grows once a manager or investor is owned.
func ComputeCost(baseCost int64, tier int, hasManager, hasInvestor bool, level int64) int64 {
	if !ValidTier(tier) {
		tier = MinTier
	}
	rate := int64(inflationManual)
	switch {
	case hasManager && hasInvestor:
		rate = inflationBoth
	case hasInvestor:
		rate = inflationWithInvestor
	case hasManager:
		rate = inflationWithManager
	}
	exp := level - 1
	if exp < 0 {
		exp = 0
	}
	num := new(big.Int).Mul(big.NewInt(nonNeg(baseCost)), big.NewInt(tierCostMultipliers[tier]))
	num.Mul(num, new(big.Int).Exp(big.NewInt(rate), big.NewInt(exp), nil))
	den := new(big.Int).Exp(big.NewInt(100), big.NewInt(exp), nil)
	return saturate(num.Quo(num, den))
}

// scalePermille returns floor(v * permille / 1000).
func scalePermille(v, permille int64) int64 {
	out := new(big.Int).Mul(big.NewInt(v), big.NewInt(permille))
	return saturate(out.Quo(out, big.NewInt(1000)))
}

func saturate(v *big.Int) int64 {
	if v.IsInt64() {
		return v.Int64()
	}
	if v.Sign() < 0 {
		return math.MinInt64
	}
	return math.MaxInt64
}

func nonNeg(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// addCapped adds without wrapping past MaxInt64.
func addCapped(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulCapped(a, b int64) int64 {
	return saturate(new(big.Int).Mul(big.NewInt(a), big.NewInt(b)))
}

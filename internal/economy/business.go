package economy

import (
	"math/big"
	"strings"
	"time"
)

const (
	MinBusinessSpeed = 5 * time.Second
	ManagerBaseCost  = int64(5000)
)

// Business is one owned income source. Income and speed are always derived
// from the stored levels.
type Business struct {
	ID                 int64     `json:"id"`
	TemplateID         string    `json:"template_id"`
	Name               string    `json:"name"`
	Tier               int       `json:"tier"`
	BaseIncome         int64     `json:"base_income"`
	BaseSpeed          int64     `json:"base_speed_seconds"`
	UpgradeLevel       int64     `json:"upgrade_level"`
	SpeedManagerLevel  int64     `json:"speed_manager_level"`
	IncomeManagerLevel int64     `json:"income_manager_level"`
	LastCollected      time.Time `json:"last_collected"`
}

// ComputeBusinessIncome is floor(base * 2^upgradeLevel * (1 + 0.2*incomeManagerLevel)).
func ComputeBusinessIncome(base, upgradeLevel, incomeManagerLevel int64) int64 {
	v := new(big.Int).Lsh(big.NewInt(nonNeg(base)), uint(clampShift(upgradeLevel)))
	v.Mul(v, big.NewInt(5+nonNeg(incomeManagerLevel)))
	return saturate(v.Quo(v, big.NewInt(5)))
}

// ComputeBusinessSpeed halves the collection interval per upgrade level and
// divides it by the speed manager level once one is hired. Never below 5s.
func ComputeBusinessSpeed(baseSeconds, upgradeLevel, speedManagerLevel int64) time.Duration {
	u := nonNeg(upgradeLevel)
	if u >= 62 {
		return MinBusinessSpeed
	}
	d := time.Duration(nonNeg(baseSeconds)) * time.Second
	if baseSeconds > int64(1<<62)/int64(time.Second) {
		d = time.Duration(1 << 62)
	}
	d >>= uint(u)
	if speedManagerLevel > 0 {
		d /= time.Duration(speedManagerLevel)
	}
	if d < MinBusinessSpeed {
		return MinBusinessSpeed
	}
	return d
}

// UpgradeCost is floor(base * 1.5 * 1.5^upgradeLevel).
func UpgradeCost(baseIncome, upgradeLevel int64) int64 {
	n := big.NewInt(nonNeg(upgradeLevel) + 1)
	num := new(big.Int).Mul(big.NewInt(nonNeg(baseIncome)), new(big.Int).Exp(big.NewInt(3), n, nil))
	return saturate(num.Quo(num, new(big.Int).Exp(big.NewInt(2), n, nil)))
}

// ManagerCost is floor(5000 * 10^(tier-1) * 2^level), shared by both tracks.
func ManagerCost(tier int, level int64) int64 {
	if !ValidTier(tier) {
		tier = MinTier
	}
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(tier-1)), nil)
	v.Mul(v, big.NewInt(ManagerBaseCost))
	v.Lsh(v, uint(clampShift(level)))
	return saturate(v)
}

func clampShift(level int64) int64 {
	if level < 0 {
		return 0
	}
	if level > 256 {
		return 256
	}
	return level
}

func (b Business) Income() int64 {
	return ComputeBusinessIncome(b.BaseIncome, b.UpgradeLevel, b.IncomeManagerLevel)
}

func (b Business) Speed() time.Duration {
	return ComputeBusinessSpeed(b.BaseSpeed, b.UpgradeLevel, b.SpeedManagerLevel)
}

// ReadyIn is the remaining cooldown; zero means collectable.
func (b Business) ReadyIn(now time.Time) time.Duration {
	wait := b.Speed() - now.Sub(b.LastCollected)
	if wait < 0 {
		return 0
	}
	return wait
}

type ManagerTrack string

const (
	TrackSpeed  ManagerTrack = "speed"
	TrackIncome ManagerTrack = "income"
)

func ParseManagerTrack(s string) (ManagerTrack, error) {
	switch ManagerTrack(strings.ToLower(strings.TrimSpace(s))) {
	case TrackSpeed:
		return TrackSpeed, nil
	case TrackIncome:
		return TrackIncome, nil
	default:
		return "", ErrInvalidTrack
	}
}

func (b Business) managerLevel(track ManagerTrack) int64 {
	if track == TrackSpeed {
		return b.SpeedManagerLevel
	}
	return b.IncomeManagerLevel
}

// BusinessAction is the closed set of things a player can do to an owned business.
type BusinessAction string

const (
	ActionCollect           BusinessAction = "collect"
	ActionUpgrade           BusinessAction = "upgrade"
	ActionHireSpeedManager  BusinessAction = "hire_speed_manager"
	ActionHireIncomeManager BusinessAction = "hire_income_manager"
)

func ParseBusinessAction(s string) (BusinessAction, error) {
	switch a := BusinessAction(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionCollect, ActionUpgrade, ActionHireSpeedManager, ActionHireIncomeManager:
		return a, nil
	default:
		return "", ErrInvalidAction
	}
}

type BusinessResult struct {
	Action   BusinessAction `json:"action"`
	Player   Player         `json:"player"`
	Business Business       `json:"business"`
	Cost     int64          `json:"cost,omitempty"`
	Credited int64          `json:"credited,omitempty"`
}

// ApplyBusinessAction runs one action against a business the player owns.
// synergyPermille is the crew bonus on collected income.
func ApplyBusinessAction(p Player, b Business, action BusinessAction, now time.Time, synergyPermille int64) (BusinessResult, error) {
	switch action {
	case ActionCollect:
		return Collect(p, b, now, synergyPermille)
	case ActionUpgrade:
		return Upgrade(p, b)
	case ActionHireSpeedManager:
		return HireManager(p, b, TrackSpeed)
	case ActionHireIncomeManager:
		return HireManager(p, b, TrackIncome)
	default:
		return BusinessResult{}, ErrInvalidAction
	}
}

// Collect credits the business's current income once its interval has elapsed.
// An early attempt is rejected with the remaining wait attached.
func Collect(p Player, b Business, now time.Time, synergyPermille int64) (BusinessResult, error) {
	if wait := b.ReadyIn(now); wait > 0 {
		return BusinessResult{}, rejectUntil(ErrCooldown, wait)
	}
	credited := p.Multipliers().Reward(b.Income())
	credited = scalePermille(credited, 1000+nonNeg(synergyPermille))
	p.credit(credited)
	b.LastCollected = now
	return BusinessResult{Action: ActionCollect, Player: p, Business: b, Credited: credited}, nil
}

func Upgrade(p Player, b Business) (BusinessResult, error) {
	cost := p.Multipliers().Price(UpgradeCost(b.BaseIncome, b.UpgradeLevel))
	if err := p.spend(cost); err != nil {
		return BusinessResult{}, err
	}
	b.UpgradeLevel++
	return BusinessResult{Action: ActionUpgrade, Player: p, Business: b, Cost: cost}, nil
}

func HireManager(p Player, b Business, track ManagerTrack) (BusinessResult, error) {
	action := ActionHireIncomeManager
	switch track {
	case TrackSpeed:
		action = ActionHireSpeedManager
	case TrackIncome:
	default:
		return BusinessResult{}, ErrInvalidTrack
	}
	cost := p.Multipliers().Price(ManagerCost(b.Tier, b.managerLevel(track)))
	if err := p.spend(cost); err != nil {
		return BusinessResult{}, err
	}
	if track == TrackSpeed {
		b.SpeedManagerLevel++
	} else {
		b.IncomeManagerLevel++
	}
	return BusinessResult{Action: action, Player: p, Business: b, Cost: cost}, nil
}

// BuyBusiness opens a new business from a catalog template.
func BuyBusiness(p Player, t BusinessTemplate, alreadyOwned bool, now time.Time) (Player, Business, int64, error) {
	if p.Tier < t.Tier {
		return p, Business{}, 0, reject(ErrTierLocked, 0)
	}
	if alreadyOwned {
		return p, Business{}, 0, reject(ErrAlreadyOwned, 0)
	}
	cost := p.Multipliers().Price(t.BaseCost)
	if err := p.spend(cost); err != nil {
		return p, Business{}, 0, err
	}
	b := Business{
		TemplateID:    t.ID,
		Name:          t.Name,
		Tier:          t.Tier,
		BaseIncome:    t.BaseIncome,
		BaseSpeed:     t.BaseSpeed,
		LastCollected: now,
	}
	return p, b, cost, nil
}

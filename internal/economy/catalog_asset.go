package economy

import "strings"

// AssetCategory is the closed set of cosmetic categories.
type AssetCategory int

const (
	CategoryHome AssetCategory = iota + 1
	CategoryCar
	CategoryChain
	CategoryWatch
	CategoryShoes
	CategoryDog
	CategoryGun
	CategoryStudio
	CategoryBoat
)

var assetCategoryNames = map[AssetCategory]string{
	CategoryHome:   "home",
	CategoryCar:    "car",
	CategoryChain:  "chain",
	CategoryWatch:  "watch",
	CategoryShoes:  "shoes",
	CategoryDog:    "dog",
	CategoryGun:    "gun",
	CategoryStudio: "studio",
	CategoryBoat:   "boat",
}

func AssetCategories() []AssetCategory {
	return []AssetCategory{
		CategoryHome, CategoryCar, CategoryChain, CategoryWatch, CategoryShoes,
		CategoryDog, CategoryGun, CategoryStudio, CategoryBoat,
	}
}

func (c AssetCategory) String() string {
	if name, ok := assetCategoryNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c AssetCategory) MarshalText() ([]byte, error) {
	if _, ok := assetCategoryNames[c]; !ok {
		return nil, ErrInvalidCategory
	}
	return []byte(c.String()), nil
}

func (c *AssetCategory) UnmarshalText(b []byte) error {
	parsed, err := ParseAssetCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseAssetCategory(s string) (AssetCategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range assetCategoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, ErrInvalidCategory
}

// Asset is a one-time cosmetic purchase. Its stats apply once, at purchase.
type Asset struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category AssetCategory `json:"category"`
	Tier     int           `json:"tier"`
	Price    int64         `json:"price"`
	XP       int64         `json:"xp"`
	Respect  int64         `json:"respect"`
	Power    int64         `json:"power"`
	Energy   int64         `json:"energy"`
}

var assetCatalog = []Asset{
	{ID: "h1-1", Name: "Trap Room", Category: CategoryHome, Tier: 1, Price: 5_000, XP: 10, Respect: 5, Power: 10, Energy: 2},
	{ID: "h1-3", Name: "Shared Apartment", Category: CategoryHome, Tier: 1, Price: 15_000, XP: 20, Respect: 10, Power: 20, Energy: 3},
	{ID: "h2-1", Name: "Garage Loft", Category: CategoryHome, Tier: 2, Price: 100_000, XP: 50, Respect: 25, Power: 50, Energy: 5},
	{ID: "h2-3", Name: "Townhouse", Category: CategoryHome, Tier: 2, Price: 350_000, XP: 100, Respect: 50, Power: 100, Energy: 7},
	{ID: "h3-1", Name: "Downtown Loft", Category: CategoryHome, Tier: 3, Price: 1_000_000, XP: 250, Respect: 100, Power: 250, Energy: 10},
	{ID: "h3-3", Name: "Lake House", Category: CategoryHome, Tier: 3, Price: 2_500_000, XP: 400, Respect: 150, Power: 400, Energy: 14},
	{ID: "h4-1", Name: "Mansion", Category: CategoryHome, Tier: 4, Price: 10_000_000, XP: 1_000, Respect: 300, Power: 1_000, Energy: 20},
	{ID: "h4-3", Name: "Grand Estate", Category: CategoryHome, Tier: 4, Price: 50_000_000, XP: 2_000, Respect: 500, Power: 2_000, Energy: 30},
	{ID: "h5-1", Name: "Mega Estate", Category: CategoryHome, Tier: 5, Price: 500_000_000, XP: 5_000, Respect: 1_000, Power: 5_000, Energy: 50},
	{ID: "h5-3", Name: "Desert Compound", Category: CategoryHome, Tier: 5, Price: 2_500_000_000, XP: 10_000, Respect: 2_000, Power: 10_000, Energy: 75},

	{ID: "c1-1", Name: "Bike", Category: CategoryCar, Tier: 1, Price: 2_000, XP: 5, Respect: 2, Power: 5, Energy: 1},
	{ID: "c1-3", Name: "Civic", Category: CategoryCar, Tier: 1, Price: 8_000, XP: 10, Respect: 5, Power: 15, Energy: 2},
	{ID: "c2-1", Name: "Altima", Category: CategoryCar, Tier: 2, Price: 50_000, XP: 30, Respect: 15, Power: 50, Energy: 3},
	{ID: "c2-3", Name: "Charger RT", Category: CategoryCar, Tier: 2, Price: 100_000, XP: 50, Respect: 25, Power: 100, Energy: 5},
	{ID: "c3-1", Name: "BMW M3", Category: CategoryCar, Tier: 3, Price: 500_000, XP: 200, Respect: 75, Power: 500, Energy: 10},
	{ID: "c3-3", Name: "Mercedes C63", Category: CategoryCar, Tier: 3, Price: 1_000_000, XP: 300, Respect: 125, Power: 1_000, Energy: 14},
	{ID: "c4-1", Name: "Lambo Huracán", Category: CategoryCar, Tier: 4, Price: 5_000_000, XP: 800, Respect: 250, Power: 5_000, Energy: 25},
	{ID: "c4-3", Name: "G-Wagon", Category: CategoryCar, Tier: 4, Price: 10_000_000, XP: 1_250, Respect: 350, Power: 10_000, Energy: 35},
	{ID: "c5-1", Name: "Rolls Royce", Category: CategoryCar, Tier: 5, Price: 100_000_000, XP: 5_000, Respect: 1_000, Power: 50_000, Energy: 60},
	{ID: "c5-3", Name: "Ferrari SF90", Category: CategoryCar, Tier: 5, Price: 500_000_000, XP: 10_000, Respect: 2_000, Power: 100_000, Energy: 100},

	{ID: "ch1-1", Name: "Rope Chain", Category: CategoryChain, Tier: 1, Price: 5_000, XP: 8, Respect: 10, Power: 20, Energy: 1},
	{ID: "ch1-3", Name: "Silver Chain", Category: CategoryChain, Tier: 1, Price: 15_000, XP: 15, Respect: 20, Power: 40, Energy: 2},
	{ID: "ch2-1", Name: "Gold Chain", Category: CategoryChain, Tier: 2, Price: 100_000, XP: 50, Respect: 50, Power: 150, Energy: 5},
	{ID: "ch2-3", Name: "Rose Gold", Category: CategoryChain, Tier: 2, Price: 500_000, XP: 100, Respect: 100, Power: 250, Energy: 7},
	{ID: "ch3-1", Name: "Diamond Chain", Category: CategoryChain, Tier: 3, Price: 2_500_000, XP: 300, Respect: 200, Power: 750, Energy: 12},
	{ID: "ch3-3", Name: "VVS Diamond", Category: CategoryChain, Tier: 3, Price: 7_500_000, XP: 500, Respect: 300, Power: 1_250, Energy: 16},
	{ID: "ch4-1", Name: "Platinum Diamond", Category: CategoryChain, Tier: 4, Price: 50_000_000, XP: 1_500, Respect: 600, Power: 5_000, Energy: 30},
	{ID: "ch4-3", Name: "Rare Fancy", Category: CategoryChain, Tier: 4, Price: 100_000_000, XP: 2_500, Respect: 800, Power: 7_000, Energy: 40},
	{ID: "ch5-1", Name: "Koh-i-Noor", Category: CategoryChain, Tier: 5, Price: 500_000_000, XP: 5_000, Respect: 1_200, Power: 12_000, Energy: 75},
	{ID: "ch5-3", Name: "Crown Jewel", Category: CategoryChain, Tier: 5, Price: 2_500_000_000, XP: 10_000, Respect: 2_000, Power: 20_000, Energy: 125},

	{ID: "w1-1", Name: "Digital Watch", Category: CategoryWatch, Tier: 1, Price: 5_000, XP: 10, Respect: 8, Power: 15, Energy: 1},
	{ID: "w1-3", Name: "Casio", Category: CategoryWatch, Tier: 1, Price: 15_000, XP: 15, Respect: 12, Power: 25, Energy: 2},
	{ID: "w2-1", Name: "Omega", Category: CategoryWatch, Tier: 2, Price: 100_000, XP: 50, Respect: 40, Power: 100, Energy: 5},
	{ID: "w2-3", Name: "Longines", Category: CategoryWatch, Tier: 2, Price: 500_000, XP: 100, Respect: 80, Power: 200, Energy: 7},
	{ID: "w3-1", Name: "Cartier", Category: CategoryWatch, Tier: 3, Price: 2_500_000, XP: 300, Respect: 200, Power: 750, Energy: 12},
	{ID: "w3-3", Name: "Audemars Piguet", Category: CategoryWatch, Tier: 3, Price: 7_500_000, XP: 500, Respect: 300, Power: 1_250, Energy: 16},
	{ID: "w4-1", Name: "Diamond Rolex", Category: CategoryWatch, Tier: 4, Price: 50_000_000, XP: 1_500, Respect: 600, Power: 5_000, Energy: 30},
	{ID: "w4-3", Name: "Gold Master", Category: CategoryWatch, Tier: 4, Price: 100_000_000, XP: 2_500, Respect: 800, Power: 7_000, Energy: 40},
	{ID: "w5-1", Name: "Unique PP", Category: CategoryWatch, Tier: 5, Price: 500_000_000, XP: 5_000, Respect: 1_200, Power: 12_000, Energy: 75},
	{ID: "w5-3", Name: "King's Watch", Category: CategoryWatch, Tier: 5, Price: 2_500_000_000, XP: 10_000, Respect: 2_000, Power: 20_000, Energy: 125},

	{ID: "s1-1", Name: "Walmart Specials", Category: CategoryShoes, Tier: 1, Price: 2_000, XP: 5, Respect: 5, Power: 10, Energy: 1},
	{ID: "s1-3", Name: "Basic Nike", Category: CategoryShoes, Tier: 1, Price: 10_000, XP: 10, Respect: 10, Power: 20, Energy: 2},
	{ID: "s2-1", Name: "Air Max 90", Category: CategoryShoes, Tier: 2, Price: 50_000, XP: 30, Respect: 30, Power: 80, Energy: 4},
	{ID: "s2-3", Name: "Yeezy", Category: CategoryShoes, Tier: 2, Price: 250_000, XP: 75, Respect: 75, Power: 180, Energy: 6},
	{ID: "s3-1", Name: "Air Jordan 11", Category: CategoryShoes, Tier: 3, Price: 2_500_000, XP: 250, Respect: 200, Power: 750, Energy: 10},
	{ID: "s3-3", Name: "Supreme Collab", Category: CategoryShoes, Tier: 3, Price: 7_500_000, XP: 450, Respect: 350, Power: 1_250, Energy: 14},
	{ID: "s4-1", Name: "Balenciaga Triple", Category: CategoryShoes, Tier: 4, Price: 50_000_000, XP: 1_200, Respect: 600, Power: 5_000, Energy: 25},
	{ID: "s4-3", Name: "Louis V High", Category: CategoryShoes, Tier: 4, Price: 100_000_000, XP: 1_800, Respect: 800, Power: 7_000, Energy: 35},
	{ID: "s5-1", Name: "Diamond Sneaker", Category: CategoryShoes, Tier: 5, Price: 500_000_000, XP: 4_500, Respect: 1_200, Power: 12_000, Energy: 60},
	{ID: "s5-3", Name: "Hermès Leather", Category: CategoryShoes, Tier: 5, Price: 2_500_000_000, XP: 8_500, Respect: 2_000, Power: 20_000, Energy: 100},

	{ID: "d1-1", Name: "Shelter Pup", Category: CategoryDog, Tier: 1, Price: 10_000, XP: 15, Respect: 10, Power: 30, Energy: 3},
	{ID: "d1-3", Name: "Mixed Breed", Category: CategoryDog, Tier: 1, Price: 30_000, XP: 25, Respect: 20, Power: 50, Energy: 4},
	{ID: "d2-1", Name: "Trained Pit", Category: CategoryDog, Tier: 2, Price: 150_000, XP: 60, Respect: 50, Power: 150, Energy: 7},
	{ID: "d2-3", Name: "Rottweiler", Category: CategoryDog, Tier: 2, Price: 500_000, XP: 100, Respect: 90, Power: 250, Energy: 9},
	{ID: "d3-1", Name: "Cane Corso", Category: CategoryDog, Tier: 3, Price: 2_500_000, XP: 300, Respect: 250, Power: 800, Energy: 15},
	{ID: "d3-3", Name: "Elite K9", Category: CategoryDog, Tier: 3, Price: 7_500_000, XP: 500, Respect: 450, Power: 1_400, Energy: 19},
	{ID: "d4-1", Name: "Imported Alpha", Category: CategoryDog, Tier: 4, Price: 50_000_000, XP: 1_500, Respect: 800, Power: 6_000, Energy: 35},
	{ID: "d4-3", Name: "Champion Line", Category: CategoryDog, Tier: 4, Price: 100_000_000, XP: 2_500, Respect: 1_000, Power: 8_400, Energy: 45},
	{ID: "d5-1", Name: "Mythical Beast", Category: CategoryDog, Tier: 5, Price: 500_000_000, XP: 5_500, Respect: 1_500, Power: 15_000, Energy: 75},
	{ID: "d5-3", Name: "Godly Guardian", Category: CategoryDog, Tier: 5, Price: 2_500_000_000, XP: 10_500, Respect: 2_500, Power: 25_000, Energy: 125},

	{ID: "g1-1", Name: "BB Gun", Category: CategoryGun, Tier: 1, Price: 5_000, XP: 10, Respect: 15, Power: 50, Energy: 2},
	{ID: "g1-3", Name: ".38 Special", Category: CategoryGun, Tier: 1, Price: 25_000, XP: 20, Respect: 35, Power: 100, Energy: 3},
	{ID: "g2-1", Name: "AR-15", Category: CategoryGun, Tier: 2, Price: 150_000, XP: 75, Respect: 100, Power: 400, Energy: 8},
	{ID: "g2-3", Name: "AK-47", Category: CategoryGun, Tier: 2, Price: 500_000, XP: 125, Respect: 200, Power: 600, Energy: 10},
	{ID: "g3-1", Name: "Barrett M82", Category: CategoryGun, Tier: 3, Price: 2_500_000, XP: 400, Respect: 400, Power: 1_500, Energy: 18},
	{ID: "g3-3", Name: "M249", Category: CategoryGun, Tier: 3, Price: 7_500_000, XP: 600, Respect: 600, Power: 2_500, Energy: 22},
	{ID: "g4-1", Name: "Combat Pro", Category: CategoryGun, Tier: 4, Price: 50_000_000, XP: 1_800, Respect: 1_000, Power: 8_000, Energy: 40},
	{ID: "g4-3", Name: "Black Ops", Category: CategoryGun, Tier: 4, Price: 100_000_000, XP: 2_600, Respect: 1_400, Power: 11_000, Energy: 50},
	{ID: "g5-1", Name: "Prototype Weapon", Category: CategoryGun, Tier: 5, Price: 500_000_000, XP: 6_000, Respect: 2_000, Power: 20_000, Energy: 100},
	{ID: "g5-3", Name: "Orbital Cannon", Category: CategoryGun, Tier: 5, Price: 2_500_000_000, XP: 11_000, Respect: 3_000, Power: 30_000, Energy: 150},

	{ID: "st1-1", Name: "Garage Studio", Category: CategoryStudio, Tier: 1, Price: 10_000, XP: 15, Respect: 10, Power: 20, Energy: 3},
	{ID: "st1-3", Name: "Small Studio", Category: CategoryStudio, Tier: 1, Price: 40_000, XP: 25, Respect: 20, Power: 40, Energy: 4},
	{ID: "st2-1", Name: "Pro Studio", Category: CategoryStudio, Tier: 2, Price: 250_000, XP: 80, Respect: 75, Power: 150, Energy: 10},
	{ID: "st2-3", Name: "Recording Complex", Category: CategoryStudio, Tier: 2, Price: 1_000_000, XP: 150, Respect: 150, Power: 250, Energy: 14},
	{ID: "st3-1", Name: "Platinum Studio", Category: CategoryStudio, Tier: 3, Price: 5_000_000, XP: 400, Respect: 300, Power: 800, Energy: 20},
	{ID: "st3-3", Name: "Grammy Worthy", Category: CategoryStudio, Tier: 3, Price: 15_000_000, XP: 600, Respect: 500, Power: 1_400, Energy: 24},
	{ID: "st4-1", Name: "Celebrity Studio", Category: CategoryStudio, Tier: 4, Price: 75_000_000, XP: 1_800, Respect: 1_000, Power: 6_000, Energy: 45},
	{ID: "st4-3", Name: "Hitmaker Hub", Category: CategoryStudio, Tier: 4, Price: 250_000_000, XP: 2_600, Respect: 1_400, Power: 9_000, Energy: 55},
	{ID: "st5-1", Name: "World Class", Category: CategoryStudio, Tier: 5, Price: 1_000_000_000, XP: 6_000, Respect: 2_000, Power: 18_000, Energy: 100},
	{ID: "st5-3", Name: "Divine Creation", Category: CategoryStudio, Tier: 5, Price: 5_000_000_000, XP: 11_000, Respect: 3_000, Power: 26_000, Energy: 150},

	{ID: "b1-1", Name: "Rowboat", Category: CategoryBoat, Tier: 1, Price: 10_000, XP: 15, Respect: 10, Power: 20, Energy: 3},
	{ID: "b1-3", Name: "Small Speedboat", Category: CategoryBoat, Tier: 1, Price: 50_000, XP: 25, Respect: 20, Power: 40, Energy: 4},
	{ID: "b2-1", Name: "Cabin Cruiser", Category: CategoryBoat, Tier: 2, Price: 300_000, XP: 100, Respect: 100, Power: 200, Energy: 12},
	{ID: "b2-3", Name: "Motor Yacht", Category: CategoryBoat, Tier: 2, Price: 1_000_000, XP: 200, Respect: 200, Power: 400, Energy: 16},
	{ID: "b3-1", Name: "Mega Yacht", Category: CategoryBoat, Tier: 3, Price: 5_000_000, XP: 500, Respect: 400, Power: 1_000, Energy: 25},
	{ID: "b3-3", Name: "Floating Palace", Category: CategoryBoat, Tier: 3, Price: 15_000_000, XP: 700, Respect: 600, Power: 1_600, Energy: 31},
	{ID: "b4-1", Name: "Luxury Cruiser", Category: CategoryBoat, Tier: 4, Price: 100_000_000, XP: 2_000, Respect: 1_200, Power: 8_000, Energy: 50},
	{ID: "b4-3", Name: "Billionaire Yacht", Category: CategoryBoat, Tier: 4, Price: 350_000_000, XP: 2_800, Respect: 1_600, Power: 11_000, Energy: 60},
	{ID: "b5-1", Name: "Floating Empire", Category: CategoryBoat, Tier: 5, Price: 1_500_000_000, XP: 6_500, Respect: 2_500, Power: 20_000, Energy: 125},
	{ID: "b5-3", Name: "Eternal Ocean", Category: CategoryBoat, Tier: 5, Price: 6_000_000_000, XP: 11_500, Respect: 3_500, Power: 30_000, Energy: 175},
}

func Assets() []Asset {
	return append([]Asset(nil), assetCatalog...)
}

func AssetsIn(category AssetCategory) []Asset {
	var out []Asset
	for _, a := range assetCatalog {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

func AssetByID(id string) (Asset, error) {
	for _, a := range assetCatalog {
		if a.ID == id {
			return a, nil
		}
	}
	return Asset{}, ErrUnknownAsset
}

// BuyAsset charges the price and applies the asset's one-time stat bonuses.
func BuyAsset(p Player, a Asset, alreadyOwned bool) (Player, int64, error) {
	if p.Tier < a.Tier {
		return p, 0, reject(ErrTierLocked, 0)
	}
	if alreadyOwned {
		return p, 0, reject(ErrAlreadyOwned, 0)
	}
	cost := p.Multipliers().Price(a.Price)
	next := p
	if err := next.spend(cost); err != nil {
		return p, 0, err
	}
	next.AssetCount++
	next.adjustRespect(a.Respect)
	next.CosmeticBonus = addCapped(next.CosmeticBonus, a.Power)
	next.RestoreEnergy(a.Energy)
	next.gainXP(a.XP)
	return next, cost, nil
}

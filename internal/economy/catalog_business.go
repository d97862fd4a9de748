package economy

// BusinessTemplate is a purchasable business. BaseSpeed is in seconds.
type BusinessTemplate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Tier       int    `json:"tier"`
	BaseIncome int64  `json:"base_income"`
	BaseCost   int64  `json:"base_cost"`
	BaseSpeed  int64  `json:"base_speed_seconds"`
}

var businessCatalog = []BusinessTemplate{
	{ID: "water-stand", Name: "Water Stand", Tier: 1, BaseIncome: 50, BaseCost: 1_000, BaseSpeed: 120},
	{ID: "boot-removal", Name: "Boot Removal", Tier: 1, BaseIncome: 75, BaseCost: 2_500, BaseSpeed: 240},
	{ID: "sneaker-flip", Name: "Sneaker Flip", Tier: 1, BaseIncome: 100, BaseCost: 5_000, BaseSpeed: 480},
	{ID: "studio-shares", Name: "Studio Shares", Tier: 1, BaseIncome: 150, BaseCost: 10_000, BaseSpeed: 960},

	{ID: "corner-store", Name: "Corner Store", Tier: 2, BaseIncome: 500, BaseCost: 50_000, BaseSpeed: 1_920},
	{ID: "car-wash", Name: "Car Wash", Tier: 2, BaseIncome: 750, BaseCost: 100_000, BaseSpeed: 3_840},
	{ID: "food-truck", Name: "Food Truck", Tier: 2, BaseIncome: 1_000, BaseCost: 150_000, BaseSpeed: 7_680},
	{ID: "liquor-store", Name: "Liquor Store", Tier: 2, BaseIncome: 1_500, BaseCost: 250_000, BaseSpeed: 15_360},

	{ID: "car-dealership", Name: "Car Dealership", Tier: 3, BaseIncome: 5_000, BaseCost: 500_000, BaseSpeed: 30_720},
	{ID: "real-estate", Name: "Real Estate Firm", Tier: 3, BaseIncome: 7_500, BaseCost: 1_000_000, BaseSpeed: 61_440},
	{ID: "nightclub", Name: "Nightclub", Tier: 3, BaseIncome: 10_000, BaseCost: 2_500_000, BaseSpeed: 122_880},
	{ID: "record-label", Name: "Record Label", Tier: 3, BaseIncome: 15_000, BaseCost: 5_000_000, BaseSpeed: 245_760},

	{ID: "import-co", Name: "Import Company", Tier: 4, BaseIncome: 50_000, BaseCost: 10_000_000, BaseSpeed: 491_520},
	{ID: "logistics", Name: "Logistics Network", Tier: 4, BaseIncome: 75_000, BaseCost: 25_000_000, BaseSpeed: 983_040},
	{ID: "jet-lease", Name: "Private Jet Leasing", Tier: 4, BaseIncome: 100_000, BaseCost: 50_000_000, BaseSpeed: 1_966_080},
	{ID: "tech-startup", Name: "Tech Startup", Tier: 4, BaseIncome: 150_000, BaseCost: 100_000_000, BaseSpeed: 3_932_160},

	{ID: "oil-field", Name: "Oil Field", Tier: 5, BaseIncome: 500_000, BaseCost: 500_000_000, BaseSpeed: 7_864_320},
	{ID: "wind-farm", Name: "Wind Farm", Tier: 5, BaseIncome: 750_000, BaseCost: 1_000_000_000, BaseSpeed: 15_728_640},
	{ID: "cruise-line", Name: "Cruise Line", Tier: 5, BaseIncome: 1_000_000, BaseCost: 2_500_000_000, BaseSpeed: 31_457_280},
	{ID: "overseas-port", Name: "Overseas Port", Tier: 5, BaseIncome: 2_000_000, BaseCost: 5_000_000_000, BaseSpeed: 62_914_560},
}

func BusinessTemplates() []BusinessTemplate {
	return append([]BusinessTemplate(nil), businessCatalog...)
}

func BusinessTemplateByID(id string) (BusinessTemplate, error) {
	for _, t := range businessCatalog {
		if t.ID == id {
			return t, nil
		}
	}
	return BusinessTemplate{}, ErrUnknownBusiness
}

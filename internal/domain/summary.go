package domain

type GlobalTotals struct {
	CO2EmittedKg float64 `json:"co2_emitted_kg"`
	CO2SavedKg   float64 `json:"co2_saved_kg"`
	Users        int     `json:"users"`
	Orders       int     `json:"orders"`
}

type DailyEmission struct {
	Day   string  `json:"day"`
	CO2Kg float64 `json:"co2_kg"`
}

type TopUser struct {
	UserID           string  `json:"user_id"`
	CO2TotalKg       float64 `json:"co2_total_kg"`
	CO2SavedKg       float64 `json:"co2_saved_kg"`
	EcoPurchaseCount int     `json:"eco_purchase_count"`
}

type TopProduct struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	EcoScore       float64 `json:"eco_score"`
	EmissionFactor float64 `json:"emission_factor"`
}

type GlobalSummary struct {
	Totals         GlobalTotals    `json:"totals"`
	EmissionsByDay []DailyEmission `json:"emissions_by_day"`
	TopUsers       []TopUser       `json:"top_users"`
	TopProducts    []TopProduct    `json:"top_products"`
}

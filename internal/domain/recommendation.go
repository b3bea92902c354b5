package domain

type BaseProductSummary struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	EcoScore       float64 `json:"eco_score"`
	EmissionFactor float64 `json:"emission_factor"`
	CO2Kg          float64 `json:"co2_kg"`
}

type Recommendation struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Material       string  `json:"material"`
	EcoScore       float64 `json:"eco_score"`
	EmissionFactor float64 `json:"emission_factor"`
	WeightKg       float64 `json:"weight_kg"`
	CO2Kg          float64 `json:"co2_kg"`
	CO2SavedKg     float64 `json:"co2_saved_kg"`
	GreenScore     float64 `json:"green_score"`
	Greener        bool    `json:"greener"`
	ImpactTag      string  `json:"impact_tag"`
	ImpactMessage  string  `json:"impact_message"`
}

type RecommendationResult struct {
	Base            BaseProductSummary
	Recommendations []Recommendation
	Message         string
	CacheHit        bool
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

package domain

type InsightResult struct {
	ProductID     string  `json:"product_id"`
	Category      string  `json:"category"`
	EcoScore      float64 `json:"eco_score"`
	ImpactTag     string  `json:"impact_tag"`
	CO2Kg         float64 `json:"co2_kg"`
	DifferencePct float64 `json:"difference_pct"`
	HasComparison bool    `json:"has_comparison"`
	ImpactMessage string  `json:"impact_message"`
}

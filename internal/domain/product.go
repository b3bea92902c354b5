package domain

// Product is a read-only catalog snapshot row. Emission factor is
// kg CO₂ per kg of material per reference distance; eco score is 0-10,
// higher is greener.
type Product struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Material       string  `json:"material"`
	WeightKg       float64 `json:"weight_kg"`
	Price          float64 `json:"price"`
	EmissionFactor float64 `json:"emission_factor"`
	EcoScore       float64 `json:"eco_score"`
}

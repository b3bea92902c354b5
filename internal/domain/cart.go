package domain

type CartItem struct {
	ProductID string  `json:"product_id"`
	Qty       float64 `json:"qty"`
}

type CartItemResult struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Qty        float64         `json:"qty"`
	CO2Kg      float64         `json:"co2_kg"`
	Substitute *Recommendation `json:"substitute,omitempty"`
	Skipped    bool            `json:"skipped,omitempty"`
}

type CartOptimizationResult struct {
	CurrentTotalCO2Kg   float64          `json:"current_total_co2_kg"`
	OptimizedTotalCO2Kg float64          `json:"optimized_total_co2_kg"`
	TotalSavedKg        float64          `json:"total_saved_kg"`
	Items               []CartItemResult `json:"items"`
	ImpactMessage       string           `json:"impact_message"`
}

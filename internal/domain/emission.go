package domain

type EmissionResult struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         float64 `json:"qty"`
	DistanceKm  float64 `json:"distance_km"`
	CO2Kg       float64 `json:"co2_kg"`
	Equivalent  string  `json:"equivalent"`
}

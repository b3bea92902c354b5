package domain

import "time"

type Order struct {
	OrderID        string    `json:"order_id"`
	UserID         string    `json:"user_id"`
	CO2Kg          float64   `json:"co2_kg"`
	ShipDistanceKm float64   `json:"ship_distance_km"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserFootprint holds a user's running CO₂ totals. The core only
// computes deltas; accumulation lives in storage via upsert.
type UserFootprint struct {
	UserID           string    `json:"user_id"`
	CO2TotalKg       float64   `json:"co2_total_kg"`
	CO2SavedKg       float64   `json:"co2_saved_kg"`
	EcoPurchaseCount int       `json:"eco_purchase_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type OrderReceipt struct {
	OrderID         string  `json:"order_id"`
	UserID          string  `json:"user_id"`
	CO2Kg           float64 `json:"co2_kg"`
	CO2SavedKg      float64 `json:"co2_saved_kg"`
	Equivalent      string  `json:"equivalent"`
	AlreadyRecorded bool    `json:"already_recorded,omitempty"`
}

type UserSummary struct {
	UserID           string  `json:"user_id"`
	CO2TotalKg       float64 `json:"co2_total_kg"`
	CO2SavedKg       float64 `json:"co2_saved_kg"`
	EcoPurchaseCount int     `json:"eco_purchase_count"`
	RecentOrders     []Order `json:"recent_orders"`
}

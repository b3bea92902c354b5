package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE sustain_orders, sustain_users, products CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting products")
	if err := seedProducts(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

// material profile: emission factor range and eco score range move in
// opposite directions so the catalog has believable greener substitutes.
type materialProfile struct {
	name     string
	factorLo float64
	factorHi float64
	ecoLo    float64
	ecoHi    float64
	weightLo float64
	weightHi float64
}

var materials = []materialProfile{
	{name: "bamboo", factorLo: 0.5, factorHi: 1.5, ecoLo: 8, ecoHi: 10, weightLo: 0.1, weightHi: 1.5},
	{name: "recycled_paper", factorLo: 0.8, factorHi: 2, ecoLo: 7, ecoHi: 9, weightLo: 0.05, weightHi: 0.8},
	{name: "cotton", factorLo: 2, factorHi: 4, ecoLo: 5, ecoHi: 8, weightLo: 0.1, weightHi: 1.2},
	{name: "stainless_steel", factorLo: 3, factorHi: 6, ecoLo: 5, ecoHi: 7, weightLo: 0.3, weightHi: 3},
	{name: "polyester", factorLo: 5, factorHi: 8, ecoLo: 2, ecoHi: 5, weightLo: 0.1, weightHi: 1},
	{name: "leather", factorLo: 6, factorHi: 10, ecoLo: 2, ecoHi: 4, weightLo: 0.3, weightHi: 2},
	{name: "plastic", factorLo: 7, factorHi: 12, ecoLo: 1, ecoHi: 4, weightLo: 0.05, weightHi: 2},
}

var materialWeights = []float64{0.15, 0.1, 0.15, 0.15, 0.15, 0.1, 0.2}

var productNames = map[string][]string{
	"electronics": {
		"Wireless Earbuds", "Phone Case", "Power Bank", "Bluetooth Speaker",
		"Desk Lamp", "Laptop Stand", "Charging Cable", "Smart Bulb",
	},
	"apparel": {
		"Classic T-Shirt", "Hooded Sweatshirt", "Running Socks", "Canvas Tote",
		"Rain Jacket", "Baseball Cap", "Yoga Leggings", "Denim Shirt",
	},
	"kitchen": {
		"Travel Mug", "Cutting Board", "Water Bottle", "Lunch Box",
		"Utensil Set", "Food Container", "Coffee Tumbler", "Mixing Bowl",
	},
	"home": {
		"Throw Pillow", "Storage Basket", "Picture Frame", "Plant Pot",
		"Wall Clock", "Candle Holder", "Laundry Hamper", "Door Mat",
	},
}

var categories = []string{"electronics", "apparel", "kitchen", "home"}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := range n {
		category := categories[i%len(categories)]
		names := productNames[category]
		name := names[(i/len(categories))%len(names)]

		matIdx := weightedMaterial(rng)
		mat := materials[matIdx]

		if i >= len(categories)*len(names) {
			name = fmt.Sprintf("%s %d", name, i/(len(categories)*len(names))+1)
		}
		name = fmt.Sprintf("%s %s", displayMaterial(mat.name), name)

		productID := fmt.Sprintf("P-%04d", i+1)
		weight := roundTo(mat.weightLo+rng.Float64()*(mat.weightHi-mat.weightLo), 2)
		price := roundTo(5+rng.Float64()*95, 2)
		factor := roundTo(mat.factorLo+rng.Float64()*(mat.factorHi-mat.factorLo), 2)
		eco := roundTo(mat.ecoLo+rng.Float64()*(mat.ecoHi-mat.ecoLo), 1)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, productID, name, category, mat.name, weight, price, factor, eco)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO products (product_id, name, category, material, weight_kg, price, emission_factor, eco_score) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func displayMaterial(m string) string {
	parts := strings.Split(m, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func weightedMaterial(rng *rand.Rand) int {
	total := 0.0
	for _, w := range materialWeights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range materialWeights {
		cumulative += w
		if r <= cumulative {
			return i
		}
	}
	return len(materialWeights) - 1
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

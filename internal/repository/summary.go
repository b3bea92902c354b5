package repository

import (
	"context"
	"fmt"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

func (r *Repository) GlobalTotals(ctx context.Context) (*domain.GlobalTotals, error) {
	t := &domain.GlobalTotals{}

	err := r.pool.QueryRow(ctx,
		`SELECT
			COALESCE((SELECT SUM(co2_kg) FROM sustain_orders), 0),
			COALESCE((SELECT SUM(co2_saved_kg) FROM sustain_users), 0),
			(SELECT COUNT(*) FROM sustain_users),
			(SELECT COUNT(*) FROM sustain_orders)`,
	).Scan(&t.CO2EmittedKg, &t.CO2SavedKg, &t.Users, &t.Orders)

	if err != nil {
		return nil, fmt.Errorf("query global totals: %w", err)
	}
	return t, nil
}

// Daily emission series for the trailing window
func (r *Repository) EmissionsByDay(ctx context.Context, days int) ([]domain.DailyEmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS day, SUM(co2_kg)
		 FROM sustain_orders
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY day
		 ORDER BY day`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("query emissions by day: %w", err)
	}
	defer rows.Close()

	var series []domain.DailyEmission
	for rows.Next() {
		var d domain.DailyEmission
		if err := rows.Scan(&d.Day, &d.CO2Kg); err != nil {
			return nil, fmt.Errorf("scan daily emission: %w", err)
		}
		series = append(series, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over daily emissions: %w", err)
	}
	return series, nil
}

func (r *Repository) TopUsersBySavings(ctx context.Context, limit int) ([]domain.TopUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, co2_total_kg, co2_saved_kg, eco_purchase_count
		 FROM sustain_users
		 ORDER BY co2_saved_kg DESC, co2_total_kg
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top users: %w", err)
	}
	defer rows.Close()

	var users []domain.TopUser
	for rows.Next() {
		var u domain.TopUser
		if err := rows.Scan(&u.UserID, &u.CO2TotalKg, &u.CO2SavedKg, &u.EcoPurchaseCount); err != nil {
			return nil, fmt.Errorf("scan top user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over top users: %w", err)
	}
	return users, nil
}

func (r *Repository) TopProductsByEcoScore(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id, name, eco_score, emission_factor
		 FROM products
		 ORDER BY eco_score DESC, emission_factor
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	defer rows.Close()

	var products []domain.TopProduct
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.EcoScore, &p.EmissionFactor); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over top products: %w", err)
	}
	return products, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Check whether an order was already recorded
func (r *Repository) OrderExists(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sustain_orders WHERE order_id = $1)`,
		orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order id=%s: %w", orderID, err)
	}
	return exists, nil
}

func (r *Repository) InsertOrder(ctx context.Context, order domain.Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sustain_orders (order_id, user_id, co2_kg, ship_distance_km)
		 VALUES ($1, $2, $3, $4)`,
		order.OrderID, order.UserID, order.CO2Kg, order.ShipDistanceKm,
	)
	if err != nil {
		return fmt.Errorf("insert order id=%s: %w", order.OrderID, err)
	}
	return nil
}

// Accumulate a user's running CO₂ totals
func (r *Repository) UpsertUserFootprint(ctx context.Context, userID string, co2Kg, co2SavedKg float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sustain_users (user_id, co2_total_kg, co2_saved_kg, eco_purchase_count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id) DO UPDATE SET
		 	co2_total_kg = sustain_users.co2_total_kg + EXCLUDED.co2_total_kg,
		 	co2_saved_kg = sustain_users.co2_saved_kg + EXCLUDED.co2_saved_kg,
		 	eco_purchase_count = sustain_users.eco_purchase_count + 1,
		 	updated_at = NOW()`,
		userID, co2Kg, co2SavedKg,
	)
	if err != nil {
		return fmt.Errorf("upsert footprint for user %s: %w", userID, err)
	}
	return nil
}

func (r *Repository) GetUserFootprint(ctx context.Context, userID string) (*domain.UserFootprint, error) {
	u := &domain.UserFootprint{}

	err := r.pool.QueryRow(ctx,
		`SELECT user_id, co2_total_kg, co2_saved_kg, eco_purchase_count, updated_at
		 FROM sustain_users WHERE user_id = $1`,
		userID,
	).Scan(&u.UserID, &u.CO2TotalKg, &u.CO2SavedKg, &u.EcoPurchaseCount, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user id=%s: %w", userID, err)
	}

	return u, nil
}

func (r *Repository) ListRecentOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT order_id, user_id, co2_kg, ship_distance_km, created_at
		 FROM sustain_orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders for user %s: %w", userID, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.CO2Kg, &o.ShipDistanceKm, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over orders: %w", err)
	}
	return orders, nil
}

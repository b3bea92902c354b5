package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/greenbasket/sustainability-service/internal/carbon"
	"github.com/greenbasket/sustainability-service/internal/domain"
)

const (
	// conventionalBaselineFactor approximates the emission factor of a
	// conventional plastic equivalent, used as the savings baseline for
	// greener materials.
	conventionalBaselineFactor = 10.0
	conventionalMaterial       = "plastic"
)

type OrderRequest struct {
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	Items      []domain.CartItem `json:"items"`
	DistanceKm float64           `json:"distance"`
}

// RecordOrder computes an order's emission and savings, persists it and
// accumulates the user's running totals. Recording is idempotent by
// order ID; a missing ID gets a generated one.
func (s *Service) RecordOrder(ctx context.Context, req OrderRequest) (*domain.OrderReceipt, error) {
	if req.UserID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if req.OrderID == "" {
		req.OrderID = uuid.NewString()
	}
	if req.DistanceKm <= 0 {
		req.DistanceKm = carbon.ReferenceDistanceKm
	}

	exists, err := s.orders.OrderExists(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if exists {
		return &domain.OrderReceipt{
			OrderID:         req.OrderID,
			UserID:          req.UserID,
			AlreadyRecorded: true,
		}, nil
	}

	var totalCO2, totalBaseline float64
	for _, item := range req.Items {
		product, err := s.products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, domain.ErrProductNotFound) {
				return nil, fmt.Errorf("fetch order item %s: %w", item.ProductID, err)
			}
			log.Printf("[service] order %s: skipping unknown product %s", req.OrderID, item.ProductID)
			continue
		}

		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}

		co2, err := carbon.Estimate(product.EmissionFactor, product.WeightKg, qty, req.DistanceKm, carbon.DefaultTransportFactor)
		if err != nil {
			return nil, fmt.Errorf("estimate order item %s: %w", item.ProductID, err)
		}
		totalCO2 += co2

		baselineFactor := conventionalBaselineFactor
		if product.Material == conventionalMaterial {
			baselineFactor = product.EmissionFactor
		}
		baseline, err := carbon.Estimate(baselineFactor, product.WeightKg, qty, req.DistanceKm, carbon.DefaultTransportFactor)
		if err != nil {
			return nil, fmt.Errorf("estimate baseline for item %s: %w", item.ProductID, err)
		}
		totalBaseline += baseline
	}

	totalCO2 = carbon.Round3(totalCO2)
	co2Saved := carbon.Round3(carbon.Savings(totalBaseline, totalCO2))

	if err := s.orders.InsertOrder(ctx, domain.Order{
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		CO2Kg:          totalCO2,
		ShipDistanceKm: req.DistanceKm,
	}); err != nil {
		return nil, err
	}

	if err := s.orders.UpsertUserFootprint(ctx, req.UserID, totalCO2, co2Saved); err != nil {
		return nil, err
	}

	return &domain.OrderReceipt{
		OrderID:    req.OrderID,
		UserID:     req.UserID,
		CO2Kg:      totalCO2,
		CO2SavedKg: co2Saved,
		Equivalent: carbon.Equivalent(totalCO2, ""),
	}, nil
}

// GetUserSummary returns a user's running totals plus recent orders.
func (s *Service) GetUserSummary(ctx context.Context, userID string) (*domain.UserSummary, error) {
	footprint, err := s.orders.GetUserFootprint(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListRecentOrders(ctx, userID, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent orders: %w", err)
	}

	return &domain.UserSummary{
		UserID:           footprint.UserID,
		CO2TotalKg:       carbon.Round3(footprint.CO2TotalKg),
		CO2SavedKg:       carbon.Round3(footprint.CO2SavedKg),
		EcoPurchaseCount: footprint.EcoPurchaseCount,
		RecentOrders:     orders,
	}, nil
}

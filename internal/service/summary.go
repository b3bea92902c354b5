package service

import (
	"context"
	"fmt"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

// GetGlobalSummary assembles platform-wide sustainability metrics:
// totals, a per-day emission series for the trailing window, and
// leaderboards of users and products.
func (s *Service) GetGlobalSummary(ctx context.Context, days, topK int) (*domain.GlobalSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}
	if topK <= 0 {
		topK = defaultSummaryTopK
	}

	totals, err := s.orders.GlobalTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch totals: %w", err)
	}

	series, err := s.orders.EmissionsByDay(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("fetch emission series: %w", err)
	}

	topUsers, err := s.orders.TopUsersBySavings(ctx, topK)
	if err != nil {
		return nil, fmt.Errorf("fetch top users: %w", err)
	}

	topProducts, err := s.orders.TopProductsByEcoScore(ctx, topK)
	if err != nil {
		return nil, fmt.Errorf("fetch top products: %w", err)
	}

	return &domain.GlobalSummary{
		Totals:         *totals,
		EmissionsByDay: series,
		TopUsers:       topUsers,
		TopProducts:    topProducts,
	}, nil
}

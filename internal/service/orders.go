package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prathameshmate/ClickShop/internal/domain"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

// OrderHistoryFetcher retrieves a user's past orders from the order API.
type OrderHistoryFetcher interface {
	PastOrders(ctx context.Context, token string) ([]domain.Order, error)
}

// OrdersService serves the order history view.
type OrdersService struct {
	orderAPI OrderHistoryFetcher
	logger   *slog.Logger
}

// NewOrdersService creates a new orders service.
func NewOrdersService(orderAPI OrderHistoryFetcher, logger *slog.Logger) *OrdersService {
	return &OrdersService{
		orderAPI: orderAPI,
		logger:   logger,
	}
}

// ListLineItems fetches the user's order history and flattens it into the
// per-line-item view the history screen renders. Line items keep order-major
// ordering: all items of an earlier order precede those of a later one.
func (s *OrdersService) ListLineItems(ctx context.Context, token string) ([]domain.OrderLineItem, error) {
	if token == "" {
		return nil, apperrors.SessionExpired("")
	}

	orders, err := s.orderAPI.PastOrders(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch past orders: %w", err)
	}

	lines := domain.FlattenOrders(orders)

	s.logger.DebugContext(ctx, "order history flattened",
		slog.Int("orders", len(orders)),
		slog.Int("line_items", len(lines)),
	)

	return lines, nil
}

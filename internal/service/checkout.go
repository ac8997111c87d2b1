package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prathameshmate/ClickShop/internal/domain"
	"github.com/prathameshmate/ClickShop/internal/event"
	"github.com/prathameshmate/ClickShop/internal/repository"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

// OrderPlacer submits order drafts to the upstream order API.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, draft *domain.OrderDraft, token string) (string, error)
}

// CheckoutResult is what a successful checkout returns to the caller.
type CheckoutResult struct {
	OrderID     string `json:"order_id"`
	TotalAmount string `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
}

// CheckoutService turns a cart into a submitted order. Submission is
// single-flight per user: while one submission is in progress, further
// attempts by the same user are rejected rather than queued, which is what
// keeps a double-tap on the pay control from producing two orders.
type CheckoutService struct {
	repo        repository.CartRepository
	orderAPI    OrderPlacer
	producer    *event.Producer
	logger      *slog.Logger
	deliveryFee int64

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(repo repository.CartRepository, orderAPI OrderPlacer, producer *event.Producer, logger *slog.Logger, deliveryFee int64) *CheckoutService {
	return &CheckoutService{
		repo:        repo,
		orderAPI:    orderAPI,
		producer:    producer,
		logger:      logger,
		deliveryFee: deliveryFee,
		inFlight:    make(map[string]bool),
	}
}

// PlaceOrder builds an order draft from the user's cart, submits it upstream
// and clears the cart. The cart survives every failure path untouched, so the
// user can retry after a failed submission without rebuilding it.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, token string) (*CheckoutResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if token == "" {
		return nil, apperrors.SessionExpired("")
	}

	if !s.begin(userID) {
		return nil, apperrors.Conflict("an order submission is already in progress")
	}
	defer s.end(userID)

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.EmptyCart()
		}
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}

	draft, err := domain.BuildDraft(cart, s.deliveryFee)
	if err != nil {
		return nil, err
	}

	orderID, err := s.orderAPI.PlaceOrder(ctx, draft, token)
	if err != nil {
		s.logger.WarnContext(ctx, "order submission failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// Clear the cart only after the upstream accepted the order. A failure
	// here leaves a stale cart behind, which is recoverable; losing the
	// user's cart on a failed submission would not be.
	if err := s.repo.Delete(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("user_id", userID),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderPlaced(ctx, userID, orderID, draft); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("user_id", userID),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("user_id", userID),
		slog.String("order_id", orderID),
		slog.Int64("total_amount", draft.TotalAmount),
	)

	return &CheckoutResult{
		OrderID:     orderID,
		TotalAmount: draft.FormattedTotal(),
		ItemCount:   len(draft.Items),
	}, nil
}

func (s *CheckoutService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *CheckoutService) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

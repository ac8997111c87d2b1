package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prathameshmate/ClickShop/internal/domain"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

// --- Mock Order Placer ---

type mockOrderPlacer struct {
	mock.Mock
}

func (m *mockOrderPlacer) PlaceOrder(ctx context.Context, draft *domain.OrderDraft, token string) (string, error) {
	args := m.Called(ctx, draft, token)
	return args.String(0), args.Error(1)
}

func newTestCheckoutService(repo *mockCartRepository, placer *mockOrderPlacer) *CheckoutService {
	return NewCheckoutService(repo, placer, newTestProducer(), newTestLogger(), 6000)
}

// --- PlaceOrder ---

func TestPlaceOrder_Success(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	cart := newCartWithItem("user-1")
	require.NoError(t, cart.SetQuantity("prod-1", 2))

	repo.On("Get", ctx, "user-1").Return(cart, nil)
	repo.On("Delete", ctx, "user-1").Return(nil)
	placer.On("PlaceOrder", ctx, mock.AnythingOfType("*domain.OrderDraft"), "tok-1").
		Run(func(args mock.Arguments) {
			draft := args.Get(1).(*domain.OrderDraft)
			assert.Equal(t, int64(26000), draft.TotalAmount)
			assert.Equal(t, "260.00", draft.FormattedTotal())
		}).
		Return("order-55", nil)

	result, err := svc.PlaceOrder(ctx, "user-1", "tok-1")

	require.NoError(t, err)
	assert.Equal(t, "order-55", result.OrderID)
	assert.Equal(t, "260.00", result.TotalAmount)
	assert.Equal(t, 1, result.ItemCount)
	repo.AssertExpectations(t)
	placer.AssertExpectations(t)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	empty := newCartWithItem("user-1")
	empty.Reset()
	repo.On("Get", ctx, "user-1").Return(empty, nil)

	result, err := svc.PlaceOrder(ctx, "user-1", "tok-1")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
	placer.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_NoCartMeansEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	_, err := svc.PlaceOrder(ctx, "user-1", "tok-1")

	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
}

func TestPlaceOrder_SubmissionFailureKeepsCart(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(newCartWithItem("user-1"), nil)
	placer.On("PlaceOrder", ctx, mock.AnythingOfType("*domain.OrderDraft"), "tok-1").
		Return("", apperrors.SubmissionFailed("upstream rejected order"))

	_, err := svc.PlaceOrder(ctx, "user-1", "tok-1")

	assert.ErrorIs(t, err, apperrors.ErrSubmissionFailed)
	// The cart must survive a failed submission.
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlaceOrder_SessionExpiredPassesThrough(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(newCartWithItem("user-1"), nil)
	placer.On("PlaceOrder", ctx, mock.AnythingOfType("*domain.OrderDraft"), "stale").
		Return("", apperrors.SessionExpired(""))

	_, err := svc.PlaceOrder(ctx, "user-1", "stale")

	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlaceOrder_MissingToken(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)

	_, err := svc.PlaceOrder(context.Background(), "user-1", "")

	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestPlaceOrder_ConcurrentSubmissionRejected(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	release := make(chan struct{})
	firstInFlight := make(chan struct{})

	repo.On("Get", ctx, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Delete", ctx, "user-1").Return(nil)
	placer.On("PlaceOrder", ctx, mock.AnythingOfType("*domain.OrderDraft"), "tok-1").
		Run(func(mock.Arguments) {
			close(firstInFlight)
			<-release
		}).
		Return("order-1", nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.PlaceOrder(ctx, "user-1", "tok-1")
		assert.NoError(t, err)
	}()

	select {
	case <-firstInFlight:
	case <-time.After(time.Second):
		t.Fatal("first submission never started")
	}

	// Second attempt while the first is still in flight.
	_, err := svc.PlaceOrder(ctx, "user-1", "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	close(release)
	wg.Wait()

	// Once the first completes, the slot is free again.
	assert.True(t, svc.begin("user-1"))
	svc.end("user-1")
}

func TestPlaceOrder_CartClearFailureStillSucceeds(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	svc := newTestCheckoutService(repo, placer)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Delete", ctx, "user-1").Return(assert.AnError)
	placer.On("PlaceOrder", ctx, mock.AnythingOfType("*domain.OrderDraft"), "tok-1").
		Return("order-9", nil)

	result, err := svc.PlaceOrder(ctx, "user-1", "tok-1")

	// The order was accepted upstream; a stale cart is logged, not fatal.
	require.NoError(t, err)
	assert.Equal(t, "order-9", result.OrderID)
}

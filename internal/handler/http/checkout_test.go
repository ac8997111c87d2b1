package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prathameshmate/ClickShop/internal/domain"
	"github.com/prathameshmate/ClickShop/internal/service"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

type mockOrderPlacer struct {
	mock.Mock
}

func (m *mockOrderPlacer) PlaceOrder(ctx context.Context, draft *domain.OrderDraft, token string) (string, error) {
	args := m.Called(ctx, draft, token)
	return args.String(0), args.Error(1)
}

func setupCheckoutRouter(repo *mockCartRepository, placer *mockOrderPlacer) *chi.Mux {
	svc := service.NewCheckoutService(repo, placer, testEventProducer(), testLogger(), 6000)
	handler := NewCheckoutHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)
		r.Use(BearerToken)
		r.Post("/checkout", handler.PlaceOrder)
	})
	return r
}

func checkoutRequest(userID, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestPlaceOrder_HTTP_Success(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)
	repo.On("Delete", mock.Anything, "user-1").Return(nil)
	placer.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.OrderDraft"), "tok-1").
		Return("order-12", nil)
	router := setupCheckoutRouter(repo, placer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, checkoutRequest("user-1", "tok-1"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)

	var result service.CheckoutResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "order-12", result.OrderID)
	assert.Equal(t, "160.00", result.TotalAmount)
	placer.AssertExpectations(t)
}

func TestPlaceOrder_HTTP_EmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	router := setupCheckoutRouter(repo, placer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, checkoutRequest("user-1", "tok-1"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMPTY_CART", env.Error.Code)
}

func TestPlaceOrder_HTTP_MissingToken(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	router := setupCheckoutRouter(repo, placer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, checkoutRequest("user-1", ""))

	assert.Equal(t, apperrors.StatusSessionExpired, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SESSION_EXPIRED", env.Error.Code)
}

func TestPlaceOrder_HTTP_SessionExpiredUpstream(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)
	placer.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.OrderDraft"), "stale").
		Return("", apperrors.SessionExpired(""))
	router := setupCheckoutRouter(repo, placer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, checkoutRequest("user-1", "stale"))

	assert.Equal(t, apperrors.StatusSessionExpired, rec.Code)
	assert.Equal(t, "SESSION_EXPIRED", decodeEnvelope(t, rec).Error.Code)
}

func TestPlaceOrder_HTTP_SubmissionFailed(t *testing.T) {
	repo := new(mockCartRepository)
	placer := new(mockOrderPlacer)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)
	placer.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.OrderDraft"), "tok-1").
		Return("", apperrors.SubmissionFailed("payment declined"))
	router := setupCheckoutRouter(repo, placer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, checkoutRequest("user-1", "tok-1"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "SUBMISSION_FAILED", env.Error.Code)
	// The cart must not be cleared on failure.
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

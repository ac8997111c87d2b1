package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prathameshmate/ClickShop/internal/domain"
	"github.com/prathameshmate/ClickShop/internal/service"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

type mockOrderHistoryFetcher struct {
	mock.Mock
}

func (m *mockOrderHistoryFetcher) PastOrders(ctx context.Context, token string) ([]domain.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func setupOrdersRouter(fetcher *mockOrderHistoryFetcher) *chi.Mux {
	svc := service.NewOrdersService(fetcher, testLogger())
	handler := NewOrdersHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDFromHeader)
		r.Use(BearerToken)
		r.Get("/orders", handler.ListLineItems)
	})
	return r
}

func ordersRequest(userID, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestListLineItems_HTTP_Success(t *testing.T) {
	fetcher := new(mockOrderHistoryFetcher)
	fetcher.On("PastOrders", mock.Anything, "tok-1").Return([]domain.Order{
		{
			OrderID:  "order-A",
			Status:   domain.OrderStatusConfirmed,
			PlacedAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			Items: []domain.OrderItem{
				{ProductID: "p-1", Name: "Mango", Price: 10000, Quantity: 2},
				{ProductID: "p-2", Name: "Banana", Price: 5000, Quantity: 1},
			},
		},
	}, nil)
	router := setupOrdersRouter(fetcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, ordersRequest("user-1", "tok-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)

	var lines []domain.OrderLineItem
	require.NoError(t, json.Unmarshal(env.Data, &lines))
	require.Len(t, lines, 2)
	assert.Equal(t, "order-A", lines[0].OrderID)
	assert.Equal(t, "p-1", lines[0].ProductID)
	assert.Equal(t, "3/5/2026", lines[0].PlacedAt)
	assert.Equal(t, "p-2", lines[1].ProductID)
}

func TestListLineItems_HTTP_EmptyHistory(t *testing.T) {
	fetcher := new(mockOrderHistoryFetcher)
	fetcher.On("PastOrders", mock.Anything, "tok-1").Return([]domain.Order{}, nil)
	router := setupOrdersRouter(fetcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, ordersRequest("user-1", "tok-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var lines []domain.OrderLineItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &lines))
	assert.Empty(t, lines)
}

func TestListLineItems_HTTP_MissingToken(t *testing.T) {
	fetcher := new(mockOrderHistoryFetcher)
	router := setupOrdersRouter(fetcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, ordersRequest("user-1", ""))

	assert.Equal(t, apperrors.StatusSessionExpired, rec.Code)
	assert.Equal(t, "SESSION_EXPIRED", decodeEnvelope(t, rec).Error.Code)
}

func TestListLineItems_HTTP_UpstreamSessionExpired(t *testing.T) {
	fetcher := new(mockOrderHistoryFetcher)
	fetcher.On("PastOrders", mock.Anything, "stale").Return(nil, apperrors.SessionExpired(""))
	router := setupOrdersRouter(fetcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, ordersRequest("user-1", "stale"))

	assert.Equal(t, apperrors.StatusSessionExpired, rec.Code)
	assert.Equal(t, "SESSION_EXPIRED", decodeEnvelope(t, rec).Error.Code)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/prathameshmate/ClickShop/internal/service"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
	"github.com/prathameshmate/ClickShop/pkg/httputil"
)

// OrdersHandler handles HTTP requests for the order history view.
type OrdersHandler struct {
	service *service.OrdersService
	logger  *slog.Logger
}

// NewOrdersHandler creates a new orders HTTP handler.
func NewOrdersHandler(svc *service.OrdersService, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		service: svc,
		logger:  logger,
	}
}

// ListLineItems handles GET /api/v1/orders
// The response is the flattened line-item view, one entry per (order, item)
// pair in order-major order.
func (h *OrdersHandler) ListLineItems(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFromContext(r.Context()); !ok {
		writeUnauthorized(w)
		return
	}

	token := tokenFromContext(r.Context())
	if token == "" {
		httputil.WriteError(w, r, apperrors.SessionExpired(""), h.logger)
		return
	}

	lines, err := h.service.ListLineItems(r.Context(), token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: lines})
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/prathameshmate/ClickShop/internal/service"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
	"github.com/prathameshmate/ClickShop/pkg/httputil"
)

// CheckoutHandler handles HTTP requests for order submission.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// PlaceOrder handles POST /api/v1/checkout
// The request body is empty: the order is built entirely from the server-side
// cart, so a tampered client cannot submit totals it never accumulated.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	token := tokenFromContext(r.Context())
	if token == "" {
		httputil.WriteError(w, r, apperrors.SessionExpired(""), h.logger)
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), userID, token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := InvalidQuantity("quantity must be at least 1")
	assert.Equal(t, "INVALID_QUANTITY: quantity must be at least 1: invalid quantity", err.Error())

	wrapped := Internal(errors.New("boom"))
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, InvalidQuantity("too low"), ErrInvalidQuantity)
	assert.ErrorIs(t, EmptyCart(), ErrEmptyCart)
	assert.ErrorIs(t, SubmissionFailed(""), ErrSubmissionFailed)
	assert.ErrorIs(t, SessionExpired(""), ErrSessionExpired)
	assert.ErrorIs(t, NotFound("cart", "user-1"), ErrNotFound)
	assert.ErrorIs(t, Conflict("busy"), ErrConflict)
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidQuantity("q")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(EmptyCart()))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(SubmissionFailed("no")))
	assert.Equal(t, StatusSessionExpired, HTTPStatus(SessionExpired("")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("order", "o-1")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("in flight")))
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("place order: %w", ErrSessionExpired)
	assert.Equal(t, StatusSessionExpired, HTTPStatus(err))

	err = fmt.Errorf("set quantity: %w", ErrInvalidQuantity)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("mystery")))
}

func TestSubmissionFailed_DefaultMessage(t *testing.T) {
	err := SubmissionFailed("")
	assert.NotEmpty(t, err.Message)

	err = SubmissionFailed("stock ran out")
	assert.Equal(t, "stock ran out", err.Message)
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemPayload struct {
	ProductID string `validate:"required"`
	Name      string `validate:"required,min=1,max=500"`
	Price     int64  `validate:"gte=0"`
	Quantity  int    `validate:"gte=1"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(addItemPayload{ProductID: "p-1", Name: "Mango", Price: 4500, Quantity: 1})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(addItemPayload{Name: "Mango", Price: 100, Quantity: 1})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "ProductID")
	assert.Equal(t, "is required", valErr.Fields()["ProductID"])
}

func TestValidate_QuantityBelowOne(t *testing.T) {
	err := Validate(addItemPayload{ProductID: "p-1", Name: "Mango", Price: 100, Quantity: 0})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Quantity"], "greater than or equal to 1")
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(addItemPayload{Price: -1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'ProductID' is required")
}

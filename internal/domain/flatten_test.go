package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenOrders_PreservesOrderThenItemOrder(t *testing.T) {
	placedA := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	placedB := time.Date(2026, 3, 7, 18, 30, 0, 0, time.UTC)

	orders := []Order{
		{
			OrderID:  "order-A",
			Status:   OrderStatusConfirmed,
			PlacedAt: placedA,
			Items: []OrderItem{
				{ProductID: "p-x", Name: "X", Price: 100, Quantity: 1},
				{ProductID: "p-y", Name: "Y", Price: 200, Quantity: 2},
			},
		},
		{
			OrderID:  "order-B",
			Status:   OrderStatusPending,
			PlacedAt: placedB,
			Items: []OrderItem{
				{ProductID: "p-z", Name: "Z", Price: 300, Quantity: 1},
			},
		},
	}

	lines := FlattenOrders(orders)

	require.Len(t, lines, 3)
	assert.Equal(t, "p-x", lines[0].ProductID)
	assert.Equal(t, "p-y", lines[1].ProductID)
	assert.Equal(t, "p-z", lines[2].ProductID)

	assert.Equal(t, "order-A", lines[0].OrderID)
	assert.Equal(t, "order-A", lines[1].OrderID)
	assert.Equal(t, "order-B", lines[2].OrderID)

	assert.Equal(t, "3/5/2026", lines[0].PlacedAt)
	assert.Equal(t, "3/7/2026", lines[2].PlacedAt)
	assert.Equal(t, OrderStatusConfirmed, lines[0].Status)
}

func TestFlattenOrders_Empty(t *testing.T) {
	lines := FlattenOrders(nil)

	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestFlattenOrders_OrderWithNoItems(t *testing.T) {
	orders := []Order{
		{OrderID: "order-A", Items: nil, PlacedAt: time.Now()},
		{
			OrderID:  "order-B",
			PlacedAt: time.Now(),
			Items:    []OrderItem{{ProductID: "p-1", Name: "A", Price: 100, Quantity: 1}},
		},
	}

	lines := FlattenOrders(orders)

	require.Len(t, lines, 1)
	assert.Equal(t, "order-B", lines[0].OrderID)
}

func TestFlattenOrders_StatusDefaultsToPending(t *testing.T) {
	orders := []Order{
		{
			OrderID:  "order-A",
			PlacedAt: time.Now(),
			Items:    []OrderItem{{ProductID: "p-1", Name: "A", Price: 100, Quantity: 1}},
		},
	}

	lines := FlattenOrders(orders)

	require.Len(t, lines, 1)
	assert.Equal(t, OrderStatusPending, lines[0].Status)
}

func TestAllLineItems_EarlyStop(t *testing.T) {
	orders := []Order{
		{
			OrderID:  "order-A",
			PlacedAt: time.Now(),
			Items: []OrderItem{
				{ProductID: "p-1"}, {ProductID: "p-2"}, {ProductID: "p-3"},
			},
		},
	}

	var seen int
	for range AllLineItems(orders) {
		seen++
		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen)
}

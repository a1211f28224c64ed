package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusPaid))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusShipped))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))

	assert.True(t, StatusPaid.CanTransitionTo(StatusShipped))
	assert.True(t, StatusShipped.CanTransitionTo(StatusCompleted))

	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPaid))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestNewOrderTotals(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Name: "键盘", UnitPrice: decimal.NewFromFloat(199.50), Quantity: 2},
		{ProductID: 2, Name: "鼠标", UnitPrice: decimal.NewFromFloat(99.90), Quantity: 1},
	}
	order := NewOrder("ORD-TEST", 1, items, "地址", "alipay")

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "498.90", order.TotalAmount.StringFixed(2))
	assert.Len(t, order.Items, 2)
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.NewFromFloat(19.99), Quantity: 3}
	assert.Equal(t, "59.97", item.Subtotal().StringFixed(2))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id uint, name string, price float64) ProductSnapshot {
	return ProductSnapshot{
		ProductID:     id,
		Name:          name,
		ImagePath:     "/img/p.jpg",
		CategoryLabel: "数码",
		UnitPrice:     price,
		StockLimit:    99,
	}
}

func TestAddItemNewProduct(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 2)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(10), cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "键盘", cart.Items[0].Name)
	assert.Equal(t, 199.0, cart.Items[0].UnitPrice)
}

func TestAddItemMergesDuplicate(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 2)
	cart.AddItem(snapshot(10, "键盘", 199.0), 3)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 1)
	cart.AddItem(snapshot(20, "鼠标", 99.0), 1)
	cart.AddItem(snapshot(30, "显示器", 1299.0), 1)
	// 合并不改变位置
	cart.AddItem(snapshot(10, "键盘", 199.0), 1)

	require.Len(t, cart.Items, 3)
	assert.Equal(t, uint(10), cart.Items[0].ProductID)
	assert.Equal(t, uint(20), cart.Items[1].ProductID)
	assert.Equal(t, uint(30), cart.Items[2].ProductID)
}

func TestSetQuantityAbsolute(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 5)

	cart.SetQuantity(10, 2)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSetQuantityNonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -1, -100} {
		cart := NewCart(1)
		cart.AddItem(snapshot(10, "键盘", 199.0), 3)

		cart.SetQuantity(10, qty)

		assert.True(t, cart.IsEmpty(), "quantity %d should remove the line", qty)
	}
}

func TestSetQuantityUnknownProductIsNoop(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 1)

	cart.SetQuantity(999, 5)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(10), cart.Items[0].ProductID)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 1)
	cart.AddItem(snapshot(20, "鼠标", 99.0), 1)

	// 不存在的商品为 no-op，内容不变
	before := append([]LineItem(nil), cart.Items...)
	cart.RemoveItem(999)
	assert.Equal(t, before, cart.Items)

	cart.RemoveItem(10)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(20), cart.Items[0].ProductID)
}

func TestClearIsUnconditional(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 3)
	cart.AddItem(snapshot(20, "鼠标", 99.0), 1)

	cart.Clear()
	assert.True(t, cart.IsEmpty())

	// 空购物车再次清空仍然安全
	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestDerivedTotals(t *testing.T) {
	cart := NewCart(1)
	assert.Equal(t, 0, cart.TotalItems())
	assert.Equal(t, 0.0, cart.TotalPrice())

	cart.AddItem(snapshot(10, "键盘", 199.0), 2)
	cart.AddItem(snapshot(20, "鼠标", 99.5), 3)

	assert.Equal(t, 5, cart.TotalItems())
	assert.InDelta(t, 199.0*2+99.5*3, cart.TotalPrice(), 1e-9)
}

func TestTotalsFollowMutations(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 100.0), 1)
	cart.AddItem(snapshot(20, "鼠标", 50.0), 2)

	cart.SetQuantity(10, 4)
	assert.Equal(t, 6, cart.TotalItems())
	assert.InDelta(t, 500.0, cart.TotalPrice(), 1e-9)

	cart.RemoveItem(20)
	assert.Equal(t, 4, cart.TotalItems())
	assert.InDelta(t, 400.0, cart.TotalPrice(), 1e-9)
}

func TestFind(t *testing.T) {
	cart := NewCart(1)
	cart.AddItem(snapshot(10, "键盘", 199.0), 2)

	item, ok := cart.Find(10)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)

	_, ok = cart.Find(999)
	assert.False(t, ok)
}

func TestSnapshotPriceIsFrozen(t *testing.T) {
	cart := NewCart(1)
	snap := snapshot(10, "键盘", 199.0)
	cart.AddItem(snap, 1)

	// 之后以不同价格再加入同一商品，保留首次快照的价格
	snap.UnitPrice = 299.0
	cart.AddItem(snap, 1)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 199.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSubtotal(t *testing.T) {
	item := LineItem{UnitPrice: 19.9, Quantity: 3}
	assert.InDelta(t, 59.7, item.Subtotal(), 1e-9)
}

package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:42", cartKey(42))
}

func TestSnapshotRoundTrip(t *testing.T) {
	cart := domain.NewCart(42)
	cart.AddItem(domain.ProductSnapshot{
		ProductID:     10,
		Name:          "键盘",
		ImagePath:     "/img/kb.jpg",
		CategoryLabel: "数码",
		UnitPrice:     199.0,
		StockLimit:    99,
	}, 2)

	data, err := marshalCart(cart)
	require.NoError(t, err)

	restored, err := unmarshalCart(42, data)
	require.NoError(t, err)
	assert.Equal(t, cart.UserID, restored.UserID)
	assert.Equal(t, cart.Items, restored.Items)
	assert.Equal(t, cart.TotalItems(), restored.TotalItems())
	assert.InDelta(t, cart.TotalPrice(), restored.TotalPrice(), 1e-9)
}

func TestEmptyCartSnapshot(t *testing.T) {
	data, err := marshalCart(domain.NewCart(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":null}`, string(data))

	restored, err := unmarshalCart(1, data)
	require.NoError(t, err)
	assert.True(t, restored.IsEmpty())
}

func TestCorruptSnapshotIsRejected(t *testing.T) {
	_, err := unmarshalCart(1, []byte("not json"))
	assert.Error(t, err)
}

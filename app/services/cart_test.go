package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/app/storage"
)

type fakeCartStore struct {
	items   map[int64]map[int64]int
	prices  map[int64]decimal.Decimal
	names   map[int64]string
	failAll error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		items:  make(map[int64]map[int64]int),
		prices: make(map[int64]decimal.Decimal),
		names:  make(map[int64]string),
	}
}

func (f *fakeCartStore) product(id int64, name, price string) {
	f.prices[id] = decimal.RequireFromString(price)
	f.names[id] = name
}

func (f *fakeCartStore) AddToCart(_ context.Context, userID, productID int64, quantity int) error {
	if f.failAll != nil {
		return f.failAll
	}
	if f.items[userID] == nil {
		f.items[userID] = make(map[int64]int)
	}
	f.items[userID][productID] += quantity
	return nil
}

func (f *fakeCartStore) CartItems(_ context.Context, userID int64) ([]storage.CartItem, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []storage.CartItem
	for productID, qty := range f.items[userID] {
		out = append(out, storage.CartItem{
			ProductID: productID,
			Name:      f.names[productID],
			Price:     f.prices[productID],
			Quantity:  qty,
		})
	}
	return out, nil
}

func (f *fakeCartStore) RemoveFromCart(_ context.Context, userID, productID int64) error {
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.items[userID], productID)
	return nil
}

func (f *fakeCartStore) ClearCart(_ context.Context, userID int64) error {
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.items, userID)
	return nil
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"3", 3, true},
		{" 12 ", 12, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-2", 0, false},
		{"two", 0, false},
		{"1.5", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseQuantity(tc.input)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		} else {
			assert.ErrorIs(t, err, ErrInvalidQuantity, "input %q", tc.input)
		}
	}
}

func TestCartAddAccumulates(t *testing.T) {
	store := newFakeCartStore()
	store.product(10, "Earbuds", "19.99")
	cart := NewCart(store)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, 1, 10, 2))
	require.NoError(t, cart.Add(ctx, 1, 10, 3))

	view, err := cart.View(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, "99.95", view.Total.StringFixed(2))
}

func TestCartAddRejectsNonPositive(t *testing.T) {
	cart := NewCart(newFakeCartStore())

	err := cart.Add(context.Background(), 1, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartViewEmpty(t *testing.T) {
	cart := NewCart(newFakeCartStore())

	view, err := cart.View(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, view.Empty())
	assert.Equal(t, "0.00", view.Total.StringFixed(2))
}

func TestCartRemoveAndClear(t *testing.T) {
	store := newFakeCartStore()
	store.product(10, "Earbuds", "19.99")
	store.product(11, "Case", "5.00")
	cart := NewCart(store)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, 1, 10, 1))
	require.NoError(t, cart.Add(ctx, 1, 11, 1))

	require.NoError(t, cart.Remove(ctx, 1, 10))
	view, err := cart.View(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(11), view.Items[0].ProductID)

	require.NoError(t, cart.Clear(ctx, 1))
	view, err = cart.View(ctx, 1)
	require.NoError(t, err)
	assert.True(t, view.Empty())
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/app/storage"
)

type fakeOrderStore struct {
	items []storage.CartItem

	createdUserID  int64
	createdAddress string
	createdPhone   string
	createdTotal   decimal.Decimal
	createdItems   []storage.OrderItemInput
	createCalls    int
	createErr      error

	paidOrders []int64

	cartErr error
}

func (f *fakeOrderStore) CartItems(_ context.Context, _ int64) ([]storage.CartItem, error) {
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return f.items, nil
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, userID int64, address, phone string, total decimal.Decimal, items []storage.OrderItemInput) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.createdUserID = userID
	f.createdAddress = address
	f.createdPhone = phone
	f.createdTotal = total
	f.createdItems = items
	return 42, nil
}

func (f *fakeOrderStore) MarkOrderPaid(_ context.Context, orderID int64) error {
	f.paidOrders = append(f.paidOrders, orderID)
	return nil
}

func cartItem(id int64, name, price string, qty int) storage.CartItem {
	return storage.CartItem{
		ProductID: id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"+79991234567", true},
		{"79991234567", true},
		{"1234567890", true},
		{"123456789012345", true},
		{"123456789", false},
		{"1234567890123456", false},
		{"+7 999 123 45 67", false},
		{"phone", false},
		{"", false},
		{"++79991234567", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidPhone(tc.input), "input %q", tc.input)
	}
}

func TestLineTotalMinor(t *testing.T) {
	assert.Equal(t, int64(3998), LineTotalMinor(decimal.RequireFromString("19.99"), 2))
	assert.Equal(t, int64(500), LineTotalMinor(decimal.RequireFromString("5.00"), 1))
	assert.Equal(t, int64(100), LineTotalMinor(decimal.RequireFromString("0.333"), 3))
}

func TestCheckoutCreatesOrderAndInvoice(t *testing.T) {
	store := &fakeOrderStore{items: []storage.CartItem{
		cartItem(10, "Earbuds", "19.99", 2),
		cartItem(11, "Case", "5.00", 1),
	}}
	orders := NewOrders(store, "RUB", 1000)

	result, err := orders.Checkout(context.Background(), 7, "Main st 1", "+79991234567")
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.OrderID)
	assert.Equal(t, int64(4498), result.TotalMinor)
	assert.Equal(t, "44.98", result.Total.StringFixed(2))

	assert.Equal(t, int64(7), store.createdUserID)
	assert.Equal(t, "Main st 1", store.createdAddress)
	assert.Equal(t, "+79991234567", store.createdPhone)
	assert.Equal(t, "44.98", store.createdTotal.StringFixed(2))
	require.Len(t, store.createdItems, 2)
	assert.Equal(t, "19.99", store.createdItems[0].UnitPrice.StringFixed(2))
	assert.Equal(t, 2, store.createdItems[0].Quantity)

	inv := result.Invoice
	assert.Equal(t, "42", inv.Payload)
	assert.Equal(t, "RUB", inv.Currency)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "Earbuds (2 pcs)", inv.Lines[0].Label)
	assert.Equal(t, int64(3998), inv.Lines[0].AmountMinor)
	assert.Equal(t, "Case (1 pcs)", inv.Lines[1].Label)
	assert.Equal(t, int64(500), inv.Lines[1].AmountMinor)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	store := &fakeOrderStore{}
	orders := NewOrders(store, "RUB", 10000)

	_, err := orders.Checkout(context.Background(), 7, "Main st 1", "+79991234567")
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Zero(t, store.createCalls)
}

func TestCheckoutRejectsBelowMinimum(t *testing.T) {
	store := &fakeOrderStore{items: []storage.CartItem{
		cartItem(10, "Sticker", "99.99", 1),
	}}
	orders := NewOrders(store, "RUB", 10000)

	_, err := orders.Checkout(context.Background(), 7, "Main st 1", "+79991234567")

	var belowMin *BelowMinimumError
	require.ErrorAs(t, err, &belowMin)
	assert.Equal(t, int64(9999), belowMin.TotalMinor)
	assert.Equal(t, int64(10000), belowMin.MinMinor)
	assert.Zero(t, store.createCalls, "order must not be persisted")
}

func TestCheckoutPropagatesStoreError(t *testing.T) {
	store := &fakeOrderStore{
		items:     []storage.CartItem{cartItem(10, "Earbuds", "199.99", 1)},
		createErr: errors.New("boom"),
	}
	orders := NewOrders(store, "RUB", 1000)

	_, err := orders.Checkout(context.Background(), 7, "Main st 1", "+79991234567")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartEmpty)
}

func TestConfirmPaid(t *testing.T) {
	store := &fakeOrderStore{}
	orders := NewOrders(store, "RUB", 1000)
	ctx := context.Background()

	orderID, err := orders.ConfirmPaid(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	// Re-delivered confirmation is accepted again; idempotency lives in storage.
	_, err = orders.ConfirmPaid(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []int64{42, 42}, store.paidOrders)
}

func TestConfirmPaidRejectsBadPayload(t *testing.T) {
	store := &fakeOrderStore{}
	orders := NewOrders(store, "RUB", 1000)

	_, err := orders.ConfirmPaid(context.Background(), "not-an-id")
	require.Error(t, err)
	assert.Empty(t, store.paidOrders)
}

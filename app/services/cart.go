package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/storebot/app/storage"
	"github.com/m3rciful/storebot/core/logger"
	"log/slog"
)

// ErrInvalidQuantity reports quantity input that is not a positive integer.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartGateway is the storage surface the cart manager depends on.
type CartGateway interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	CartItems(ctx context.Context, userID int64) ([]storage.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

// Cart mutates and reads a user's pending-order line items.
type Cart struct {
	store CartGateway
}

// NewCart constructs the cart manager over a storage gateway.
func NewCart(store CartGateway) *Cart {
	return &Cart{store: store}
}

// ParseQuantity turns free-text quantity input into a validated count.
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// Add puts quantity units of a product into the user's cart, accumulating
// onto an existing line for the same product.
func (c *Cart) Add(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if err := c.store.AddToCart(ctx, userID, productID, quantity); err != nil {
		return err
	}
	logger.SVCCart.LogAttrs(ctx, slog.LevelInfo, "cart.add",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int("qty", quantity),
	)
	return nil
}

// CartView is an itemized cart with its running total.
type CartView struct {
	Items []storage.CartItem
	Total decimal.Decimal
}

// Empty reports whether the cart has no lines; callers render the empty and
// itemized cases differently.
func (v CartView) Empty() bool {
	return len(v.Items) == 0
}

// View returns the user's cart lines with a running total of
// unit price x quantity per line.
func (c *Cart) View(ctx context.Context, userID int64) (CartView, error) {
	items, err := c.store.CartItems(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return CartView{Items: items, Total: total}, nil
}

// Remove deletes one cart line; an absent line is a benign no-op.
func (c *Cart) Remove(ctx context.Context, userID, productID int64) error {
	if err := c.store.RemoveFromCart(ctx, userID, productID); err != nil {
		return err
	}
	logger.SVCCart.LogAttrs(ctx, slog.LevelInfo, "cart.remove",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
	)
	return nil
}

// Clear deletes all cart lines of a user.
func (c *Cart) Clear(ctx context.Context, userID int64) error {
	if err := c.store.ClearCart(ctx, userID); err != nil {
		return err
	}
	logger.SVCCart.LogAttrs(ctx, slog.LevelInfo, "cart.clear",
		slog.Int64("user_id", userID),
	)
	return nil
}

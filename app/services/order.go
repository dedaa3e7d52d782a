package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/storebot/app/storage"
	"github.com/m3rciful/storebot/core/logger"
	"log/slog"
)

// ErrCartEmpty aborts a checkout whose cart emptied between address entry and
// phone entry.
var ErrCartEmpty = errors.New("cart is empty")

// BelowMinimumError rejects a checkout under the minimum order total.
type BelowMinimumError struct {
	TotalMinor int64
	MinMinor   int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order total %d below minimum %d minor units", e.TotalMinor, e.MinMinor)
}

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// ValidPhone reports whether text is an acceptable phone number: an optional
// leading plus followed by 10 to 15 digits.
func ValidPhone(text string) bool {
	return phonePattern.MatchString(text)
}

// LineTotalMinor converts one cart line into minor currency units, rounding
// price x quantity x 100 to the nearest integer. Money math stays in integer
// cents from here on.
func LineTotalMinor(price decimal.Decimal, quantity int) int64 {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Shift(2).Round(0).IntPart()
}

// OrderGateway is the storage surface the order pipeline depends on.
type OrderGateway interface {
	CartItems(ctx context.Context, userID int64) ([]storage.CartItem, error)
	CreateOrder(ctx context.Context, userID int64, address, phone string, total decimal.Decimal, items []storage.OrderItemInput) (int64, error)
	MarkOrderPaid(ctx context.Context, orderID int64) error
}

// InvoiceLine is one labeled amount on a payment-provider invoice.
type InvoiceLine struct {
	Label       string
	AmountMinor int64
}

// Invoice describes the payment request issued for a created order. The
// payload carries the order id back through the provider's payment events.
type Invoice struct {
	OrderID     int64
	Title       string
	Description string
	Payload     string
	Currency    string
	Lines       []InvoiceLine
}

// Orders drives checkout: it turns a validated address/phone pair plus the
// live cart into a durable order and a provider invoice.
type Orders struct {
	store    OrderGateway
	currency string
	minMinor int64
}

// NewOrders constructs the order pipeline service.
func NewOrders(store OrderGateway, currency string, minOrderMinor int64) *Orders {
	return &Orders{store: store, currency: currency, minMinor: minOrderMinor}
}

// CheckoutResult reports a successfully created order.
type CheckoutResult struct {
	OrderID    int64
	TotalMinor int64
	Total      decimal.Decimal
	Invoice    Invoice
}

// Checkout re-reads the live cart, totals it in minor units, enforces the
// minimum order amount, persists the order with its items in one transaction
// (clearing the cart), and builds the invoice mirroring the order items.
func (o *Orders) Checkout(ctx context.Context, userID int64, address, phone string) (*CheckoutResult, error) {
	items, err := o.store.CartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checkout cart read: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	var totalMinor int64
	lines := make([]InvoiceLine, 0, len(items))
	orderItems := make([]storage.OrderItemInput, 0, len(items))
	for _, item := range items {
		lineMinor := LineTotalMinor(item.Price, item.Quantity)
		totalMinor += lineMinor
		lines = append(lines, InvoiceLine{
			Label:       fmt.Sprintf("%s (%d pcs)", item.Name, item.Quantity),
			AmountMinor: lineMinor,
		})
		orderItems = append(orderItems, storage.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	if totalMinor < o.minMinor {
		return nil, &BelowMinimumError{TotalMinor: totalMinor, MinMinor: o.minMinor}
	}

	total := decimal.NewFromInt(totalMinor).Shift(-2)
	orderID, err := o.store.CreateOrder(ctx, userID, address, phone, total, orderItems)
	if err != nil {
		return nil, fmt.Errorf("checkout create order: %w", err)
	}

	logger.SVCOrders.LogAttrs(ctx, slog.LevelInfo, "order.created",
		slog.Int64("user_id", userID),
		slog.Int64("order_id", orderID),
		slog.Int64("amount_minor", totalMinor),
		slog.String("currency", o.currency),
	)

	return &CheckoutResult{
		OrderID:    orderID,
		TotalMinor: totalMinor,
		Total:      total,
		Invoice: Invoice{
			OrderID:     orderID,
			Title:       "Order payment",
			Description: fmt.Sprintf("Order #%d, total: %s %s", orderID, total.StringFixed(2), o.currency),
			Payload:     strconv.FormatInt(orderID, 10),
			Currency:    o.currency,
			Lines:       lines,
		},
	}, nil
}

// ConfirmPaid decodes the order id from a settled payment's payload and marks
// the order paid. Re-delivered confirmations are harmless.
func (o *Orders) ConfirmPaid(ctx context.Context, payload string) (int64, error) {
	orderID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("payment payload %q: %w", payload, err)
	}
	if err := o.store.MarkOrderPaid(ctx, orderID); err != nil {
		return 0, err
	}
	logger.SVCOrders.LogAttrs(ctx, slog.LevelInfo, "order.paid",
		slog.Int64("order_id", orderID),
	)
	return orderID, nil
}

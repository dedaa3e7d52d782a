package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderStatusPaid is the terminal order status set by payment confirmation.
const OrderStatusPaid = "paid"

// CreateOrder persists the order header and its item rows and clears the
// user's cart, all in one transaction: a crash can never leave an order
// without items or a cart that can be checked out twice.
func (g *Gateway) CreateOrder(ctx context.Context, userID int64, address, phone string, total decimal.Decimal, items []OrderItemInput) (int64, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("create order for %d: no items", userID)
	}

	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var orderID int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO orders (user_id, address, phone, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id`,
		userID, address, phone, total,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order for %d: %w", userID, err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			orderID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return 0, fmt.Errorf("insert item %d of order %d: %w", item.ProductID, orderID, err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("clear cart after order %d: %w", orderID, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order %d: %w", orderID, err)
	}
	return orderID, nil
}

// MarkOrderPaid transitions an order to the paid status. The transition is
// monotonic and idempotent: re-delivered confirmations find no row to update
// and succeed without side effects.
func (g *Gateway) MarkOrderPaid(ctx context.Context, orderID int64) error {
	_, err := g.db.ExecContext(ctx, `
		UPDATE orders SET status = $2
		WHERE order_id = $1 AND (status IS NULL OR status <> $2)`,
		orderID, OrderStatusPaid,
	)
	if err != nil {
		return fmt.Errorf("mark order %d paid: %w", orderID, err)
	}
	return nil
}

// OrderExportRows returns every order joined with its items, newest order
// first, for the tabular export.
func (g *Gateway) OrderExportRows(ctx context.Context) ([]OrderExportRow, error) {
	var out []OrderExportRow
	err := g.db.SelectContext(ctx, &out, `
		SELECT o.order_id, o.user_id, o.address, o.phone, o.total_price, o.status,
		       oi.product_id, p.name AS product_name, oi.quantity, oi.unit_price
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		ORDER BY o.order_id DESC, oi.product_id`)
	if err != nil {
		return nil, fmt.Errorf("select order export rows: %w", err)
	}
	return out, nil
}

package storage

import (
	"context"
	"fmt"
)

// AddToCart inserts a cart line or, when the (user, product) pair already
// exists, accumulates the quantity onto the existing line.
func (g *Gateway) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("add to cart: quantity %d below 1", quantity)
	}
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO cart (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart.quantity + EXCLUDED.quantity`,
		userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("add product %d to cart of %d: %w", productID, userID, err)
	}
	return nil
}

// CartItems returns the user's cart lines joined with product name and price.
// Products without a price count as zero.
func (g *Gateway) CartItems(ctx context.Context, userID int64) ([]CartItem, error) {
	var out []CartItem
	err := g.db.SelectContext(ctx, &out, `
		SELECT c.product_id, p.name, COALESCE(p.price, 0) AS price, c.quantity
		FROM cart c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.product_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart of %d: %w", userID, err)
	}
	return out, nil
}

// RemoveFromCart deletes one cart line. Removing an absent line is a no-op.
func (g *Gateway) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	_, err := g.db.ExecContext(ctx,
		`DELETE FROM cart WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove product %d from cart of %d: %w", productID, userID, err)
	}
	return nil
}

// ClearCart deletes all cart lines of a user.
func (g *Gateway) ClearCart(ctx context.Context, userID int64) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM cart WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart of %d: %w", userID, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
)

// Categories returns all catalog categories in a stable order.
func (g *Gateway) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := g.db.SelectContext(ctx, &out, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return out, nil
}

// Subcategories returns the subcategories of one category in a stable order.
func (g *Gateway) Subcategories(ctx context.Context, categoryID int64) ([]Subcategory, error) {
	var out []Subcategory
	err := g.db.SelectContext(ctx, &out,
		`SELECT id, category_id, name FROM subcategories WHERE category_id = $1 ORDER BY id`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("select subcategories of %d: %w", categoryID, err)
	}
	return out, nil
}

// ProductsBySubcategory returns the full product list of a subcategory in a
// stable order, so a browse index stays meaningful between requests.
func (g *Gateway) ProductsBySubcategory(ctx context.Context, subcategoryID int64) ([]Product, error) {
	var out []Product
	err := g.db.SelectContext(ctx, &out,
		`SELECT id, subcategory_id, name, description, price, image_url
		 FROM products WHERE subcategory_id = $1 ORDER BY id`,
		subcategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("select products of %d: %w", subcategoryID, err)
	}
	return out, nil
}

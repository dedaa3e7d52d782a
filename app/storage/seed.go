package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/storebot/core/logger"
	"log/slog"
)

// DemoCatalogSeeder fills an empty catalog with a few browsable products so a
// fresh development database is usable before the admin panel adds real data.
// It does nothing when any category already exists.
func DemoCatalogSeeder(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM categories`); err != nil {
		return fmt.Errorf("seed: count categories: %w", err)
	}
	if count > 0 {
		logger.SEED.Debug("catalog not empty, skipping demo seed",
			slog.String("event", "db.seed"),
			slog.Int("count", count),
		)
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var categoryID, subcategoryID int64
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO categories (name) VALUES ('Electronics') RETURNING id`,
	).Scan(&categoryID); err != nil {
		return fmt.Errorf("seed: insert category: %w", err)
	}
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO subcategories (category_id, name) VALUES ($1, 'Headphones') RETURNING id`,
		categoryID,
	).Scan(&subcategoryID); err != nil {
		return fmt.Errorf("seed: insert subcategory: %w", err)
	}

	products := []struct {
		name  string
		desc  string
		price string
	}{
		{"Wired earbuds", "Basic in-ear headphones with microphone", "129.90"},
		{"Wireless headphones", "Over-ear, 30h battery", "449.00"},
	}
	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (subcategory_id, name, description, price) VALUES ($1, $2, $3, $4)`,
			subcategoryID, p.name, p.desc, p.price,
		)
		if err != nil {
			return fmt.Errorf("seed: insert product %q: %w", p.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	logger.SEED.Info("demo catalog seeded",
		slog.String("event", "db.seed"),
		slog.Int("count", len(products)),
	)
	return nil
}

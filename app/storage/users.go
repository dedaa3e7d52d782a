package storage

import (
	"context"
	"fmt"
)

// EnsureUser registers a user on first contact. Repeat contacts only backfill
// profile fields that are still empty; nothing is ever overwritten or deleted.
func (g *Gateway) EnsureUser(ctx context.Context, userID int64, username, fullName string) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, full_name)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		ON CONFLICT (user_id) DO UPDATE
		SET username  = COALESCE(users.username, EXCLUDED.username),
		    full_name = COALESCE(users.full_name, EXCLUDED.full_name)`,
		userID, username, fullName,
	)
	if err != nil {
		return fmt.Errorf("ensure user %d: %w", userID, err)
	}
	return nil
}

// ListUserIDs returns every known user id, supporting the broadcast surface.
func (g *Gateway) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := g.db.SelectContext(ctx, &ids, `SELECT user_id FROM users ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

// Package storage is the single gateway to the relational store shared with
// the admin panel. It holds all SQL; business rules live in app/services.
package storage

import "github.com/jmoiron/sqlx"

// Gateway provides typed data access over a pooled connection.
type Gateway struct {
	db *sqlx.DB
}

// New wraps an established connection pool.
func New(db *sqlx.DB) *Gateway {
	return &Gateway{db: db}
}

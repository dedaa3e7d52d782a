package storage

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// User mirrors the users table shared with the admin panel.
type User struct {
	ID           int64          `db:"user_id"`
	Username     sql.NullString `db:"username"`
	FullName     sql.NullString `db:"full_name"`
	RegisteredAt sql.NullTime   `db:"registered_at"`
}

// Category is the top level of the catalog hierarchy.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Subcategory belongs to a category. The FK is nullable to tolerate rows
// orphaned by admin-side deletions.
type Subcategory struct {
	ID         int64         `db:"id"`
	CategoryID sql.NullInt64 `db:"category_id"`
	Name       string        `db:"name"`
}

// Product is a sellable item inside a subcategory.
type Product struct {
	ID            int64               `db:"id"`
	SubcategoryID sql.NullInt64       `db:"subcategory_id"`
	Name          string              `db:"name"`
	Description   sql.NullString      `db:"description"`
	Price         decimal.NullDecimal `db:"price"`
	ImageURL      sql.NullString      `db:"image_url"`
}

// CartItem is a cart line joined with the product it refers to.
type CartItem struct {
	ProductID int64           `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int             `db:"quantity"`
}

// OrderItemInput describes one order line to persist at checkout, including
// the unit price snapshot taken from the product at that moment.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// FAQEntry maps a unique question to its answer.
type FAQEntry struct {
	ID       int64  `db:"id"`
	Question string `db:"question"`
	Answer   string `db:"answer"`
}

// OrderExportRow is one order item flattened with its order header for the
// tabular export. Prices come from the order-time snapshot.
type OrderExportRow struct {
	OrderID     int64           `db:"order_id"`
	UserID      int64           `db:"user_id"`
	Address     string          `db:"address"`
	Phone       string          `db:"phone"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	Status      sql.NullString  `db:"status"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

package domain

import "github.com/shopspring/decimal"

func init() {
	// prices and totals go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	StatusPending = "pending"
	StatusShipped = "shipped"
)

type Book struct {
	ID          int64           `db:"id"`
	SellerID    int64           `db:"seller_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	ImageURL    string          `db:"image_url"`
}

type CartLine struct {
	ID       int64 `db:"id"`
	BuyerID  int64 `db:"buyer_id"`
	BookID   int64 `db:"book_id"`
	Quantity int   `db:"quantity"`
}

// Order records one cart line turned into a purchase. SellerID is copied
// from the book at checkout; the price is not.
type Order struct {
	ID        int64  `db:"id"`
	BuyerID   int64  `db:"buyer_id"`
	SellerID  int64  `db:"seller_id"`
	BookID    int64  `db:"book_id"`
	Quantity  int    `db:"quantity"`
	Status    string `db:"status"` // pending | shipped
	CreatedAt string `db:"created_at"`
}

type CartTotals struct {
	TotalItems  int64           `db:"total_items" json:"total_items"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
}

type SellerStats struct {
	TotalOrders   int64           `db:"total_orders" json:"total_orders"`
	PendingOrders int64           `db:"pending_orders" json:"pending_orders"`
	ShippedOrders int64           `db:"shipped_orders" json:"shipped_orders"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

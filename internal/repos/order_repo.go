package repos

import (
	"context"

	"bookstore/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderRow is an order joined with its book and the names of the parties.
// Price is the book's current price, not the price at checkout.
type OrderRow struct {
	domain.Order
	Title      string          `db:"title"`
	Price      decimal.Decimal `db:"price"`
	ImageURL   string          `db:"image_url"`
	BuyerName  string          `db:"buyer_name"`
	SellerName string          `db:"seller_name"`
}

const orderCols = `o.id, o.buyer_id, o.seller_id, o.book_id, o.quantity, o.status, o.created_at,
         b.title, b.price, COALESCE(b.image_url,'') AS image_url`

// Insert writes one order through q, which is the checkout transaction in
// normal use.
func (r *OrderRepo) Insert(ctx context.Context, q sqlx.ExecerContext, o domain.Order) (int64, error) {
	res, err := q.ExecContext(ctx, `INSERT INTO orders(buyer_id, seller_id, book_id, quantity, status) VALUES(?, ?, ?, ?, ?)`,
		o.BuyerID, o.SellerID, o.BookID, o.Quantity, o.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID int64) ([]OrderRow, error) {
	out := []OrderRow{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+orderCols+`, u.name AS seller_name
	  FROM orders o
	  JOIN books b ON b.id = o.book_id
	  JOIN users u ON u.id = o.seller_id
	  WHERE o.buyer_id = ?
	  ORDER BY o.created_at DESC, o.id DESC
	`, buyerID)
	return out, err
}

func (r *OrderRepo) ListBySeller(ctx context.Context, sellerID int64) ([]OrderRow, error) {
	out := []OrderRow{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+orderCols+`, u.name AS buyer_name
	  FROM orders o
	  JOIN books b ON b.id = o.book_id
	  JOIN users u ON u.id = o.buyer_id
	  WHERE o.seller_id = ?
	  ORDER BY o.created_at DESC, o.id DESC
	`, sellerID)
	return out, err
}

// Get returns sql.ErrNoRows for unknown ids and for orders whose book or
// parties no longer exist.
func (r *OrderRepo) Get(ctx context.Context, id int64) (OrderRow, error) {
	var o OrderRow
	err := r.db.GetContext(ctx, &o, `
	  SELECT `+orderCols+`, buyer.name AS buyer_name, seller.name AS seller_name
	  FROM orders o
	  JOIN books b ON b.id = o.book_id
	  JOIN users buyer ON buyer.id = o.buyer_id
	  JOIN users seller ON seller.id = o.seller_id
	  WHERE o.id = ?
	`, id)
	return o, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return affected(res, err)
}

// SellerStats counts a seller's orders by status and sums revenue at the
// books' current prices. Everything is zero when there are no orders.
func (r *OrderRepo) SellerStats(ctx context.Context, sellerID int64) (domain.SellerStats, error) {
	lines := []pricedLine{}
	err := r.db.SelectContext(ctx, &lines, `
	  SELECT o.quantity, b.price, o.status
	  FROM orders o
	  JOIN books b ON b.id = o.book_id
	  WHERE o.seller_id = ?
	`, sellerID)
	if err != nil {
		return domain.SellerStats{}, err
	}
	s := domain.SellerStats{TotalOrders: int64(len(lines)), TotalRevenue: decimal.Zero}
	for _, ln := range lines {
		switch ln.Status {
		case domain.StatusPending:
			s.PendingOrders++
		case domain.StatusShipped:
			s.ShippedOrders++
		}
		s.TotalRevenue = s.TotalRevenue.Add(ln.amount())
	}
	return s, nil
}

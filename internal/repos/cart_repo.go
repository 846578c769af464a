package repos

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	domain.CartLine
	Title      string          `db:"title"`
	Price      decimal.Decimal `db:"price"`
	ImageURL   string          `db:"image_url"`
	SellerName string          `db:"seller_name"`
}

// CheckoutLine is a cart line with the book's owner resolved at read time.
type CheckoutLine struct {
	domain.CartLine
	SellerID int64 `db:"seller_id"`
}

// Items lists a buyer's cart. Lines whose book or seller is gone are left out.
func (r *CartRepo) Items(ctx context.Context, buyerID int64) ([]CartItemRow, error) {
	out := []CartItemRow{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT c.id, c.buyer_id, c.book_id, c.quantity,
	         b.title, b.price, COALESCE(b.image_url,'') AS image_url, u.name AS seller_name
	  FROM cart c
	  JOIN books b ON b.id = c.book_id
	  JOIN users u ON u.id = b.seller_id
	  WHERE c.buyer_id = ?
	  ORDER BY c.id
	`, buyerID)
	return out, err
}

// CheckoutLines returns the buyer's cart in fetch order, each line paired
// with the seller currently owning the book.
func (r *CartRepo) CheckoutLines(ctx context.Context, buyerID int64) ([]CheckoutLine, error) {
	out := []CheckoutLine{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT c.id, c.buyer_id, c.book_id, c.quantity, b.seller_id
	  FROM cart c
	  JOIN books b ON b.id = c.book_id
	  WHERE c.buyer_id = ?
	  ORDER BY c.id
	`, buyerID)
	return out, err
}

// Add puts qty of a book into the buyer's cart. An existing (buyer, book)
// line has its quantity increased instead; created reports which happened.
func (r *CartRepo) Add(ctx context.Context, buyerID, bookID int64, qty int) (id int64, created bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.GetContext(ctx, &id, `SELECT id FROM cart WHERE buyer_id = ? AND book_id = ?`, buyerID, bookID)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `UPDATE cart SET quantity = quantity + ? WHERE id = ?`, qty, id); err != nil {
			return 0, false, err
		}
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, `INSERT INTO cart(buyer_id, book_id, quantity) VALUES(?, ?, ?)`, buyerID, bookID, qty)
		if err != nil {
			return 0, false, err
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, false, err
		}
		created = true
	default:
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return id, created, nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, id int64, qty int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cart SET quantity = ? WHERE id = ?`, qty, id)
	return affected(res, err)
}

func (r *CartRepo) Remove(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE id = ?`, id)
	return affected(res, err)
}

// Clear deletes every line of the buyer's cart and returns how many went.
func (r *CartRepo) Clear(ctx context.Context, buyerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE buyer_id = ?`, buyerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// pricedLine is one joined row feeding a money aggregate. Sums are taken
// in decimal so stored prices are never added as floats.
type pricedLine struct {
	Quantity int64           `db:"quantity"`
	Price    decimal.Decimal `db:"price"`
	Status   string          `db:"status"`
}

func (p pricedLine) amount() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

// Totals counts the buyer's visible cart lines and sums quantity x price.
// Both are zero for an empty cart.
func (r *CartRepo) Totals(ctx context.Context, buyerID int64) (domain.CartTotals, error) {
	lines := []pricedLine{}
	err := r.db.SelectContext(ctx, &lines, `
	  SELECT c.quantity, b.price, '' AS status
	  FROM cart c
	  JOIN books b ON b.id = c.book_id
	  WHERE c.buyer_id = ?
	`, buyerID)
	if err != nil {
		return domain.CartTotals{}, err
	}
	t := domain.CartTotals{TotalItems: int64(len(lines)), TotalAmount: decimal.Zero}
	for _, ln := range lines {
		t.TotalAmount = t.TotalAmount.Add(ln.amount())
	}
	return t, nil
}

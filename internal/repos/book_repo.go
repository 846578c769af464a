package repos

import (
	"context"
	"strings"

	"bookstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BookRepo struct{ db *sqlx.DB }

func NewBookRepo(db *sqlx.DB) *BookRepo { return &BookRepo{db: db} }

// BookRow is a book joined with its seller's name.
type BookRow struct {
	domain.Book
	SellerName string `db:"seller_name"`
}

const bookCols = `b.id, b.seller_id, b.title, COALESCE(b.description,'') AS description,
    b.price, b.stock, COALESCE(b.image_url,'') AS image_url`

// InStock lists the storefront: books with stock left, newest first.
func (r *BookRepo) InStock(ctx context.Context) ([]BookRow, error) {
	out := []BookRow{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+bookCols+`, u.name AS seller_name
	  FROM books b
	  JOIN users u ON u.id = b.seller_id
	  WHERE b.stock > 0
	  ORDER BY b.id DESC
	`)
	return out, err
}

// Search lists in-stock books whose title or description contains q,
// newest first. q is matched literally and case-insensitively.
func (r *BookRepo) Search(ctx context.Context, q string) ([]BookRow, error) {
	pat := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	out := []BookRow{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+bookCols+`, u.name AS seller_name
	  FROM books b
	  JOIN users u ON u.id = b.seller_id
	  WHERE b.stock > 0
	    AND (LOWER(b.title) LIKE ? ESCAPE '\' OR LOWER(COALESCE(b.description,'')) LIKE ? ESCAPE '\')
	  ORDER BY b.id DESC
	`, pat, pat)
	return out, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *BookRepo) Get(ctx context.Context, id int64) (BookRow, error) {
	var b BookRow
	err := r.db.GetContext(ctx, &b, `
	  SELECT `+bookCols+`, u.name AS seller_name
	  FROM books b
	  JOIN users u ON u.id = b.seller_id
	  WHERE b.id = ?
	`, id)
	return b, err
}

func (r *BookRepo) BySeller(ctx context.Context, sellerID int64) ([]domain.Book, error) {
	out := []domain.Book{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+bookCols+`
	  FROM books b
	  WHERE b.seller_id = ?
	  ORDER BY b.id DESC
	`, sellerID)
	return out, err
}

func (r *BookRepo) Create(ctx context.Context, b domain.Book) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO books(seller_id, title, description, price, stock, image_url)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, b.SellerID, b.Title, b.Description, b.Price, b.Stock, b.ImageURL)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the editable fields; the owning seller never changes.
func (r *BookRepo) Update(ctx context.Context, b domain.Book) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE books
	  SET title = ?, description = ?, price = ?, stock = ?, image_url = ?
	  WHERE id = ?
	`, b.Title, b.Description, b.Price, b.Stock, b.ImageURL, b.ID)
	return affected(res, err)
}

func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	return affected(res, err)
}

package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite database at dsn and creates the schema.
// Foreign keys are declared but not enforced: books may be deleted while
// orders still reference them, and reads simply join those rows away.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: sqlite serialises writers anyway, and ":memory:"
	// databases are per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Users
CREATE TABLE IF NOT EXISTS users(
  id   INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('buyer','seller'))
);
CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

-- Books
CREATE TABLE IF NOT EXISTS books(
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  seller_id   INTEGER NOT NULL REFERENCES users(id),
  title       TEXT NOT NULL,
  description TEXT,
  price       NUMERIC NOT NULL CHECK (price >= 0),
  stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image_url   TEXT
);
CREATE INDEX IF NOT EXISTS idx_books_seller ON books(seller_id);

-- Cart
CREATE TABLE IF NOT EXISTS cart(
  id       INTEGER PRIMARY KEY AUTOINCREMENT,
  buyer_id INTEGER NOT NULL REFERENCES users(id),
  book_id  INTEGER NOT NULL REFERENCES books(id),
  quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
  UNIQUE(buyer_id, book_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  buyer_id   INTEGER NOT NULL REFERENCES users(id),
  seller_id  INTEGER NOT NULL REFERENCES users(id),
  book_id    INTEGER NOT NULL REFERENCES books(id),
  quantity   INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
  status     TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','shipped')),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_buyer  ON orders(buyer_id);
CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders(seller_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedDemo inserts the demo users and books when the users table is empty.
// It reports whether anything was inserted.
func SeedDemo(db *sqlx.DB) (bool, error) {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	users := []struct{ name, role string }{
		{"John Buyer", "buyer"},
		{"Sarah Seller", "seller"},
		{"Mike Merchant", "seller"},
		{"Emma Explorer", "buyer"},
	}
	ids := make(map[string]int64, len(users))
	for _, u := range users {
		res, err := tx.Exec(`INSERT INTO users(name, role) VALUES(?, ?)`, u.name, u.role)
		if err != nil {
			return false, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return false, err
		}
		ids[u.name] = id
	}

	books := []struct {
		seller, title, desc, price string
		stock                      int
		image                      string
	}{
		{"Sarah Seller", "The Great Gatsby", "A classic American novel by F. Scott Fitzgerald", "15.99", 50,
			"https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=300&h=400&fit=crop"},
		{"Sarah Seller", "To Kill a Mockingbird", "Harper Lee's timeless novel about justice and morality", "12.50", 30,
			"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300&h=400&fit=crop"},
		{"Mike Merchant", "1984", "George Orwell's dystopian masterpiece", "14.99", 25,
			"https://images.unsplash.com/photo-1512820790803-83ca734da794?w=300&h=400&fit=crop"},
		{"Mike Merchant", "Pride and Prejudice", "Jane Austen's beloved romance novel", "13.75", 40,
			"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop"},
		{"Mike Merchant", "Lord of the Flies", "William Golding's psychological novel", "11.99", 35,
			"https://images.unsplash.com/photo-1532012197267-da84d127e765?w=300&h=400&fit=crop"},
	}
	for _, b := range books {
		if _, err := tx.Exec(`
			INSERT INTO books(seller_id, title, description, price, stock, image_url)
			VALUES(?, ?, ?, ?, ?, ?)
		`, ids[b.seller], b.title, b.desc, b.price, b.stock, b.image); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"bookstore/internal/repos"
	"bookstore/internal/services"
)

// Demo ids as laid down by repos.SeedDemo.
const (
	johnBuyer   int64 = 1
	sarahSeller int64 = 2
	mikeSeller  int64 = 3
	emmaBuyer   int64 = 4
	bookGatsby  int64 = 1
	bookMocking int64 = 2
	book1984    int64 = 3
	bookPride   int64 = 4
	bookFlies   int64 = 5
)

func memdbSeeded(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := repos.SeedDemo(db); err != nil {
		t.Fatal(err)
	}
	return db
}

type published struct {
	key     string
	payload any
}

// recorder is a Publisher that keeps what it was given.
type recorder struct {
	mu   sync.Mutex
	got  []published
	fail error
}

func (r *recorder) Publish(_ context.Context, key string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, published{key: key, payload: payload})
	return r.fail
}

func (r *recorder) events() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]published(nil), r.got...)
}

type world struct {
	db       *sqlx.DB
	carts    *repos.CartRepo
	orders   *repos.OrderRepo
	cart     *services.CartService
	checkout *services.CheckoutService
	order    *services.OrderService
	pub      *recorder
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := memdbSeeded(t)
	pub := &recorder{}
	carts := repos.NewCartRepo(db)
	orders := repos.NewOrderRepo(db)
	return &world{
		db:       db,
		carts:    carts,
		orders:   orders,
		cart:     services.NewCartService(carts),
		checkout: services.NewCheckoutService(db, carts, orders, pub),
		order:    services.NewOrderService(orders, pub),
		pub:      pub,
	}
}

func (w *world) add(t *testing.T, buyer, book int64, qty int) {
	t.Helper()
	if _, _, err := w.cart.Add(context.Background(), buyer, book, qty); err != nil {
		t.Fatalf("add book %d: %v", book, err)
	}
}

func (w *world) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	if err := w.db.Get(&n, query, args...); err != nil {
		t.Fatal(err)
	}
	return n
}

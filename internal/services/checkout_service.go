package services

import (
	"context"
	"fmt"

	"bookstore/internal/domain"
	"bookstore/internal/events"
	"bookstore/internal/repos"
	"bookstore/internal/validate"

	"github.com/jmoiron/sqlx"
)

// CheckoutResult describes a committed checkout. CartClearErr and NotifyErr
// are faults that happened after the orders were committed; they do not
// undo the checkout and are reported only so they can be logged.
type CheckoutResult struct {
	OrderIDs     []int64
	TotalOrders  int
	CartClearErr error
	NotifyErr    error
}

type CheckoutService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Events events.Publisher
}

func NewCheckoutService(db *sqlx.DB, carts *repos.CartRepo, orders *repos.OrderRepo, pub events.Publisher) *CheckoutService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CheckoutService{DB: db, Carts: carts, Orders: orders, Events: pub}
}

// Checkout turns every line of the buyer's cart into one pending order.
// The orders are written in a single transaction: either all of them exist
// afterwards or none do. The cart is cleared only once they are committed.
// Stock and price are neither checked nor changed, and calling Checkout
// again with a refilled cart places a new, independent batch.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID int64) (CheckoutResult, error) {
	if !validate.ID(buyerID) {
		return CheckoutResult{}, invalid("buyer_id is required")
	}

	lines, err := s.Carts.CheckoutLines(ctx, buyerID)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	ids, err := s.placeOrders(ctx, buyerID, lines)
	if err != nil {
		return CheckoutResult{}, err
	}

	res := CheckoutResult{OrderIDs: ids, TotalOrders: len(ids)}
	if _, err := s.Carts.Clear(ctx, buyerID); err != nil {
		res.CartClearErr = fmt.Errorf("clear cart of buyer %d: %w", buyerID, err)
	}
	if err := s.Events.Publish(ctx, events.RKOrderCreated, events.OrdersCreatedPayload{BuyerID: buyerID, OrderIDs: ids}); err != nil {
		res.NotifyErr = fmt.Errorf("publish %s: %w", events.RKOrderCreated, err)
	}
	return res, nil
}

func (s *CheckoutService) placeOrders(ctx context.Context, buyerID int64, lines []repos.CheckoutLine) ([]int64, error) {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]int64, 0, len(lines))
	for _, ln := range lines {
		id, err := s.Orders.Insert(ctx, tx, domain.Order{
			BuyerID:  buyerID,
			SellerID: ln.SellerID,
			BookID:   ln.BookID,
			Quantity: ln.Quantity,
			Status:   domain.StatusPending,
		})
		if err != nil {
			return nil, fmt.Errorf("create order for cart line %d: %w", ln.ID, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	return ids, nil
}

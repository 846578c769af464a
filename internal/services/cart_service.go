package services

import (
	"context"

	"bookstore/internal/domain"
	"bookstore/internal/repos"
	"bookstore/internal/validate"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

func (s *CartService) Items(ctx context.Context, buyerID int64) ([]repos.CartItemRow, error) {
	return s.Carts.Items(ctx, buyerID)
}

// Add puts a book in the cart, merging with an existing line for the same
// book. Stock is not consulted.
func (s *CartService) Add(ctx context.Context, buyerID, bookID int64, qty int) (id int64, created bool, err error) {
	if !validate.ID(buyerID) || !validate.ID(bookID) {
		return 0, false, invalid("buyer_id and book_id are required")
	}
	if !validate.Quantity(qty) {
		return 0, false, invalid("Valid quantity is required")
	}
	return s.Carts.Add(ctx, buyerID, bookID, qty)
}

func (s *CartService) SetQuantity(ctx context.Context, id int64, qty int) error {
	if !validate.Quantity(qty) {
		return invalid("Valid quantity is required")
	}
	return notFound(s.Carts.SetQuantity(ctx, id, qty))
}

func (s *CartService) Remove(ctx context.Context, id int64) error {
	return notFound(s.Carts.Remove(ctx, id))
}

func (s *CartService) Clear(ctx context.Context, buyerID int64) (int64, error) {
	return s.Carts.Clear(ctx, buyerID)
}

func (s *CartService) Totals(ctx context.Context, buyerID int64) (domain.CartTotals, error) {
	return s.Carts.Totals(ctx, buyerID)
}

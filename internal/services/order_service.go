package services

import (
	"context"
	"fmt"

	"bookstore/internal/domain"
	"bookstore/internal/events"
	"bookstore/internal/repos"
	"bookstore/internal/validate"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Events events.Publisher
}

func NewOrderService(orders *repos.OrderRepo, pub events.Publisher) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{Orders: orders, Events: pub}
}

func (s *OrderService) ByBuyer(ctx context.Context, buyerID int64) ([]repos.OrderRow, error) {
	return s.Orders.ListByBuyer(ctx, buyerID)
}

func (s *OrderService) BySeller(ctx context.Context, sellerID int64) ([]repos.OrderRow, error) {
	return s.Orders.ListBySeller(ctx, sellerID)
}

func (s *OrderService) Get(ctx context.Context, id int64) (repos.OrderRow, error) {
	o, err := s.Orders.Get(ctx, id)
	return o, notFound(err)
}

// SetStatus assigns pending or shipped. Any transition between the two is
// allowed, including shipped back to pending. The returned error is nil
// once the row is updated; a failed event publish is returned as notifyErr.
func (s *OrderService) SetStatus(ctx context.Context, id int64, status string) (notifyErr error, err error) {
	status, ok := validate.Status(status)
	if !ok {
		return nil, invalid("Valid status (pending/shipped) is required")
	}
	if err := s.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err)
	}
	if err := s.Events.Publish(ctx, events.RKOrderStatusChanged, events.StatusChangedPayload{OrderID: id, Status: status}); err != nil {
		return fmt.Errorf("publish %s: %w", events.RKOrderStatusChanged, err), nil
	}
	return nil, nil
}

func (s *OrderService) SellerStats(ctx context.Context, sellerID int64) (domain.SellerStats, error) {
	return s.Orders.SellerStats(ctx, sellerID)
}

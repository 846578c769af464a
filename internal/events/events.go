package events

import (
	"context"
	"encoding/json"
	"time"
)

// Routing keys published by the order side.
const (
	RKOrderCreated       = "order.created"
	RKOrderStatusChanged = "order.status_changed"
)

type OrdersCreatedPayload struct {
	BuyerID  int64   `json:"buyer_id"`
	OrderIDs []int64 `json:"order_ids"`
}

type StatusChangedPayload struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// Publisher delivers domain events. Publishing happens after the change is
// committed; a failure is the caller's to log, never to roll back.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

type envelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func encode(routingKey string, payload any, now time.Time) ([]byte, error) {
	return json.Marshal(envelope{Type: routingKey, Timestamp: now.UTC(), Payload: payload})
}

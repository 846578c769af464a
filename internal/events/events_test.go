package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEncodeEnvelope(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	b, err := encode(RKOrderCreated, OrdersCreatedPayload{BuyerID: 4, OrderIDs: []int64{10, 11}}, now)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Type      string    `json:"type"`
		Timestamp time.Time `json:"timestamp"`
		Payload   struct {
			BuyerID  int64   `json:"buyer_id"`
			OrderIDs []int64 `json:"order_ids"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != "order.created" {
		t.Fatalf("type = %q", got.Type)
	}
	if !got.Timestamp.Equal(now) || got.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not normalised to UTC: %v", got.Timestamp)
	}
	if got.Payload.BuyerID != 4 || len(got.Payload.OrderIDs) != 2 || got.Payload.OrderIDs[1] != 11 {
		t.Fatalf("payload = %+v", got.Payload)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), RKOrderStatusChanged, StatusChangedPayload{OrderID: 1, Status: "shipped"}); err != nil {
		t.Fatal(err)
	}
}

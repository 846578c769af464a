package services_test

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/domain"
	"bookstore/internal/events"
	"bookstore/internal/services"
)

func TestOrderFlow_AddCartCheckout(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.add(t, johnBuyer, bookGatsby, 2)
	w.add(t, johnBuyer, book1984, 1)

	res, err := w.checkout.Checkout(ctx, johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalOrders != 2 || len(res.OrderIDs) != 2 {
		t.Fatalf("want 2 orders, got %+v", res)
	}
	if res.CartClearErr != nil || res.NotifyErr != nil {
		t.Fatalf("unexpected after-commit faults: %+v", res)
	}

	got, err := w.order.ByBuyer(ctx, johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 orders for buyer, got %d", len(got))
	}
	sellers := map[int64]int64{}
	for _, o := range got {
		if o.Status != domain.StatusPending {
			t.Fatalf("order %d status %q, want pending", o.ID, o.Status)
		}
		sellers[o.BookID] = o.SellerID
		if o.BookID == bookGatsby && o.Quantity != 2 {
			t.Fatalf("gatsby quantity = %d, want 2", o.Quantity)
		}
	}
	if sellers[bookGatsby] != sarahSeller || sellers[book1984] != mikeSeller {
		t.Fatalf("orders attributed to wrong sellers: %v", sellers)
	}

	items, err := w.cart.Items(ctx, johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", len(items))
	}

	evs := w.pub.events()
	if len(evs) != 1 || evs[0].key != events.RKOrderCreated {
		t.Fatalf("want one order.created event, got %+v", evs)
	}
	p, ok := evs[0].payload.(events.OrdersCreatedPayload)
	if !ok || p.BuyerID != johnBuyer || len(p.OrderIDs) != 2 {
		t.Fatalf("bad event payload: %+v", evs[0].payload)
	}
}

func TestCheckout_LeavesStockAlone(t *testing.T) {
	w := newWorld(t)
	w.add(t, johnBuyer, bookGatsby, 60) // more than the 50 in stock

	if _, err := w.checkout.Checkout(context.Background(), johnBuyer); err != nil {
		t.Fatal(err)
	}
	if n := w.count(t, `SELECT stock FROM books WHERE id = ?`, bookGatsby); n != 50 {
		t.Fatalf("stock changed to %d", n)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	w := newWorld(t)

	_, err := w.checkout.Checkout(context.Background(), emmaBuyer)
	if !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if n := w.count(t, `SELECT COUNT(*) FROM orders`); n != 0 {
		t.Fatalf("orders created for empty cart: %d", n)
	}
	if len(w.pub.events()) != 0 {
		t.Fatal("event published for empty cart")
	}
}

func TestCheckout_RequiresBuyer(t *testing.T) {
	w := newWorld(t)
	if _, err := w.checkout.Checkout(context.Background(), 0); !services.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCheckout_InsertFailureLeavesNothing(t *testing.T) {
	w := newWorld(t)
	w.add(t, johnBuyer, bookGatsby, 1)
	w.add(t, johnBuyer, book1984, 1)
	w.add(t, johnBuyer, bookFlies, 1)

	// Second of three inserts fails.
	if _, err := w.db.Exec(`
	  CREATE TRIGGER fail_1984 BEFORE INSERT ON orders
	  WHEN NEW.book_id = 3
	  BEGIN SELECT RAISE(ABORT, 'disk full'); END;
	`); err != nil {
		t.Fatal(err)
	}

	_, err := w.checkout.Checkout(context.Background(), johnBuyer)
	if err == nil {
		t.Fatal("expected checkout to fail")
	}
	if services.IsValidation(err) || errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("store fault reported as caller fault: %v", err)
	}
	if n := w.count(t, `SELECT COUNT(*) FROM orders`); n != 0 {
		t.Fatalf("partial checkout left %d orders", n)
	}
	if n := w.count(t, `SELECT COUNT(*) FROM cart WHERE buyer_id = ?`, johnBuyer); n != 3 {
		t.Fatalf("cart should be untouched, has %d lines", n)
	}
	if len(w.pub.events()) != 0 {
		t.Fatal("event published for failed checkout")
	}
}

func TestCheckout_CartClearFailureKeepsOrders(t *testing.T) {
	w := newWorld(t)
	w.add(t, johnBuyer, bookGatsby, 2)
	w.add(t, johnBuyer, book1984, 1)

	if _, err := w.db.Exec(`
	  CREATE TRIGGER keep_cart BEFORE DELETE ON cart
	  BEGIN SELECT RAISE(ABORT, 'cart locked'); END;
	`); err != nil {
		t.Fatal(err)
	}

	res, err := w.checkout.Checkout(context.Background(), johnBuyer)
	if err != nil {
		t.Fatalf("checkout should succeed once orders commit: %v", err)
	}
	if res.CartClearErr == nil {
		t.Fatal("cart clear fault not reported")
	}
	if res.TotalOrders != 2 {
		t.Fatalf("want 2 orders, got %d", res.TotalOrders)
	}
	if n := w.count(t, `SELECT COUNT(*) FROM orders WHERE buyer_id = ?`, johnBuyer); n != 2 {
		t.Fatalf("want 2 committed orders, got %d", n)
	}
}

func TestCheckout_PublishFailureKeepsOrders(t *testing.T) {
	w := newWorld(t)
	w.pub.fail = errors.New("broker down")
	w.add(t, johnBuyer, bookPride, 1)

	res, err := w.checkout.Checkout(context.Background(), johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if res.NotifyErr == nil {
		t.Fatal("publish fault not reported")
	}
	if n := w.count(t, `SELECT COUNT(*) FROM cart WHERE buyer_id = ?`, johnBuyer); n != 0 {
		t.Fatalf("cart not cleared: %d lines", n)
	}
}

func TestCheckout_SkipsLinesForMissingBooks(t *testing.T) {
	w := newWorld(t)
	w.add(t, johnBuyer, bookGatsby, 1)
	w.add(t, johnBuyer, 999, 1)

	res, err := w.checkout.Checkout(context.Background(), johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalOrders != 1 {
		t.Fatalf("want 1 order, got %d", res.TotalOrders)
	}
	if n := w.count(t, `SELECT COUNT(*) FROM cart WHERE buyer_id = ?`, johnBuyer); n != 0 {
		t.Fatalf("stale line left in cart: %d", n)
	}
}

func TestCheckout_OnlyMissingBooksIsEmpty(t *testing.T) {
	w := newWorld(t)
	w.add(t, johnBuyer, 999, 1)

	if _, err := w.checkout.Checkout(context.Background(), johnBuyer); !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestCheckout_RepeatPlacesNewBatch(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.add(t, johnBuyer, bookGatsby, 1)
	first, err := w.checkout.Checkout(ctx, johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.checkout.Checkout(ctx, johnBuyer); !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("second checkout of emptied cart: want ErrEmptyCart, got %v", err)
	}

	w.add(t, johnBuyer, bookGatsby, 1)
	second, err := w.checkout.Checkout(ctx, johnBuyer)
	if err != nil {
		t.Fatal(err)
	}
	if first.OrderIDs[0] == second.OrderIDs[0] {
		t.Fatalf("repeat checkout reused order id %d", first.OrderIDs[0])
	}
	if n := w.count(t, `SELECT COUNT(*) FROM orders WHERE buyer_id = ?`, johnBuyer); n != 2 {
		t.Fatalf("want 2 orders in total, got %d", n)
	}
}

func TestCheckout_OtherBuyersCartUntouched(t *testing.T) {
	w := newWorld(t)
	w.add(t, johnBuyer, bookGatsby, 1)
	w.add(t, emmaBuyer, bookMocking, 3)

	if _, err := w.checkout.Checkout(context.Background(), johnBuyer); err != nil {
		t.Fatal(err)
	}
	if n := w.count(t, `SELECT COUNT(*) FROM cart WHERE buyer_id = ?`, emmaBuyer); n != 1 {
		t.Fatalf("other buyer's cart changed: %d lines", n)
	}
}

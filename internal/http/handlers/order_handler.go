package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookstore/internal/log"
	"bookstore/internal/services"
)

type OrderHandler struct {
	Flow   *services.CheckoutService
	Orders *services.OrderService
}

type checkoutRequest struct {
	BuyerID int64 `json:"buyer_id"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// Checkout converts the buyer's whole cart into pending orders.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "buyer_id is required")
	}
	res, err := h.Flow.Checkout(c.UserContext(), req.BuyerID)
	if err != nil {
		return respondErr(c, "checkout", err, "", "Failed to create orders")
	}

	// The orders are committed; later faults are only logged.
	if res.CartClearErr != nil {
		applog.Error(c, "checkout.cart_clear.fail", res.CartClearErr, map[string]any{"buyer_id": req.BuyerID})
	}
	if res.NotifyErr != nil {
		applog.Error(c, "checkout.notify.fail", res.NotifyErr, map[string]any{"buyer_id": req.BuyerID})
	}
	applog.Audit(c, "checkout.success", map[string]any{"buyer_id": req.BuyerID, "order_ids": res.OrderIDs})

	return c.JSON(checkoutResponse{
		Message:     "Orders created successfully",
		OrderIDs:    res.OrderIDs,
		TotalOrders: res.TotalOrders,
	})
}

func (h *OrderHandler) ByBuyer(c *fiber.Ctx) error {
	buyerID, ok := idParam(c, "buyerId")
	if !ok {
		return badID(c, "buyerId")
	}
	rows, err := h.Orders.ByBuyer(c.UserContext(), buyerID)
	if err != nil {
		return respondErr(c, "order.by_buyer", err, "", "Failed to fetch orders")
	}
	return c.JSON(toOrders(rows))
}

func (h *OrderHandler) BySeller(c *fiber.Ctx) error {
	sellerID, ok := idParam(c, "sellerId")
	if !ok {
		return badID(c, "sellerId")
	}
	rows, err := h.Orders.BySeller(c.UserContext(), sellerID)
	if err != nil {
		return respondErr(c, "order.by_seller", err, "", "Failed to fetch orders")
	}
	return c.JSON(toOrders(rows))
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	row, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "order.get", err, "Order not found", "Failed to fetch order")
	}
	return c.JSON(toOrder(row))
}

func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid status (pending/shipped) is required")
	}
	notifyErr, err := h.Orders.SetStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondErr(c, "order.status", err, "Order not found", "Failed to update order status")
	}
	if notifyErr != nil {
		applog.Error(c, "order.status.notify.fail", notifyErr, map[string]any{"order_id": id})
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": req.Status})
	return message(c, "Order status updated successfully")
}

func (h *OrderHandler) SellerStats(c *fiber.Ctx) error {
	sellerID, ok := idParam(c, "sellerId")
	if !ok {
		return badID(c, "sellerId")
	}
	s, err := h.Orders.SellerStats(c.UserContext(), sellerID)
	if err != nil {
		return respondErr(c, "order.stats", err, "", "Failed to fetch seller stats")
	}
	return c.JSON(s)
}

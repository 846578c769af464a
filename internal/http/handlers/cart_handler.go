package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookstore/internal/log"
	"bookstore/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartAddRequest struct {
	BuyerID  int64 `json:"buyer_id"`
	BookID   int64 `json:"book_id"`
	Quantity *int  `json:"quantity"` // defaults to 1
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	buyerID, ok := idParam(c, "buyerId")
	if !ok {
		return badID(c, "buyerId")
	}
	rows, err := h.Cart.Items(c.UserContext(), buyerID)
	if err != nil {
		return respondErr(c, "cart.list", err, "", "Failed to fetch cart")
	}
	return c.JSON(toCartItems(rows))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req cartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	id, created, err := h.Cart.Add(c.UserContext(), req.BuyerID, req.BookID, qty)
	if err != nil {
		return respondErr(c, "cart.add", err, "", "Failed to add to cart")
	}
	applog.Info(c, "cart.add", map[string]any{"buyer_id": req.BuyerID, "book_id": req.BookID, "qty": qty})
	msg := "Cart updated successfully"
	if created {
		msg = "Item added to cart"
	}
	return c.JSON(cartAddResponse{Message: msg, CartID: id})
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.Cart.SetQuantity(c.UserContext(), id, req.Quantity); err != nil {
		return respondErr(c, "cart.update", err, "Cart item not found", "Failed to update cart")
	}
	return message(c, "Cart item updated successfully")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := h.Cart.Remove(c.UserContext(), id); err != nil {
		return respondErr(c, "cart.remove", err, "Cart item not found", "Failed to remove from cart")
	}
	return message(c, "Item removed from cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	buyerID, ok := idParam(c, "buyerId")
	if !ok {
		return badID(c, "buyerId")
	}
	n, err := h.Cart.Clear(c.UserContext(), buyerID)
	if err != nil {
		return respondErr(c, "cart.clear", err, "", "Failed to clear cart")
	}
	return c.JSON(cartClearResponse{Message: "Cart cleared successfully", DeletedItems: n})
}

func (h *CartHandler) Total(c *fiber.Ctx) error {
	buyerID, ok := idParam(c, "buyerId")
	if !ok {
		return badID(c, "buyerId")
	}
	t, err := h.Cart.Totals(c.UserContext(), buyerID)
	if err != nil {
		return respondErr(c, "cart.total", err, "", "Failed to calculate cart total")
	}
	return c.JSON(t)
}

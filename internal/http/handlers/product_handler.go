package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "bookstore/internal/log"
	"bookstore/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type bookRequest struct {
	SellerID    int64            `json:"seller_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    string           `json:"image_url"`
}

func (r bookRequest) input() services.BookInput {
	return services.BookInput{
		SellerID:    r.SellerID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
	}
}

// List is the storefront: in-stock books, newest first.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.Storefront(c.UserContext())
	if err != nil {
		return respondErr(c, "product.list", err, "", "Failed to fetch products")
	}
	return c.JSON(toBookRows(rows))
}

// Search is the storefront narrowed by ?q=; a blank q lists everything.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		return h.List(c)
	}
	rows, err := h.Catalog.Search(c.UserContext(), q)
	if err != nil {
		return respondErr(c, "product.search", err, "", "Failed to search products")
	}
	return c.JSON(toBookRows(rows))
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	row, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "product.get", err, "Product not found", "Failed to fetch product")
	}
	return c.JSON(toBook(row.Book, row.SellerName))
}

func (h *ProductHandler) BySeller(c *fiber.Ctx) error {
	sellerID, ok := idParam(c, "sellerId")
	if !ok {
		return badID(c, "sellerId")
	}
	bs, err := h.Catalog.BySeller(c.UserContext(), sellerID)
	if err != nil {
		return respondErr(c, "product.by_seller", err, "", "Failed to fetch seller products")
	}
	return c.JSON(toBooks(bs))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	b, err := h.Catalog.Create(c.UserContext(), req.input())
	if err != nil {
		return respondErr(c, "product.create", err, "", "Failed to create product")
	}
	applog.Audit(c, "product.create", map[string]any{"book_id": b.ID, "seller_id": b.SellerID})
	return c.JSON(toBook(b, ""))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.Catalog.Update(c.UserContext(), id, req.input()); err != nil {
		return respondErr(c, "product.update", err, "Product not found", "Failed to update product")
	}
	applog.Audit(c, "product.update", map[string]any{"book_id": id})
	return message(c, "Product updated successfully")
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return respondErr(c, "product.delete", err, "Product not found", "Failed to delete product")
	}
	applog.Audit(c, "product.delete", map[string]any{"book_id": id})
	return message(c, "Product deleted successfully")
}

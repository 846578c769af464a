package handlers

import (
	"bookstore/internal/domain"
	"bookstore/internal/repos"

	"github.com/shopspring/decimal"
)

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type bookResponse struct {
	ID          int64           `json:"id"`
	SellerID    int64           `json:"seller_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	SellerName  string          `json:"seller_name,omitempty"`
}

type cartItemResponse struct {
	ID         int64           `json:"id"`
	BuyerID    int64           `json:"buyer_id"`
	BookID     int64           `json:"book_id"`
	Quantity   int             `json:"quantity"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url"`
	SellerName string          `json:"seller_name"`
}

type orderResponse struct {
	ID         int64           `json:"id"`
	BuyerID    int64           `json:"buyer_id"`
	SellerID   int64           `json:"seller_id"`
	BookID     int64           `json:"book_id"`
	Quantity   int             `json:"quantity"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"created_at"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url"`
	BuyerName  string          `json:"buyer_name,omitempty"`
	SellerName string          `json:"seller_name,omitempty"`
}

type checkoutResponse struct {
	Message     string  `json:"message"`
	OrderIDs    []int64 `json:"orderIds"`
	TotalOrders int     `json:"totalOrders"`
}

type cartAddResponse struct {
	Message string `json:"message"`
	CartID  int64  `json:"cartId"`
}

type cartClearResponse struct {
	Message      string `json:"message"`
	DeletedItems int64  `json:"deletedItems"`
}

func toUser(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Role: u.Role}
}

func toUsers(us []domain.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toUser(u))
	}
	return out
}

func toBook(b domain.Book, sellerName string) bookResponse {
	return bookResponse{
		ID:          b.ID,
		SellerID:    b.SellerID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		ImageURL:    b.ImageURL,
		SellerName:  sellerName,
	}
}

func toBookRows(rows []repos.BookRow) []bookResponse {
	out := make([]bookResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toBook(r.Book, r.SellerName))
	}
	return out
}

func toBooks(bs []domain.Book) []bookResponse {
	out := make([]bookResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBook(b, ""))
	}
	return out
}

func toCartItems(rows []repos.CartItemRow) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, cartItemResponse{
			ID:         r.ID,
			BuyerID:    r.BuyerID,
			BookID:     r.BookID,
			Quantity:   r.Quantity,
			Title:      r.Title,
			Price:      r.Price,
			ImageURL:   r.ImageURL,
			SellerName: r.SellerName,
		})
	}
	return out
}

func toOrder(r repos.OrderRow) orderResponse {
	return orderResponse{
		ID:         r.ID,
		BuyerID:    r.BuyerID,
		SellerID:   r.SellerID,
		BookID:     r.BookID,
		Quantity:   r.Quantity,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		Title:      r.Title,
		Price:      r.Price,
		ImageURL:   r.ImageURL,
		BuyerName:  r.BuyerName,
		SellerName: r.SellerName,
	}
}

func toOrders(rows []repos.OrderRow) []orderResponse {
	out := make([]orderResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toOrder(r))
	}
	return out
}

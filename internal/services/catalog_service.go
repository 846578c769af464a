package services

import (
	"context"
	"errors"

	"bookstore/internal/domain"
	"bookstore/internal/repos"
	"bookstore/internal/validate"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	Books *repos.BookRepo
	Users *repos.UserRepo
}

func NewCatalogService(books *repos.BookRepo, users *repos.UserRepo) *CatalogService {
	return &CatalogService{Books: books, Users: users}
}

// BookInput carries the writable book fields. Nil pointers mean the field
// was not supplied.
type BookInput struct {
	SellerID    int64
	Title       string
	Description string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    string
}

func (s *CatalogService) Storefront(ctx context.Context) ([]repos.BookRow, error) {
	return s.Books.InStock(ctx)
}

// Search filters the storefront by keyword.
func (s *CatalogService) Search(ctx context.Context, q string) ([]repos.BookRow, error) {
	q, ok := validate.Query(q)
	if !ok {
		return nil, invalid("Enter a valid keyword (letters, numbers and basic punctuation only)")
	}
	return s.Books.Search(ctx, q)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (repos.BookRow, error) {
	b, err := s.Books.Get(ctx, id)
	return b, notFound(err)
}

func (s *CatalogService) BySeller(ctx context.Context, sellerID int64) ([]domain.Book, error) {
	return s.Books.BySeller(ctx, sellerID)
}

// Create adds a book owned by an existing user.
func (s *CatalogService) Create(ctx context.Context, in BookInput) (domain.Book, error) {
	if !validate.ID(in.SellerID) {
		return domain.Book{}, invalid("Missing required fields")
	}
	b, err := checkBook(in)
	if err != nil {
		return domain.Book{}, err
	}
	if _, err := s.Users.ByID(ctx, in.SellerID); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return domain.Book{}, invalid("seller_id does not reference an existing user")
		}
		return domain.Book{}, err
	}
	b.SellerID = in.SellerID
	if b.ID, err = s.Books.Create(ctx, b); err != nil {
		return domain.Book{}, err
	}
	return b, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, in BookInput) error {
	b, err := checkBook(in)
	if err != nil {
		return err
	}
	b.ID = id
	return notFound(s.Books.Update(ctx, b))
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Books.Delete(ctx, id))
}

func checkBook(in BookInput) (domain.Book, error) {
	title, ok := validate.Title(in.Title)
	if !ok || in.Price == nil || in.Stock == nil {
		return domain.Book{}, invalid("Missing required fields")
	}
	if !validate.Price(*in.Price) {
		return domain.Book{}, invalid("price must be non-negative")
	}
	if !validate.Stock(*in.Stock) {
		return domain.Book{}, invalid("stock must be non-negative")
	}
	return domain.Book{
		Title:       title,
		Description: in.Description,
		Price:       *in.Price,
		Stock:       *in.Stock,
		ImageURL:    in.ImageURL,
	}, nil
}

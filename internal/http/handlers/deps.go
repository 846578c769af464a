package handlers

import (
	"bookstore/internal/events"
	"bookstore/internal/repos"
	"bookstore/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	UserHandler       *UserHandler
	ProductHandler    *ProductHandler
	CartHandler       *CartHandler
	OrderHandler      *OrderHandler
	StorefrontHandler *StorefrontHandler
}

func NewDeps(db *sqlx.DB, pub events.Publisher) *Deps {
	userRepo := repos.NewUserRepo(db)
	bookRepo := repos.NewBookRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	userSvc := services.NewUserService(userRepo)
	catalogSvc := services.NewCatalogService(bookRepo, userRepo)
	cartSvc := services.NewCartService(cartRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, orderRepo, pub)
	orderSvc := services.NewOrderService(orderRepo, pub)

	return &Deps{
		UserHandler:       &UserHandler{Users: userSvc},
		ProductHandler:    &ProductHandler{Catalog: catalogSvc},
		CartHandler:       &CartHandler{Cart: cartSvc},
		OrderHandler:      &OrderHandler{Flow: checkoutSvc, Orders: orderSvc},
		StorefrontHandler: &StorefrontHandler{Catalog: catalogSvc},
	}
}

package handlers

import (
	"cafepos/internal/checkout"
	"cafepos/internal/config"
	"cafepos/internal/repos"
	"cafepos/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth            *services.AuthService
	Tickets         *services.TicketBook
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	ReportHandler   *ReportHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)

	book := services.NewTicketBook()
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(book, catalogSvc)
	checkoutSvc := services.NewCheckoutService(book, checkout.NewProcessor(saleRepo, saleRepo, cfg.CheckoutMode))
	salesSvc := services.NewSalesService(saleRepo)

	return &Deps{
		Auth:            auth,
		Tickets:         book,
		AuthHandler:     &AuthHandler{Auth: auth, Tickets: book},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc},
		ReportHandler:   &ReportHandler{Sales: salesSvc},
	}
}

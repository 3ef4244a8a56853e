package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"cafepos/internal/checkout"
	"cafepos/internal/domain"
	"cafepos/internal/repos"
	"cafepos/internal/services"
)

type fixture struct {
	db       *sqlx.DB
	catalog  *services.CatalogService
	carts    *services.CartService
	checkout *services.CheckoutService
	sales    *services.SalesService
	auth     *services.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	saleRepo := repos.NewSaleRepo(db)
	book := services.NewTicketBook()
	catalog := services.NewCatalogService(repos.NewProductRepo(db))
	return &fixture{
		db:       db,
		catalog:  catalog,
		carts:    services.NewCartService(book, catalog),
		checkout: services.NewCheckoutService(book, checkout.NewProcessor(saleRepo, saleRepo, checkout.ModeBestEffort)),
		sales:    services.NewSalesService(saleRepo),
		auth:     &services.AuthService{Users: repos.NewUserRepo(db)},
	}
}

func seller(sid string) *domain.Session {
	return &domain.Session{ID: sid, User: &domain.User{ID: "u-vendedor", Username: "vendedor", Role: domain.RoleSeller}}
}

func admin(sid string) *domain.Session {
	return &domain.Session{ID: sid, User: &domain.User{ID: "u-admin", Username: "admin", Role: domain.RoleAdmin}}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var bg = context.Background()

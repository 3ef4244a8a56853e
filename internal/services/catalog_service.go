package services

import (
	"context"

	"github.com/shopspring/decimal"

	"cafepos/internal/domain"
	"cafepos/internal/repos"
	"cafepos/internal/validate"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.List(ctx)
}

func (s *CatalogService) FindByName(ctx context.Context, name string) (domain.Product, error) {
	n, ok := validate.ProductName(name)
	if !ok {
		return domain.Product{}, domain.NewValidationError("name", "must be 1-60 characters", name)
	}
	return s.Prods.ByName(ctx, n)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

// AddProduct creates a menu item. Only sessions allowed to manage the
// catalog get past the first check.
func (s *CatalogService) AddProduct(ctx context.Context, sess *domain.Session, name, price string) (domain.Product, error) {
	if err := Authorize(sess, ActionManageCatalog); err != nil {
		return domain.Product{}, err
	}
	n, p, err := checkProduct(name, price)
	if err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Create(ctx, n, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, sess *domain.Session, id, name, price string) (domain.Product, error) {
	if err := Authorize(sess, ActionManageCatalog); err != nil {
		return domain.Product{}, err
	}
	if _, ok := validate.ID(id); !ok {
		return domain.Product{}, domain.NewValidationError("id", "malformed", id)
	}
	n, p, err := checkProduct(name, price)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Update(ctx, id, n, p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sess *domain.Session, id string) error {
	if err := Authorize(sess, ActionManageCatalog); err != nil {
		return err
	}
	if _, ok := validate.ID(id); !ok {
		return domain.NewValidationError("id", "malformed", id)
	}
	return s.Prods.Delete(ctx, id)
}

func checkProduct(name, price string) (string, decimal.Decimal, error) {
	n, ok := validate.ProductName(name)
	if !ok {
		return "", decimal.Zero, domain.NewValidationError("name", "must be 1-60 characters", name)
	}
	p, ok := validate.Price(price)
	if !ok {
		return "", decimal.Zero, domain.NewValidationError("price", "must be a positive amount with at most two decimals", price)
	}
	return n, p, nil
}

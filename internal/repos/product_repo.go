package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"cafepos/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, created_at, COALESCE(updated_at,'') AS updated_at`

// List returns the whole menu sorted by name.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+productCols+`
	  FROM products
	  ORDER BY name COLLATE NOCASE, name
	`)
	return out, domain.NewStorageError("products.list", err)
}

func (r *ProductRepo) ByName(ctx context.Context, name string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE LOWER(name) = LOWER(?)
	`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, &domain.ProductNotFoundError{Key: name}
	}
	return p, domain.NewStorageError("products.by_name", err)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, &domain.ProductNotFoundError{Key: id}
	}
	return p, domain.NewStorageError("products.get", err)
}

// Create inserts a product and returns it with its new id.
func (r *ProductRepo) Create(ctx context.Context, name string, price decimal.Decimal) (domain.Product, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(id, name, price, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, id, name, price.String())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, &domain.DuplicateProductError{Name: name}
		}
		return domain.Product{}, domain.NewStorageError("products.create", err)
	}
	return r.Get(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, id, name string, price decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE products SET name = ?, price = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, name, price.String(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateProductError{Name: name}
		}
		return domain.NewStorageError("products.update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError("products.update", err)
	}
	if n == 0 {
		return &domain.ProductNotFoundError{Key: id}
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("products.delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError("products.delete", err)
	}
	if n == 0 {
		return &domain.ProductNotFoundError{Key: id}
	}
	return nil
}

package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"cafepos/internal/domain"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

type saleRow struct {
	ID          string          `db:"id"`
	ProductName string          `db:"product_name"`
	Qty         int             `db:"qty"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	SoldAt      string          `db:"sold_at"`
}

const insertSale = `
  INSERT INTO sales(id, product_name, qty, unit_price, sold_at)
  VALUES(?, ?, ?, ?, ?)`

// Record inserts one sale line.
func (r *SaleRepo) Record(ctx context.Context, s domain.SaleRecord) error {
	_, err := r.db.ExecContext(ctx, insertSale, s.ID, s.ProductName, s.Qty, s.UnitPrice.String(), formatTime(s.SoldAt))
	return domain.NewStorageError("sales.record", err)
}

// RecordBatch inserts every line in one transaction; on error none are kept.
func (r *SaleRepo) RecordBatch(ctx context.Context, ss []domain.SaleRecord) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, s := range ss {
			if _, err := tx.ExecContext(ctx, insertSale, s.ID, s.ProductName, s.Qty, s.UnitPrice.String(), formatTime(s.SoldAt)); err != nil {
				return fmt.Errorf("%s: %w", s.ProductName, err)
			}
		}
		return nil
	})
	return domain.NewStorageError("sales.record_batch", err)
}

// List returns every sale, most recent first.
func (r *SaleRepo) List(ctx context.Context) ([]domain.SaleRecord, error) {
	var rows []saleRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT id, product_name, qty, unit_price, sold_at
	  FROM sales
	  ORDER BY sold_at DESC, rowid DESC
	`); err != nil {
		return nil, domain.NewStorageError("sales.list", err)
	}
	out := make([]domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		at, err := parseTime(row.SoldAt)
		if err != nil {
			return nil, domain.NewStorageError("sales.list", fmt.Errorf("sale %s: bad sold_at %q: %w", row.ID, row.SoldAt, err))
		}
		out = append(out, domain.SaleRecord{
			ID:          row.ID,
			ProductName: row.ProductName,
			Qty:         row.Qty,
			UnitPrice:   row.UnitPrice,
			SoldAt:      at,
		})
	}
	return out, nil
}

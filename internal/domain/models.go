package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	CreatedAt string          `db:"created_at" json:"-"`
	UpdatedAt string          `db:"updated_at" json:"-"`
}

// SaleRecord is one product line sold in one checkout. Rows are insert-only.
type SaleRecord struct {
	ID          string
	ProductName string
	Qty         int
	UnitPrice   decimal.Decimal
	SoldAt      time.Time
}

func (s SaleRecord) Subtotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Qty)))
}

// CashClose summarises the sales history at the moment the register is closed.
type CashClose struct {
	Lines       int
	Items       int
	Revenue     decimal.Decimal
	TopProduct  string
	FirstSaleAt time.Time
	ClosedAt    time.Time
}

package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cafepos/internal/domain"
	"cafepos/internal/repos"
)

type SalesService struct {
	Sales *repos.SaleRepo
	Now   func() time.Time
}

func NewSalesService(sales *repos.SaleRepo) *SalesService {
	return &SalesService{Sales: sales, Now: time.Now}
}

type SalesReport struct {
	Sales []domain.SaleRecord
	Total decimal.Decimal
}

func (s *SalesService) ListSales(ctx context.Context, sess *domain.Session) ([]domain.SaleRecord, error) {
	if err := Authorize(sess, ActionViewReports); err != nil {
		return nil, err
	}
	return s.Sales.List(ctx)
}

// TotalRevenue is the sum of qty x unit price over every recorded sale; an
// empty history yields zero.
func (s *SalesService) TotalRevenue(ctx context.Context, sess *domain.Session) (decimal.Decimal, error) {
	r, err := s.Report(ctx, sess)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Total, nil
}

func (s *SalesService) Report(ctx context.Context, sess *domain.Session) (SalesReport, error) {
	ss, err := s.ListSales(ctx, sess)
	if err != nil {
		return SalesReport{}, err
	}
	return SalesReport{Sales: ss, Total: revenue(ss)}, nil
}

// CloseOut builds the end-of-day cash summary.
func (s *SalesService) CloseOut(ctx context.Context, sess *domain.Session) (domain.CashClose, error) {
	ss, err := s.ListSales(ctx, sess)
	if err != nil {
		return domain.CashClose{}, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cc := domain.CashClose{Lines: len(ss), Revenue: revenue(ss), ClosedAt: now().UTC()}
	if len(ss) == 0 {
		return cc, nil
	}

	byProduct := map[string]int{}
	first := ss[0].SoldAt
	for _, r := range ss {
		cc.Items += r.Qty
		byProduct[r.ProductName] += r.Qty
		if r.SoldAt.Before(first) {
			first = r.SoldAt
		}
	}
	cc.FirstSaleAt = first

	best := -1
	for name, qty := range byProduct {
		if qty > best || qty == best && name < cc.TopProduct {
			best, cc.TopProduct = qty, name
		}
	}
	return cc, nil
}

func revenue(ss []domain.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range ss {
		total = total.Add(r.Subtotal())
	}
	return total
}

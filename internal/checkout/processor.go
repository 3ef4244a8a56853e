// Package checkout turns a finished cart into persisted sale records and
// computes the change owed to the customer.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cafepos/internal/cart"
	"cafepos/internal/domain"
)

type Mode string

const (
	// ModeBestEffort attempts every line and reports the ones that failed.
	ModeBestEffort Mode = "best-effort"
	// ModeAtomic writes all lines in one transaction or none of them.
	ModeAtomic Mode = "atomic"
)

// ErrAtomicWithoutBatch is returned when atomic mode has no BatchRecorder to
// write through.
var ErrAtomicWithoutBatch = errors.New("checkout: atomic mode needs a batch recorder")

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeBestEffort, "":
		return ModeBestEffort, true
	case ModeAtomic:
		return ModeAtomic, true
	}
	return "", false
}

// Recorder persists a single sale record.
type Recorder interface {
	Record(ctx context.Context, s domain.SaleRecord) error
}

// BatchRecorder persists all records of a checkout as one unit.
type BatchRecorder interface {
	RecordBatch(ctx context.Context, ss []domain.SaleRecord) error
}

type Result struct {
	Total    decimal.Decimal
	Tendered decimal.Decimal
	Change   decimal.Decimal
	Recorded []domain.SaleRecord
	Failed   []string
}

type Processor struct {
	Sales Recorder
	Batch BatchRecorder
	Mode  Mode
	Now   func() time.Time
	NewID func() string
}

func NewProcessor(sales Recorder, batch BatchRecorder, mode Mode) *Processor {
	return &Processor{Sales: sales, Batch: batch, Mode: mode}
}

// Checkout validates the ledger against the tendered amount and records one
// sale per line. It never clears the ledger; that is up to the caller.
func (p *Processor) Checkout(ctx context.Context, l *cart.Ledger, tendered decimal.Decimal) (Result, error) {
	if p.Mode == ModeAtomic && p.Batch == nil {
		return Result{}, ErrAtomicWithoutBatch
	}
	if l == nil || l.IsEmpty() {
		return Result{}, domain.ErrEmptyCart
	}
	total := l.Total()
	if tendered.LessThan(total) {
		return Result{}, &domain.InsufficientPaymentError{Total: total, Tendered: tendered}
	}

	now := time.Now().UTC()
	if p.Now != nil {
		now = p.Now().UTC()
	}
	newID := uuid.NewString
	if p.NewID != nil {
		newID = p.NewID
	}

	lines := l.Lines()
	records := make([]domain.SaleRecord, 0, len(lines))
	for _, ln := range lines {
		records = append(records, domain.SaleRecord{
			ID:          newID(),
			ProductName: ln.ProductName,
			Qty:         ln.Qty,
			UnitPrice:   ln.UnitPrice,
			SoldAt:      now,
		})
	}

	res := Result{Total: total, Tendered: tendered, Change: tendered.Sub(total)}

	if p.Mode == ModeAtomic {
		if err := p.Batch.RecordBatch(ctx, records); err != nil {
			for _, r := range records {
				res.Failed = append(res.Failed, r.ProductName)
			}
			return res, &domain.PartialPersistError{Failed: res.Failed, Err: err}
		}
		res.Recorded = records
		return res, nil
	}

	var errs []error
	for _, r := range records {
		if err := p.Sales.Record(ctx, r); err != nil {
			res.Failed = append(res.Failed, r.ProductName)
			errs = append(errs, err)
			continue
		}
		res.Recorded = append(res.Recorded, r)
	}
	if len(res.Failed) > 0 {
		return res, &domain.PartialPersistError{Failed: res.Failed, Err: errors.Join(errs...)}
	}
	return res, nil
}

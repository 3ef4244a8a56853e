// Package cart keeps the order being built at a register: one line per
// product, with the grand total recomputed after every mutation.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"cafepos/internal/domain"
)

type Line struct {
	ProductName string          `json:"name"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Ledger is not safe for concurrent use; callers own one ledger per session.
// Lines are keyed by case-folded product name, matching catalog lookups.
type Ledger struct {
	lines map[string]*Line
	order []string
	total decimal.Decimal
}

func New() *Ledger {
	return &Ledger{lines: map[string]*Line{}}
}

// Add puts qty units of p in the cart. A repeated product keeps the unit
// price captured on its first add.
func (l *Ledger) Add(p domain.Product, qty int) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return domain.NewValidationError("name", "must not be empty", p.Name)
	}
	if qty < 1 {
		return domain.NewValidationError("qty", "must be at least 1", qty)
	}
	if !p.Price.IsPositive() {
		return domain.NewValidationError("price", "must be positive", p.Price.String())
	}

	k := key(name)
	if ln, ok := l.lines[k]; ok {
		ln.Qty += qty
		ln.Subtotal = ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Qty)))
	} else {
		l.lines[k] = &Line{
			ProductName: name,
			Qty:         qty,
			UnitPrice:   p.Price,
			Subtotal:    p.Price.Mul(decimal.NewFromInt(int64(qty))),
		}
		l.order = append(l.order, k)
	}
	l.recompute()
	return nil
}

// Decrement removes one unit; the line disappears when it reaches zero.
func (l *Ledger) Decrement(name string) error {
	ln, err := l.lookup(name)
	if err != nil {
		return err
	}
	if ln.Qty > 1 {
		ln.Qty--
		ln.Subtotal = ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Qty)))
		l.recompute()
		return nil
	}
	l.drop(key(ln.ProductName))
	return nil
}

func (l *Ledger) RemoveLine(name string) error {
	ln, err := l.lookup(name)
	if err != nil {
		return err
	}
	l.drop(key(ln.ProductName))
	return nil
}

func (l *Ledger) Clear() {
	l.lines = map[string]*Line{}
	l.order = nil
	l.total = decimal.Zero
}

func (l *Ledger) Total() decimal.Decimal { return l.total }

func (l *Ledger) Len() int { return len(l.order) }

func (l *Ledger) IsEmpty() bool { return len(l.order) == 0 }

// Lines returns a copy of the lines in first-add order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, *l.lines[k])
	}
	return out
}

func (l *Ledger) lookup(name string) (*Line, error) {
	if l.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	ln, ok := l.lines[key(name)]
	if !ok {
		return nil, &domain.LineNotFoundError{ProductName: name}
	}
	return ln, nil
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

func (l *Ledger) drop(k string) {
	delete(l.lines, k)
	for i, n := range l.order {
		if n == k {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.recompute()
}

// recompute sums the subtotals from scratch; the total is never patched
// incrementally.
func (l *Ledger) recompute() {
	sum := decimal.Zero
	for _, k := range l.order {
		sum = sum.Add(l.lines[k].Subtotal)
	}
	l.total = sum
}

package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"cafepos/internal/checkout"
	"cafepos/internal/domain"
)

type CheckoutService struct {
	Book *TicketBook
	Proc *checkout.Processor
	// DropRecordedOnPartial removes the lines that were saved when a
	// checkout partly fails, so a retry only charges the failed ones.
	DropRecordedOnPartial bool
}

func NewCheckoutService(book *TicketBook, proc *checkout.Processor) *CheckoutService {
	return &CheckoutService{Book: book, Proc: proc}
}

// Quote locks the cart and returns the amount to collect.
func (s *CheckoutService) Quote(ctx context.Context, sess *domain.Session) (decimal.Decimal, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return decimal.Zero, err
	}
	t := s.Book.For(sess)
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.busy {
		return decimal.Zero, domain.ErrCheckoutInProgress
	}
	if t.ledger.IsEmpty() {
		return decimal.Zero, domain.ErrEmptyCart
	}
	if err := t.move(checkout.StateAwaiting); err != nil {
		return decimal.Zero, err
	}
	return t.ledger.Total(), nil
}

// Cancel abandons a pending payment and leaves the cart as it was.
func (s *CheckoutService) Cancel(ctx context.Context, sess *domain.Session) (CartView, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return CartView{}, err
	}
	t := s.Book.For(sess)
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.busy {
		return t.view(), domain.ErrCheckoutInProgress
	}
	if err := t.move(checkout.StateCancelled); err != nil {
		return t.view(), err
	}
	return t.view(), nil
}

// Checkout charges the session cart. The cart is cleared only when every
// line was recorded; on any error it stays for correction.
func (s *CheckoutService) Checkout(ctx context.Context, sess *domain.Session, tendered decimal.Decimal) (checkout.Result, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return checkout.Result{}, err
	}
	t := s.Book.For(sess)

	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		return checkout.Result{}, domain.ErrCheckoutInProgress
	}
	t.busy = true
	t.mu.Unlock()

	res, err := s.Proc.Checkout(ctx, t.ledger, tendered)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false

	if err != nil {
		var pe *domain.PartialPersistError
		if errors.As(err, &pe) && s.DropRecordedOnPartial {
			for _, r := range res.Recorded {
				_ = t.ledger.RemoveLine(r.ProductName)
			}
		}
		if merr := t.move(checkout.StateFailed); merr != nil {
			return res, errors.Join(err, merr)
		}
		return res, err
	}

	t.ledger.Clear()
	if merr := t.move(checkout.StatePaid); merr != nil {
		return res, merr
	}
	return res, nil
}

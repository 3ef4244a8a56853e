package services

import (
	"context"

	"cafepos/internal/checkout"
	"cafepos/internal/domain"
)

type CartService struct {
	Book    *TicketBook
	Catalog *CatalogService
}

func NewCartService(book *TicketBook, catalog *CatalogService) *CartService {
	return &CartService{Book: book, Catalog: catalog}
}

// Add looks the product up by name and puts qty units in the session cart.
func (s *CartService) Add(ctx context.Context, sess *domain.Session, name string, qty int) (CartView, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return CartView{}, err
	}
	if qty < 1 {
		return CartView{}, domain.NewValidationError("qty", "must be at least 1", qty)
	}
	p, err := s.Catalog.FindByName(ctx, name)
	if err != nil {
		return CartView{}, err
	}
	return s.mutate(sess, func(t *Ticket) error {
		return t.ledger.Add(p, qty)
	})
}

func (s *CartService) Decrement(ctx context.Context, sess *domain.Session, name string) (CartView, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return CartView{}, err
	}
	return s.mutate(sess, func(t *Ticket) error {
		return t.ledger.Decrement(name)
	})
}

func (s *CartService) RemoveLine(ctx context.Context, sess *domain.Session, name string) (CartView, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return CartView{}, err
	}
	return s.mutate(sess, func(t *Ticket) error {
		return t.ledger.RemoveLine(name)
	})
}

// Clear empties the cart; an already empty cart is reported, not ignored.
func (s *CartService) Clear(ctx context.Context, sess *domain.Session) (CartView, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return CartView{}, err
	}
	return s.mutate(sess, func(t *Ticket) error {
		if t.ledger.IsEmpty() {
			return domain.ErrEmptyCart
		}
		t.ledger.Clear()
		return nil
	})
}

func (s *CartService) View(ctx context.Context, sess *domain.Session) (CartView, error) {
	if err := Authorize(sess, ActionSell); err != nil {
		return CartView{}, err
	}
	t := s.Book.For(sess)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view(), nil
}

// mutate runs fn on the ticket unless a checkout is pending or running.
func (s *CartService) mutate(sess *domain.Session, fn func(t *Ticket) error) (CartView, error) {
	t := s.Book.For(sess)
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.busy {
		return t.view(), domain.ErrCheckoutInProgress
	}
	if t.state == checkout.StateAwaiting {
		return t.view(), &checkout.TransitionError{From: t.state, To: checkout.StateBuilding}
	}
	if err := fn(t); err != nil {
		return t.view(), err
	}
	next := checkout.StateBuilding
	if t.ledger.IsEmpty() {
		next = checkout.StateEmpty
	}
	if t.state == checkout.StateEmpty && next == checkout.StateEmpty {
		return t.view(), nil
	}
	if err := t.move(next); err != nil {
		return t.view(), err
	}
	return t.view(), nil
}

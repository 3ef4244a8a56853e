package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"cafepos/internal/cart"
	"cafepos/internal/checkout"
	"cafepos/internal/domain"
)

// Ticket is the order open at one register session: its cart ledger, its
// checkout state and the in-flight flag that refuses a second checkout.
type Ticket struct {
	mu     sync.Mutex
	ledger *cart.Ledger
	state  checkout.State
	busy   bool
}

type CartView struct {
	Lines []cart.Line
	Total decimal.Decimal
	State checkout.State
}

func (t *Ticket) view() CartView {
	return CartView{Lines: t.ledger.Lines(), Total: t.ledger.Total(), State: t.state}
}

// move applies a state transition and settles terminal outcomes.
func (t *Ticket) move(to checkout.State) error {
	if err := checkout.Transition(t.state, to); err != nil {
		return err
	}
	t.state = checkout.Settle(to, t.ledger.IsEmpty())
	return nil
}

// TicketBook maps session ids to their ticket.
type TicketBook struct {
	mu      sync.Mutex
	tickets map[string]*Ticket
}

func NewTicketBook() *TicketBook {
	return &TicketBook{tickets: map[string]*Ticket{}}
}

func (b *TicketBook) For(sess *domain.Session) *Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tickets[sess.ID]
	if !ok {
		t = &Ticket{ledger: cart.New(), state: checkout.StateEmpty}
		b.tickets[sess.ID] = t
	}
	return t
}

// Drop forgets the ticket of a session that logged out.
func (b *TicketBook) Drop(sid string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tickets, sid)
}

package cart_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafepos/internal/cart"
	"cafepos/internal/domain"
)

func product(name, price string) domain.Product {
	return domain.Product{ID: name, Name: name, Price: decimal.RequireFromString(price)}
}

func sumLines(l *cart.Ledger) decimal.Decimal {
	s := decimal.Zero
	for _, ln := range l.Lines() {
		s = s.Add(ln.Subtotal)
	}
	return s
}

func TestAddSameProductMergesLine(t *testing.T) {
	l := cart.New()
	latte := product("Latte", "4.00")

	require.NoError(t, l.Add(latte, 2))
	require.NoError(t, l.Add(latte, 3))

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Qty)
	assert.Equal(t, "20.00", lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", l.Total().StringFixed(2))
}

func TestTotalMatchesLinesAfterEveryMutation(t *testing.T) {
	l := cart.New()
	espresso := product("Espresso", "2.50")
	muffin := product("Muffin de Chocolate", "3.00")

	steps := []func() error{
		func() error { return l.Add(espresso, 1) },
		func() error { return l.Add(muffin, 2) },
		func() error { return l.Add(espresso, 4) },
		func() error { return l.Decrement("Muffin de Chocolate") },
		func() error { return l.Decrement("Muffin de Chocolate") },
		func() error { return l.Add(muffin, 1) },
		func() error { return l.RemoveLine("Espresso") },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		assert.True(t, l.Total().Equal(sumLines(l)), "step %d: total %s != lines %s", i, l.Total(), sumLines(l))
	}
	assert.Equal(t, "3.00", l.Total().StringFixed(2))
}

func TestPriceSnapshotOnFirstAdd(t *testing.T) {
	l := cart.New()
	require.NoError(t, l.Add(product("Latte", "4.00"), 1))
	require.NoError(t, l.Add(product("Latte", "9.99"), 1))

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "4.00", lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "8.00", l.Total().StringFixed(2))
}

func TestDecimalSumsDoNotDrift(t *testing.T) {
	l := cart.New()
	dime := product("Sugar", "0.10")
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Add(dime, 1))
	}
	assert.True(t, l.Total().Equal(decimal.RequireFromString("0.30")), "got %s", l.Total())
}

func TestAddRejectsInvalidInput(t *testing.T) {
	l := cart.New()

	err := l.Add(product("Latte", "4.00"), 0)
	assert.True(t, domain.IsValidationError(err))

	err = l.Add(product("Latte", "4.00"), -2)
	assert.True(t, domain.IsValidationError(err))

	err = l.Add(product("", "4.00"), 1)
	assert.True(t, domain.IsValidationError(err))

	err = l.Add(product("Free", "0"), 1)
	assert.True(t, domain.IsValidationError(err))

	assert.True(t, l.IsEmpty())
	assert.True(t, l.Total().IsZero())
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	l := cart.New()
	require.NoError(t, l.Add(product("Latte", "4.00"), 1))
	require.NoError(t, l.Decrement("Latte"))
	assert.True(t, l.IsEmpty())
	assert.True(t, l.Total().IsZero())
}

func TestWarningsLeaveLedgerUnchanged(t *testing.T) {
	l := cart.New()

	assert.True(t, errors.Is(l.Decrement("Latte"), domain.ErrEmptyCart))
	assert.True(t, errors.Is(l.RemoveLine("Latte"), domain.ErrEmptyCart))

	require.NoError(t, l.Add(product("Latte", "4.00"), 2))
	err := l.Decrement("Capuccino")
	assert.True(t, domain.IsLineNotFoundError(err))
	err = l.RemoveLine("Capuccino")
	assert.True(t, domain.IsLineNotFoundError(err))

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "8.00", l.Total().StringFixed(2))
}

func TestClearResetsTotal(t *testing.T) {
	l := cart.New()
	require.NoError(t, l.Add(product("Latte", "4.00"), 1))
	require.NoError(t, l.Add(product("Espresso", "2.50"), 1))
	l.Clear()
	assert.True(t, l.IsEmpty())
	assert.True(t, l.Total().IsZero())
	assert.Empty(t, l.Lines())
}

func TestLinesKeepFirstAddOrder(t *testing.T) {
	l := cart.New()
	require.NoError(t, l.Add(product("Latte", "4.00"), 1))
	require.NoError(t, l.Add(product("Espresso", "2.50"), 1))
	require.NoError(t, l.Add(product("Latte", "4.00"), 1))

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Latte", lines[0].ProductName)
	assert.Equal(t, "Espresso", lines[1].ProductName)
}

func TestLineLookupIgnoresCase(t *testing.T) {
	l := cart.New()
	require.NoError(t, l.Add(product("Latte", "4.00"), 2))
	require.NoError(t, l.Add(product("LATTE", "4.00"), 1))
	require.Len(t, l.Lines(), 1)
	assert.Equal(t, 3, l.Lines()[0].Qty)

	require.NoError(t, l.Decrement("latte"))
	assert.Equal(t, "8.00", l.Total().StringFixed(2))
	require.NoError(t, l.RemoveLine(" latte "))
	assert.True(t, l.IsEmpty())
}

package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cafepos/internal/checkout"
)

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, to checkout.State
		ok       bool
	}{
		{checkout.StateEmpty, checkout.StateBuilding, true},
		{checkout.StateEmpty, checkout.StatePaid, false},
		{checkout.StateEmpty, checkout.StateAwaiting, false},
		{checkout.StateBuilding, checkout.StateAwaiting, true},
		{checkout.StateBuilding, checkout.StateCancelled, false},
		{checkout.StateAwaiting, checkout.StatePaid, true},
		{checkout.StateAwaiting, checkout.StateCancelled, true},
		{checkout.StateAwaiting, checkout.StateBuilding, false},
		{checkout.StatePaid, checkout.StateEmpty, true},
		{checkout.StatePaid, checkout.StateBuilding, false},
		{checkout.StateFailed, checkout.StateBuilding, true},
	}
	for _, tc := range cases {
		err := checkout.Transition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			var te *checkout.TransitionError
			assert.ErrorAs(t, err, &te, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestSettle(t *testing.T) {
	assert.Equal(t, checkout.StateEmpty, checkout.Settle(checkout.StatePaid, false))
	assert.Equal(t, checkout.StateBuilding, checkout.Settle(checkout.StateFailed, false))
	assert.Equal(t, checkout.StateEmpty, checkout.Settle(checkout.StateFailed, true))
	assert.Equal(t, checkout.StateBuilding, checkout.Settle(checkout.StateCancelled, false))
	assert.Equal(t, checkout.StateAwaiting, checkout.Settle(checkout.StateAwaiting, false))
}

package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		st, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, Status(s), st)
	}
	for _, s := range []string{"", "PENDING", "refunded", "done"} {
		_, ok := ParseStatus(s)
		assert.False(t, ok, s)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusShipped, StatusProcessing},
		{StatusDelivered, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusProcessing},
		{StatusPending, StatusPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventConstructors(t *testing.T) {
	ev := NewOrder("api", "o1")
	assert.Equal(t, EventNewOrder, ev.EventType)
	assert.Equal(t, "o1", ev.EntityID)
	assert.Equal(t, "api", ev.Producer)
	assert.NotEmpty(t, ev.EventID)
	assert.False(t, ev.OccurredAt.IsZero())

	var p NewOrderPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Equal(t, "o1", p.OrderID)

	ev = OrderStatusUpdated("api", "o2", "shipped", "u1")
	var sp OrderStatusUpdatedPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &sp))
	assert.Equal(t, OrderStatusUpdatedPayload{OrderID: "o2", Status: "shipped", UserID: "u1"}, sp)

	ev = StockUpdated("api", "p1", 42)
	assert.Equal(t, EventStockUpdated, ev.EventType)
	assert.Equal(t, "p1", ev.EntityID)
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, b, Nop{}}
	m.Emit(context.Background(), NewOrder("api", "o1"))

	assert.Equal(t, []string{EventNewOrder}, a.Types())
	assert.Equal(t, []string{EventNewOrder}, b.Types())
}

func TestRecorderCopies(t *testing.T) {
	r := &Recorder{}
	r.Emit(context.Background(), StockUpdated("api", "p1", 1))
	evs := r.Events()
	require.Len(t, evs, 1)

	r.Emit(context.Background(), StockUpdated("api", "p2", 2))
	assert.Len(t, evs, 1, "snapshot is detached")
	assert.Len(t, r.Events(), 2)
}

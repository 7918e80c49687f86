package notify

import (
	"context"
	"encoding/json"

	kafkax "github.com/cartify/cartify/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes envelopes to the storefront event topic,
// keyed by entity id so events for one order or product stay ordered
// within a partition.
type KafkaNotifier struct {
	Producer *kafkax.Producer
}

func (k *KafkaNotifier) Emit(_ context.Context, ev Envelope) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	k.Producer.Publish([]byte(ev.EntityID), b,
		kafkago.Header{Key: "x-event-type", Value: []byte(ev.EventType)},
	)
}

package notify

import (
	"context"
	"sync"
)

// Notifier is the fire-and-forget relay boundary. Implementations must
// never fail a caller's request: delivery is best effort, at most once,
// and consumers treat events as refresh hints only.
type Notifier interface {
	Emit(ctx context.Context, ev Envelope)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(context.Context, Envelope) {}

// Multi fans an event out to several sinks.
type Multi []Notifier

func (m Multi) Emit(ctx context.Context, ev Envelope) {
	for _, n := range m {
		n.Emit(ctx, ev)
	}
}

// Recorder collects emitted events for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
}

func (r *Recorder) Emit(_ context.Context, ev Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Envelope, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.EventType)
	}
	return out
}

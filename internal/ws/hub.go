package ws

import (
	"context"

	"go.uber.org/zap"
)

// Hub fans broadcast frames out to every connected client. Delivery is
// best effort: a client whose send buffer is full is dropped rather
// than allowed to stall the broadcast.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		log:        log,
	}
}

func (h *Hub) Broadcast(msg []byte) {
	h.broadcast <- msg
}

func (h *Hub) Run(ctx context.Context) {
	clients := map[*Client]bool{}
	defer func() {
		for c := range clients {
			close(c.send)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			clients[c] = true
			h.log.Info("client connected", zap.Int("clients", len(clients)))
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
				h.log.Info("client disconnected", zap.Int("clients", len(clients)))
			}
		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					delete(clients, c)
					close(c.send)
					h.log.Warn("dropped slow client")
				}
			}
		}
	}
}

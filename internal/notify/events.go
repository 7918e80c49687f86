package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventNewOrder           = "newOrder"
	EventOrderStatusUpdated = "orderStatusUpdated"
	EventProductCreated     = "productCreated"
	EventStockUpdated       = "stockUpdated"
)

// Envelope wraps every storefront event. Payload is event-specific.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	EntityID   string          `json:"entity_id"` // partition key
	Payload    json.RawMessage `json:"payload"`
}

type NewOrderPayload struct {
	OrderID string `json:"orderId"`
}

type OrderStatusUpdatedPayload struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	UserID  string `json:"userId"`
}

type StockUpdatedPayload struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}

type ProductCreatedPayload struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
}

func newEnvelope(producer, eventType, entityID string, payload any) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		EntityID:   entityID,
		Payload:    MustMarshal(payload),
	}
}

func NewOrder(producer, orderID string) Envelope {
	return newEnvelope(producer, EventNewOrder, orderID, NewOrderPayload{OrderID: orderID})
}

func OrderStatusUpdated(producer, orderID, status, userID string) Envelope {
	return newEnvelope(producer, EventOrderStatusUpdated, orderID, OrderStatusUpdatedPayload{
		OrderID: orderID, Status: status, UserID: userID,
	})
}

func StockUpdated(producer, productID string, stock int) Envelope {
	return newEnvelope(producer, EventStockUpdated, productID, StockUpdatedPayload{
		ProductID: productID, Stock: stock,
	})
}

func ProductCreated(producer, productID, name, category string, price decimal.Decimal, stock int) Envelope {
	return newEnvelope(producer, EventProductCreated, productID, ProductCreatedPayload{
		ProductID: productID, Name: name, Price: price, Stock: stock, Category: category,
	})
}

func MustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

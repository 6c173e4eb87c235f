package kafka

import "time"

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderCreated — сервер принял и сохранил заказ.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeOrderRejected — заказ отклонён валидацией сервера.
	EventTypeOrderRejected EventType = "order.rejected"
	// EventTypeCatalogReplaced — каталог заменён целиком.
	EventTypeCatalogReplaced EventType = "catalog.replaced"
)

// Topics для Kafka
const (
	TopicOrderEvents   = "larek.order.events"
	TopicCatalogEvents = "larek.catalog.events"
)

// OrderEvent представляет событие заказа витрины.
type OrderEvent struct {
	EventType EventType              `json:"event_type"`
	OrderID   string                 `json:"order_id"`
	Total     int64                  `json:"total"`
	Items     []string               `json:"items,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создаёт новое событие заказа.
func NewOrderEvent(eventType EventType, orderID string, total int64, items []string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		Total:     total,
		Items:     items,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AggregateOrderItem - тип агрегата для событий позиций заказа в outbox.
const AggregateOrderItem = "order_item"

const (
	EventOrderItemCreated = "OrderItemCreated"
	EventOrderItemUpdated = "OrderItemUpdated"
	EventOrderItemDeleted = "OrderItemDeleted"
)

// OrderItemEvent - полезная нагрузка outbox-сообщения об изменении позиции.
// Previous* заполняются только для OrderItemUpdated.
type OrderItemEvent struct {
	ItemID            int64           `json:"itemId"`
	OrderID           int64           `json:"orderId"`
	ProductID         int64           `json:"productId"`
	PreviousOrderID   int64           `json:"previousOrderId,omitempty"`
	PreviousProductID int64           `json:"previousProductId,omitempty"`
	ProductPrice      decimal.Decimal `json:"productPrice"`
	// Released - при удалении остаток и сумма заказа были восстановлены.
	Released bool      `json:"released,omitempty"`
	Occurred time.Time `json:"occurred"`
}

// DeadLetter - содержимое сообщения в DLQ: исходное outbox-событие и причина,
// по которой его не удалось опубликовать.
type DeadLetter struct {
	OutboxID       string          `json:"outboxId"`
	AggregateType  string          `json:"aggregateType"`
	AggregateID    string          `json:"aggregateId"`
	EventType      string          `json:"eventType"`
	Payload        json.RawMessage `json:"payload"`
	PublishError   string          `json:"publishError"`
	DLQPublishedAt time.Time       `json:"dlqPublishedAt"`
}

// Original восстанавливает исходное outbox-сообщение.
func (d DeadLetter) Original() OutboxMessage {
	return OutboxMessage{
		ID:            d.OutboxID,
		AggregateType: d.AggregateType,
		AggregateID:   d.AggregateID,
		EventType:     d.EventType,
		Payload:       []byte(d.Payload),
	}
}

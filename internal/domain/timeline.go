package domain

import "time"

const (
	TimelineOrderItemAdded   = "OrderItemAdded"
	TimelineOrderItemRemoved = "OrderItemRemoved"
)

// TimelineEvent - запись в журнале изменений заказа.
type TimelineEvent struct {
	OrderID  int64
	Type     string
	Reason   string
	Occurred time.Time
}

package httpapi

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type productResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    int64       `json:"quantity"`
	Price       json.Number `json:"price"`
}

type orderResponse struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	TotalAmount json.Number `json:"totalAmount"`
}

type orderItemResponse struct {
	ID                 int64       `json:"id"`
	OrderID            int64       `json:"orderId"`
	ProductID          int64       `json:"productId"`
	ProductName        string      `json:"productName"`
	ProductDescription string      `json:"productDescription"`
	ProductPrice       json.Number `json:"productPrice"`
}

type timelineEventResponse struct {
	OrderID  int64     `json:"orderId"`
	Type     string    `json:"type"`
	Reason   string    `json:"reason"`
	Occurred time.Time `json:"occurred"`
}

// деньги отдаются числом, как в JSON-ответах исходного API
func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toProduct(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       money(p.Price),
	}
}

func toOrder(o domain.Order) orderResponse {
	return orderResponse{ID: o.ID, Description: o.Description, TotalAmount: money(o.TotalAmount)}
}

func toOrderItem(v domain.OrderItemView) orderItemResponse {
	return orderItemResponse{
		ID:                 v.ID,
		OrderID:            v.OrderID,
		ProductID:          v.ProductID,
		ProductName:        v.ProductName,
		ProductDescription: v.ProductDescription,
		ProductPrice:       money(v.ProductPrice),
	}
}

func mapSlice[T, R any](items []T, convert func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}

func toTimelineEvent(e domain.TimelineEvent) timelineEventResponse {
	return timelineEventResponse{OrderID: e.OrderID, Type: e.Type, Reason: e.Reason, Occurred: e.Occurred}
}

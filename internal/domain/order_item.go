package domain

import "github.com/shopspring/decimal"

// OrderItem связывает ровно один заказ с ровно одним товаром.
// Пара (OrderID, ProductID) уникальна.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
}

// OrderItemRequest - входные данные позиции. Оба идентификатора обязательны.
type OrderItemRequest struct {
	OrderID   *int64 `json:"orderId"`
	ProductID *int64 `json:"productId"`
}

// OrderItemInput - провалидированная пара идентификаторов.
type OrderItemInput struct {
	OrderID   int64
	ProductID int64
}

// Validate собирает все отсутствующие поля в одно сообщение: orderId, затем productId.
func (r OrderItemRequest) Validate() (OrderItemInput, error) {
	missing := make([]string, 0, 2)
	if r.OrderID == nil {
		missing = append(missing, "orderId")
	}
	if r.ProductID == nil {
		missing = append(missing, "productId")
	}
	if err := missingFieldsError(missing); err != nil {
		return OrderItemInput{}, err
	}
	return OrderItemInput{OrderID: *r.OrderID, ProductID: *r.ProductID}, nil
}

// OrderItemView - позиция со снимком товара (имя, описание, цена).
type OrderItemView struct {
	ID                 int64           `json:"id"`
	OrderID            int64           `json:"orderId"`
	ProductID          int64           `json:"productId"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	ProductPrice       decimal.Decimal `json:"productPrice"`
}

// NewOrderItemView объединяет позицию и снимок товара.
func NewOrderItemView(item OrderItem, product Product) OrderItemView {
	return OrderItemView{
		ID:                 item.ID,
		OrderID:            item.OrderID,
		ProductID:          item.ProductID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		ProductPrice:       product.Price,
	}
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Order - заказ с производной суммой по всем связанным товарам.
type Order struct {
	ID          int64
	Description string
	// TotalAmount равна сумме цен товаров из позиций заказа; меняется только движком позиций.
	TotalAmount decimal.Decimal
}

// OrderRequest - входные данные для создания/обновления заказа.
type OrderRequest struct {
	Description *string `json:"description"`
}

// Validate проверяет обязательное описание заказа.
func (r OrderRequest) Validate() (string, error) {
	if r.Description == nil || strings.TrimSpace(*r.Description) == "" {
		return "", NewError(KindMissingField, "[description is mandatory]")
	}
	return *r.Description, nil
}

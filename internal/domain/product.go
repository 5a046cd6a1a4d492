package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога.
type Product struct {
	ID          int64
	Name        string
	Description string
	// Quantity - остаток на складе; после создания меняется только движком позиций.
	Quantity int64
	Price    decimal.Decimal
}

// ProductRequest - входные данные для создания товара.
// Обязательные поля - указатели, чтобы отличать отсутствие значения от нуля.
type ProductRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Quantity    *int64              `json:"quantity"`
	Price       decimal.NullDecimal `json:"price"`
}

// ProductUpdateRequest - частичное обновление товара. Quantity не редактируется.
type ProductUpdateRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
}

// Validate проверяет обязательные поля и диапазоны и собирает Product без ID.
func (r ProductRequest) Validate() (Product, error) {
	missing := make([]string, 0, 3)
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		missing = append(missing, "Name")
	}
	if r.Quantity == nil {
		missing = append(missing, "Quantity")
	}
	if !r.Price.Valid {
		missing = append(missing, "Price")
	}
	if err := missingFieldsError(missing); err != nil {
		return Product{}, err
	}

	if *r.Quantity < 0 {
		return Product{}, NewError(KindInvalidArgument, "quantity must be non-negative, got: %d", *r.Quantity)
	}
	if r.Price.Decimal.IsNegative() {
		return Product{}, NewError(KindInvalidArgument, "price must be non-negative, got: %s", r.Price.Decimal.String())
	}

	product := Product{
		Name:     strings.TrimSpace(*r.Name),
		Quantity: *r.Quantity,
		Price:    r.Price.Decimal,
	}
	if r.Description != nil {
		product.Description = *r.Description
	}
	return product, nil
}

// Apply накладывает частичное обновление на текущее состояние товара.
func (r ProductUpdateRequest) Apply(current Product) (Product, error) {
	updated := current
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return Product{}, missingFieldsError([]string{"Name"})
		}
		updated.Name = name
	}
	if r.Description != nil {
		updated.Description = *r.Description
	}
	if r.Price.Valid {
		if r.Price.Decimal.IsNegative() {
			return Product{}, NewError(KindInvalidArgument, "price must be non-negative, got: %s", r.Price.Decimal.String())
		}
		updated.Price = r.Price.Decimal
	}
	return updated, nil
}

// PriceChanged сообщает, меняет ли обновление цену товара.
func (r ProductUpdateRequest) PriceChanged(current Product) bool {
	return r.Price.Valid && !r.Price.Decimal.Equal(current.Price)
}

func missingFieldsError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" is mandatory")
	}
	return NewError(KindMissingField, "[%s]", strings.Join(parts, ", "))
}

// Package ledger изменяет производные счётчики: остаток товара и сумму заказа.
// Функции работают внутри транзакции вызывающего и ничего не проверяют сверх
// существования записи: ни отрицательный остаток, ни отрицательная сумма не отсекаются.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// AdjustQuantity прибавляет delta к остатку товара и сохраняет его.
func AdjustQuantity(ctx context.Context, repos domain.Repositories, productID, delta int64) (domain.Product, error) {
	product, err := repos.Products.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	product.Quantity += delta
	return repos.Products.Save(ctx, product)
}

// AdjustTotalAmount прибавляет delta к сумме заказа и сохраняет его.
func AdjustTotalAmount(ctx context.Context, repos domain.Repositories, orderID int64, delta decimal.Decimal) (domain.Order, error) {
	order, err := repos.Orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	order.TotalAmount = order.TotalAmount.Add(delta)
	return repos.Orders.Save(ctx, order)
}

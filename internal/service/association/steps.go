package association

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/ledger"
)

// ensureUniquePair отклоняет пару (order, product), уже занятую другой позицией.
func ensureUniquePair(ctx context.Context, repos domain.Repositories, in domain.OrderItemInput, ownID int64) error {
	existing, err := repos.Items.FindByPair(ctx, in.OrderID, in.ProductID)
	switch {
	case domain.KindOf(err) == domain.KindNotFound:
		return nil
	case err != nil:
		return err
	case existing.ID == ownID:
		return nil
	}
	return domain.NewError(domain.KindDuplicateAssociation,
		"Order item already exists for order: '%d' and product: '%d'.", in.OrderID, in.ProductID)
}

func ensureStock(product domain.Product) error {
	if product.Quantity <= 0 {
		return domain.NewError(domain.KindNoStockLeft, "There is no left over products, quantity: %d", product.Quantity)
	}
	return nil
}

// reserve списывает единицу товара и добавляет его цену к сумме заказа.
func reserve(ctx context.Context, repos domain.Repositories, orderID int64, product domain.Product) (domain.Product, error) {
	if _, err := addToTotal(ctx, repos, orderID, product); err != nil {
		return domain.Product{}, err
	}
	return ledger.AdjustQuantity(ctx, repos, product.ID, -1)
}

func addToTotal(ctx context.Context, repos domain.Repositories, orderID int64, product domain.Product) (domain.Order, error) {
	return ledger.AdjustTotalAmount(ctx, repos, orderID, product.Price)
}

// release вычитает цену товара из суммы заказа и, если restock, возвращает единицу на склад.
func release(ctx context.Context, repos domain.Repositories, orderID int64, product domain.Product, restock bool) (domain.Product, error) {
	if _, err := ledger.AdjustTotalAmount(ctx, repos, orderID, product.Price.Neg()); err != nil {
		return domain.Product{}, err
	}
	if !restock {
		return product, nil
	}
	return ledger.AdjustQuantity(ctx, repos, product.ID, 1)
}

// lockItem блокирует строки заказов и товаров старой и новой пары и перечитывает позицию.
// Если позицию успели перенести до получения блокировок, блокируются и новые строки.
func lockItem(ctx context.Context, repos domain.Repositories, current domain.OrderItem, target domain.OrderItemInput) (domain.OrderItem, error) {
	orders := []int64{current.OrderID, target.OrderID}
	products := []int64{current.ProductID, target.ProductID}
	if err := repos.Locker.Lock(ctx, orders, products); err != nil {
		return domain.OrderItem{}, err
	}

	fresh, err := repos.Items.Get(ctx, current.ID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	if fresh.OrderID != current.OrderID || fresh.ProductID != current.ProductID {
		if err := repos.Locker.Lock(ctx, []int64{fresh.OrderID}, []int64{fresh.ProductID}); err != nil {
			return domain.OrderItem{}, err
		}
	}
	return fresh, nil
}

// JoinViews соединяет позиции с товарами одним пакетным запросом.
func JoinViews(ctx context.Context, repos domain.Repositories, items []domain.OrderItem) ([]domain.OrderItemView, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := repos.Products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	views := make([]domain.OrderItemView, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, domain.NewError(domain.KindUnexpected,
				"order item %d references missing product %d", item.ID, item.ProductID)
		}
		views = append(views, domain.NewOrderItemView(item, product))
	}
	return views, nil
}

func (e *Engine) enqueue(ctx context.Context, repos domain.Repositories, eventType string, event domain.OrderItemEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return domain.WrapError(domain.KindUnexpected, err, "marshal %s event", eventType)
	}

	if _, err := repos.Outbox.Enqueue(ctx, domain.OutboxMessage{
		AggregateType: domain.AggregateOrderItem,
		AggregateID:   strconv.FormatInt(event.OrderID, 10),
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return err
	}
	e.metrics.RecordOutboxEvent()
	return nil
}

func (e *Engine) appendTimeline(ctx context.Context, repos domain.Repositories, orderID int64, eventType string, productID int64, occurred time.Time) error {
	if err := repos.Timeline.Append(ctx, domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   fmt.Sprintf("product %d", productID),
		Occurred: occurred,
	}); err != nil {
		return err
	}
	e.metrics.RecordTimelineEvent()
	return nil
}

package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type orderItemRepository struct {
	tx *txState
}

func (r *orderItemRepository) Get(_ context.Context, id int64) (domain.OrderItem, error) {
	item, ok := r.tx.readItems()[id]
	if !ok {
		return domain.OrderItem{}, domain.NotFoundf("Order item of id %d not found.", id)
	}
	return item, nil
}

func (r *orderItemRepository) FindByPair(_ context.Context, orderID, productID int64) (domain.OrderItem, error) {
	for _, item := range r.tx.readItems() {
		if item.OrderID == orderID && item.ProductID == productID {
			return item, nil
		}
	}
	return domain.OrderItem{}, domain.NotFoundf("Order item for order %d and product %d not found.", orderID, productID)
}

func (r *orderItemRepository) List(_ context.Context) ([]domain.OrderItem, error) {
	return r.filter(func(domain.OrderItem) bool { return true }), nil
}

func (r *orderItemRepository) ListByOrder(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	return r.filter(func(item domain.OrderItem) bool { return item.OrderID == orderID }), nil
}

func (r *orderItemRepository) ExistsForProduct(_ context.Context, productID int64) (bool, error) {
	for _, item := range r.tx.readItems() {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderItemRepository) Save(_ context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	items := r.tx.writeItems()
	for _, existing := range items {
		if existing.ID != item.ID && existing.OrderID == item.OrderID && existing.ProductID == item.ProductID {
			return domain.OrderItem{}, domain.NewError(domain.KindDuplicateAssociation,
				"Order item already exists for order: '%d' and product: '%d'.", item.OrderID, item.ProductID)
		}
	}

	if item.ID == 0 {
		r.tx.counters.nextItemID++
		item.ID = r.tx.counters.nextItemID
	} else if _, ok := items[item.ID]; !ok {
		return domain.OrderItem{}, domain.NotFoundf("Order item of id %d not found.", item.ID)
	}
	items[item.ID] = item
	return item, nil
}

func (r *orderItemRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.tx.readItems()[id]; !ok {
		return domain.NotFoundf("Order item of id %d not found.", id)
	}
	delete(r.tx.writeItems(), id)
	return nil
}

func (r *orderItemRepository) filter(keep func(domain.OrderItem) bool) []domain.OrderItem {
	items := r.tx.readItems()
	result := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)

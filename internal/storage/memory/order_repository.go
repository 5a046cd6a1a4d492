package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type orderRepository struct {
	tx *txState
}

func (r *orderRepository) Get(_ context.Context, id int64) (domain.Order, error) {
	order, ok := r.tx.readOrders()[id]
	if !ok {
		return domain.Order{}, domain.NotFoundf("Order of id %d not found.", id)
	}
	return order, nil
}

func (r *orderRepository) List(_ context.Context) ([]domain.Order, error) {
	orders := r.tx.readOrders()
	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *orderRepository) Save(_ context.Context, order domain.Order) (domain.Order, error) {
	orders := r.tx.writeOrders()
	if order.ID == 0 {
		r.tx.counters.nextOrderID++
		order.ID = r.tx.counters.nextOrderID
	} else if _, ok := orders[order.ID]; !ok {
		return domain.Order{}, domain.NotFoundf("Order of id %d not found.", order.ID)
	}
	orders[order.ID] = order
	return order, nil
}

func (r *orderRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.tx.readOrders()[id]; !ok {
		return domain.NotFoundf("Order of id %d not found.", id)
	}
	delete(r.tx.writeOrders(), id)
	return nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)

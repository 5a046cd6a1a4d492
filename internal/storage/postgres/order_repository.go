package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type orderRepository struct {
	q querier
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.q.QueryRowContext(ctx, `
		SELECT id, description, total_amount
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.Description, &order.TotalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NotFoundf("Order of id %d not found.", id)
	}
	if err != nil {
		return domain.Order{}, classify(err, "select order")
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, description, total_amount
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, classify(err, "list orders")
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Description, &order.TotalAmount); err != nil {
			return nil, classify(err, "scan order row")
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterate order rows")
	}
	return orders, nil
}

func (r *orderRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if order.ID == 0 {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO orders (description, total_amount)
			VALUES ($1,$2)
			RETURNING id
		`, order.Description, order.TotalAmount).Scan(&order.ID)
		if err != nil {
			return domain.Order{}, classify(err, "insert order")
		}
		return order, nil
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE orders
		SET description = $1,
		    total_amount = $2
		WHERE id = $3
	`, order.Description, order.TotalAmount, order.ID)
	if err != nil {
		return domain.Order{}, classify(err, "update order")
	}
	if err := expectOneRow(res, "update order"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.NotFoundf("Order of id %d not found.", order.ID)
		}
		return domain.Order{}, err
	}
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete order")
	}
	if err := expectOneRow(res, "delete order"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("Order of id %d not found.", id)
		}
		return err
	}
	return nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)

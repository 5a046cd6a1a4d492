package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type orderItemRepository struct {
	q querier
}

func (r *orderItemRepository) Get(ctx context.Context, id int64) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var item domain.OrderItem
	err := r.q.QueryRowContext(ctx, `
		SELECT id, order_id, product_id
		FROM order_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.OrderID, &item.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.OrderItem{}, domain.NotFoundf("Order item of id %d not found.", id)
	}
	if err != nil {
		return domain.OrderItem{}, classify(err, "select order item")
	}
	return item, nil
}

func (r *orderItemRepository) FindByPair(ctx context.Context, orderID, productID int64) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var item domain.OrderItem
	err := r.q.QueryRowContext(ctx, `
		SELECT id, order_id, product_id
		FROM order_items
		WHERE order_id = $1 AND product_id = $2
	`, orderID, productID).Scan(&item.ID, &item.OrderID, &item.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.OrderItem{}, domain.NotFoundf("Order item for order %d and product %d not found.", orderID, productID)
	}
	if err != nil {
		return domain.OrderItem{}, classify(err, "select order item by pair")
	}
	return item, nil
}

func (r *orderItemRepository) List(ctx context.Context) ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.query(ctx, "list order items", `
		SELECT id, order_id, product_id
		FROM order_items
		ORDER BY id
	`)
}

func (r *orderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.query(ctx, "list order items by order", `
		SELECT id, order_id, product_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
}

func (r *orderItemRepository) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	if err := r.q.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)
	`, productID).Scan(&exists); err != nil {
		return false, classify(err, "check product references")
	}
	return exists, nil
}

func (r *orderItemRepository) Save(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if item.ID == 0 {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id)
			VALUES ($1,$2)
			RETURNING id
		`, item.OrderID, item.ProductID).Scan(&item.ID)
		if err != nil {
			return domain.OrderItem{}, r.saveError(err, item)
		}
		return item, nil
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE order_items
		SET order_id = $1,
		    product_id = $2
		WHERE id = $3
	`, item.OrderID, item.ProductID, item.ID)
	if err != nil {
		return domain.OrderItem{}, r.saveError(err, item)
	}
	if err := expectOneRow(res, "update order item"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderItem{}, domain.NotFoundf("Order item of id %d not found.", item.ID)
		}
		return domain.OrderItem{}, err
	}
	return item, nil
}

func (r *orderItemRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete order item")
	}
	if err := expectOneRow(res, "delete order item"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("Order item of id %d not found.", id)
		}
		return err
	}
	return nil
}

func (r *orderItemRepository) saveError(err error, item domain.OrderItem) error {
	if isUniqueViolation(err) && violatedConstraint(err) == constraintItemPair {
		return domain.WrapError(domain.KindDuplicateAssociation, err,
			"Order item already exists for order: '%d' and product: '%d'.", item.OrderID, item.ProductID)
	}
	return classify(err, "save order item")
}

func (r *orderItemRepository) query(ctx context.Context, operation, query string, args ...any) ([]domain.OrderItem, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, operation)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID); err != nil {
			return nil, classify(err, operation)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, operation)
	}
	return items, nil
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const productColumns = `id, name, description, quantity, price`

type productRepository struct {
	q querier
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := scanProduct(r.q.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFoundf("Product of id %d not found.", id)
	}
	if err != nil {
		return domain.Product{}, classify(err, "select product")
	}
	return product, nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := scanProduct(r.q.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE name = $1
	`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFoundf("Product '%s' not found.", name)
	}
	if err != nil {
		return domain.Product{}, classify(err, "select product by name")
	}
	return product, nil
}

func (r *productRepository) GetMany(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.query(ctx, "select products by ids", `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.query(ctx, "list products", `
		SELECT `+productColumns+`
		FROM products
		ORDER BY id
	`)
}

func (r *productRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if product.ID == 0 {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO products (name, description, quantity, price)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, product.Name, product.Description, product.Quantity, product.Price).Scan(&product.ID)
		if err != nil {
			return domain.Product{}, r.saveError(err, product)
		}
		return product, nil
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET name = $1,
		    description = $2,
		    quantity = $3,
		    price = $4
		WHERE id = $5
	`, product.Name, product.Description, product.Quantity, product.Price, product.ID)
	if err != nil {
		return domain.Product{}, r.saveError(err, product)
	}
	if err := expectOneRow(res, "update product"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.NotFoundf("Product of id %d not found.", product.ID)
		}
		return domain.Product{}, err
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete product")
	}
	if err := expectOneRow(res, "delete product"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("Product of id %d not found.", id)
		}
		return err
	}
	return nil
}

func (r *productRepository) saveError(err error, product domain.Product) error {
	if isUniqueViolation(err) && violatedConstraint(err) == constraintProductName {
		return domain.WrapError(domain.KindDuplicateName, err, "Product '%s' already exists.", product.Name)
	}
	return classify(err, "save product")
}

func (r *productRepository) query(ctx context.Context, operation, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, operation)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, classify(err, operation)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, operation)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var product domain.Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Quantity, &product.Price)
	return product, err
}

// expectOneRow возвращает sql.ErrNoRows, если запрос не затронул ни одной строки.
func expectOneRow(res sql.Result, operation string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return classify(err, operation+": rows affected")
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)

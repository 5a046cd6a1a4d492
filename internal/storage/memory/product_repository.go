package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type productRepository struct {
	tx *txState
}

func (r *productRepository) Get(_ context.Context, id int64) (domain.Product, error) {
	product, ok := r.tx.readProducts()[id]
	if !ok {
		return domain.Product{}, domain.NotFoundf("Product of id %d not found.", id)
	}
	return product, nil
}

func (r *productRepository) GetByName(_ context.Context, name string) (domain.Product, error) {
	for _, product := range r.tx.readProducts() {
		if product.Name == name {
			return product, nil
		}
	}
	return domain.Product{}, domain.NotFoundf("Product '%s' not found.", name)
}

func (r *productRepository) GetMany(_ context.Context, ids []int64) ([]domain.Product, error) {
	products := r.tx.readProducts()
	result := make([]domain.Product, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

func (r *productRepository) List(_ context.Context) ([]domain.Product, error) {
	products := r.tx.readProducts()
	result := make([]domain.Product, 0, len(products))
	for _, product := range products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *productRepository) Save(_ context.Context, product domain.Product) (domain.Product, error) {
	products := r.tx.writeProducts()
	for _, existing := range products {
		if existing.Name == product.Name && existing.ID != product.ID {
			return domain.Product{}, domain.NewError(domain.KindDuplicateName, "Product '%s' already exists.", product.Name)
		}
	}

	if product.ID == 0 {
		r.tx.counters.nextProductID++
		product.ID = r.tx.counters.nextProductID
	} else if _, ok := products[product.ID]; !ok {
		return domain.Product{}, domain.NotFoundf("Product of id %d not found.", product.ID)
	}
	products[product.ID] = product
	return product, nil
}

func (r *productRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.tx.readProducts()[id]; !ok {
		return domain.NotFoundf("Product of id %d not found.", id)
	}
	delete(r.tx.writeProducts(), id)
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)

// Package catalog реализует CRUD товаров и заказов.
// Производные поля (остаток товара и сумма заказа) здесь не пишутся.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/association"
)

// Service обслуживает товары, заказы и чтение позиций заказа.
type Service struct {
	tx     domain.TxManager
	logger *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(tx domain.TxManager, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{tx: tx, logger: logger}
}

// CreateProduct создаёт товар с уникальным именем.
func (s *Service) CreateProduct(ctx context.Context, req domain.ProductRequest) (domain.Product, error) {
	product, err := req.Validate()
	if err != nil {
		return domain.Product{}, err
	}

	var created domain.Product
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := ensureUniqueName(ctx, repos, product.Name, 0); err != nil {
			return err
		}
		created, err = repos.Products.Save(ctx, product)
		return err
	})
	if err != nil {
		return domain.Product{}, s.fail(err, "create product")
	}

	s.logger.WithFields(log.Fields{"product_id": created.ID, "name": created.Name}).Debug("product created")
	return created, nil
}

// ListProducts возвращает все товары; пустой каталог - NotFound.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		products, err = repos.Products.List(ctx)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return domain.NotFoundf("No products found.")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(err, "list products")
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		product, err = repos.Products.Get(ctx, id)
		return err
	})
	if err != nil {
		return domain.Product{}, s.fail(err, "get product")
	}
	return product, nil
}

// UpdateProduct меняет имя, описание и цену товара. Остаток не редактируется,
// цену нельзя менять, пока на товар ссылаются позиции заказов.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req domain.ProductUpdateRequest) (domain.Product, error) {
	var updated domain.Product
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := repos.Locker.Lock(ctx, nil, []int64{id}); err != nil {
			return err
		}
		current, err := repos.Products.Get(ctx, id)
		if err != nil {
			return err
		}
		next, err := req.Apply(current)
		if err != nil {
			return err
		}

		if next.Name != current.Name {
			if err := ensureUniqueName(ctx, repos, next.Name, current.ID); err != nil {
				return err
			}
		}
		if req.PriceChanged(current) {
			referenced, err := repos.Items.ExistsForProduct(ctx, current.ID)
			if err != nil {
				return err
			}
			if referenced {
				return domain.NewError(domain.KindConflict,
					"Price of product %d cannot change while order items reference it.", current.ID)
			}
		}

		updated, err = repos.Products.Save(ctx, next)
		return err
	})
	if err != nil {
		return domain.Product{}, s.fail(err, "update product")
	}
	return updated, nil
}

// DeleteProduct удаляет товар, на который не ссылается ни одна позиция.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := repos.Locker.Lock(ctx, nil, []int64{id}); err != nil {
			return err
		}
		if _, err := repos.Products.Get(ctx, id); err != nil {
			return err
		}
		referenced, err := repos.Items.ExistsForProduct(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.NewError(domain.KindConflict, "Product %d is referenced by order items.", id)
		}
		return repos.Products.Delete(ctx, id)
	})
	if err != nil {
		return s.fail(err, "delete product")
	}

	s.logger.WithField("product_id", id).Debug("product deleted")
	return nil
}

// CreateOrder создаёт пустой заказ с нулевой суммой.
func (s *Service) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	description, err := req.Validate()
	if err != nil {
		return domain.Order{}, err
	}

	var created domain.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		created, err = repos.Orders.Save(ctx, domain.Order{Description: description, TotalAmount: decimal.Zero})
		return err
	})
	if err != nil {
		return domain.Order{}, s.fail(err, "create order")
	}

	s.logger.WithField("order_id", created.ID).Debug("order created")
	return created, nil
}

// ListOrders возвращает все заказы; пустой список - NotFound.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		orders, err = repos.Orders.List(ctx)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return domain.NotFoundf("No orders found.")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(err, "list orders")
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var order domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		order, err = repos.Orders.Get(ctx, id)
		return err
	})
	if err != nil {
		return domain.Order{}, s.fail(err, "get order")
	}
	return order, nil
}

// UpdateOrder меняет только описание; сумма заказа сохраняется.
func (s *Service) UpdateOrder(ctx context.Context, id int64, req domain.OrderRequest) (domain.Order, error) {
	description, err := req.Validate()
	if err != nil {
		return domain.Order{}, err
	}

	var updated domain.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := repos.Locker.Lock(ctx, []int64{id}, nil); err != nil {
			return err
		}
		current, err := repos.Orders.Get(ctx, id)
		if err != nil {
			return err
		}
		current.Description = description
		updated, err = repos.Orders.Save(ctx, current)
		return err
	})
	if err != nil {
		return domain.Order{}, s.fail(err, "update order")
	}
	return updated, nil
}

// DeleteOrder удаляет заказ без позиций.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := repos.Locker.Lock(ctx, []int64{id}, nil); err != nil {
			return err
		}
		if _, err := repos.Orders.Get(ctx, id); err != nil {
			return err
		}
		items, err := repos.Items.ListByOrder(ctx, id)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			return domain.NewError(domain.KindConflict, "Order %d still has %d order items.", id, len(items))
		}
		return repos.Orders.Delete(ctx, id)
	})
	if err != nil {
		return s.fail(err, "delete order")
	}

	s.logger.WithField("order_id", id).Debug("order deleted")
	return nil
}

// ListOrderItemsByOrder возвращает позиции заказа со снимками товаров.
// Заказ без позиций даёт пустой список.
func (s *Service) ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItemView, error) {
	var views []domain.OrderItemView
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Orders.Get(ctx, orderID); err != nil {
			return err
		}
		items, err := repos.Items.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		views, err = association.JoinViews(ctx, repos, items)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "list order items")
	}
	return views, nil
}

// OrderTimeline возвращает журнал изменений заказа в порядке записи.
func (s *Service) OrderTimeline(ctx context.Context, orderID int64) ([]domain.TimelineEvent, error) {
	var events []domain.TimelineEvent
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Orders.Get(ctx, orderID); err != nil {
			return err
		}
		var err error
		events, err = repos.Timeline.List(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "order timeline")
	}
	return events, nil
}

func ensureUniqueName(ctx context.Context, repos domain.Repositories, name string, ownID int64) error {
	existing, err := repos.Products.GetByName(ctx, name)
	switch {
	case domain.KindOf(err) == domain.KindNotFound:
		return nil
	case err != nil:
		return err
	case existing.ID == ownID:
		return nil
	}
	return domain.NewError(domain.KindDuplicateName, "Product '%s' already exists.", name)
}

func (s *Service) fail(err error, operation string) error {
	kind := domain.KindOf(err)
	entry := s.logger.WithError(err).WithFields(log.Fields{"operation": operation, "kind": kind})
	if kind == domain.KindUnavailable || kind == domain.KindUnexpected {
		entry.Error("catalog operation failed")
	} else {
		entry.Debug("catalog operation rejected")
	}
	return err
}

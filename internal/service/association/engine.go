// Package association управляет жизненным циклом позиций заказа и держит
// согласованными остаток товара и сумму заказа.
//
// Каждая операция выполняется в одной транзакции TxManager: сначала блокируются
// строки затронутых заказов и товаров, затем выполняются все проверки существования,
// и только после них записи. Любая ошибка откатывает транзакцию целиком.
package association

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/metrics"
)

const (
	opCreate = "create"
	opGet    = "get"
	opList   = "list"
	opUpdate = "update"
	opDelete = "delete"
)

// Options задаёт параметры движка.
type Options struct {
	// ReleaseOnDelete: при удалении позиции вернуть единицу на склад и вычесть цену из суммы заказа.
	ReleaseOnDelete bool
	// CarryReservationOnMove: при переносе позиции на другой заказ с тем же товаром
	// резерв переезжает вместе с ней, без проверки остатка и повторного списания.
	CarryReservationOnMove bool
	Logger                 *log.Entry
	Metrics                *metrics.AssociationMetrics
	Clock                  func() time.Time
}

// Option настраивает Engine.
type Option func(*Options)

// WithReleaseOnDelete включает откат резерва при удалении позиции.
func WithReleaseOnDelete(release bool) Option {
	return func(opts *Options) {
		opts.ReleaseOnDelete = release
	}
}

// WithCarryReservationOnMove включает перенос резерва при смене только заказа.
// По умолчанию такой перенос повторяет путь создания: проверка остатка и списание единицы.
func WithCarryReservationOnMove(carry bool) Option {
	return func(opts *Options) {
		opts.CarryReservationOnMove = carry
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMetrics задаёт метрики; без них движок метрики не пишет.
func WithMetrics(m *metrics.AssociationMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// Engine - движок согласованности позиций заказа.
type Engine struct {
	tx              domain.TxManager
	releaseOnDelete bool
	carryOnMove     bool
	logger          *log.Entry
	metrics         *metrics.AssociationMetrics
	now             func() time.Time
}

// NewEngine создаёт движок поверх менеджера транзакций.
func NewEngine(tx domain.TxManager, options ...Option) *Engine {
	var opts Options
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "association-engine")
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	return &Engine{
		tx:              tx,
		releaseOnDelete: opts.ReleaseOnDelete,
		carryOnMove:     opts.CarryReservationOnMove,
		logger:          logger,
		metrics:         opts.Metrics,
		now:             clock,
	}
}

// CarryReservationOnMove сообщает, переносится ли резерв при смене только заказа.
func (e *Engine) CarryReservationOnMove() bool {
	return e.carryOnMove
}

// ReleaseOnDelete сообщает, восстанавливает ли удаление позиции счётчики.
func (e *Engine) ReleaseOnDelete() bool {
	return e.releaseOnDelete
}

// Create создаёт позицию: резервирует единицу товара и добавляет его цену к сумме заказа.
func (e *Engine) Create(ctx context.Context, req domain.OrderItemRequest) (view domain.OrderItemView, err error) {
	finish := e.metrics.Start(opCreate)
	defer func() { e.finish(finish, opCreate, err) }()

	in, err := req.Validate()
	if err != nil {
		return domain.OrderItemView{}, err
	}

	err = e.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := repos.Locker.Lock(ctx, []int64{in.OrderID}, []int64{in.ProductID}); err != nil {
			return err
		}

		if err := ensureUniquePair(ctx, repos, in, 0); err != nil {
			return err
		}
		product, err := repos.Products.Get(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if err := ensureStock(product); err != nil {
			return err
		}
		if _, err := repos.Orders.Get(ctx, in.OrderID); err != nil {
			return err
		}

		item, err := repos.Items.Save(ctx, domain.OrderItem{OrderID: in.OrderID, ProductID: in.ProductID})
		if err != nil {
			return err
		}
		product, err = reserve(ctx, repos, in.OrderID, product)
		if err != nil {
			return err
		}

		occurred := e.now()
		if err := e.enqueue(ctx, repos, domain.EventOrderItemCreated, domain.OrderItemEvent{
			ItemID:       item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductPrice: product.Price,
			Occurred:     occurred,
		}); err != nil {
			return err
		}
		if err := e.appendTimeline(ctx, repos, item.OrderID, domain.TimelineOrderItemAdded, item.ProductID, occurred); err != nil {
			return err
		}

		view = domain.NewOrderItemView(item, product)
		return nil
	})
	if err != nil {
		return domain.OrderItemView{}, err
	}

	e.logger.WithFields(log.Fields{
		"order_item_id": view.ID,
		"order_id":      view.OrderID,
		"product_id":    view.ProductID,
	}).Debug("order item created")
	return view, nil
}

// Get возвращает позицию вместе с текущим снимком товара.
func (e *Engine) Get(ctx context.Context, id int64) (view domain.OrderItemView, err error) {
	finish := e.metrics.Start(opGet)
	defer func() { e.finish(finish, opGet, err) }()

	err = e.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		item, err := repos.Items.Get(ctx, id)
		if err != nil {
			return err
		}
		product, err := repos.Products.Get(ctx, item.ProductID)
		if err != nil {
			return err
		}
		view = domain.NewOrderItemView(item, product)
		return nil
	})
	if err != nil {
		return domain.OrderItemView{}, err
	}
	return view, nil
}

// List возвращает все позиции; пустое хранилище - NotFound.
func (e *Engine) List(ctx context.Context) (views []domain.OrderItemView, err error) {
	finish := e.metrics.Start(opList)
	defer func() { e.finish(finish, opList, err) }()

	err = e.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		items, err := repos.Items.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.NotFoundf("No order items found.")
		}
		views, err = JoinViews(ctx, repos, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Update переносит позицию на другой заказ и/или товар.
// Если ни заказ, ни товар не изменились, побочных эффектов нет.
func (e *Engine) Update(ctx context.Context, id int64, req domain.OrderItemRequest) (view domain.OrderItemView, err error) {
	finish := e.metrics.Start(opUpdate)
	defer func() { e.finish(finish, opUpdate, err) }()

	var changed bool
	err = e.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		current, err := repos.Items.Get(ctx, id)
		if err != nil {
			return err
		}
		in, err := req.Validate()
		if err != nil {
			return err
		}

		current, err = lockItem(ctx, repos, current, in)
		if err != nil {
			return err
		}

		product, err := repos.Products.Get(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if _, err := repos.Orders.Get(ctx, in.OrderID); err != nil {
			return err
		}

		orderChanged := current.OrderID != in.OrderID
		productChanged := current.ProductID != in.ProductID
		if !orderChanged && !productChanged {
			view = domain.NewOrderItemView(current, product)
			return nil
		}
		changed = true

		if err := ensureUniquePair(ctx, repos, in, current.ID); err != nil {
			return err
		}
		carry := !productChanged && e.carryOnMove
		if !carry {
			if err := ensureStock(product); err != nil {
				return err
			}
		}
		previous, err := repos.Products.Get(ctx, current.ProductID)
		if err != nil {
			return err
		}

		if _, err := release(ctx, repos, current.OrderID, previous, productChanged); err != nil {
			return err
		}
		if carry {
			_, err = addToTotal(ctx, repos, in.OrderID, product)
		} else {
			product, err = reserve(ctx, repos, in.OrderID, product)
		}
		if err != nil {
			return err
		}

		item, err := repos.Items.Save(ctx, domain.OrderItem{ID: current.ID, OrderID: in.OrderID, ProductID: in.ProductID})
		if err != nil {
			return err
		}

		occurred := e.now()
		if err := e.enqueue(ctx, repos, domain.EventOrderItemUpdated, domain.OrderItemEvent{
			ItemID:            item.ID,
			OrderID:           item.OrderID,
			ProductID:         item.ProductID,
			PreviousOrderID:   current.OrderID,
			PreviousProductID: current.ProductID,
			ProductPrice:      product.Price,
			Occurred:          occurred,
		}); err != nil {
			return err
		}
		if err := e.appendTimeline(ctx, repos, current.OrderID, domain.TimelineOrderItemRemoved, current.ProductID, occurred); err != nil {
			return err
		}
		if err := e.appendTimeline(ctx, repos, item.OrderID, domain.TimelineOrderItemAdded, item.ProductID, occurred); err != nil {
			return err
		}

		view = domain.NewOrderItemView(item, product)
		return nil
	})
	if err != nil {
		return domain.OrderItemView{}, err
	}

	e.logger.WithFields(log.Fields{
		"order_item_id": view.ID,
		"order_id":      view.OrderID,
		"product_id":    view.ProductID,
		"changed":       changed,
	}).Debug("order item updated")
	return view, nil
}

// Delete удаляет позицию. Счётчики восстанавливаются только при ReleaseOnDelete.
func (e *Engine) Delete(ctx context.Context, id int64) (err error) {
	finish := e.metrics.Start(opDelete)
	defer func() { e.finish(finish, opDelete, err) }()

	err = e.tx.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		current, err := repos.Items.Get(ctx, id)
		if err != nil {
			return err
		}
		current, err = lockItem(ctx, repos, current, domain.OrderItemInput{OrderID: current.OrderID, ProductID: current.ProductID})
		if err != nil {
			return err
		}

		product, err := repos.Products.Get(ctx, current.ProductID)
		if err != nil {
			return err
		}
		if err := repos.Items.Delete(ctx, current.ID); err != nil {
			return err
		}
		if e.releaseOnDelete {
			if _, err := release(ctx, repos, current.OrderID, product, true); err != nil {
				return err
			}
		}

		occurred := e.now()
		if err := e.enqueue(ctx, repos, domain.EventOrderItemDeleted, domain.OrderItemEvent{
			ItemID:       current.ID,
			OrderID:      current.OrderID,
			ProductID:    current.ProductID,
			ProductPrice: product.Price,
			Released:     e.releaseOnDelete,
			Occurred:     occurred,
		}); err != nil {
			return err
		}
		return e.appendTimeline(ctx, repos, current.OrderID, domain.TimelineOrderItemRemoved, current.ProductID, occurred)
	})
	if err != nil {
		return err
	}

	e.logger.WithFields(log.Fields{
		"order_item_id": id,
		"released":      e.releaseOnDelete,
	}).Debug("order item deleted")
	return nil
}

func (e *Engine) finish(done func(string), operation string, err error) {
	done(string(domain.KindOf(err)))
	if err == nil {
		return
	}

	entry := e.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"kind":      domain.KindOf(err),
	})
	switch domain.KindOf(err) {
	case domain.KindUnavailable, domain.KindUnexpected:
		entry.Error("order item operation failed")
	case domain.KindCanceled:
		entry.Info("order item operation canceled")
	default:
		entry.Warn("order item operation rejected")
	}
}

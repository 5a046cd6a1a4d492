package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// state - зафиксированное состояние сущностей каталога.
type state struct {
	products map[int64]domain.Product
	orders   map[int64]domain.Order
	items    map[int64]domain.OrderItem

	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
}

// Store - in-memory хранилище каталога для локальной разработки и тестов.
// Транзакции сериализуются одним мьютексом и работают с копиями карт
// (copy-on-write): при ошибке копии просто отбрасываются.
type Store struct {
	mu       sync.Mutex
	state    *state
	outbox   *OutboxRepository
	timeline *TimelineRepository
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		state: &state{
			products: make(map[int64]domain.Product),
			orders:   make(map[int64]domain.Order),
			items:    make(map[int64]domain.OrderItem),
		},
		outbox:   NewOutboxRepository(),
		timeline: NewTimelineRepository(),
	}
}

// Outbox возвращает общий outbox-репозиторий (для воркера публикации).
func (s *Store) Outbox() *OutboxRepository {
	return s.outbox
}

// Timeline возвращает журнал изменений заказов.
func (s *Store) Timeline() *TimelineRepository {
	return s.timeline
}

// WithinTx выполняет fn в изолированной транзакции.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable(err, "begin transaction")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{base: s.state, counters: *s.state}
	repos := domain.Repositories{
		Products: &productRepository{tx: tx},
		Orders:   &orderRepository{tx: tx},
		Items:    &orderItemRepository{tx: tx},
		Locker:   noopLocker{},
		Outbox:   &txOutbox{committed: s.outbox},
		Timeline: &txTimeline{committed: s.timeline},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.Unavailable(err, "commit transaction")
	}

	s.state = tx.commit()
	repos.Outbox.(*txOutbox).flush()
	repos.Timeline.(*txTimeline).flush()
	return nil
}

// txState хранит изменённые в транзакции карты; нетронутые карты разделяются с base.
type txState struct {
	base     *state
	counters state

	products map[int64]domain.Product
	orders   map[int64]domain.Order
	items    map[int64]domain.OrderItem
}

func (t *txState) readProducts() map[int64]domain.Product {
	if t.products != nil {
		return t.products
	}
	return t.base.products
}

func (t *txState) writeProducts() map[int64]domain.Product {
	if t.products == nil {
		t.products = cloneMap(t.base.products)
	}
	return t.products
}

func (t *txState) readOrders() map[int64]domain.Order {
	if t.orders != nil {
		return t.orders
	}
	return t.base.orders
}

func (t *txState) writeOrders() map[int64]domain.Order {
	if t.orders == nil {
		t.orders = cloneMap(t.base.orders)
	}
	return t.orders
}

func (t *txState) readItems() map[int64]domain.OrderItem {
	if t.items != nil {
		return t.items
	}
	return t.base.items
}

func (t *txState) writeItems() map[int64]domain.OrderItem {
	if t.items == nil {
		t.items = cloneMap(t.base.items)
	}
	return t.items
}

func (t *txState) commit() *state {
	return &state{
		products:      t.readProducts(),
		orders:        t.readOrders(),
		items:         t.readItems(),
		nextProductID: t.counters.nextProductID,
		nextOrderID:   t.counters.nextOrderID,
		nextItemID:    t.counters.nextItemID,
	}
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// noopLocker: транзакции и так сериализованы мьютексом Store.
type noopLocker struct{}

func (noopLocker) Lock(context.Context, []int64, []int64) error { return nil }

var _ domain.TxManager = (*Store)(nil)

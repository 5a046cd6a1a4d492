package domain

import (
	"context"
	"time"
)

// ProductRepository - хранилище товаров.
type ProductRepository interface {
	// Get возвращает товар или ошибку вида NotFound.
	Get(ctx context.Context, id int64) (Product, error)
	// GetByName ищет товар по уникальному имени.
	GetByName(ctx context.Context, name string) (Product, error)
	// GetMany возвращает найденные товары; отсутствующие id пропускаются.
	GetMany(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context) ([]Product, error)
	// Save вставляет товар (ID == 0) или перезаписывает существующий.
	Save(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository - хранилище заказов.
type OrderRepository interface {
	Get(ctx context.Context, id int64) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, order Order) (Order, error)
	Delete(ctx context.Context, id int64) error
}

// OrderItemRepository - хранилище позиций заказа.
type OrderItemRepository interface {
	Get(ctx context.Context, id int64) (OrderItem, error)
	// FindByPair ищет позицию по паре (order, product).
	FindByPair(ctx context.Context, orderID, productID int64) (OrderItem, error)
	List(ctx context.Context) ([]OrderItem, error)
	ListByOrder(ctx context.Context, orderID int64) ([]OrderItem, error)
	// ExistsForProduct сообщает, ссылается ли хоть одна позиция на товар.
	ExistsForProduct(ctx context.Context, productID int64) (bool, error)
	Save(ctx context.Context, item OrderItem) (OrderItem, error)
	Delete(ctx context.Context, id int64) error
}

// RowLocker блокирует строки заказов и товаров до конца транзакции.
// Реализации обязаны блокировать в порядке возрастания id.
type RowLocker interface {
	Lock(ctx context.Context, orderIDs, productIDs []int64) error
}

// TimelineRepository хранит журнал изменений заказа.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, orderID int64) ([]TimelineEvent, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// Repositories - набор репозиториев, привязанных к одной транзакции.
type Repositories struct {
	Products ProductRepository
	Orders   OrderRepository
	Items    OrderItemRepository
	Locker   RowLocker
	Outbox   OutboxRepository
	Timeline TimelineRepository
}

// TxManager выполняет fn в одной транзакции: при ошибке изменения откатываются.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	MarkDone(ctx context.Context, key string, responseBody []byte, statusCode int) error
	MarkFailed(ctx context.Context, key string, responseBody []byte, statusCode int) error
	// Delete освобождает ключ, чтобы запрос с ним можно было выполнить заново.
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

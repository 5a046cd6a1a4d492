package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// TimelineRepository хранит журнал изменений заказов в памяти.
type TimelineRepository struct {
	mu     sync.RWMutex
	events map[int64][]domain.TimelineEvent
}

// NewTimelineRepository создаёт in-memory реализацию TimelineRepository.
func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{events: make(map[int64][]domain.TimelineEvent)}
}

// Append добавляет событие в журнал заказа.
func (r *TimelineRepository) Append(_ context.Context, event domain.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appendLocked(event)
	return nil
}

func (r *TimelineRepository) appendLocked(event domain.TimelineEvent) {
	events := append(r.events[event.OrderID], event)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Occurred.Before(events[j].Occurred)
	})
	r.events[event.OrderID] = events
}

// List возвращает события заказа в хронологическом порядке.
func (r *TimelineRepository) List(_ context.Context, orderID int64) ([]domain.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[orderID]
	result := make([]domain.TimelineEvent, len(events))
	copy(result, events)
	return result, nil
}

// txTimeline копит события до коммита транзакции.
type txTimeline struct {
	committed *TimelineRepository
	buffered  []domain.TimelineEvent
}

func (t *txTimeline) Append(_ context.Context, event domain.TimelineEvent) error {
	t.buffered = append(t.buffered, event)
	return nil
}

func (t *txTimeline) List(ctx context.Context, orderID int64) ([]domain.TimelineEvent, error) {
	events, err := t.committed.List(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for _, event := range t.buffered {
		if event.OrderID == orderID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (t *txTimeline) flush() {
	if len(t.buffered) == 0 {
		return
	}
	t.committed.mu.Lock()
	defer t.committed.mu.Unlock()
	for _, event := range t.buffered {
		t.committed.appendLocked(event)
	}
	t.buffered = nil
}

var (
	_ domain.TimelineRepository = (*TimelineRepository)(nil)
	_ domain.TimelineRepository = (*txTimeline)(nil)
)

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// rowLocker берёт SELECT ... FOR UPDATE на строки заказов, затем товаров,
// каждый раз по возрастанию id, чтобы параллельные транзакции не взаимоблокировались.
type rowLocker struct {
	q querier
}

func (l *rowLocker) Lock(ctx context.Context, orderIDs, productIDs []int64) error {
	if err := l.lockAll(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderIDs); err != nil {
		return classify(err, "lock orders")
	}
	if err := l.lockAll(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, productIDs); err != nil {
		return classify(err, "lock products")
	}
	return nil
}

func (l *rowLocker) lockAll(ctx context.Context, query string, ids []int64) error {
	for _, id := range sortedUnique(ids) {
		lockCtx, cancel := context.WithTimeout(ctx, opTimeout)
		var locked int64
		err := l.q.QueryRowContext(lockCtx, query, id).Scan(&locked)
		cancel()
		// отсутствующую строку блокировать нечего; NotFound вернёт последующее чтение
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}
	return nil
}

func sortedUnique(ids []int64) []int64 {
	result := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

var _ domain.RowLocker = (*rowLocker)(nil)

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tableExists(ctx context.Context, t *testing.T, store *Store, table string) bool {
	t.Helper()

	var exists bool
	err := store.DB().QueryRowContext(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+table).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func requireStatus(ctx context.Context, t *testing.T, store *Store, wantVersion int64, wantCount int) {
	t.Helper()

	version, count, err := store.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, wantVersion, version, "schema version")
	require.Equal(t, wantCount, count, "applied migrations")
}

func TestMigrator_PostgresCatalogThenOutboxSchema(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	require.NoError(t, store.MigrateDown(ctx, 100))
	requireStatus(ctx, t, store, 0, 0)
	require.False(t, tableExists(ctx, t, store, "products"))

	// первая миграция: только каталог
	require.NoError(t, store.MigrateUp(ctx, 1))
	requireStatus(ctx, t, store, 1, 1)
	for _, table := range []string{"products", "orders", "order_items"} {
		require.True(t, tableExists(ctx, t, store, table), table)
	}
	for _, table := range []string{"outbox_messages", "timeline_events", "idempotency_keys"} {
		require.False(t, tableExists(ctx, t, store, table), table)
	}

	// пара (заказ, товар) уникальна уже на уровне схемы
	_, err := store.DB().ExecContext(ctx, `
		INSERT INTO products (name, quantity, price) VALUES ('cable', 2, 3.5);
		INSERT INTO orders (description) VALUES ('pair check');
		INSERT INTO order_items (order_id, product_id) VALUES (1, 1);
	`)
	require.NoError(t, err)
	_, err = store.DB().ExecContext(ctx, `INSERT INTO order_items (order_id, product_id) VALUES (1, 1)`)
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))
	require.Equal(t, constraintItemPair, violatedConstraint(err))

	require.NoError(t, store.MigrateUp(ctx, 0))
	requireStatus(ctx, t, store, 2, 2)
	require.True(t, tableExists(ctx, t, store, "idempotency_keys"))

	// повторный up ничего не меняет и не трогает данные
	require.NoError(t, store.MigrateUp(ctx, 0))
	requireStatus(ctx, t, store, 2, 2)

	require.NoError(t, store.MigrateDown(ctx, 1))
	requireStatus(ctx, t, store, 1, 1)
	require.False(t, tableExists(ctx, t, store, "outbox_messages"))

	var items int
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT count(*) FROM order_items`).Scan(&items))
	require.Equal(t, 1, items)

	// steps=0 при down откатывает одну миграцию
	require.NoError(t, store.MigrateDown(ctx, 0))
	requireStatus(ctx, t, store, 0, 0)
	require.False(t, tableExists(ctx, t, store, "order_items"))

	require.NoError(t, store.MigrateDown(ctx, 1))
	requireStatus(ctx, t, store, 0, 0)

	// остальные тесты пакета ждут полную схему
	require.NoError(t, store.EnsureSchema(ctx))
}

func TestMigrator_GuardsAndUnsupportedDirection(t *testing.T) {
	var nilStore *Store
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.Error(t, nilStore.MigrateUp(ctx, 0))
	require.Error(t, nilStore.MigrateDown(ctx, 1))
	_, _, err := nilStore.MigrationStatus(ctx)
	require.Error(t, err)
	require.Error(t, nilStore.EnsureSchema(ctx))

	store := openRawPostgresStoreForIntegrationTest(t)
	require.Error(t, store.migrate(ctx, migrationDirection("sideways"), 0))
}

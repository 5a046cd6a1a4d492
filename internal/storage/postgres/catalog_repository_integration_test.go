package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

func TestCatalogRepositories_PostgresCRUD(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	product, order := seedCatalog(t, store)

	require.NotZero(t, product.ID)
	require.NotZero(t, order.ID)

	withinTx(t, store, func(ctx context.Context, repos domain.Repositories) error {
		got, err := repos.Products.Get(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, "Keyboard", got.Name)
		require.True(t, got.Price.Equal(decimal.RequireFromString("49.99")), "price %s", got.Price)

		byName, err := repos.Products.GetByName(ctx, "Keyboard")
		require.NoError(t, err)
		require.Equal(t, product.ID, byName.ID)

		item, err := repos.Items.Save(ctx, domain.OrderItem{OrderID: order.ID, ProductID: product.ID})
		require.NoError(t, err)
		require.NotZero(t, item.ID)

		found, err := repos.Items.FindByPair(ctx, order.ID, product.ID)
		require.NoError(t, err)
		require.Equal(t, item.ID, found.ID)

		byOrder, err := repos.Items.ListByOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, byOrder, 1)

		referenced, err := repos.Items.ExistsForProduct(ctx, product.ID)
		require.NoError(t, err)
		require.True(t, referenced)

		order.TotalAmount = order.TotalAmount.Add(got.Price)
		_, err = repos.Orders.Save(ctx, order)
		require.NoError(t, err)
		return nil
	})

	withinTx(t, store, func(ctx context.Context, repos domain.Repositories) error {
		got, err := repos.Orders.Get(ctx, order.ID)
		require.NoError(t, err)
		require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("49.99")))

		products, err := repos.Products.GetMany(ctx, []int64{product.ID, 9999})
		require.NoError(t, err)
		require.Len(t, products, 1)
		return nil
	})
}

func TestCatalogRepositories_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	product, order := seedCatalog(t, store)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		_, err := repos.Products.Get(ctx, 9999)
		return err
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, "Product of id 9999 not found.", err.Error())

	err = store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		_, err := repos.Products.Save(ctx, domain.Product{Name: "Keyboard", Quantity: 1, Price: decimal.NewFromInt(1)})
		return err
	})
	require.Equal(t, domain.KindDuplicateName, domain.KindOf(err))

	withinTx(t, store, func(ctx context.Context, repos domain.Repositories) error {
		_, err := repos.Items.Save(ctx, domain.OrderItem{OrderID: order.ID, ProductID: product.ID})
		return err
	})

	err = store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		_, err := repos.Items.Save(ctx, domain.OrderItem{OrderID: order.ID, ProductID: product.ID})
		return err
	})
	require.ErrorIs(t, err, domain.ErrDuplicateAssociation)

	err = store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Products.Delete(ctx, product.ID)
	})
	require.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestStore_PostgresRollbackKeepsCounters(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	product, order := seedCatalog(t, store)
	boom := errors.New("boom")

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		product.Quantity--
		if _, err := repos.Products.Save(ctx, product); err != nil {
			return err
		}
		if _, err := repos.Items.Save(ctx, domain.OrderItem{OrderID: order.ID, ProductID: product.ID}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	withinTx(t, store, func(ctx context.Context, repos domain.Repositories) error {
		got, err := repos.Products.Get(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, int64(5), got.Quantity)

		items, err := repos.Items.List(ctx)
		require.NoError(t, err)
		require.Empty(t, items)
		return nil
	})
}

func TestRowLocker_PostgresSerializesDecrements(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	product, order := seedCatalog(t, store)

	const workers = 5
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.WithinTx(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
				if err := repos.Locker.Lock(ctx, []int64{order.ID}, []int64{product.ID}); err != nil {
					return err
				}
				current, err := repos.Products.Get(ctx, product.ID)
				if err != nil {
					return err
				}
				current.Quantity--
				_, err = repos.Products.Save(ctx, current)
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	withinTx(t, store, func(ctx context.Context, repos domain.Repositories) error {
		got, err := repos.Products.Get(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, int64(0), got.Quantity)
		return nil
	})
}

func TestClassify(t *testing.T) {
	require.NoError(t, classify(nil, "noop"))

	dup := &pgconn.PgError{Code: codeUniqueViolation}
	require.True(t, isUniqueViolation(dup))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "22001"}))
	require.False(t, isUniqueViolation(errors.New("plain error")))

	require.Equal(t, domain.KindConflict, domain.KindOf(classify(&pgconn.PgError{Code: codeForeignKeyViolation}, "delete")))
	require.Equal(t, domain.KindUnavailable, domain.KindOf(classify(&pgconn.PgError{Code: codeDeadlockDetected}, "lock")))
	require.Equal(t, domain.KindUnavailable, domain.KindOf(classify(&pgconn.PgError{Code: "08006"}, "query")))
	require.Equal(t, domain.KindUnavailable, domain.KindOf(classify(context.DeadlineExceeded, "query")))
	require.Equal(t, domain.KindUnexpected, domain.KindOf(classify(errors.New("syntax"), "query")))

	notFound := domain.NotFoundf("Order of id %d not found.", 1)
	require.Same(t, notFound, classify(notFound, "select").(*domain.Error))
}

func TestSortedUnique(t *testing.T) {
	require.Equal(t, []int64{1, 2, 5}, sortedUnique([]int64{5, 1, 2, 5, 1}))
	require.Empty(t, sortedUnique(nil))
}

package association_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/metrics"
	"github.com/vladislavdragonenkov/catalog/internal/service/association"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

type EngineSuite struct {
	suite.Suite

	ctx    context.Context
	store  *memory.Store
	engine *association.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.engine = association.NewEngine(s.store,
		association.WithMetrics(metrics.NewAssociationMetricsWithRegisterer(prometheus.NewRegistry())),
	)
}

func (s *EngineSuite) product(name string, quantity int64, price string) domain.Product {
	var product domain.Product
	s.Require().NoError(s.store.WithinTx(s.ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		product, err = repos.Products.Save(ctx, domain.Product{
			Name:        name,
			Description: name + " description",
			Quantity:    quantity,
			Price:       decimal.RequireFromString(price),
		})
		return err
	}))
	return product
}

func (s *EngineSuite) order(description string) domain.Order {
	var order domain.Order
	s.Require().NoError(s.store.WithinTx(s.ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		order, err = repos.Orders.Save(ctx, domain.Order{Description: description, TotalAmount: decimal.Zero})
		return err
	}))
	return order
}

// snapshot читает текущие остаток товара и сумму заказа.
func (s *EngineSuite) snapshot(productID, orderID int64) (int64, decimal.Decimal) {
	var (
		quantity int64
		total    decimal.Decimal
	)
	s.Require().NoError(s.store.WithinTx(s.ctx, func(ctx context.Context, repos domain.Repositories) error {
		product, err := repos.Products.Get(ctx, productID)
		if err != nil {
			return err
		}
		order, err := repos.Orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		quantity, total = product.Quantity, order.TotalAmount
		return nil
	}))
	return quantity, total
}

func (s *EngineSuite) requireCounters(productID, orderID, wantQuantity int64, wantTotal string) {
	s.T().Helper()
	quantity, total := s.snapshot(productID, orderID)
	s.Require().Equal(wantQuantity, quantity, "product quantity")
	s.Require().True(total.Equal(decimal.RequireFromString(wantTotal)), "order total: want %s, got %s", wantTotal, total)
}

func req(orderID, productID int64) domain.OrderItemRequest {
	return domain.OrderItemRequest{OrderID: &orderID, ProductID: &productID}
}

func (s *EngineSuite) TestCreate_ReservesStockAndAddsPrice() {
	tv := s.product("tv", 10, "500.0")
	order := s.order("sales1")

	view, err := s.engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().NoError(err)

	s.Require().NotZero(view.ID)
	s.Require().Equal(order.ID, view.OrderID)
	s.Require().Equal(tv.ID, view.ProductID)
	s.Require().Equal("tv", view.ProductName)
	s.Require().Equal("tv description", view.ProductDescription)
	s.Require().True(view.ProductPrice.Equal(decimal.RequireFromString("500")))
	s.requireCounters(tv.ID, order.ID, 9, "500.0")

	pending := s.store.Outbox().AllPending()
	s.Require().Len(pending, 1)
	s.Require().Equal(domain.EventOrderItemCreated, pending[0].EventType)
	s.Require().Equal(domain.AggregateOrderItem, pending[0].AggregateType)

	var event domain.OrderItemEvent
	s.Require().NoError(json.Unmarshal(pending[0].Payload, &event))
	s.Require().Equal(view.ID, event.ItemID)
	s.Require().True(event.ProductPrice.Equal(tv.Price))

	timeline, err := s.store.Timeline().List(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Len(timeline, 1)
	s.Require().Equal(domain.TimelineOrderItemAdded, timeline[0].Type)
}

func (s *EngineSuite) TestCreate_DuplicatePair() {
	tv := s.product("tv", 10, "500.0")
	order := s.order("sales1")

	_, err := s.engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().NoError(err)

	_, err = s.engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().ErrorIs(err, domain.ErrDuplicateAssociation)
	s.Require().Equal("Order item already exists for order: '1' and product: '1'.", err.Error())
	s.requireCounters(tv.ID, order.ID, 9, "500.0")
}

func (s *EngineSuite) TestCreate_MissingFields() {
	cases := []struct {
		name string
		req  domain.OrderItemRequest
		want string
	}{
		{name: "both", req: domain.OrderItemRequest{}, want: "[orderId is mandatory, productId is mandatory]"},
		{name: "order", req: domain.OrderItemRequest{ProductID: ptr(int64(1))}, want: "[orderId is mandatory]"},
		{name: "product", req: domain.OrderItemRequest{OrderID: ptr(int64(1))}, want: "[productId is mandatory]"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.engine.Create(s.ctx, tc.req)
			s.Require().ErrorIs(err, domain.ErrMissingField)
			s.Require().Equal(tc.want, err.Error())
		})
	}
}

func (s *EngineSuite) TestCreate_NoStockLeftHasNoSideEffects() {
	empty := s.product("radio", 0, "20")
	order := s.order("sales1")

	_, err := s.engine.Create(s.ctx, req(order.ID, empty.ID))
	s.Require().ErrorIs(err, domain.ErrNoStockLeft)
	s.Require().Equal("There is no left over products, quantity: 0", err.Error())
	s.requireCounters(empty.ID, order.ID, 0, "0")
	s.Require().Empty(s.store.Outbox().AllPending())
}

func (s *EngineSuite) TestCreate_MissingReferences() {
	tv := s.product("tv", 10, "500.0")
	order := s.order("sales1")

	_, err := s.engine.Create(s.ctx, req(order.ID, 99))
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Require().Equal("Product of id 99 not found.", err.Error())

	// заказ проверяется до записи: остаток товара не тронут и позиция не создана
	_, err = s.engine.Create(s.ctx, req(42, tv.ID))
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Require().Equal("Order of id 42 not found.", err.Error())
	s.requireCounters(tv.ID, order.ID, 10, "0")

	_, err = s.engine.List(s.ctx)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *EngineSuite) TestUpdate_ReassignProductWithinOrder() {
	a := s.product("a", 5, "10.25")
	b := s.product("b", 3, "7.50")
	order := s.order("sales1")

	created, err := s.engine.Create(s.ctx, req(order.ID, a.ID))
	s.Require().NoError(err)
	s.requireCounters(a.ID, order.ID, 4, "10.25")

	updated, err := s.engine.Update(s.ctx, created.ID, req(order.ID, b.ID))
	s.Require().NoError(err)
	s.Require().Equal(created.ID, updated.ID)
	s.Require().Equal(b.ID, updated.ProductID)
	s.Require().Equal("b", updated.ProductName)

	s.requireCounters(a.ID, order.ID, 5, "7.50")
	quantityB, _ := s.snapshot(b.ID, order.ID)
	s.Require().Equal(int64(2), quantityB)

	views, err := s.engine.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 1)

	timeline, err := s.store.Timeline().List(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Len(timeline, 3)
	s.Require().Equal(domain.TimelineOrderItemRemoved, timeline[1].Type)
	s.Require().Equal(domain.TimelineOrderItemAdded, timeline[2].Type)
}

func (s *EngineSuite) TestUpdate_MoveToAnotherOrderReservesAgain() {
	tv := s.product("tv", 2, "100")
	first := s.order("first")
	second := s.order("second")

	created, err := s.engine.Create(s.ctx, req(first.ID, tv.ID))
	s.Require().NoError(err)

	updated, err := s.engine.Update(s.ctx, created.ID, req(second.ID, tv.ID))
	s.Require().NoError(err)
	s.Require().Equal(second.ID, updated.OrderID)

	s.requireCounters(tv.ID, first.ID, 0, "0")
	s.requireCounters(tv.ID, second.ID, 0, "100")
}

func (s *EngineSuite) TestUpdate_MoveToAnotherOrderWithEmptyStock() {
	tv := s.product("tv", 1, "100")
	first := s.order("first")
	second := s.order("second")

	created, err := s.engine.Create(s.ctx, req(first.ID, tv.ID))
	s.Require().NoError(err)

	_, err = s.engine.Update(s.ctx, created.ID, req(second.ID, tv.ID))
	s.Require().Error(err)
	s.Require().Equal(domain.KindNoStockLeft, domain.KindOf(err))
	s.Require().Equal("There is no left over products, quantity: 0", err.Error())

	// откат: позиция и счётчики остались на первом заказе
	got, err := s.engine.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().Equal(first.ID, got.OrderID)
	s.requireCounters(tv.ID, first.ID, 0, "100")
	s.requireCounters(tv.ID, second.ID, 0, "0")
}

func (s *EngineSuite) TestUpdate_MoveToAnotherOrderCarriesReservation() {
	engine := association.NewEngine(s.store, association.WithCarryReservationOnMove(true))
	tv := s.product("tv", 2, "100")
	first := s.order("first")
	second := s.order("second")

	created, err := engine.Create(s.ctx, req(first.ID, tv.ID))
	s.Require().NoError(err)

	updated, err := engine.Update(s.ctx, created.ID, req(second.ID, tv.ID))
	s.Require().NoError(err)
	s.Require().Equal(second.ID, updated.OrderID)

	s.requireCounters(tv.ID, first.ID, 1, "0")
	s.requireCounters(tv.ID, second.ID, 1, "100")
}

func (s *EngineSuite) TestUpdate_CarriedMoveIgnoresEmptyStock() {
	engine := association.NewEngine(s.store, association.WithCarryReservationOnMove(true))
	tv := s.product("tv", 1, "100")
	first := s.order("first")
	second := s.order("second")

	created, err := engine.Create(s.ctx, req(first.ID, tv.ID))
	s.Require().NoError(err)

	// остаток 0, но единица уже зарезервирована за этой позицией
	_, err = engine.Update(s.ctx, created.ID, req(second.ID, tv.ID))
	s.Require().NoError(err)
	s.requireCounters(tv.ID, second.ID, 0, "100")
}

func (s *EngineSuite) TestUpdate_UnchangedPairIsNoop() {
	tv := s.product("tv", 10, "500.0")
	order := s.order("sales1")

	created, err := s.engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().NoError(err)

	updated, err := s.engine.Update(s.ctx, created.ID, req(order.ID, tv.ID))
	s.Require().NoError(err)
	s.Require().Equal(created.ID, updated.ID)
	s.Require().Equal(created.OrderID, updated.OrderID)
	s.Require().Equal(created.ProductID, updated.ProductID)
	s.requireCounters(tv.ID, order.ID, 9, "500.0")
	s.Require().Len(s.store.Outbox().AllPending(), 1)
}

func (s *EngineSuite) TestUpdate_Errors() {
	a := s.product("a", 5, "10")
	b := s.product("b", 0, "20")
	c := s.product("c", 5, "30")
	order := s.order("sales1")

	first, err := s.engine.Create(s.ctx, req(order.ID, a.ID))
	s.Require().NoError(err)
	_, err = s.engine.Create(s.ctx, req(order.ID, c.ID))
	s.Require().NoError(err)

	// NotFound по id проверяется раньше валидации
	_, err = s.engine.Update(s.ctx, 99, domain.OrderItemRequest{})
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Require().Equal("Order item of id 99 not found.", err.Error())

	_, err = s.engine.Update(s.ctx, first.ID, domain.OrderItemRequest{})
	s.Require().ErrorIs(err, domain.ErrMissingField)

	_, err = s.engine.Update(s.ctx, first.ID, req(order.ID, c.ID))
	s.Require().ErrorIs(err, domain.ErrDuplicateAssociation)

	_, err = s.engine.Update(s.ctx, first.ID, req(order.ID, b.ID))
	s.Require().ErrorIs(err, domain.ErrNoStockLeft)

	_, err = s.engine.Update(s.ctx, first.ID, req(77, a.ID))
	s.Require().ErrorIs(err, domain.ErrNotFound)

	// ни одна неудачная попытка не изменила счётчики
	s.requireCounters(a.ID, order.ID, 4, "40")
	quantityB, _ := s.snapshot(b.ID, order.ID)
	s.Require().Equal(int64(0), quantityB)
}

func (s *EngineSuite) TestDelete_KeepsCountersByDefault() {
	tv := s.product("tv", 10, "500.0")
	order := s.order("sales1")

	created, err := s.engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Delete(s.ctx, created.ID))
	s.Require().False(s.engine.ReleaseOnDelete())

	_, err = s.engine.Get(s.ctx, created.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)
	_, err = s.engine.List(s.ctx)
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Require().Equal("No order items found.", err.Error())

	s.requireCounters(tv.ID, order.ID, 9, "500.0")

	err = s.engine.Delete(s.ctx, created.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *EngineSuite) TestDelete_ReleaseRestoresCounters() {
	engine := association.NewEngine(s.store, association.WithReleaseOnDelete(true))
	tv := s.product("tv", 10, "500.0")
	order := s.order("sales1")

	created, err := engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().NoError(err)
	s.Require().NoError(engine.Delete(s.ctx, created.ID))

	s.requireCounters(tv.ID, order.ID, 10, "0")

	pending := s.store.Outbox().AllPending()
	s.Require().Len(pending, 2)
	s.Require().Equal(domain.EventOrderItemDeleted, pending[1].EventType)

	var event domain.OrderItemEvent
	s.Require().NoError(json.Unmarshal(pending[1].Payload, &event))
	s.Require().True(event.Released)
}

func (s *EngineSuite) TestGetAndList() {
	tv := s.product("tv", 10, "500.0")
	radio := s.product("radio", 10, "20")
	order := s.order("sales1")

	first, err := s.engine.Create(s.ctx, req(order.ID, tv.ID))
	s.Require().NoError(err)
	second, err := s.engine.Create(s.ctx, req(order.ID, radio.ID))
	s.Require().NoError(err)

	got, err := s.engine.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Require().Equal("tv", got.ProductName)

	views, err := s.engine.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([]int64{first.ID, second.ID}, []int64{views[0].ID, views[1].ID})
	s.Require().Equal("radio", views[1].ProductName)

	s.requireCounters(radio.ID, order.ID, 9, "520.0")
}

func TestEngine_ConcurrentCreatesDoNotLoseDecrements(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	engine := association.NewEngine(store)

	const (
		stock  = 10
		orders = 25
	)

	var productID int64
	orderIDs := make([]int64, 0, orders)
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		product, err := repos.Products.Save(ctx, domain.Product{Name: "hot", Quantity: stock, Price: decimal.NewFromInt(3)})
		if err != nil {
			return err
		}
		productID = product.ID
		for i := 0; i < orders; i++ {
			order, err := repos.Orders.Save(ctx, domain.Order{Description: "concurrent"})
			if err != nil {
				return err
			}
			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	}))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		noStock   int
	)
	for _, orderID := range orderIDs {
		wg.Add(1)
		go func(orderID int64) {
			defer wg.Done()
			_, err := engine.Create(ctx, req(orderID, productID))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrNoStockLeft):
				noStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(orderID)
	}
	wg.Wait()

	require.Equal(t, stock, succeeded)
	require.Equal(t, orders-stock, noStock)

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		product, err := repos.Products.Get(ctx, productID)
		require.NoError(t, err)
		require.Equal(t, int64(0), product.Quantity)

		total := decimal.Zero
		for _, orderID := range orderIDs {
			order, err := repos.Orders.Get(ctx, orderID)
			require.NoError(t, err)
			total = total.Add(order.TotalAmount)
		}
		require.True(t, total.Equal(decimal.NewFromInt(3*stock)), "total %s", total)
		return nil
	}))
}

// failingTimelineTx подменяет журнал заказа, чтобы последняя запись транзакции падала.
type failingTimelineTx struct {
	inner *memory.Store
	err   error
}

func (f failingTimelineTx) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return f.inner.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		repos.Timeline = failingTimeline{err: f.err}
		return fn(ctx, repos)
	})
}

type failingTimeline struct{ err error }

func (f failingTimeline) Append(context.Context, domain.TimelineEvent) error { return f.err }

func (f failingTimeline) List(context.Context, int64) ([]domain.TimelineEvent, error) {
	return nil, f.err
}

func TestEngine_LateFailureRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	unavailable := domain.Unavailable(context.DeadlineExceeded, "append timeline")
	engine := association.NewEngine(failingTimelineTx{inner: store, err: unavailable})

	var product domain.Product
	var order domain.Order
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		if product, err = repos.Products.Save(ctx, domain.Product{Name: "tv", Quantity: 3, Price: decimal.NewFromInt(5)}); err != nil {
			return err
		}
		order, err = repos.Orders.Save(ctx, domain.Order{Description: "o"})
		return err
	}))

	_, err := engine.Create(ctx, req(order.ID, product.ID))
	require.Equal(t, domain.KindUnavailable, domain.KindOf(err))
	require.True(t, domain.IsRetryable(err))

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		gotProduct, err := repos.Products.Get(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, int64(3), gotProduct.Quantity)

		gotOrder, err := repos.Orders.Get(ctx, order.ID)
		require.NoError(t, err)
		require.True(t, gotOrder.TotalAmount.IsZero())

		items, err := repos.Items.List(ctx)
		require.NoError(t, err)
		require.Empty(t, items)
		return nil
	}))
	require.Empty(t, store.Outbox().AllPending())
}

func TestEngine_UsesClockForEvents(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := association.NewEngine(store, association.WithClock(func() time.Time { return fixed }))

	var product domain.Product
	var order domain.Order
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		if product, err = repos.Products.Save(ctx, domain.Product{Name: "tv", Quantity: 3, Price: decimal.NewFromInt(5)}); err != nil {
			return err
		}
		order, err = repos.Orders.Save(ctx, domain.Order{Description: "o"})
		return err
	}))

	_, err := engine.Create(ctx, req(order.ID, product.ID))
	require.NoError(t, err)

	events, err := store.Timeline().List(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.True(t, events[0].Occurred.Equal(fixed))
	require.Equal(t, "product 1", events[0].Reason)
}

func ptr[T any](v T) *T {
	return &v
}

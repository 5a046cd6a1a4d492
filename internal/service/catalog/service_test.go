package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/association"
	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

func newService(t *testing.T) (*catalog.Service, *association.Engine) {
	t.Helper()
	store := memory.NewStore()
	return catalog.NewService(store, nil), association.NewEngine(store)
}

func productRequest(name string, quantity int64, price string) domain.ProductRequest {
	description := name + " description"
	return domain.ProductRequest{
		Name:        &name,
		Description: &description,
		Quantity:    &quantity,
		Price:       decimal.NewNullDecimal(decimal.RequireFromString(price)),
	}
}

func orderRequest(description string) domain.OrderRequest {
	return domain.OrderRequest{Description: &description}
}

func TestService_ProductLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ListProducts(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, "No products found.", err.Error())

	tv, err := svc.CreateProduct(ctx, productRequest("tv", 10, "500.0"))
	require.NoError(t, err)
	require.Equal(t, int64(1), tv.ID)

	_, err = svc.CreateProduct(ctx, productRequest("tv", 1, "1"))
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	require.Equal(t, "Product 'tv' already exists.", err.Error())

	newName := "television"
	newPrice := decimal.NewNullDecimal(decimal.RequireFromString("450"))
	updated, err := svc.UpdateProduct(ctx, tv.ID, domain.ProductUpdateRequest{Name: &newName, Price: newPrice})
	require.NoError(t, err)
	require.Equal(t, "television", updated.Name)
	require.Equal(t, int64(10), updated.Quantity)
	require.True(t, updated.Price.Equal(decimal.NewFromInt(450)))

	got, err := svc.GetProduct(ctx, tv.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)

	require.NoError(t, svc.DeleteProduct(ctx, tv.ID))
	_, err = svc.GetProduct(ctx, tv.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, "Product of id 1 not found.", err.Error())
}

func TestService_CreateProductValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, domain.ProductRequest{})
	require.ErrorIs(t, err, domain.ErrMissingField)
	require.Equal(t, "[Name is mandatory, Quantity is mandatory, Price is mandatory]", err.Error())

	_, err = svc.CreateProduct(ctx, productRequest("neg", -1, "1"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.CreateProduct(ctx, productRequest("neg", 1, "-0.01"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestService_UpdateProductRenameToTakenName(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productRequest("tv", 1, "1"))
	require.NoError(t, err)
	radio, err := svc.CreateProduct(ctx, productRequest("radio", 1, "1"))
	require.NoError(t, err)

	taken := "tv"
	_, err = svc.UpdateProduct(ctx, radio.ID, domain.ProductUpdateRequest{Name: &taken})
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	same := "radio"
	_, err = svc.UpdateProduct(ctx, radio.ID, domain.ProductUpdateRequest{Name: &same})
	require.NoError(t, err)
}

func TestService_ReferencedProductAndOrderAreProtected(t *testing.T) {
	svc, engine := newService(t)
	ctx := context.Background()

	tv, err := svc.CreateProduct(ctx, productRequest("tv", 10, "500.0"))
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, orderRequest("sales1"))
	require.NoError(t, err)
	item, err := engine.Create(ctx, domain.OrderItemRequest{OrderID: &order.ID, ProductID: &tv.ID})
	require.NoError(t, err)

	price := decimal.NewNullDecimal(decimal.NewFromInt(1))
	_, err = svc.UpdateProduct(ctx, tv.ID, domain.ProductUpdateRequest{Price: price})
	require.ErrorIs(t, err, domain.ErrConflict)

	// прежняя цена не считается изменением
	samePrice := decimal.NewNullDecimal(decimal.RequireFromString("500"))
	description := "new"
	_, err = svc.UpdateProduct(ctx, tv.ID, domain.ProductUpdateRequest{Description: &description, Price: samePrice})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteProduct(ctx, tv.ID), domain.ErrConflict)
	require.ErrorIs(t, svc.DeleteOrder(ctx, order.ID), domain.ErrConflict)

	require.NoError(t, engine.Delete(ctx, item.ID))
	require.NoError(t, svc.DeleteOrder(ctx, order.ID))
	require.NoError(t, svc.DeleteProduct(ctx, tv.ID))
}

func TestService_OrderLifecycle(t *testing.T) {
	svc, engine := newService(t)
	ctx := context.Background()

	_, err := svc.ListOrders(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, "No orders found.", err.Error())

	_, err = svc.CreateOrder(ctx, domain.OrderRequest{})
	require.ErrorIs(t, err, domain.ErrMissingField)
	require.Equal(t, "[description is mandatory]", err.Error())

	order, err := svc.CreateOrder(ctx, orderRequest("sales1"))
	require.NoError(t, err)
	require.True(t, order.TotalAmount.IsZero())

	tv, err := svc.CreateProduct(ctx, productRequest("tv", 10, "500.0"))
	require.NoError(t, err)
	_, err = engine.Create(ctx, domain.OrderItemRequest{OrderID: &order.ID, ProductID: &tv.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(ctx, order.ID, orderRequest("sales2"))
	require.NoError(t, err)
	require.Equal(t, "sales2", updated.Description)
	require.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(500)))

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = svc.UpdateOrder(ctx, 99, orderRequest("x"))
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, "Order of id 99 not found.", err.Error())
}

func TestService_OrderItemsAndTimeline(t *testing.T) {
	svc, engine := newService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, orderRequest("sales1"))
	require.NoError(t, err)
	other, err := svc.CreateOrder(ctx, orderRequest("other"))
	require.NoError(t, err)

	views, err := svc.ListOrderItemsByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Empty(t, views)

	tv, err := svc.CreateProduct(ctx, productRequest("tv", 10, "500.0"))
	require.NoError(t, err)
	radio, err := svc.CreateProduct(ctx, productRequest("radio", 10, "20"))
	require.NoError(t, err)

	_, err = engine.Create(ctx, domain.OrderItemRequest{OrderID: &order.ID, ProductID: &tv.ID})
	require.NoError(t, err)
	_, err = engine.Create(ctx, domain.OrderItemRequest{OrderID: &other.ID, ProductID: &radio.ID})
	require.NoError(t, err)

	views, err = svc.ListOrderItemsByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "tv", views[0].ProductName)

	events, err := svc.OrderTimeline(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, domain.TimelineOrderItemAdded, events[0].Type)

	_, err = svc.ListOrderItemsByOrder(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.OrderTimeline(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

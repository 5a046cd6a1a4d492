package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcsvc "github.com/vladislavdragonenkov/catalog/internal/service/grpc"
	catalogv1 "github.com/vladislavdragonenkov/catalog/proto/catalog/v1"
)

// itemClient - подмножество catalogv1.OrderItemServiceClient, которое нужно нагрузке.
type itemClient interface {
	CreateOrderItem(ctx context.Context, in *catalogv1.CreateOrderItemRequest, opts ...grpc.CallOption) (*catalogv1.CreateOrderItemResponse, error)
}

var _ itemClient = catalogv1.OrderItemServiceClient(nil)

type runner struct {
	cfg     config
	api     catalogAPI
	clients []itemClient
	runID   string
	col     *collector

	reserved       atomic.Int64
	soldOut        atomic.Int64
	failed         atomic.Int64
	replayMismatch atomic.Int64
}

// run создаёт товар с остатком cfg.stock и cfg.orders заказов, затем параллельно
// добавляет товар в каждый заказ. Продано должно быть ровно min(stock, orders).
func (r *runner) run(ctx context.Context) (report, error) {
	productID, err := r.api.CreateProduct(ctx, "loadtest-"+r.runID, r.cfg.stock, r.cfg.price)
	if err != nil {
		return report{}, err
	}

	orderIDs := make([]int64, 0, r.cfg.orders)
	for i := 0; i < r.cfg.orders; i++ {
		orderID, err := r.api.CreateOrder(ctx, fmt.Sprintf("loadtest %s #%d", r.runID, i))
		if err != nil {
			return report{}, err
		}
		orderIDs = append(orderIDs, orderID)
	}

	startedAt := time.Now()
	jobs := make(chan int)
	var wg sync.WaitGroup
	for worker := 0; worker < r.cfg.concurrency; worker++ {
		wg.Add(1)
		go func(client itemClient) {
			defer wg.Done()
			for index := range jobs {
				r.scenario(ctx, client, index, orderIDs[index], productID)
			}
		}(r.clients[worker%len(r.clients)])
	}

dispatch:
	for index := range orderIDs {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- index:
		}
	}
	close(jobs)
	wg.Wait()
	duration := time.Since(startedAt)

	finalQuantity, err := r.api.ProductQuantity(context.WithoutCancel(ctx), productID)
	if err != nil {
		return report{}, err
	}

	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: duration.Seconds(),
		Scenarios:       int64(len(orderIDs)),
		Failed:          r.failed.Load(),
		ReplayMismatch:  r.replayMismatch.Load(),
		Methods:         r.col.methodReports(),
		Consistency:     r.checkStock(finalQuantity),
	}
	if duration > 0 {
		result.RPS = float64(result.Scenarios) / duration.Seconds()
	}
	return result, nil
}

func (r *runner) checkStock(finalQuantity int64) consistency {
	reserved := r.reserved.Load()
	expected := r.cfg.stock - reserved
	return consistency{
		InitialStock:  r.cfg.stock,
		Reserved:      reserved,
		SoldOut:       r.soldOut.Load(),
		FinalQuantity: finalQuantity,
		Expected:      expected,
		OK:            expected >= 0 && finalQuantity == expected,
	}
}

// scenario добавляет товар в заказ; при cfg.replay повторяет вызов с тем же ключом
// и проверяет, что вернулась та же позиция.
func (r *runner) scenario(ctx context.Context, client itemClient, index int, orderID, productID int64) {
	key := fmt.Sprintf("lt-%s-%d", r.runID, index)
	req := &catalogv1.CreateOrderItemRequest{OrderId: &orderID, ProductId: &productID}

	item, code := r.create(ctx, client, "CreateOrderItem", key, req)
	switch code {
	case codes.OK:
		r.reserved.Add(1)
	case codes.FailedPrecondition:
		r.soldOut.Add(1)
		return
	default:
		r.failed.Add(1)
		return
	}

	if !r.cfg.replay {
		return
	}
	replayed, code := r.create(ctx, client, "CreateOrderItem/replay", key, req)
	if code != codes.OK || replayed == nil || replayed.GetId() != item.GetId() {
		r.replayMismatch.Add(1)
	}
}

func (r *runner) create(ctx context.Context, client itemClient, method, key string, req *catalogv1.CreateOrderItemRequest) (*catalogv1.OrderItem, codes.Code) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()
	callCtx = metadata.AppendToOutgoingContext(callCtx, grpcsvc.IdempotencyKeyMetadata, key)

	started := time.Now()
	resp, err := client.CreateOrderItem(callCtx, req)
	code := status.Code(err)
	r.col.record(method, time.Since(started), code)
	return resp.GetItem(), code
}

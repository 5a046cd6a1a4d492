// Package grpcsvc - gRPC-интерфейс движка позиций заказа.
package grpcsvc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/association"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
	catalogv1 "github.com/vladislavdragonenkov/catalog/proto/catalog/v1"
)

// IdempotencyKeyMetadata - ключ метаданных для idempotency-key в CreateOrderItem.
const IdempotencyKeyMetadata = "idempotency-key"

// ServiceName - полное имя gRPC-сервиса позиций заказа (для health-check).
var ServiceName = catalogv1.OrderItemService_ServiceDesc.ServiceName

// OrderItemService реализует catalog.v1.OrderItemService поверх движка позиций.
type OrderItemService struct {
	catalogv1.UnimplementedOrderItemServiceServer

	engine *association.Engine
	guard  *idempotency.Guard
	logger *log.Entry
}

var _ catalogv1.OrderItemServiceServer = (*OrderItemService)(nil)

// NewOrderItemService конструирует сервис; guard == nil отключает idempotency-key.
func NewOrderItemService(engine *association.Engine, guard *idempotency.Guard, logger *log.Entry) *OrderItemService {
	if logger == nil {
		logger = log.WithField("component", "order-item-grpc")
	}
	return &OrderItemService{engine: engine, guard: guard, logger: logger}
}

// CreateOrderItem создаёт позицию. Повтор с тем же idempotency-key и тем же
// запросом возвращает сохранённый ответ без повторного списания товара.
func (s *OrderItemService) CreateOrderItem(ctx context.Context, req *catalogv1.CreateOrderItemRequest) (*catalogv1.CreateOrderItemResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	create := func(ctx context.Context) (*catalogv1.CreateOrderItemResponse, error) {
		view, err := s.engine.Create(ctx, domain.OrderItemRequest{OrderID: req.OrderId, ProductID: req.ProductId})
		if err != nil {
			return nil, s.toStatus(err, "create")
		}
		return &catalogv1.CreateOrderItemResponse{Item: toProtoOrderItem(view)}, nil
	}

	key := readIdempotencyKey(ctx)
	if key == "" || s.guard == nil {
		return create(ctx)
	}
	return s.withIdempotency(ctx, key, catalogv1.OrderItemService_CreateOrderItem_FullMethodName, req, create)
}

func (s *OrderItemService) GetOrderItem(ctx context.Context, req *catalogv1.GetOrderItemRequest) (*catalogv1.GetOrderItemResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	view, err := s.engine.Get(ctx, req.GetId())
	if err != nil {
		return nil, s.toStatus(err, "get")
	}
	return &catalogv1.GetOrderItemResponse{Item: toProtoOrderItem(view)}, nil
}

func (s *OrderItemService) ListOrderItems(ctx context.Context, _ *catalogv1.ListOrderItemsRequest) (*catalogv1.ListOrderItemsResponse, error) {
	views, err := s.engine.List(ctx)
	if err != nil {
		return nil, s.toStatus(err, "list")
	}

	resp := &catalogv1.ListOrderItemsResponse{Items: make([]*catalogv1.OrderItem, 0, len(views))}
	for _, view := range views {
		resp.Items = append(resp.Items, toProtoOrderItem(view))
	}
	return resp, nil
}

func (s *OrderItemService) UpdateOrderItem(ctx context.Context, req *catalogv1.UpdateOrderItemRequest) (*catalogv1.UpdateOrderItemResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	view, err := s.engine.Update(ctx, req.GetId(), domain.OrderItemRequest{OrderID: req.OrderId, ProductID: req.ProductId})
	if err != nil {
		return nil, s.toStatus(err, "update")
	}
	return &catalogv1.UpdateOrderItemResponse{Item: toProtoOrderItem(view)}, nil
}

func (s *OrderItemService) DeleteOrderItem(ctx context.Context, req *catalogv1.DeleteOrderItemRequest) (*catalogv1.DeleteOrderItemResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := s.engine.Delete(ctx, req.GetId()); err != nil {
		return nil, s.toStatus(err, "delete")
	}
	return &catalogv1.DeleteOrderItemResponse{}, nil
}

// CodeFor сопоставляет вид ошибки gRPC-коду.
func CodeFor(kind domain.ErrorKind) codes.Code {
	switch kind {
	case domain.KindMissingField, domain.KindInvalidArgument:
		return codes.InvalidArgument
	case domain.KindDuplicateAssociation, domain.KindDuplicateName:
		return codes.AlreadyExists
	case domain.KindNoStockLeft:
		return codes.FailedPrecondition
	case domain.KindNotFound:
		return codes.NotFound
	case domain.KindConflict:
		return codes.Aborted
	case domain.KindUnavailable:
		return codes.Unavailable
	case domain.KindCanceled:
		return codes.Canceled
	default:
		return codes.Internal
	}
}

func (s *OrderItemService) toStatus(err error, operation string) error {
	code := CodeFor(domain.KindOf(err))
	message := err.Error()
	if code == codes.Internal {
		s.logger.WithError(err).WithField("operation", operation).Error("order item rpc failed")
		message = "internal error"
	}
	return status.Error(code, message)
}

func toProtoOrderItem(view domain.OrderItemView) *catalogv1.OrderItem {
	return &catalogv1.OrderItem{
		Id:                 view.ID,
		OrderId:            view.OrderID,
		ProductId:          view.ProductID,
		ProductName:        view.ProductName,
		ProductDescription: view.ProductDescription,
		ProductPrice:       view.ProductPrice.String(),
	}
}

type idempotencyErrorPayload struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

func (s *OrderItemService) withIdempotency(
	ctx context.Context,
	key, method string,
	req proto.Message,
	handler func(context.Context) (*catalogv1.CreateOrderItemResponse, error),
) (*catalogv1.CreateOrderItemResponse, error) {
	payload, err := proto.MarshalOptions{Deterministic: true}.Marshal(req)
	if err != nil {
		s.logger.WithError(err).WithField("method", method).Warn("failed to build idempotency request hash")
		return nil, status.Error(codes.Internal, "failed to initialize idempotency request")
	}

	var fresh *catalogv1.CreateOrderItemResponse
	resp, replayed, err := s.guard.Do(ctx, key, idempotency.RequestHash(method, payload), func(ctx context.Context) idempotency.Response {
		out, runErr := handler(ctx)
		if runErr != nil {
			st := status.Convert(runErr)
			body, _ := json.Marshal(idempotencyErrorPayload{Code: uint32(st.Code()), Message: st.Message()})
			return idempotency.Response{
				StatusCode: int(st.Code()),
				Body:       body,
				Failed:     true,
				Retryable:  st.Code() == codes.Unavailable,
			}
		}
		fresh = out
		body, err := protojson.Marshal(out)
		if err != nil {
			s.logger.WithError(err).WithField("idempotency_key", key).Warn("failed to encode idempotent response")
		}
		return idempotency.Response{StatusCode: int(codes.OK), Body: body}
	})
	switch {
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		return nil, status.Error(codes.AlreadyExists, "idempotency key is already used with different request payload")
	case errors.Is(err, idempotency.ErrInProgress):
		return nil, status.Error(codes.Aborted, idempotency.ErrInProgress.Error())
	case err != nil:
		s.logger.WithError(err).WithField("idempotency_key", key).Warn("idempotency guard failed")
		return nil, s.toStatus(err, "create")
	}

	if !replayed && fresh != nil {
		return fresh, nil
	}
	return decodeStoredResponse(resp)
}

func decodeStoredResponse(resp idempotency.Response) (*catalogv1.CreateOrderItemResponse, error) {
	if resp.Failed {
		var payload idempotencyErrorPayload
		if err := json.Unmarshal(resp.Body, &payload); err != nil || payload.Code == uint32(codes.OK) {
			return nil, status.Error(codes.Internal, "previous request with the same idempotency key failed")
		}
		return nil, status.Error(codes.Code(payload.Code), payload.Message)
	}

	if len(resp.Body) == 0 {
		return nil, status.Error(codes.Internal, "idempotency cache is empty")
	}
	out := &catalogv1.CreateOrderItemResponse{}
	if err := protojson.Unmarshal(resp.Body, out); err != nil {
		return nil, status.Error(codes.Internal, "failed to decode cached idempotency response")
	}
	return out, nil
}

func readIdempotencyKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(IdempotencyKeyMetadata)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

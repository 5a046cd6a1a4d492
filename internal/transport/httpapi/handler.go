// Package httpapi - REST-интерфейс каталога на chi.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/association"
	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
)

// IdempotencyKeyHeader - заголовок, по которому повтор POST /order-items не создаёт дубль.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxBodyBytes = 1 << 20

// Handler обслуживает HTTP-запросы к товарам, заказам и позициям заказов.
type Handler struct {
	catalog *catalog.Service
	engine  *association.Engine
	guard   *idempotency.Guard
	logger  *log.Entry
}

// NewHandler создаёт Handler; guard == nil отключает Idempotency-Key.
func NewHandler(catalogService *catalog.Service, engine *association.Engine, guard *idempotency.Guard, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	return &Handler{catalog: catalogService, engine: engine, guard: guard, logger: logger}
}

// Routes собирает chi-роутер со всеми маршрутами API.
func (h *Handler) Routes(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
		r.Get("/{id}/items", h.listOrderItemsByOrder)
		r.Get("/{id}/timeline", h.orderTimeline)
	})
	r.Route("/order-items", func(r chi.Router) {
		r.Post("/", h.createOrderItem)
		r.Get("/", h.listOrderItems)
		r.Get("/{id}", h.getOrderItem)
		r.Put("/{id}", h.updateOrderItem)
		r.Delete("/{id}", h.deleteOrderItem)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, domain.NotFoundf("No route for %s %s.", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusMethodNotAllowed
		writeJSON(w, status, errorBody{
			HTTPCode:        status,
			Message:         http.StatusText(status),
			DetailedMessage: "Method " + r.Method + " is not supported for " + r.URL.Path + ".",
		})
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(started).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Debug("http request")
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	product, err := h.catalog.CreateProduct(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProduct(product))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(products, toProduct))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.ProductUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	product, err := h.catalog.UpdateProduct(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(product))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.catalog.CreateOrder(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrder(order))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.catalog.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(orders, toOrder))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.catalog.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrder(order))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.catalog.UpdateOrder(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrder(order))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.catalog.DeleteOrder(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listOrderItemsByOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views, err := h.catalog.ListOrderItemsByOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, toOrderItem))
}

func (h *Handler) orderTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	events, err := h.catalog.OrderTimeline(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(events, toTimelineEvent))
}

func (h *Handler) createOrderItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	create := func(ctx context.Context) idempotency.Response {
		var req domain.OrderItemRequest
		if err := decodeBytes(body, &req); err != nil {
			return h.failure(r, err)
		}
		view, err := h.engine.Create(ctx, req)
		if err != nil {
			return h.failure(r, err)
		}
		payload, err := json.Marshal(toOrderItem(view))
		if err != nil {
			return h.failure(r, domain.WrapError(domain.KindUnexpected, err, "encode response"))
		}
		return idempotency.Response{StatusCode: http.StatusCreated, Body: payload}
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	if key == "" || h.guard == nil {
		resp := create(r.Context())
		writeRaw(w, resp.StatusCode, resp.Body)
		return
	}

	hash := idempotency.RequestHash(r.Method+" "+r.URL.Path, body)
	resp, replayed, err := h.guard.Do(r.Context(), key, hash, create)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
	}
	writeRaw(w, resp.StatusCode, resp.Body)
}

// failure логирует ошибку и упаковывает её в сохраняемый ответ.
func (h *Handler) failure(r *http.Request, err error) idempotency.Response {
	status, body := encodeError(err)
	h.logger.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	}).Debug("request rejected")
	return idempotency.Response{StatusCode: status, Body: body, Failed: true, Retryable: domain.IsRetryable(err)}
}

func (h *Handler) listOrderItems(w http.ResponseWriter, r *http.Request) {
	views, err := h.engine.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, toOrderItem))
}

func (h *Handler) getOrderItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.engine.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItem(view))
}

func (h *Handler) updateOrderItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.OrderItemRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.engine.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItem(view))
}

func (h *Handler) deleteOrderItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.engine.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.WrapError(domain.KindInvalidArgument, err, "id must be an integer, got: '%s'", raw)
	}
	return id, nil
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.WrapError(domain.KindInvalidArgument, err, "failed to read request body")
	}
	return body, nil
}

func decodeBody(r *http.Request, dst any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return decodeBytes(body, dst)
}

func decodeBytes(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.NewError(domain.KindInvalidArgument, "request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.WrapError(domain.KindInvalidArgument, err, "malformed request body: %v", err)
	}
	return nil
}

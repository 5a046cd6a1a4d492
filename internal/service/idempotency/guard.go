package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// ErrInProgress - запрос с тем же ключом ещё выполняется.
var ErrInProgress = errors.New("request with the same idempotency key is already processing")

// Response - сохраняемый результат запроса.
// StatusCode трактуется транспортом: HTTP-статус или gRPC-код.
type Response struct {
	StatusCode int
	Body       []byte
	// Failed: запрос завершился ошибкой, повтор воспроизводит ту же ошибку.
	Failed bool
	// Retryable: ошибка временная (хранилище недоступно). Ответ не сохраняется,
	// ключ освобождается, и повтор с тем же ключом выполнит запрос заново.
	Retryable bool
}

// releaseTimeout ограничивает освобождение ключа, когда контекст запроса уже истёк.
const releaseTimeout = 5 * time.Second

// Guard выполняет запрос не более одного раза на ключ и воспроизводит
// сохранённый ответ при повторе с тем же телом.
type Guard struct {
	repo   domain.IdempotencyRepository
	ttl    time.Duration
	now    func() time.Time
	logger *log.Entry
}

// NewGuard создаёт Guard; ttl <= 0 означает domain.DefaultIdempotencyTTL.
func NewGuard(repo domain.IdempotencyRepository, ttl time.Duration, logger *log.Entry) *Guard {
	if ttl <= 0 {
		ttl = domain.DefaultIdempotencyTTL
	}
	if logger == nil {
		logger = log.WithField("component", "idempotency-guard")
	}
	return &Guard{
		repo:   repo,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// RequestHash считает sha256 от операции и тела запроса.
func RequestHash(operation string, body []byte) string {
	sum := sha256.New()
	sum.Write([]byte(operation))
	sum.Write([]byte{0})
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil))
}

// Do выполняет fn под ключом key. replayed=true означает, что ответ взят из хранилища
// и fn не вызывалась. Ключ с другим hash даёт domain.ErrIdempotencyHashMismatch,
// незавершённый запрос с тем же ключом - ErrInProgress.
func (g *Guard) Do(ctx context.Context, key, requestHash string, fn func(ctx context.Context) Response) (resp Response, replayed bool, err error) {
	key = strings.TrimSpace(key)
	entry := g.logger.WithField("idempotency_key", key)

	_, err = g.repo.CreateProcessing(ctx, key, requestHash, g.now().Add(g.ttl))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrIdempotencyKeyAlreadyExists):
		return g.replay(ctx, key)
	default:
		return Response{}, false, err
	}

	resp = fn(ctx)

	if resp.Failed && resp.Retryable {
		g.release(ctx, entry, key)
		return resp, false, nil
	}

	store := g.repo.MarkDone
	if resp.Failed {
		store = g.repo.MarkFailed
	}
	if storeErr := store(ctx, key, resp.Body, resp.StatusCode); storeErr != nil {
		entry.WithError(storeErr).Warn("failed to store idempotent response")
	}
	return resp, false, nil
}

// release удаляет processing-запись. Контекст запроса мог истечь вместе с ошибкой,
// поэтому удаление идёт в отдельном контексте с собственным таймаутом.
func (g *Guard) release(ctx context.Context, entry *log.Entry, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := g.repo.Delete(ctx, key); err != nil {
		entry.WithError(err).Warn("failed to release idempotency key after retryable failure")
		return
	}
	entry.Debug("idempotency key released after retryable failure")
}

func (g *Guard) replay(ctx context.Context, key string) (Response, bool, error) {
	record, err := g.repo.Get(ctx, key)
	if err != nil {
		return Response{}, false, fmt.Errorf("load idempotency record: %w", err)
	}

	switch record.Status {
	case domain.IdempotencyStatusDone, domain.IdempotencyStatusFailed:
		g.logger.WithField("idempotency_key", key).Debug("replaying stored response")
		return Response{
			StatusCode: record.StatusCode,
			Body:       record.ResponseBody,
			Failed:     record.Status == domain.IdempotencyStatusFailed,
		}, true, nil
	case domain.IdempotencyStatusProcessing:
		return Response{}, false, ErrInProgress
	default:
		return Response{}, false, fmt.Errorf("unknown idempotency record status %q", record.Status)
	}
}

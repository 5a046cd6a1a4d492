package redis

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const defaultLocalRedisURL = "redis://localhost:6379/15"

func openRedisForIntegrationTest(t *testing.T) *IdempotencyRepository {
	t.Helper()

	url := strings.TrimSpace(os.Getenv("CATALOG_REDIS_TEST_URL"))
	if url == "" {
		url = defaultLocalRedisURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	repo, err := Open(ctx, url)
	if err != nil {
		t.Skipf("redis is not available for integration tests: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestIdempotencyRepository_RedisLifecycle(t *testing.T) {
	repo := openRedisForIntegrationTest(t)
	ctx := context.Background()
	key := "idem-" + uuid.NewString()
	ttl := time.Now().UTC().Add(time.Minute).Round(time.Second)

	created, err := repo.CreateProcessing(ctx, key, "hash-a", ttl)
	require.NoError(t, err)
	require.Equal(t, domain.IdempotencyStatusProcessing, created.Status)

	_, err = repo.CreateProcessing(ctx, key, "hash-a", ttl)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)

	_, err = repo.CreateProcessing(ctx, key, "hash-b", ttl)
	require.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)

	require.NoError(t, repo.MarkDone(ctx, key, []byte(`{"id":1}`), 201))

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, domain.IdempotencyStatusDone, got.Status)
	require.Equal(t, 201, got.StatusCode)
	require.JSONEq(t, `{"id":1}`, string(got.ResponseBody))
	require.True(t, got.TTLAt.Equal(ttl))

	remaining, err := repo.client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	require.Greater(t, remaining, time.Duration(0), "MarkDone must keep the key TTL")
}

func TestIdempotencyRepository_RedisMissingKey(t *testing.T) {
	repo := openRedisForIntegrationTest(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing-"+uuid.NewString())
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)

	err = repo.MarkFailed(ctx, "missing-"+uuid.NewString(), nil, 500)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)

	removed, err := repo.DeleteExpired(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestIdempotencyRepository_Validation(t *testing.T) {
	repo := NewIdempotencyRepository(nil)
	ctx := context.Background()

	_, err := repo.CreateProcessing(ctx, " ", "hash", time.Time{})
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)

	_, err = repo.CreateProcessing(ctx, "key", "", time.Time{})
	require.ErrorIs(t, err, domain.ErrIdempotencyRequestHashRequired)

	_, err = repo.Get(ctx, "")
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
}

func TestRecordCodec(t *testing.T) {
	now := time.Now().UTC().Round(time.Second)
	src := domain.IdempotencyRecord{
		Key:          "k",
		RequestHash:  "h",
		ResponseBody: []byte(`{}`),
		StatusCode:   200,
		Status:       domain.IdempotencyStatusDone,
		TTLAt:        now.Add(time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	raw, err := encode(src)
	require.NoError(t, err)
	got, err := decode(raw)
	require.NoError(t, err)
	require.Equal(t, src.Key, got.Key)
	require.Equal(t, src.Status, got.Status)
	require.True(t, got.TTLAt.Equal(src.TTLAt))

	_, err = decode([]byte(`{"key":"k","status":"bogus"}`))
	require.Error(t, err)

	require.Equal(t, minTTL, ttlUntil(now.Add(-time.Hour), now))
	require.Equal(t, time.Hour, ttlUntil(now.Add(time.Hour), now))
}

func TestIdempotencyRepository_RedisDeleteReleasesKey(t *testing.T) {
	repo := openRedisForIntegrationTest(t)
	ctx := context.Background()
	key := "idem-" + uuid.NewString()
	ttl := time.Now().UTC().Add(time.Minute)

	_, err := repo.CreateProcessing(ctx, key, "hash-a", ttl)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, key))

	_, err = repo.Get(ctx, key)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)

	_, err = repo.CreateProcessing(ctx, key, "hash-a", ttl)
	require.NoError(t, err)
}

package cached

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

type countingProvider struct {
	companies []models.Company
	err       error
	calls     atomic.Int32
}

func (c *countingProvider) Name() string { return "postgres" }

func (c *countingProvider) ListAll(ctx context.Context) ([]models.Company, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.companies, nil
}

func testCompanies() []models.Company {
	return []models.Company{
		{ID: "a", Name: "Acme", Industry: "Tech", AveragePackage: 12, HiringTrend: models.HiringTrendIncreasing},
		{ID: "b", Name: "Zenith", Industry: "Finance", AveragePackage: 8, HiringTrend: models.HiringTrendStable},
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "directory:companies:postgres", BuildCacheKey("", "postgres"))
	assert.Equal(t, "staging:companies:elasticsearch", BuildCacheKey("staging", "elasticsearch"))
}

// ==========================
// miniredis
// ==========================

func TestProvider_MissThenHit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := &countingProvider{companies: testCompanies()}
	p := NewProvider(inner, client, time.Minute, "test", createTestLogger(t))

	first, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCompanies(), first)
	assert.True(t, mr.Exists("test:companies:postgres"))
	assert.Equal(t, time.Minute, mr.TTL("test:companies:postgres"))

	second, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())

	mr.FastForward(2 * time.Minute)
	_, err = p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestProvider_Invalidate(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := &countingProvider{companies: testCompanies()}
	p := NewProvider(inner, client, time.Minute, "test", createTestLogger(t))

	_, err = p.ListAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Invalidate(context.Background()))
	assert.False(t, mr.Exists("test:companies:postgres"))

	_, err = p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestProvider_CorruptEntryIsReplaced(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	require.NoError(t, mr.Set("test:companies:postgres", "{not json"))

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := &countingProvider{companies: testCompanies()}
	p := NewProvider(inner, client, time.Minute, "test", createTestLogger(t))

	got, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	stored, err := mr.Get("test:companies:postgres")
	require.NoError(t, err)
	var decoded []models.Company
	assert.NoError(t, json.Unmarshal([]byte(stored), &decoded))
}

// ==========================
// redismock
// ==========================

func TestProvider_WritesThroughOnMiss(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	inner := &countingProvider{companies: testCompanies()}
	p := NewProvider(inner, redisClient, 10*time.Minute, "directory", createTestLogger(t))

	cacheKey := "directory:companies:postgres"
	cachedData, err := json.Marshal(testCompanies())
	require.NoError(t, err)

	redisMock.ExpectGet(cacheKey).RedisNil()
	redisMock.ExpectSet(cacheKey, cachedData, 10*time.Minute).SetVal("OK")

	got, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCompanies(), got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProvider_RedisDownFallsThrough(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	inner := &countingProvider{companies: testCompanies()}
	p := NewProvider(inner, redisClient, time.Minute, "directory", createTestLogger(t))

	cacheKey := "directory:companies:postgres"
	cachedData, err := json.Marshal(testCompanies())
	require.NoError(t, err)

	redisMock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))
	redisMock.ExpectSet(cacheKey, cachedData, time.Minute).SetErr(errors.New("connection refused"))

	got, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProvider_InvalidateRedisDown(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	p := NewProvider(&countingProvider{}, redisClient, time.Minute, "directory", createTestLogger(t))

	redisMock.ExpectDel("directory:companies:postgres").SetErr(errors.New("connection refused"))

	err := p.Invalidate(context.Background())
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeCacheUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProvider_InnerErrorIsReturned(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	inner := &countingProvider{err: errors.New("db down")}
	p := NewProvider(inner, redisClient, time.Minute, "directory", createTestLogger(t))

	redisMock.ExpectGet("directory:companies:postgres").RedisNil()

	_, err := p.ListAll(context.Background())
	assert.EqualError(t, err, "db down")
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

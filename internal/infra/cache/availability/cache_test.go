package availability

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// fakeRedis хранит значения в памяти
type fakeRedis struct {
	data   map[string]string
	ttl    map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type countingMetrics struct {
	results []string
}

func (m *countingMetrics) IncCacheRequest(result string) {
	m.results = append(m.results, result)
}

func testWeek(t *testing.T) domain.WeeklySchedule {
	t.Helper()
	week, err := domain.NewWeeklySchedule([]domain.DayAvailability{
		{Day: domain.Monday, Enabled: true, Slots: []domain.TimeRange{{Start: "09:00", End: "12:00"}}},
		{Day: domain.Saturday, Enabled: false, Slots: []domain.TimeRange{{Start: "10:00", End: "14:00"}}},
	})
	require.NoError(t, err)
	return week
}

func TestCache_RoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	m := &countingMetrics{}
	cache := NewCache(rdb, 5*time.Minute, m)
	ctx := context.Background()

	_, version, found, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, version)

	week := testWeek(t)
	require.NoError(t, cache.Set(ctx, 7, version, week))
	assert.Equal(t, 5*time.Minute, rdb.ttl["availability:7:v0"])

	got, _, found, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, week, got)

	require.NoError(t, cache.Invalidate(ctx, 7))
	_, version, found, err = cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(1), version)

	assert.Equal(t, []string{"miss", "hit", "miss"}, m.results)
}

func TestCache_RedisError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	m := &countingMetrics{}
	cache := NewCache(rdb, time.Minute, m)

	_, _, found, err := cache.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCache)
	assert.False(t, found)
	assert.Equal(t, []string{"error"}, m.results)
}

func TestCache_CorruptedValue(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["availability:1:v0"] = `[{"day":"someday"}]`
	cache := NewCache(rdb, time.Minute, &countingMetrics{})

	_, _, _, err := cache.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCache_SetError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.setErr = errors.New("readonly")
	cache := NewCache(rdb, time.Minute, &countingMetrics{})

	err := cache.Set(context.Background(), 1, 0, testWeek(t))
	assert.ErrorIs(t, err, ErrCache)
}

func TestCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewCache(rdb, time.Minute, &countingMetrics{})
	ctx := context.Background()

	// Читатель получил версию и пошёл в БД за старым расписанием
	_, staleVersion, found, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	require.False(t, found)

	// Тем временем мастер сохранил новое расписание
	require.NoError(t, cache.Invalidate(ctx, 7))

	// Читатель кладёт в кэш то, что успел прочитать
	require.NoError(t, cache.Set(ctx, 7, staleVersion, testWeek(t)))

	_, version, found, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, staleVersion+1, version)
}

func TestCache_CorruptedVersion(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["availability:1:version"] = "abc"
	m := &countingMetrics{}
	cache := NewCache(rdb, time.Minute, m)

	_, _, found, err := cache.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDecode)
	assert.False(t, found)
	assert.Equal(t, []string{"error"}, m.results)
}

package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

const keyPrefix = "availability:"

// Cache кэш недельных расписаний мастеров в redis
//
// У каждого мастера есть счётчик версий расписания; значение хранится под ключом
// с текущей версией. Invalidate увеличивает версию, поэтому запись, сделанная по
// устаревшей версии (расписание прочитано из БД до обновления), больше не читается
// и просто истекает по ttl
type Cache struct {
	client  RedisClient
	ttl     time.Duration
	metrics Metrics
}

// NewCache создает кэш расписаний
func NewCache(client RedisClient, ttl time.Duration, metrics Metrics) *Cache {
	return &Cache{client: client, ttl: ttl, metrics: metrics}
}

type cachedDay struct {
	Day     string             `json:"day"`
	Enabled bool               `json:"enabled"`
	Slots   []domain.TimeRange `json:"slots"`
}

// Get возвращает расписание из кэша и версию, под которой его нужно сохранять
// found == false при промахе; версия возвращается и при промахе
func (c *Cache) Get(ctx context.Context, professionalID int64) (week domain.WeeklySchedule, version int64, found bool, err error) {
	version, err = c.version(ctx, professionalID)
	if err != nil {
		c.metrics.IncCacheRequest("error")
		return domain.WeeklySchedule{}, 0, false, err
	}

	raw, err := c.client.Get(ctx, dataKey(professionalID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.IncCacheRequest("miss")
		return domain.WeeklySchedule{}, version, false, nil
	}
	if err != nil {
		c.metrics.IncCacheRequest("error")
		return domain.WeeklySchedule{}, 0, false, fmt.Errorf("%w: get professional=%d: %v", ErrCache, professionalID, err)
	}

	week, err = decode(raw)
	if err != nil {
		c.metrics.IncCacheRequest("error")
		return domain.WeeklySchedule{}, 0, false, fmt.Errorf("%w: professional=%d: %v", ErrDecode, professionalID, err)
	}

	c.metrics.IncCacheRequest("hit")
	return week, version, true, nil
}

// Set сохраняет расписание под версией, полученной из Get до чтения БД
func (c *Cache) Set(ctx context.Context, professionalID int64, version int64, week domain.WeeklySchedule) error {
	raw, err := encode(week)
	if err != nil {
		return fmt.Errorf("%w: encode professional=%d: %v", ErrCache, professionalID, err)
	}
	if err := c.client.Set(ctx, dataKey(professionalID, version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set professional=%d: %v", ErrCache, professionalID, err)
	}
	return nil
}

// Invalidate переводит расписание мастера на новую версию
// Вызывается после коммита обновления в БД
func (c *Cache) Invalidate(ctx context.Context, professionalID int64) error {
	if err := c.client.Incr(ctx, versionKey(professionalID)).Err(); err != nil {
		return fmt.Errorf("%w: incr version professional=%d: %v", ErrCache, professionalID, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, professionalID int64) (int64, error) {
	raw, err := c.client.Get(ctx, versionKey(professionalID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get version professional=%d: %v", ErrCache, professionalID, err)
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: version professional=%d: %v", ErrDecode, professionalID, err)
	}
	return version, nil
}

func versionKey(professionalID int64) string {
	return fmt.Sprintf("%s%d:version", keyPrefix, professionalID)
}

func dataKey(professionalID, version int64) string {
	return fmt.Sprintf("%s%d:v%d", keyPrefix, professionalID, version)
}

func encode(week domain.WeeklySchedule) ([]byte, error) {
	days := make([]cachedDay, 0, domain.DaysInWeek)
	for _, d := range week.Days() {
		days = append(days, cachedDay{Day: d.Day.String(), Enabled: d.Enabled, Slots: d.Slots})
	}
	return json.Marshal(days)
}

func decode(raw []byte) (domain.WeeklySchedule, error) {
	var days []cachedDay
	if err := json.Unmarshal(raw, &days); err != nil {
		return domain.WeeklySchedule{}, err
	}

	result := make([]domain.DayAvailability, 0, len(days))
	for _, d := range days {
		day, err := domain.ParseWeekday(d.Day)
		if err != nil {
			return domain.WeeklySchedule{}, err
		}
		result = append(result, domain.DayAvailability{Day: day, Enabled: d.Enabled, Slots: d.Slots})
	}

	return domain.NewWeeklySchedule(result)
}

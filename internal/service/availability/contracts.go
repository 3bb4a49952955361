package availability

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельного расписания
type AvailabilityRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) (domain.WeeklySchedule, error)
	UpsertDay(ctx context.Context, professionalID int64, day domain.DayAvailability) error
}

// ScheduleCache кэш расписаний; может отсутствовать (nil), если redis не настроен
// Get возвращает версию записи, Set пишет под ней; после Invalidate запись
// по старой версии уже не читается
type ScheduleCache interface {
	Get(ctx context.Context, professionalID int64) (week domain.WeeklySchedule, version int64, found bool, err error)
	Set(ctx context.Context, professionalID int64, version int64, week domain.WeeklySchedule) error
	Invalidate(ctx context.Context, professionalID int64) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

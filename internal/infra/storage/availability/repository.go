package availability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/psqlbuilder"
)

const tableName = "weekly_availability"

// Repository репозиторий недельного расписания мастеров
// Одна строка на (professional_id, day); интервалы дня хранятся в JSONB
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessional возвращает недельное расписание мастера
// Дни без записи в таблице считаются выходными, поэтому мастер без расписания
// получает полностью закрытую неделю, а не ошибку
func (r *Repository) GetByProfessional(ctx context.Context, professionalID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day", "enabled", "slots").
		From(tableName).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.DayAvailability, 0, domain.DaysInWeek)
	for rows.Next() {
		var (
			dayName  string
			enabled  bool
			rawSlots []byte
		)
		if err := rows.Scan(&dayName, &enabled, &rawSlots); err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional - scan row: %v", ErrScanRow, err)
		}

		day, err := domain.ParseWeekday(dayName)
		if err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional: %v", ErrScanRow, err)
		}

		slots, err := decodeSlots(rawSlots)
		if err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional - decode slots for %s: %v", ErrScanRow, day, err)
		}

		days = append(days, domain.DayAvailability{Day: day, Enabled: enabled, Slots: slots})
	}

	if err := rows.Err(); err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional - rows error: %w", ErrScanRow, err)
	}

	week, err := domain.NewWeeklySchedule(days)
	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetByProfessional: %v", ErrScanRow, err)
	}

	return week, nil
}

// UpsertDay создает или заменяет расписание мастера на один день недели
// Для атомарного обновления всей недели вызывать внутри транзакции
func (r *Repository) UpsertDay(ctx context.Context, professionalID int64, day domain.DayAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(professionalID, day)
	if err != nil {
		return err
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDay - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

func upsertQuery(professionalID int64, day domain.DayAvailability) (string, []interface{}, error) {
	rawSlots, err := encodeSlots(day.Slots)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrEncodeSlots, day.Day, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("professional_id", "day", "enabled", "slots").
		Values(professionalID, day.Day.String(), day.Enabled, rawSlots).
		Suffix("ON CONFLICT (professional_id, day) DO UPDATE SET " +
			"enabled = EXCLUDED.enabled, slots = EXCLUDED.slots, updated_at = NOW()").
		ToSql()

	if err != nil {
		return "", nil, fmt.Errorf("%w: UpsertDay - build insert query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

// encodeSlots сериализует интервалы в JSON-массив [{"start":"09:00","end":"12:00"}]
// Пустой список хранится как [], а не null
func encodeSlots(slots []domain.TimeRange) (string, error) {
	if slots == nil {
		slots = []domain.TimeRange{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeSlots(raw []byte) ([]domain.TimeRange, error) {
	slots := make([]domain.TimeRange, 0)
	if len(raw) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-BeautyBooking/internal/slots"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Service сервис для работы с недельным расписанием мастеров
type Service struct {
	repo      AvailabilityRepository
	cache     ScheduleCache
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний
// cache может быть nil
func NewService(
	repo AvailabilityRepository,
	cache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает недельное расписание мастера с замечаниями
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, professionalID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for professional=%d", professionalID)

	week, err := s.GetSchedule(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSchedule(professionalID, week, slots.Inspect(week)), nil
}

// GetSchedule возвращает расписание мастера: сначала из кэша, затем из БД
// Ошибки кэша не прерывают запрос. Прочитанное из БД кладётся в кэш под версией,
// полученной до чтения, чтобы параллельный Update не оставил в кэше старые данные
func (s *Service) GetSchedule(ctx context.Context, professionalID int64) (domain.WeeklySchedule, error) {
	cacheable := false
	var version int64

	if s.cache != nil {
		week, v, found, err := s.cache.Get(ctx, professionalID)
		switch {
		case err != nil:
			s.logger.Warn("GetSchedule: cache error for professional=%d: %v", professionalID, err)
		case found:
			return week, nil
		default:
			cacheable = true
			version = v
		}
	}

	week, err := s.repo.GetByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for professional=%d: %v", professionalID, err)
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, professionalID, version, week); err != nil {
			s.logger.Warn("GetSchedule: failed to cache schedule for professional=%d: %v", professionalID, err)
		}
	}

	return week, nil
}

// Update заменяет недельное расписание мастера
// Доступно только самому мастеру. Пересекающиеся и пустые интервалы сохраняются
// и возвращаются как замечания; отклоняются только нечитаемые дни и время
func (s *Service) Update(ctx context.Context, professionalID int64, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: updating availability for professional=%d by user=%d", professionalID, req.UserID)

	if req.UserID != professionalID {
		s.logger.Warn("Update: user=%d cannot edit availability of professional=%d", req.UserID, professionalID)
		return nil, ErrAccessDenied
	}

	week, err := toDomainSchedule(req.Days)
	if err != nil {
		s.logger.Warn("Update: validation failed for professional=%d: %v", professionalID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, day := range week.Days() {
			if err := s.repo.UpsertDay(ctx, professionalID, day); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, professionalID); err != nil {
			s.logger.Warn("Update: failed to invalidate cache for professional=%d: %v", professionalID, err)
		}
	}

	warnings := slots.Inspect(week)
	s.logger.Info("Update: availability saved for professional=%d, warnings=%d", professionalID, len(warnings))
	return models.FromDomainSchedule(professionalID, week, warnings), nil
}

// toDomainSchedule проверяет и конвертирует дни запроса в расписание
func toDomainSchedule(days []models.DayDTO) (domain.WeeklySchedule, error) {
	if len(days) > domain.DaysInWeek {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: at most %d days allowed", ErrInvalidInput, domain.DaysInWeek)
	}

	seen := make(map[domain.Weekday]bool, len(days))
	result := make([]domain.DayAvailability, 0, len(days))

	for _, dto := range days {
		day, err := domain.ParseWeekday(dto.Day)
		if err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, dto.Day)
		}
		if seen[day] {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: day %s is listed twice", ErrInvalidInput, day)
		}
		seen[day] = true

		if len(dto.Slots) > domain.MaxRangesPerDay {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: %s has more than %d ranges", ErrInvalidInput, day, domain.MaxRangesPerDay)
		}

		ranges := make([]domain.TimeRange, 0, len(dto.Slots))
		for _, r := range dto.Slots {
			start, err := types.NewTimeStringFromString(r.Start)
			if err != nil {
				return domain.WeeklySchedule{}, fmt.Errorf("%w: %s start %q: %v", ErrInvalidInput, day, r.Start, err)
			}
			end, err := types.NewTimeStringFromString(r.End)
			if err != nil {
				return domain.WeeklySchedule{}, fmt.Errorf("%w: %s end %q: %v", ErrInvalidInput, day, r.End, err)
			}
			ranges = append(ranges, domain.TimeRange{Start: start, End: end})
		}

		result = append(result, domain.DayAvailability{Day: day, Enabled: dto.Enabled, Slots: ranges})
	}

	return domain.NewWeeklySchedule(result)
}

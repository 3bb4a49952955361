package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	catalogClient "github.com/m04kA/SMC-BeautyBooking/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBooking/internal/slots"
)

// UseCase use case для получения доступных слотов для записи к мастеру
type UseCase struct {
	reservationRepo  ReservationRepository
	scheduleProvider ScheduleProvider
	catalogClient    CatalogServiceClient
	metrics          Metrics
	options          Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleProvider ScheduleProvider,
	catalogClient CatalogServiceClient,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	if options.StepMinutes <= 0 {
		options.StepMinutes = domain.DefaultSlotStepMinutes
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	return &UseCase{
		reservationRepo:  reservationRepo,
		scheduleProvider: scheduleProvider,
		catalogClient:    catalogClient,
		metrics:          metrics,
		options:          options,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%d, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// Дата из запроса и текущий момент приводятся к часам салона,
	// иначе "сегодня" и прошедшие слоты считаются в чужом поясе
	local := *req
	local.Date = domain.DateIn(req.Date, uc.options.Location)
	req = &local
	now := uc.timeProvider.Now().In(uc.options.Location)

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateServiceOffered(service, req.ProfessionalID); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not offered by professional=%d",
			req.ServiceID, req.ProfessionalID)
		return nil, err
	}

	// 3. Валидация даты
	if err := validateDate(req.Date, now, uc.options.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Недельное расписание мастера
	week, err := uc.scheduleProvider.GetSchedule(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Занимающие бронирования на эту дату
	filter := domain.ProfessionalReservationsFilter{
		ProfessionalID:  req.ProfessionalID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	reservations, err := uc.reservationRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Вычисляем свободные слоты
	free := slots.Resolve(week, reservations, slots.Query{
		Date:                   req.Date,
		ServiceDurationMinutes: service.DurationMinutes,
		Now:                    now,
		StepMinutes:            uc.options.StepMinutes,
	})
	uc.metrics.ObserveSlotsResolved(len(free))

	uc.logger.Info("GetAvailableSlots: resolved %d slots for professional=%d, service=%d, date=%s",
		len(free), req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           free,
	}, nil
}

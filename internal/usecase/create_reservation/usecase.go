package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/SMC-BeautyBooking/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBooking/internal/integrations/events"
	"github.com/m04kA/SMC-BeautyBooking/internal/slots"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo  ReservationRepository
	availabilityRepo AvailabilityRepository
	catalogClient    CatalogServiceClient
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          Metrics
	options          Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availabilityRepo AvailabilityRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
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
		availabilityRepo: availabilityRepo,
		catalogClient:    catalogClient,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		options:          options,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка слота и вставка выполняются в SERIALIZABLE транзакции с блокировкой
// бронирований дня (FOR UPDATE). Если параллельный запрос всё же успел занять
// время, срабатывает уникальный индекс или конфликт сериализации, и клиент
// получает ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, professional=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// Дата из запроса и текущий момент приводятся к часам салона,
	// иначе "сегодня" и прошедшие слоты считаются в чужом поясе
	local := *req
	local.Date = domain.DateIn(req.Date, uc.options.Location)
	req = &local
	now := uc.timeProvider.Now().In(uc.options.Location)

	// 2. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateServiceOffered(service, req.ProfessionalID); err != nil {
		uc.logger.Warn("CreateReservation: service id=%d is not offered by professional=%d",
			req.ServiceID, req.ProfessionalID)
		return nil, err
	}

	// 3. Валидация даты
	if err := validateDate(req.Date, now, uc.options.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 4. Проверка и запись в сериализуемой транзакции.
	// Ошибки БД оборачиваются через %w дважды, чтобы txmanager распознал конфликт сериализации
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		week, err := uc.availabilityRepo.GetByProfessional(txCtx, req.ProfessionalID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}

		filter := domain.ProfessionalReservationsFilter{
			ProfessionalID:  req.ProfessionalID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}
		reservations, err := uc.reservationRepo.GetByProfessionalWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		query := slots.Query{
			Date:                   req.Date,
			ServiceDurationMinutes: service.DurationMinutes,
			Now:                    now,
			StepMinutes:            uc.options.StepMinutes,
		}
		if !slots.Contains(week, reservations, query, req.StartTime) {
			return ErrSlotNotAvailable
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ProfessionalID:  req.ProfessionalID,
			ClientID:        req.ClientID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return err
			}
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(req, err)
	}

	uc.metrics.IncReservationsCreated()
	uc.logger.Info("CreateReservation: created reservation id=%d", result.ID)

	// 5. Событие публикуется после коммита; ошибка публикации не отменяет запись
	if err := uc.publisher.Publish(ctx, events.NewReservationCreated(result, now)); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:              result.ID,
		ProfessionalID:  result.ProfessionalID,
		ClientID:        result.ClientID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// mapTxError сводит гонки за слот к ErrSlotNotAvailable
func (uc *UseCase) mapTxError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.IncReservationConflict(conflictNotInSlots)
		uc.logger.Warn("CreateReservation: time %s on %s is not among free slots of professional=%d",
			req.StartTime, req.Date.Format(domain.DateFormat), req.ProfessionalID)
		return ErrSlotNotAvailable
	case errors.Is(err, reservationRepo.ErrSlotTaken):
		uc.metrics.IncReservationConflict(conflictUniqueViolation)
		uc.logger.Warn("CreateReservation: slot %s on %s was taken concurrently, professional=%d",
			req.StartTime, req.Date.Format(domain.DateFormat), req.ProfessionalID)
		return ErrSlotNotAvailable
	case errors.Is(err, txmanager.ErrSerialization):
		uc.metrics.IncReservationConflict(conflictSerialization)
		uc.logger.Warn("CreateReservation: serialization retries exhausted for professional=%d: %v",
			req.ProfessionalID, err)
		return ErrSlotNotAvailable
	default:
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

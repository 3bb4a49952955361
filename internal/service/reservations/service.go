package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BeautyBooking/internal/integrations/events"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его клиент и мастер
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !reservation.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListByClient получает историю бронирований клиента
// Клиент видит только свои бронирования
func (s *Service) ListByClient(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByClient: fetching reservations for client=%d by user=%d, status=%v",
		req.ClientID, req.UserID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("ListByClient: access denied for user=%d to client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d reservations for client=%d", len(reservations), req.ClientID)
	return models.FromDomainReservationList(reservations), nil
}

// ListByProfessional получает бронирования мастера с фильтрацией по периоду и статусу
// Доступно только самому мастеру
func (s *Service) ListByProfessional(ctx context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByProfessional: fetching reservations for professional=%d by user=%d, includeInactive=%t",
		req.ProfessionalID, req.UserID, req.IncludeInactive)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("ListByProfessional: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByProfessional: invalid filter for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByProfessional: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListByProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByProfessional: fetched %d reservations for professional=%d", len(reservations), req.ProfessionalID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Отменить может клиент или мастер, пока бронирование в статусе pending или accepted
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long (max %d)", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.getReservation(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !reservation.IsParticipant(req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return nil, ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusChanged) {
			s.logger.Warn("Cancel: reservation id=%d changed status concurrently", id)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	previous := reservation.Status
	reservation.Status = domain.StatusCancelled
	reservation.CancellationReason = req.CancellationReason
	reservation.CancelledAt = &now
	reservation.UpdatedAt = now

	s.publish(ctx, events.NewReservationStatusChanged(reservation, previous, req.UserID, now))

	s.logger.Info("Cancel: reservation id=%d cancelled by user=%d", id, req.UserID)
	return models.FromDomainReservation(reservation), nil
}

// UpdateStatus принимает или отклоняет бронирование
// Доступно только мастеру и только из статуса pending
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if reservation.ProfessionalID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not the professional of reservation id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d",
			reservation.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	previous := reservation.Status
	if err := s.reservationRepo.UpdateStatus(ctx, id, previous, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusChanged) {
			s.logger.Warn("UpdateStatus: reservation id=%d changed status concurrently", id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	reservation.Status = newStatus
	reservation.UpdatedAt = now

	s.publish(ctx, events.NewReservationStatusChanged(reservation, previous, req.UserID, now))

	s.logger.Info("UpdateStatus: reservation id=%d moved %s -> %s", id, previous, newStatus)
	return models.FromDomainReservation(reservation), nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// publish отправляет событие; ошибка публикации не отменяет уже сохранённое изменение
func (s *Service) publish(ctx context.Context, event events.ReservationEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish event for reservation id=%d: %v", event.EventType, event.ReservationID, err)
	}
}

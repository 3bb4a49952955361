package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusAccepted  ReservationStatus = "accepted"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation бронирование услуги клиентом у мастера
type Reservation struct {
	ID              int64
	ProfessionalID  int64
	ClientID        int64
	ServiceID       int64
	Date            time.Time // Календарная дата (время не используется)
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying true, если бронирование занимает время в календаре мастера
// Отклонённые и отменённые бронирования не блокируют новые
func (r *Reservation) IsOccupying() bool {
	return r.Status == StatusPending || r.Status == StatusAccepted
}

// CanBeCancelled true, если бронирование ещё можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusAccepted
}

// CanTransitionTo проверяет допустимость смены статуса мастером
// pending -> accepted | rejected; accepted -> rejected не допускается, только отмена
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.Status != StatusPending {
		return false
	}
	return next == StatusAccepted || next == StatusRejected
}

// IsParticipant true, если пользователь является клиентом или мастером этого бронирования
func (r *Reservation) IsParticipant(userID int64) bool {
	return r.ClientID == userID || r.ProfessionalID == userID
}

// ParseReservationStatus конвертирует строку в статус с валидацией
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	status := ReservationStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}

// ProfessionalReservationsFilter фильтр бронирований мастера
type ProfessionalReservationsFilter struct {
	ProfessionalID  int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать отклонённые и отменённые
}

// IsSingleDay true, если фильтр ограничен одной датой
func (f ProfessionalReservationsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}

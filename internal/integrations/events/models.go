package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// Типы событий бронирований
const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent событие жизненного цикла бронирования
type ReservationEvent struct {
	EventID         string     `json:"event_id"`
	EventType       string     `json:"event_type"`
	OccurredAt      time.Time  `json:"occurred_at"`
	ReservationID   int64      `json:"reservation_id"`
	ProfessionalID  int64      `json:"professional_id"`
	ClientID        int64      `json:"client_id"`
	ServiceID       int64      `json:"service_id"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	PreviousStatus  *string    `json:"previous_status,omitempty"`
	ChangedBy       *int64     `json:"changed_by,omitempty"`
	Reason          *string    `json:"reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

// NewReservationCreated событие создания бронирования
func NewReservationCreated(r *domain.Reservation, now time.Time) ReservationEvent {
	return newReservationEvent(TypeReservationCreated, r, now)
}

// NewReservationStatusChanged событие смены статуса бронирования
func NewReservationStatusChanged(r *domain.Reservation, previous domain.ReservationStatus, changedBy int64, now time.Time) ReservationEvent {
	e := newReservationEvent(TypeReservationStatusChanged, r, now)
	prev := string(previous)
	e.PreviousStatus = &prev
	e.ChangedBy = &changedBy
	e.Reason = r.CancellationReason
	e.CancelledAt = r.CancelledAt
	return e
}

func newReservationEvent(eventType string, r *domain.Reservation, now time.Time) ReservationEvent {
	return ReservationEvent{
		EventID:         uuid.NewString(),
		EventType:       eventType,
		OccurredAt:      now.UTC(),
		ReservationID:   r.ID,
		ProfessionalID:  r.ProfessionalID,
		ClientID:        r.ClientID,
		ServiceID:       r.ServiceID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
	}
}

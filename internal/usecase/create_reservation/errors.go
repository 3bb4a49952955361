package create_reservation

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrServiceNotOffered возвращается, когда услуга не принадлежит мастеру или отключена
	ErrServiceNotOffered = errors.New("create_reservation: service is not offered by this professional")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда выбранного времени нет среди свободных слотов
	// или его только что занял другой клиент
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// Причины отказа в записи для метрик
const (
	conflictNotInSlots      = "not_in_slots"
	conflictUniqueViolation = "unique_violation"
	conflictSerialization   = "serialization"
)

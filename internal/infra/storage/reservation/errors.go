package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда активное бронирование на это время уже существует
	// (нарушение уникального индекса reservations_active_slot_uniq)
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrStatusChanged возвращается, когда статус бронирования изменился конкурентно
	ErrStatusChanged = errors.New("reservation.repository: reservation status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

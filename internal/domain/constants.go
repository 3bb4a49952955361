package domain

// Шаг сетки слотов в минутах
// Одно и то же значение используется при выдаче слотов и при проверке создаваемого бронирования,
// иначе клиент сможет выбрать слот, который сервер потом отклонит
const DefaultSlotStepMinutes = 30

// Горизонт записи по умолчанию, дней; 0 = без ограничений
const DefaultAdvanceBookingDays = 60

// Ограничения бизнес-валидации
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MaxAdvanceBookingDays       = 365
	MaxRangesPerDay             = 24
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusCancelled,
}

// OccupyingStatuses статусы, которые занимают время в календаре мастера
var OccupyingStatuses = []ReservationStatus{
	StatusPending,
	StatusAccepted,
}

// InactiveStatuses статусы, которые не блокируют новые бронирования
var InactiveStatuses = []ReservationStatus{
	StatusRejected,
	StatusCancelled,
}

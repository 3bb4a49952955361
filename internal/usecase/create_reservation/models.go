package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID       int64            // ID клиента (X-User-ID)
	ProfessionalID int64            // ID мастера
	ServiceID      int64            // ID услуги
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала (например, "10:00")
	Notes          *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ProfessionalID  int64
	ClientID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Options параметры записи из конфигурации
type Options struct {
	StepMinutes        int            // Шаг сетки; должен совпадать с get_available_slots
	AdvanceBookingDays int            // 0 = без ограничений
	Location           *time.Location // Часовой пояс салона; nil = time.Local
}

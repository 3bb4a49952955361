package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID int64     // ID мастера
	ServiceID      int64     // ID услуги
	Date           time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	ProfessionalID  int64              // ID мастера
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Длительность услуги
	Slots           []types.TimeString // Времена начала по возрастанию, никогда не nil
}

// Options параметры выдачи слотов из конфигурации
type Options struct {
	StepMinutes        int            // Шаг сетки; должен совпадать с create_reservation
	AdvanceBookingDays int            // 0 = без ограничений
	Location           *time.Location // Часовой пояс салона; nil = time.Local
}

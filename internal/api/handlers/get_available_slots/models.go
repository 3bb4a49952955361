package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_available_slots"
)

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(professionalID, serviceID int64, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	}, nil
}

// FromUseCaseResponse ответ: массив времён начала ["09:00", "09:30", ...]
func FromUseCaseResponse(resp *getAvailableSlots.Response) []string {
	result := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		result = append(result, slot.String())
	}
	return result
}

package update_weekly_availability

import "github.com/m04kA/SMC-BeautyBooking/internal/service/availability/models"

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Days []models.DayDTO `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID int64) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		UserID: userID,
		Days:   r.Days,
	}
}

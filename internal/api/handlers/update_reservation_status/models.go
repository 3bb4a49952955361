package update_reservation_status

import "github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"

// UpdateStatusRequest HTTP request model: {"status": "accepted"|"rejected"}
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
}

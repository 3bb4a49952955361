package cancel_reservation

import (
	"strings"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-BeautyBooking/pkg/ptr"
)

// CancelReservationRequest HTTP request model; тело запроса необязательно
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
// Пустая причина не сохраняется
func (r *CancelReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	req := &models.CancelReservationRequest{UserID: userID}
	if reason := strings.TrimSpace(ptr.Value(r.CancellationReason)); reason != "" {
		req.CancellationReason = ptr.Ptr(reason)
	}
	return req
}

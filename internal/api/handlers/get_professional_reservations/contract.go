package get_professional_reservations

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
)

type ReservationService interface {
	ListByProfessional(ctx context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

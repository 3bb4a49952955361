package get_client_reservations

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
)

type ReservationService interface {
	ListByClient(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

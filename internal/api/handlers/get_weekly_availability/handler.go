package get_weekly_availability

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
)

const msgInvalidProfessionalID = "некорректный ID мастера"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/availability
// Мастер без сохранённого расписания получает семь выходных дней
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil || professionalID <= 0 {
		h.logger.Warn("GET /professionals/{id}/availability - Invalid professional ID: %s", mux.Vars(r)["professionalId"])
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	availability, err := h.service.Get(r.Context(), professionalID)
	if err != nil {
		h.logger.Error("GET /professionals/{id}/availability - Failed to get availability: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/availability - Availability retrieved: professional_id=%d, warnings=%d",
		professionalID, len(availability.Warnings))
	handlers.RespondJSON(w, http.StatusOK, availability)
}

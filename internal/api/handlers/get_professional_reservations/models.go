package get_professional_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задаёт один день и имеет приоритет над startDate/endDate
func ToServiceRequest(professionalID, userID int64, query url.Values) (*models.GetProfessionalReservationsRequest, error) {
	req := &models.GetProfessionalReservationsRequest{
		UserID:          userID,
		ProfessionalID:  professionalID,
		IncludeInactive: false,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if s := query.Get("startDate"); s != "" {
			start, err := time.Parse(domain.DateFormat, s)
			if err != nil {
				return nil, fmt.Errorf("invalid startDate: %w", err)
			}
			req.StartDate = &start
		}
		if s := query.Get("endDate"); s != "" {
			end, err := time.Parse(domain.DateFormat, s)
			if err != nil {
				return nil, fmt.Errorf("invalid endDate: %w", err)
			}
			req.EndDate = &end
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if s := query.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

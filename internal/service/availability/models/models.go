package models

import (
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/internal/slots"
)

// Request модели

// TimeRangeDTO интервал работы "HH:MM"-"HH:MM"
type TimeRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayDTO расписание одного дня недели
type DayDTO struct {
	Day     string         `json:"day"` // "monday".."sunday"
	Enabled bool           `json:"enabled"`
	Slots   []TimeRangeDTO `json:"slots"`
}

// UpdateAvailabilityRequest запрос на замену недельного расписания
// Дни, не переданные в запросе, становятся выходными
type UpdateAvailabilityRequest struct {
	UserID int64    `json:"userId"`
	Days   []DayDTO `json:"days"`
}

// Response модели

// WarningDTO замечание к расписанию
type WarningDTO struct {
	Day     string        `json:"day"`
	Kind    string        `json:"kind"`
	Range   TimeRangeDTO  `json:"range"`
	Other   *TimeRangeDTO `json:"other,omitempty"`
	Message string        `json:"message"`
}

// AvailabilityResponse недельное расписание мастера с замечаниями
type AvailabilityResponse struct {
	ProfessionalID int64        `json:"professionalId"`
	Days           []DayDTO     `json:"days"`
	Warnings       []WarningDTO `json:"warnings"`
}

// FromDomainSchedule конвертирует расписание и замечания в DTO
func FromDomainSchedule(professionalID int64, week domain.WeeklySchedule, warnings []slots.Warning) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProfessionalID: professionalID,
		Days:           make([]DayDTO, 0, domain.DaysInWeek),
		Warnings:       make([]WarningDTO, 0, len(warnings)),
	}

	for _, day := range week.Days() {
		dto := DayDTO{
			Day:     day.Day.String(),
			Enabled: day.Enabled,
			Slots:   make([]TimeRangeDTO, 0, len(day.Slots)),
		}
		for _, r := range day.Slots {
			dto.Slots = append(dto.Slots, fromDomainRange(r))
		}
		resp.Days = append(resp.Days, dto)
	}

	for _, w := range warnings {
		dto := WarningDTO{
			Day:     w.Day.String(),
			Kind:    string(w.Kind),
			Range:   fromDomainRange(w.Range),
			Message: w.Message,
		}
		if w.Other != nil {
			other := fromDomainRange(*w.Other)
			dto.Other = &other
		}
		resp.Warnings = append(resp.Warnings, dto)
	}

	return resp
}

func fromDomainRange(r domain.TimeRange) TimeRangeDTO {
	return TimeRangeDTO{Start: r.Start.String(), End: r.End.String()}
}

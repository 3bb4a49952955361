package catalogservice

// Service услуга мастера из каталога
type Service struct {
	ID              int64   `json:"id"`
	ProfessionalID  int64   `json:"professional_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога услуг
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package availability

import "errors"

var (
	// ErrCache возвращается при ошибке обращения к redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrDecode возвращается, когда закэшированное значение не удалось разобрать
	ErrDecode = errors.New("availability.cache: failed to decode cached schedule")
)

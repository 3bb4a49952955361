package events

import "errors"

var (
	// ErrEncode возвращается, когда событие не удалось сериализовать
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish возвращается при ошибке записи в kafka
	ErrPublish = errors.New("events: failed to publish event")
)

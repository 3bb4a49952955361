package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-BeautyBooking/pkg/requestid"
)

const defaultWriteTimeout = 5 * time.Second

// KafkaPublisher публикует события бронирований в kafka
// Ключ сообщения равен ID мастера, поэтому события одного мастера попадают в одну партицию по порядку
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	log     Logger
}

// NewKafkaPublisher создает publisher с kafka.Writer на указанный топик
func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration, log Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
	}
	return NewPublisherWithWriter(writer, timeout, log)
}

// NewPublisherWithWriter создает publisher поверх произвольного MessageWriter
func NewPublisherWithWriter(writer MessageWriter, timeout time.Duration, log Logger) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &KafkaPublisher{writer: writer, timeout: timeout, log: log}
}

// Publish отправляет событие
// Публикация выполняется после коммита транзакции, поэтому отмена входящего
// запроса не должна обрывать запись: используется отвязанный контекст с таймаутом
func (p *KafkaPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, event.EventType, err)
	}

	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(event.EventID)},
		{Key: "event_type", Value: []byte(event.EventType)},
	}
	if id := requestid.FromContext(ctx); id != "" {
		headers = append(headers, kafka.Header{Key: requestid.Header, Value: []byte(id)})
	}

	msg := kafka.Message{
		Key:     []byte(strconv.FormatInt(event.ProfessionalID, 10)),
		Value:   payload,
		Headers: headers,
		Time:    event.OccurredAt,
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("%w: %s reservation=%d: %v", ErrPublish, event.EventType, event.ReservationID, err)
	}

	p.log.Info("Events: published %s reservation=%d event_id=%s", event.EventType, event.ReservationID, event.EventID)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда kafka не настроена
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, ReservationEvent) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }

package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"listings-service/internal/constants"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/pkg/rabbitmq/rabbitmq_producer"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangeEventsQueueAdapter реализует ChangeEventQueuePort поверх RabbitMQ.
// Каждое успешное изменение записи уходит в обменник событий и дальше
// разносится по подписанным сервисам и SSE-ретранслятору.
type ChangeEventsQueueAdapter struct {
	producer *rabbitmq_producer.Publisher
}

func NewChangeEventsQueueAdapter(producer *rabbitmq_producer.Publisher) (*ChangeEventsQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ChangeEventsQueueAdapter{producer: producer}, nil
}

// Publish сериализует событие и публикует его с ключом маршрутизации
// событий изменений.
func (a *ChangeEventsQueueAdapter) Publish(ctx context.Context, event domain.ChangeEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ChangeEventsQueueAdapter",
		"routing_key": constants.RoutingKeyEntityChange,
		"entity":      event.Entity,
		"change_type": event.Type,
		"entity_id":   event.EntityID.String(),
	})

	eventJSON, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal change event to JSON", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal change event %s: %w", event.EntityID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         eventJSON,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    constants.EventTypeEntityChange,
			"event-version": constants.EventVersionEntityChange,
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Таймаут на операцию публикации, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, constants.RoutingKeyEntityChange, msg); err != nil {
		adapterLogger.Error("Failed to publish change event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish change event %s: %w", event.EntityID, err)
	}

	adapterLogger.Debug("Successfully published change event", nil)
	return nil
}

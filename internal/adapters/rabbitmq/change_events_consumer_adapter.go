package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"listings-service/internal/contextkeys"
	"listings-service/internal/contracts"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/metrics"
	"listings-service/pkg/rabbitmq/rabbitmq_common"
	"listings-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangeEventsConsumerAdapter слушает очередь событий изменений и передает
// каждое валидное событие нотификатору, который разносит его по открытым
// SSE-подпискам.
type ChangeEventsConsumerAdapter struct {
	consumer rabbitmq_consumer.Consumer
	notifier port.ChangeNotifierPort
	logger   port.LoggerPort
}

func NewChangeEventsConsumerAdapter(
	cfg rabbitmq_consumer.ConsumerConfig,
	notifier port.ChangeNotifierPort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*ChangeEventsConsumerAdapter, error) {

	adapter := &ChangeEventsConsumerAdapter{notifier: notifier, logger: logger}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_distributing_consumer", "consumer_tag": cfg.ConsumerTag})
	cfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(cfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, err
	}
	adapter.consumer = consumer
	return adapter, nil
}

// messageHandler обрабатывает одно событие изменения.
func (a *ChangeEventsConsumerAdapter) messageHandler(d amqp.Delivery) error {
	traceID, ok := d.Headers["x-trace-id"].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
	})

	ctx := context.Background()
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	// Проверяем сообщение по контракту до десериализации. Сообщение,
	// не прошедшее валидацию, не переотправляется.
	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Change event failed contract validation, rejecting message.", err, port.Fields{
			"event_type":    eventType,
			"event_version": eventVersion,
		})
		return nil
	}

	var event domain.ChangeEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		msgLogger.Error("Failed to unmarshal change event, rejecting message.", err, nil)
		return nil // "Битое" сообщение, не переотправляем.
	}

	handlerLogger := msgLogger.WithFields(port.Fields{
		"entity":      event.Entity,
		"change_type": event.Type,
		"entity_id":   event.EntityID.String(),
	})
	ctx = contextkeys.ContextWithLogger(ctx, handlerLogger)

	handlerLogger.Info("Relaying change event to subscribers.", nil)
	a.notifier.Notify(ctx, event)
	metrics.RecordChangeEventRelayed(event.Entity, string(event.Type))

	return nil
}

// Start и Close
func (a *ChangeEventsConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}
func (a *ChangeEventsConsumerAdapter) Close() error { return a.consumer.Close() }

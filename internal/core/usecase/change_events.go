package usecase

import (
	"context"
	"encoding/json"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// publishChangeEvent сериализует запись ПОСЛЕ изменения и отправляет событие
// в очередь. Ошибка публикации не отменяет уже выполненную запись в хранилище,
// поэтому она только логируется.
func publishChangeEvent(ctx context.Context, queue port.ChangeEventQueuePort, entity string, changeType domain.ChangeType, entityID uuid.UUID, payload interface{}) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "publishChangeEvent",
		"entity":      entity,
		"change_type": changeType,
		"entity_id":   entityID.String(),
	})

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal change event payload", err, nil)
		return
	}

	event := domain.ChangeEvent{
		Entity:     entity,
		Type:       changeType,
		EntityID:   entityID,
		Payload:    body,
		OccurredAt: time.Now().UTC(),
	}

	if err := queue.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish change event", err, nil)
		return
	}

	logger.Debug("Change event published", nil)
}

package port

import (
	"context"
	"listings-service/internal/core/domain"
)

// ChangeEventQueuePort - контракт исходящей очереди событий изменений.
// Use case публикует событие после успешной записи в хранилище.
type ChangeEventQueuePort interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

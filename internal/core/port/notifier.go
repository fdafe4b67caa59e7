package port

import (
	"context"
	"listings-service/internal/core/domain"
)

// ChangeNotifierPort - контракт для доставки событий изменений подписчикам
// в реальном времени.
type ChangeNotifierPort interface {
	// Notify рассылает событие всем подписчикам соответствующего топика.
	Notify(ctx context.Context, event domain.ChangeEvent)
}

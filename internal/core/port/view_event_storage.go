package port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

// ViewEventStoragePort - контракт хранилища событий просмотра.
// События только добавляются и читаются в виде счетчиков.
type ViewEventStoragePort interface {
	// Record добавляет событие просмотра. Повторный просмотр той же пары
	// объявление+адрес не создает новой записи и не считается ошибкой.
	Record(ctx context.Context, event *domain.ViewEvent) error

	// CountForListings считает просмотры по набору объявлений.
	// Пустой набор идентификаторов дает 0 без обращения к базе.
	CountForListings(ctx context.Context, listingIDs []uuid.UUID) (int64, error)

	CountByViewer(ctx context.Context, viewerID uuid.UUID) (int64, error)
}

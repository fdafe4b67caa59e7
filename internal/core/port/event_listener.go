package port

import "context"

// EventListenerPort - контракт фонового слушателя входящих событий
type EventListenerPort interface {
	// Start блокируется до отмены контекста или фатальной ошибки слушателя.
	Start(ctx context.Context) error
	Close() error
}

package constants

// Обменник событий сервиса объявлений
const (
	EventsExchange     = "listings_events_exchange"
	EventsExchangeType = "direct"
)

// Имена очередей
const (
	QueueEntityChangeEvents = "entity_change_events"
)

// Ключи маршрутизации
const (
	RoutingKeyEntityChange = "events.entity.change"
)

// Метаданные контракта событий изменений
const (
	EventTypeEntityChange    = "EntityChangeEvent"
	EventVersionEntityChange = "1.0.0"
)

// "Свалка" для сообщений, исчерпавших все попытки обработки
const (
	FinalDLXExchange   = "entity_change_events_final_dlx"
	FinalDLQ           = "entity_change_events_final_dlq"
	FinalDLQRoutingKey = "entity_change_events.dlq.key"
)

const RetryTTL = 10000 // 10 секунд

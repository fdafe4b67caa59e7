package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"sync"
)

// ClientChannel - это канал, через который мы отправляем события одному
// конкретному клиенту (браузеру).
type ClientChannel chan []byte

// структура для передачи в канал
type eventWithContext struct {
	ctx   context.Context
	event domain.ChangeEvent
}

// TopicForProfile - топик изменений одного профиля (фильтр по идентификатору).
func TopicForProfile(profileID string) string {
	return domain.EntityProfiles + ":" + profileID
}

// TopicListings - топик всех изменений объявлений, без фильтра.
const TopicListings = domain.EntityListings

// SSENotifier - реализация ChangeNotifierPort поверх server-sent events.
// Подписки ключуются топиком: "listings" для всех объявлений,
// "profiles:<id>" для изменений одного профиля.
type SSENotifier struct {
	// clients хранит активные подключения. Ключ - топик, значение - срез
	// каналов (один клиент может открыть несколько вкладок).
	clients map[string][]ClientChannel
	// mu - мьютекс для защиты clients от одновременного доступа из разных горутин
	mu sync.RWMutex

	// eventChan - внутренний канал, в который Use Cases бросают события
	eventChan chan eventWithContext

	logger port.LoggerPort
}

// NewSSENotifier создает и запускает новый нотификатор
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	notifier := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100), // Буферизованный канал
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	// Запускаем основную горутину-диспетчер, которая слушает события и рассылает их
	go notifier.dispatcher()

	return notifier
}

// topicsForEvent возвращает топики, в которые нужно доставить событие.
// События объявлений идут в общий топик, события профилей - только
// подписчикам конкретного профиля.
func topicsForEvent(event domain.ChangeEvent) []string {
	switch event.Entity {
	case domain.EntityListings:
		return []string{TopicListings}
	case domain.EntityProfiles:
		return []string{TopicForProfile(event.EntityID.String())}
	}
	return nil
}

// dispatcher - работает в фоне и никогда не завершается
func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		// Блокируемся, пока не придет новое событие
		eventPackage := <-n.eventChan

		event := eventPackage.event

		eventLogger := contextkeys.LoggerFromContext(eventPackage.ctx).WithFields(port.Fields{
			"component":   "SSENotifier.dispatcher",
			"entity":      event.Entity,
			"change_type": event.Type,
			"entity_id":   event.EntityID.String(),
		})

		eventBytes, err := json.Marshal(event)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		// Форматируем для SSE
		sseMessage := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, string(eventBytes)))

		topics := topicsForEvent(event)
		if len(topics) == 0 {
			eventLogger.Warn("Event entity has no topic mapping, event dropped.", nil)
			continue
		}

		n.mu.RLock()
		for _, topic := range topics {
			channels, found := n.clients[topic]
			if !found {
				eventLogger.Debug("No active clients for topic, event skipped.", port.Fields{"topic": topic})
				continue
			}
			eventLogger.Debug("Dispatching event to clients", port.Fields{"topic": topic, "channels_count": len(channels)})
			for _, ch := range channels {
				// select с default, чтобы не заблокироваться,
				// если канал клиента переполнен или закрыт
				select {
				case ch <- sseMessage:
				default:
					eventLogger.Warn("Client channel is full or closed, skipping.", port.Fields{"topic": topic})
				}
			}
		}
		n.mu.RUnlock()
	}
}

// Notify - реализация метода из ChangeNotifierPort.
// Отправляет событие во внутренний канал диспетчера.
func (n *SSENotifier) Notify(ctx context.Context, event domain.ChangeEvent) {
	n.eventChan <- eventWithContext{ctx: ctx, event: event}
}

// AddClient добавляет нового подписчика топика (новое SSE-соединение).
// Этот метод вызывается из HTTP-хендлера.
func (n *SSENotifier) AddClient(topic string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100) // Канал для одного клиента
	n.clients[topic] = append(n.clients[topic], ch)

	n.logger.Info("Client subscribed to topic", port.Fields{
		"topic":                        topic,
		"total_connections_for_topic": len(n.clients[topic]),
	})

	return ch
}

// RemoveClient удаляет канал клиента при отключении.
// Вызывается из HTTP-хендлера, когда клиент закрывает соединение.
func (n *SSENotifier) RemoveClient(topic string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[topic]
	if !found {
		return
	}

	newChannels := make([]ClientChannel, 0)
	for _, c := range channels {
		// Сравниваем каналы, чтобы найти и удалить нужный
		if c != ch {
			newChannels = append(newChannels, c)
		}
	}

	if len(newChannels) == 0 {
		delete(n.clients, topic)
		n.logger.Debug("Last client disconnected from topic. Topic removed.", port.Fields{"topic": topic})
	} else {
		n.clients[topic] = newChannels
		n.logger.Info("Client disconnected from topic.", port.Fields{
			"topic":                 topic,
			"remaining_connections": len(newChannels),
		})
	}
}

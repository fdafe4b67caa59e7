package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"testing"
	"time"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (n *nopLogger) Info(msg string, fields port.Fields)             {}
func (n *nopLogger) Warn(msg string, fields port.Fields)             {}
func (n *nopLogger) Error(msg string, err error, fields port.Fields) {}
func (n *nopLogger) Debug(msg string, fields port.Fields)            {}
func (n *nopLogger) WithFields(fields port.Fields) port.LoggerPort   { return n }

func receiveOrTimeout(t *testing.T, ch ClientChannel) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an SSE message")
		return nil
	}
}

func assertNoMessage(t *testing.T, ch ClientChannel) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message delivered: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifyDeliversListingEvents(t *testing.T) {
	n := NewSSENotifier(&nopLogger{})

	ch := n.AddClient(TopicListings)
	defer n.RemoveClient(TopicListings, ch)

	event := domain.ChangeEvent{
		Entity:     domain.EntityListings,
		Type:       domain.ChangeTypeUpdate,
		EntityID:   uuid.New(),
		Payload:    json.RawMessage(`{"title":"flat"}`),
		OccurredAt: time.Now().UTC(),
	}
	n.Notify(context.Background(), event)

	msg := receiveOrTimeout(t, ch)

	eventBytes, _ := json.Marshal(event)
	want := fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, eventBytes)
	if string(msg) != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

// События профиля доходят только до подписчиков этого профиля.
func TestNotifyScopesProfileEvents(t *testing.T) {
	n := NewSSENotifier(&nopLogger{})

	targetID := uuid.New()
	otherID := uuid.New()

	targetCh := n.AddClient(TopicForProfile(targetID.String()))
	defer n.RemoveClient(TopicForProfile(targetID.String()), targetCh)
	otherCh := n.AddClient(TopicForProfile(otherID.String()))
	defer n.RemoveClient(TopicForProfile(otherID.String()), otherCh)
	listingsCh := n.AddClient(TopicListings)
	defer n.RemoveClient(TopicListings, listingsCh)

	n.Notify(context.Background(), domain.ChangeEvent{
		Entity:     domain.EntityProfiles,
		Type:       domain.ChangeTypeUpdate,
		EntityID:   targetID,
		Payload:    json.RawMessage(`{}`),
		OccurredAt: time.Now().UTC(),
	})

	receiveOrTimeout(t, targetCh)
	assertNoMessage(t, otherCh)
	assertNoMessage(t, listingsCh)
}

func TestNotifyFansOutToAllTopicClients(t *testing.T) {
	n := NewSSENotifier(&nopLogger{})

	first := n.AddClient(TopicListings)
	second := n.AddClient(TopicListings)
	defer n.RemoveClient(TopicListings, first)
	defer n.RemoveClient(TopicListings, second)

	n.Notify(context.Background(), domain.ChangeEvent{
		Entity:     domain.EntityListings,
		Type:       domain.ChangeTypeInsert,
		EntityID:   uuid.New(),
		Payload:    json.RawMessage(`{}`),
		OccurredAt: time.Now().UTC(),
	})

	receiveOrTimeout(t, first)
	receiveOrTimeout(t, second)
}

func TestRemoveClientStopsDelivery(t *testing.T) {
	n := NewSSENotifier(&nopLogger{})

	ch := n.AddClient(TopicListings)
	n.RemoveClient(TopicListings, ch)

	n.Notify(context.Background(), domain.ChangeEvent{
		Entity:     domain.EntityListings,
		Type:       domain.ChangeTypeDelete,
		EntityID:   uuid.New(),
		Payload:    json.RawMessage(`{}`),
		OccurredAt: time.Now().UTC(),
	})

	assertNoMessage(t, ch)
}

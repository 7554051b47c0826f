package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubDeliversPerTopic(t *testing.T) {
	hub := NewHub()

	pending, cancelPending := hub.Subscribe(TopicPendingOrders)
	defer cancelPending()
	updates, cancelUpdates := hub.Subscribe(TopicOrderUpdates)
	defer cancelUpdates()

	require.NoError(t, hub.Publish(TopicPendingOrders, "a"))
	require.NoError(t, hub.Publish(TopicOrderUpdates, "b"))

	ev := recv(t, pending)
	assert.Equal(t, TopicPendingOrders, ev.Topic)
	assert.Equal(t, "a", ev.Payload)

	ev = recv(t, updates)
	assert.Equal(t, "b", ev.Payload)

	// no cross-topic bleed
	select {
	case ev := <-pending:
		t.Fatalf("unexpected event on pending: %v", ev)
	default:
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()

	a, cancelA := hub.Subscribe(TopicCookedOrders)
	defer cancelA()
	b, cancelB := hub.Subscribe(TopicCookedOrders)
	defer cancelB()

	require.NoError(t, hub.Publish(TopicCookedOrders, 42))

	assert.Equal(t, 42, recv(t, a).Payload)
	assert.Equal(t, 42, recv(t, b).Payload)
}

func TestHubCancelIsIdempotent(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicOrderUpdates)
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic on the closed channel
	require.NoError(t, hub.Publish(TopicOrderUpdates, "x"))
}

func TestHubSkipsSlowSubscriber(t *testing.T) {
	hub := NewHub()

	slow, cancelSlow := hub.Subscribe(TopicOrderUpdates)
	defer cancelSlow()

	// fill the buffer without draining; the extra publishes are dropped
	for i := 0; i < 40; i++ {
		require.NoError(t, hub.Publish(TopicOrderUpdates, i))
	}

	live, cancelLive := hub.Subscribe(TopicOrderUpdates)
	defer cancelLive()
	require.NoError(t, hub.Publish(TopicOrderUpdates, "after"))

	// the healthy subscriber still gets the new event
	assert.Equal(t, "after", recv(t, live).Payload)
	// the slow one kept the first events up to its buffer
	assert.Equal(t, 0, recv(t, slow).Payload)
}

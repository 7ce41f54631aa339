package events

import (
	"testing"
	"time"

	paystream "github.com/paystream/paystream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversByTopic(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()

	created := bus.Subscribe("stream/created")
	all := bus.Subscribe(AllTopics)

	bus.Publish("stream/created", "s1")
	bus.Publish("paychan/opened", "c1")

	ev := receive(t, created)
	assert.Equal(t, paystream.Event{Topic: "stream/created", Payload: "s1"}, ev)

	assert.Equal(t, "stream/created", receive(t, all).Topic)
	assert.Equal(t, "paychan/opened", receive(t, all).Topic)

	select {
	case msg := <-created:
		t.Fatalf("unexpected event: %v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBusPublishAfterCloseIsDropped(t *testing.T) {
	bus := NewBus(1)
	bus.Close()
	bus.Close()

	bus.Publish("stream/created", "late")
	assert.Equal(t, uint64(1), bus.Dropped())
}

func TestBusCloseClosesSubscriptions(t *testing.T) {
	bus := NewBus(4)
	ch := bus.Subscribe(AllTopics)
	bus.Publish("paychan/closed", "c1")
	bus.Close()

	var got []interface{}
	for msg := range ch {
		got = append(got, msg)
	}
	require.Len(t, got, 1)
}

func receive(t *testing.T, ch chan interface{}) paystream.Event {
	t.Helper()
	select {
	case msg := <-ch:
		ev, ok := msg.(paystream.Event)
		require.True(t, ok, "unexpected message type %T", msg)
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return paystream.Event{}
}

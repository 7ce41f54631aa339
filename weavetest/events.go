package weavetest

import (
	"sync"

	paystream "github.com/paystream/paystream"
)

// EventRecorder is an in-memory paystream.EventBus that keeps everything
// published to it.
type EventRecorder struct {
	mu     sync.Mutex
	events []paystream.Event
}

var _ paystream.EventBus = (*EventRecorder)(nil)

func (r *EventRecorder) Publish(topic string, payload interface{}) {
	r.mu.Lock()
	r.events = append(r.events, paystream.Event{Topic: topic, Payload: payload})
	r.mu.Unlock()
}

// Events returns all recorded events in publishing order.
func (r *EventRecorder) Events() []paystream.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]paystream.Event(nil), r.events...)
}

// Topics returns the topics of all recorded events in publishing order.
func (r *EventRecorder) Topics() []string {
	var topics []string
	for _, e := range r.Events() {
		topics = append(topics, e.Topic)
	}
	return topics
}

/*
Package events delivers notifications about completed operations to in
process subscribers.

Publishing never blocks the caller. When the queue is full the event is
dropped and counted, since subscribers are observers and never take part in
deciding the outcome of an operation.
*/
package events

import (
	"sync"
	"sync/atomic"

	"github.com/cskr/pubsub"
	paystream "github.com/paystream/paystream"
)

// AllTopics receives every published event regardless of its topic.
const AllTopics = "*"

// Bus is a paystream.EventBus backed by an in-process topic broker.
type Bus struct {
	ps    *pubsub.PubSub
	queue chan paystream.Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	dropped uint64
}

var _ paystream.EventBus = (*Bus)(nil)

// NewBus returns a running bus. Capacity bounds both the publishing queue and
// each subscription channel.
func NewBus(capacity int) *Bus {
	if capacity < 1 {
		capacity = 1
	}
	b := &Bus{
		ps:    pubsub.New(capacity),
		queue: make(chan paystream.Event, capacity),
		done:  make(chan struct{}),
	}
	go b.forward()
	return b
}

func (b *Bus) forward() {
	defer close(b.done)
	for ev := range b.queue {
		b.ps.Pub(ev, ev.Topic, AllTopics)
	}
}

// Publish enqueues the event. It returns immediately, dropping the event if
// the queue is full or the bus was closed.
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		atomic.AddUint64(&b.dropped, 1)
		return
	}
	select {
	case b.queue <- paystream.Event{Topic: topic, Payload: payload}:
	default:
		atomic.AddUint64(&b.dropped, 1)
	}
}

// Subscribe returns a channel receiving paystream.Event values published
// under any of given topics. Use AllTopics to receive everything.
func (b *Bus) Subscribe(topics ...string) chan interface{} {
	return b.ps.Sub(topics...)
}

// Unsubscribe stops delivery to the channel for given topics. With no topics
// the channel is removed from all of them and closed.
func (b *Bus) Unsubscribe(ch chan interface{}, topics ...string) {
	b.ps.Unsub(ch, topics...)
}

// Dropped returns the number of events that could not be enqueued.
func (b *Bus) Dropped() uint64 {
	return atomic.LoadUint64(&b.dropped)
}

// Close delivers the queued events and shuts down the bus. All subscription
// channels are closed.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()

	<-b.done
	b.ps.Shutdown()
}

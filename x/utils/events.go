package utils

import (
	paystream "github.com/paystream/paystream"
)

// Events publishes the events of a successfully delivered transaction on
// the bus. Nothing is published when the delivery fails, so subscribers never
// see a change that was rolled back.
type Events struct {
	bus paystream.EventBus
}

var _ paystream.Decorator = Events{}

// NewEvents returns a decorator publishing on given bus.
func NewEvents(bus paystream.EventBus) Events {
	return Events{bus: bus}
}

// Check does not publish anything, checked transactions change no state.
func (e Events) Check(ctx paystream.Context, store paystream.KVStore, tx paystream.Tx, next paystream.Checker) (*paystream.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

// Deliver publishes all events of the result once the handler succeeded.
func (e Events) Deliver(ctx paystream.Context, store paystream.KVStore, tx paystream.Tx, next paystream.Deliverer) (*paystream.DeliverResult, error) {
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	for _, ev := range res.Events {
		e.bus.Publish(ev.Topic, ev.Payload)
	}
	return res, nil
}

package app

import (
	paystream "github.com/paystream/paystream"
	"github.com/tendermint/tendermint/libs/log"
)

// logEvents writes every event received from the subscription until the
// channel is closed.
func logEvents(logger log.Logger, sub <-chan interface{}) {
	for raw := range sub {
		ev, ok := raw.(paystream.Event)
		if !ok {
			logger.Error("unexpected event", "value", raw)
			continue
		}
		logger.Info("event", "topic", ev.Topic, "payload", ev.Payload)
	}
}

package client

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/app"
	"github.com/paystream/paystream/crypto"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/x/paychan"
	"github.com/paystream/paystream/x/sigs"
	"github.com/paystream/paystream/x/stream"
)

// Querier answers ABCI queries. Client implements it for a remote node and
// any abci.Application does for an in process one.
type Querier interface {
	Query(RequestQuery) ResponseQuery
}

var _ Querier = (*Client)(nil)

// GetStream returns the stored state of a stream.
func GetStream(q Querier, id stream.StreamID) (*stream.Stream, error) {
	var s stream.Stream
	if err := queryOne(q, "/streams", id, &s); err != nil {
		return nil, errors.Wrapf(err, "stream %s", id)
	}
	return &s, nil
}

// GetStreamBalance returns the balance of a stream at the last committed
// block.
func GetStreamBalance(q Querier, id stream.StreamID) (*stream.Balance, error) {
	var b stream.Balance
	if err := queryOne(q, "/streams/balance", id, &b); err != nil {
		return nil, errors.Wrapf(err, "stream %s", id)
	}
	return &b, nil
}

// GetChannel returns the stored state of a payment channel.
func GetChannel(q Querier, id paychan.ChannelID) (*paychan.Channel, error) {
	var c paychan.Channel
	if err := queryOne(q, "/paychans", id, &c); err != nil {
		return nil, errors.Wrapf(err, "channel %s", id)
	}
	return &c, nil
}

// NextSequence returns the sequence the next signature made with given key
// must carry. A key that never signed starts at zero.
func NextSequence(q Querier, key *crypto.PublicKey) (int64, error) {
	var user sigs.UserData
	err := queryOne(q, "/auth", key.Address(), &user)
	switch {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// queryOne runs the query and unmarshals its first result into dest.
func queryOne(q Querier, path string, data []byte, dest paystream.Persistent) error {
	res := q.Query(RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	return app.UnmarshalOneResult(res.Value, dest)
}

package stream

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

// BalanceQuery answers "/streams/balance" queries. The data is a stream id,
// the result is the serialized Balance at the last committed block.
type BalanceQuery struct {
	ctrl Controller
}

var _ paystream.QueryHandler = BalanceQuery{}

// NewBalanceQuery returns a query handler computing balances with ctrl.
func NewBalanceQuery(ctrl Controller) BalanceQuery {
	return BalanceQuery{ctrl: ctrl}
}

func (q BalanceQuery) Query(ctx paystream.Context, db paystream.ReadOnlyKVStore, mod string, data []byte) ([]paystream.Model, error) {
	if mod != "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
	id := StreamID(data)
	if err := id.Validate(); err != nil {
		return nil, errors.Wrap(err, "stream id")
	}
	b, err := q.ctrl.Balance(ctx, db, id)
	if err != nil {
		return nil, err
	}
	raw, err := b.Marshal()
	if err != nil {
		return nil, err
	}
	return []paystream.Model{{Key: id, Value: raw}}, nil
}

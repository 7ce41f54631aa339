package utils

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

// Recovery converts a panic raised below it into an ErrPanic result, so a
// broken stream or channel handler fails the transaction instead of the node.
type Recovery struct{}

var _ paystream.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx, next paystream.Checker) (res *paystream.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, db, tx)
	return res, err
}

func (Recovery) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx, next paystream.Deliverer) (res *paystream.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, db, tx)
	return res, err
}

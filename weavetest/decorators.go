package weavetest

import paystream "github.com/paystream/paystream"

// Decorator counts the calls passing through it and can short-circuit them.
// A non-nil CheckErr or DeliverErr is returned instead of calling the next
// handler. Use it to check that the savepoint and events decorators react to
// failures further down the chain.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks   int
	delivers int
}

var _ paystream.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx, next paystream.Checker) (*paystream.CheckResult, error) {
	d.checks++
	if err := d.CheckErr; err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx, next paystream.Deliverer) (*paystream.DeliverResult, error) {
	d.delivers++
	if err := d.DeliverErr; err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// CheckCallCount returns how many times Check was called.
func (d *Decorator) CheckCallCount() int { return d.checks }

// DeliverCallCount returns how many times Deliver was called.
func (d *Decorator) DeliverCallCount() int { return d.delivers }

// Decorate returns a handler that calls h through d.
func Decorate(h paystream.Handler, d paystream.Decorator) paystream.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next paystream.Handler
	dec  paystream.Decorator
}

func (d decorated) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}

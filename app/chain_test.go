package app

import (
	"context"
	"testing"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/store"
	"github.com/paystream/paystream/weavetest"
	"github.com/paystream/paystream/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicHandler struct{}

func (panicHandler) Check(paystream.Context, paystream.KVStore, paystream.Tx) (*paystream.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(paystream.Context, paystream.KVStore, paystream.Tx) (*paystream.DeliverResult, error) {
	panic("deliver")
}

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	var skipped *weavetest.Decorator
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nil,
		skipped,
	).Chain(
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "a/b"}}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, 1, c1.CheckCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	c1.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	// panics below the recovery decorator become errors
	panicking := ChainDecorators(utils.NewRecovery(), c2).WithHandler(panicHandler{})
	_, err = panicking.Check(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = panicking.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestChainDoesNotShareBackingArray(t *testing.T) {
	base := ChainDecorators(&weavetest.Decorator{})
	a, b := &weavetest.Decorator{}, &weavetest.Decorator{}
	withA := base.Chain(a)
	withB := base.Chain(b)

	h := &weavetest.Handler{}
	_, err := withA.WithHandler(h).Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	require.NoError(t, err)
	_, err = withB.WithHandler(h).Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	require.NoError(t, err)
	assert.Equal(t, 1, a.CheckCallCount())
	assert.Equal(t, 1, b.CheckCallCount())
}

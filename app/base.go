package app

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the complete ABCI application of a node. StoreApp serves
// storage, block info and queries. BaseApp decodes incoming transactions
// and runs them through the decorated handler: CheckTx against the mempool
// store and DeliverTx against the block store.
type BaseApp struct {
	*StoreApp
	decoder paystream.TxDecoder
	handler paystream.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application that dispatches every decoded
// transaction to handler. With debug set, internal error messages are not
// redacted in responses.
func NewBaseApp(store *StoreApp, decoder paystream.TxDecoder, handler paystream.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return paystream.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return paystream.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return paystream.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return paystream.CheckOrError(res, err, b.debug)
}

// txContext is the block context with the call and message path attached to
// its logger.
func (b BaseApp) txContext(call string, tx paystream.Tx) paystream.Context {
	return paystream.WithLogInfo(b.BlockContext(), "call", call, "path", paystream.GetPath(tx))
}

// decode never panics. Malformed bytes from the network give ErrPanic or the
// decoder error.
func (b BaseApp) decode(txBytes []byte) (tx paystream.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}

/*
Package app wires the stream and payment channel extensions into an ABCI
application run by the paystreamd binary.

Every transaction passes through logging, panic recovery, metrics and
signature verification before it reaches the router. Events of delivered
transactions are published on an in process bus.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/app"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/store/iavl"
	"github.com/paystream/paystream/x"
	"github.com/paystream/paystream/x/paychan"
	"github.com/paystream/paystream/x/sigs"
	"github.com/paystream/paystream/x/stream"
	"github.com/paystream/paystream/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics, recovery and event publishing. A nil metrics
// decorator is skipped.
func Chain(bus paystream.EventBus, metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewEvents(bus),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the stream and payment channel
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	stream.RegisterRoutes(r, authFn)
	paychan.RegisterRoutes(r, authFn, paychan.NewController(paychan.NewBucket()))
	return r
}

// QueryRouter returns a query router, allowing access to "/streams",
// "/streams/balance", "/paychans" and "/auth"
func QueryRouter() app.QueryRouter {
	r := app.NewQueryRouter()
	r.RegisterAll(
		stream.RegisterQuery,
		paychan.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(bus paystream.EventBus, metrics *utils.Metrics) paystream.Handler {
	return Chain(bus, metrics).WithHandler(Router(Authenticator()))
}

// Initializers loads the configuration of all extensions from genesis.
func Initializers() paystream.Initializer {
	return app.ChainInitializers(
		stream.Initializer{},
		paychan.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h paystream.Handler,
	tx paystream.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (paystream.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

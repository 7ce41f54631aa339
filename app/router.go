package app

import (
	"fmt"
	"regexp"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path of
// its message.
type Router struct {
	routes map[string]paystream.Handler
}

var _ paystream.Registry = (*Router)(nil)
var _ paystream.Handler = (*Router)(nil)

// NewRouter returns a router with no routes.
func NewRouter() *Router {
	return &Router{routes: make(map[string]paystream.Handler, 10)}
}

// Handle registers a handler for given path. It panics on an invalid path or
// when the path is already taken.
func (r *Router) Handle(path string, h paystream.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid route path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for path. Unknown paths get a
// handler that always fails with ErrNoSuchPath.
func (r *Router) Handler(path string) paystream.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

func (r *Router) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, db, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(paystream.Context, paystream.KVStore, paystream.Tx) (*paystream.CheckResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}

func (path notFoundHandler) Deliver(paystream.Context, paystream.KVStore, paystream.Tx) (*paystream.DeliverResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}

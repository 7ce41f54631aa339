/*
Package weavetest provides test doubles for the framework interfaces:
authenticators, transactions, handlers, decorators and an event recorder.
*/
package weavetest

import (
	"context"
	"fmt"

	paystream "github.com/paystream/paystream"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer paystream.Condition

	// Signers represents an authentication of multiple signers.
	Signers []paystream.Condition
}

func (a *Auth) GetConditions(paystream.Context) []paystream.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx paystream.Context, addr paystream.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx paystream.Context, conds ...paystream.Condition) paystream.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx paystream.Context) []paystream.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]paystream.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []paystream.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx paystream.Context, addr paystream.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

/*
Package x holds the helpers shared by all extensions, and the extensions
themselves live in its subpackages.

Extensions never verify signatures on their own. They get an Authenticator
and ask it whether the addresses an operation requires were authorized in
the current context.
*/
package x

import (
	paystream "github.com/paystream/paystream"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(paystream.Context) []paystream.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(paystream.Context, paystream.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx paystream.Context) []paystream.Condition {
	var res []paystream.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx paystream.Context, addr paystream.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx paystream.Context, auth Authenticator) []paystream.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]paystream.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx paystream.Context, auth Authenticator) paystream.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context. The whole set is checked before any decision is made, so
// a caller can treat it as a single authorization requirement.
func HasAllAddresses(ctx paystream.Context, auth Authenticator, required []paystream.Address) bool {
	if len(required) == 0 {
		return false
	}
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx paystream.Context, auth Authenticator, required []paystream.Address, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

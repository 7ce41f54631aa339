package app

import (
	paystream "github.com/paystream/paystream"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...paystream.Initializer) paystream.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []paystream.Initializer
}

var _ paystream.Initializer = chainInitializer{}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts paystream.Options, kv paystream.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

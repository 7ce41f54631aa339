package weavetest

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/crypto"
)

// NewKey returns a new random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() paystream.Condition {
	return NewKey().PublicKey().Condition()
}

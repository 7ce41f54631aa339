/*
Package crypto holds the ed25519 keys and signatures used to authenticate
transactions and to sign channel vouchers.

Public keys have a text form using the stellar strkey encoding, so they can be
pasted into configuration and command line arguments.
*/
package crypto

import (
	paystream "github.com/paystream/paystream"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() paystream.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Verifier checks a raw signature of a message against a raw public key.
type Verifier func(publicKey, message, signature []byte) bool

package crypto

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/stellar/go/strkey"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is an ed25519 private key, including the public part.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil {
		return false
	}
	return VerifyEd25519(p.Ed25519, message, sig.Ed25519)
}

// Condition encodes the public key into a signature condition
func (p *PublicKey) Condition() paystream.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return paystream.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address controlled by this key.
func (p *PublicKey) Address() paystream.Address {
	return p.Condition().Address()
}

// Validate returns an error if the key has an invalid length.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInvalidInput, "invalid ed25519 public key")
	}
	return nil
}

// String returns the strkey form of the key (G...).
func (p *PublicKey) String() string {
	s, err := strkey.Encode(strkey.VersionByteAccountID, p.Ed25519)
	if err != nil {
		return "(invalid key)"
	}
	return s
}

// ParsePublicKey decodes a public key from its strkey form.
func ParsePublicKey(s string) (*PublicKey, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	key := &PublicKey{Ed25519: raw}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// VerifyEd25519 checks an ed25519 signature. Malformed keys and signatures
// never verify.
func VerifyEd25519(publicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}

var _ Verifier = VerifyEd25519

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid ed25519 private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Seed returns the strkey form of the private key seed (S...).
func (p *PrivateKey) Seed() (string, error) {
	seed := ed25519.PrivateKey(p.Ed25519)[:ed25519.SeedSize]
	s, err := strkey.Encode(strkey.VersionByteSeed, seed)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return s, nil
}

// ParseSeed restores a private key from its strkey seed form.
func ParseSeed(s string) (*PrivateKey, error) {
	seed, err := strkey.Decode(strkey.VersionByteSeed, s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return PrivKeyEd25519FromSeed(seed), nil
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

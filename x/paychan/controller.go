package paychan

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/crypto"
	"github.com/paystream/paystream/errors"
)

// Controller validates vouchers against the channel state.
type Controller interface {
	// SignPayment verifies that signature was made by signer for the
	// increment and returns the voucher. It never writes to the store.
	SignPayment(db paystream.ReadOnlyKVStore, id ChannelID, increment int64, signer *crypto.PublicKey, signature *crypto.Signature) (*Voucher, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket Bucket
	verify crypto.Verifier
}

var _ Controller = BaseController{}

// NewController returns a controller verifying ed25519 signatures.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket, verify: crypto.VerifyEd25519}
}

// WithVerifier returns a copy of the controller using given signature
// verifier.
func (c BaseController) WithVerifier(v crypto.Verifier) BaseController {
	c.verify = v
	return c
}

func (c BaseController) SignPayment(db paystream.ReadOnlyKVStore, id ChannelID, increment int64, signer *crypto.PublicKey, signature *crypto.Signature) (*Voucher, error) {
	ch, err := c.bucket.GetChannel(db, id)
	if err != nil {
		return nil, err
	}
	if ch.IsClosed {
		return nil, errors.Wrapf(ErrChannelIsClosed, "id %s", id)
	}
	if increment <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "increment %d", increment)
	}
	if signer == nil || signature == nil {
		return nil, errors.Wrap(ErrInvalidSignature, "missing signer or signature")
	}
	if !c.verify(signer.Ed25519, PaymentMessage(increment), signature.Ed25519) {
		return nil, errors.Wrapf(ErrInvalidSignature, "signer %s", signer)
	}
	return &Voucher{ChannelID: id, IncrementAmount: increment, Signature: signature}, nil
}

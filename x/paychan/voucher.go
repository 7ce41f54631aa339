package paychan

import (
	"encoding/binary"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/crypto"
	"github.com/paystream/paystream/errors"
)

// paymentMessageSize is the width of the signed increment, a 128 bit
// integer.
const paymentMessageSize = 16

// Voucher is a signed promise to pay IncrementAmount over a channel. Vouchers
// are exchanged off the chain and never stored.
type Voucher struct {
	ChannelID       ChannelID
	IncrementAmount int64
	Signature       *crypto.Signature
}

func (v *Voucher) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(v)
}

func (v *Voucher) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, v)
}

// PaymentMessage returns the bytes a voucher signature is made for: the
// increment as a 16 byte little endian two's complement integer.
func PaymentMessage(increment int64) []byte {
	msg := make([]byte, paymentMessageSize)
	binary.LittleEndian.PutUint64(msg, uint64(increment))
	if increment < 0 {
		for i := 8; i < paymentMessageSize; i++ {
			msg[i] = 0xff
		}
	}
	return msg
}

// SignVoucher creates a voucher for given channel signed with key.
func SignVoucher(key crypto.Signer, id ChannelID, increment int64) (*Voucher, error) {
	if increment <= 0 {
		return nil, errors.Wrap(ErrInvalidAmount, "increment must be positive")
	}
	sig, err := key.Sign(PaymentMessage(increment))
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &Voucher{ChannelID: id, IncrementAmount: increment, Signature: sig}, nil
}

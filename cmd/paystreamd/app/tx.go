package app

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/x/sigs"
)

// Tx carries a single message together with the signatures authorizing it.
type Tx struct {
	Msg        paystream.Msg
	Signatures []*sigs.StdSignature
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (paystream.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ paystream.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

func (tx *Tx) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return paystream.UnmarshalBinary(raw, tx)
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (paystream.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "unable to decode")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

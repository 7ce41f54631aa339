package paychan

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/crypto"
	"github.com/paystream/paystream/errors"
)

const (
	pathOpenMsg        = "paychan/open"
	pathSignPaymentMsg = "paychan/sign_payment"
	pathCloseMsg       = "paychan/close"
)

func init() {
	paystream.RegisterMsg(&OpenMsg{}, "paychan/OpenMsg")
	paystream.RegisterMsg(&SignPaymentMsg{}, "paychan/SignPaymentMsg")
	paystream.RegisterMsg(&CloseMsg{}, "paychan/CloseMsg")
}

// OpenMsg opens a channel between Sender and Counterparty, funded with
// Deposit by the sender.
type OpenMsg struct {
	Sender       paystream.Address
	Counterparty paystream.Address
	Deposit      int64
	Memo         string
}

var _ paystream.Msg = (*OpenMsg)(nil)

func (OpenMsg) Path() string {
	return pathOpenMsg
}

func (m *OpenMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *OpenMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

func (m *OpenMsg) Validate() error {
	var errs error
	if m.Deposit <= 0 {
		errs = errors.Append(errs,
			errors.Field("Deposit", ErrInvalidDeposit, "must be positive"))
	}
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "Counterparty", m.Counterparty.Validate())
	if m.Sender != nil && m.Sender.Equals(m.Counterparty) {
		errs = errors.Append(errs,
			errors.Field("Counterparty", errors.ErrInvalidInput, "must differ from the sender"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs,
			errors.Field("Memo", errors.ErrInvalidInput, "memo too long"))
	}
	return errs
}

// SignPaymentMsg asks the chain to validate a voucher. Nothing is stored, the
// validated voucher is returned.
type SignPaymentMsg struct {
	ChannelID       ChannelID
	IncrementAmount int64
	Signer          *crypto.PublicKey
	Signature       *crypto.Signature
}

var _ paystream.Msg = (*SignPaymentMsg)(nil)

func (SignPaymentMsg) Path() string {
	return pathSignPaymentMsg
}

func (m *SignPaymentMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *SignPaymentMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

// Validate checks only the shape of the message. The amount and the
// signature are verified against the channel by the Controller, so that a
// missing channel is reported first.
func (m *SignPaymentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ChannelID", m.ChannelID.Validate())
	if m.Signer == nil {
		errs = errors.Append(errs,
			errors.Field("Signer", errors.ErrEmpty, "missing signer public key"))
	}
	if m.Signature == nil {
		errs = errors.Append(errs,
			errors.Field("Signature", errors.ErrEmpty, "missing signature"))
	}
	return errs
}

// CloseMsg closes a channel with the final split of the deposit. It must be
// signed by both parties.
type CloseMsg struct {
	ChannelID ChannelID
	FinalA    int64
	FinalB    int64
	Memo      string
}

var _ paystream.Msg = (*CloseMsg)(nil)

func (CloseMsg) Path() string {
	return pathCloseMsg
}

func (m *CloseMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *CloseMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

// Validate does not check the final split, it can only be checked against
// the channel deposit after the authorization passed.
func (m *CloseMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ChannelID", m.ChannelID.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs,
			errors.Field("Memo", errors.ErrInvalidInput, "memo too long"))
	}
	return errs
}

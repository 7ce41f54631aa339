package stream

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

const (
	pathCreateMsg   = "stream/create"
	pathWithdrawMsg = "stream/withdraw"
	pathPauseMsg    = "stream/pause"
	pathResumeMsg   = "stream/resume"
	pathCancelMsg   = "stream/cancel"
)

func init() {
	paystream.RegisterMsg(&CreateMsg{}, "stream/CreateMsg")
	paystream.RegisterMsg(&WithdrawMsg{}, "stream/WithdrawMsg")
	paystream.RegisterMsg(&PauseMsg{}, "stream/PauseMsg")
	paystream.RegisterMsg(&ResumeMsg{}, "stream/ResumeMsg")
	paystream.RegisterMsg(&CancelMsg{}, "stream/CancelMsg")
}

// CreateMsg starts a new stream from Sender to Recipient.
type CreateMsg struct {
	Sender      paystream.Address
	Recipient   paystream.Address
	Controller  paystream.Address
	TotalAmount int64
	Duration    int64
	Schedule    Schedule
	Memo        string
}

var _ paystream.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Controller != nil {
		errs = errors.AppendField(errs, "Controller", m.Controller.Validate())
	}
	if m.TotalAmount <= 0 {
		errs = errors.Append(errs,
			errors.Field("TotalAmount", ErrInvalidParameters, "must be positive"))
	}
	if m.Duration <= 0 {
		errs = errors.Append(errs,
			errors.Field("Duration", ErrInvalidParameters, "must be positive"))
	}
	errs = errors.AppendField(errs, "Schedule", m.Schedule.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs,
			errors.Field("Memo", errors.ErrInvalidInput, "memo too long"))
	}
	return errs
}

// WithdrawMsg moves Amount of the unlocked funds of a stream to its
// recipient.
type WithdrawMsg struct {
	StreamID StreamID
	Amount   int64
}

var _ paystream.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

func (m *WithdrawMsg) Validate() error {
	// Amount is checked first so that a zero withdraw from an unknown
	// stream reports the amount.
	if m.Amount <= 0 {
		return errors.Field("Amount", ErrInvalidAmount, "must be positive")
	}
	return errors.Field("StreamID", m.StreamID.Validate(), "")
}

// PauseMsg stops the release of funds until the stream is resumed.
type PauseMsg struct {
	StreamID StreamID
}

var _ paystream.Msg = (*PauseMsg)(nil)

func (PauseMsg) Path() string {
	return pathPauseMsg
}

func (m *PauseMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *PauseMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

func (m *PauseMsg) Validate() error {
	return errors.Field("StreamID", m.StreamID.Validate(), "")
}

// ResumeMsg continues the release of a paused stream.
type ResumeMsg struct {
	StreamID StreamID
}

var _ paystream.Msg = (*ResumeMsg)(nil)

func (ResumeMsg) Path() string {
	return pathResumeMsg
}

func (m *ResumeMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *ResumeMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

func (m *ResumeMsg) Validate() error {
	return errors.Field("StreamID", m.StreamID.Validate(), "")
}

// CancelMsg stops a stream for good.
type CancelMsg struct {
	StreamID StreamID
}

var _ paystream.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(m)
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, m)
}

func (m *CancelMsg) Validate() error {
	return errors.Field("StreamID", m.StreamID.Validate(), "")
}

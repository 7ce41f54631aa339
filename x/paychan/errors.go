package paychan

import (
	"github.com/paystream/paystream/errors"
)

// ABCI Response Codes
// paychan takes 1020-1029
var (
	ErrChannelNotFound      = errors.Register(1020, "channel not found").Of(errors.ErrNotFound)
	ErrChannelIsClosed      = errors.Register(1021, "channel is closed").Of(errors.ErrInvalidState)
	ErrChannelAlreadyClosed = errors.Register(1022, "channel already closed").Of(errors.ErrInvalidState)
	ErrInvalidFinalState    = errors.Register(1023, "invalid final state").Of(errors.ErrInvalidInput)
	ErrInvalidDeposit       = errors.Register(1024, "invalid deposit").Of(errors.ErrInvalidInput)
	ErrInvalidAmount        = errors.Register(1025, "invalid amount").Of(errors.ErrInvalidInput)
	ErrInvalidSignature     = errors.Register(1026, "invalid voucher signature").Of(errors.ErrUnauthorized)
)

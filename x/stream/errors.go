package stream

import (
	"github.com/paystream/paystream/errors"
)

// ABCI Response Codes
// stream takes 1030-1039
var (
	ErrStreamNotFound      = errors.Register(1030, "stream not found").Of(errors.ErrNotFound)
	ErrStreamNotActive     = errors.Register(1031, "stream not active").Of(errors.ErrInvalidState)
	ErrStreamAlreadyPaused = errors.Register(1032, "stream already paused").Of(errors.ErrInvalidState)
	ErrStreamNotPaused     = errors.Register(1033, "stream not paused").Of(errors.ErrInvalidState)
	ErrStreamCancelled     = errors.Register(1034, "stream cancelled").Of(errors.ErrInvalidState)
	ErrInvalidParameters   = errors.Register(1035, "invalid stream parameters").Of(errors.ErrInvalidInput)
	ErrInvalidAmount       = errors.Register(1036, "invalid withdraw amount").Of(errors.ErrInvalidInput)
	ErrInsufficientFunds   = errors.Register(1037, "insufficient unlocked funds").Of(errors.ErrInsufficientAmount)
)

package sigs

import (
	"github.com/paystream/paystream/errors"
)

// x/sigs reserves 1000 ~ 1009.
var (
	ErrInvalidSequence  = errors.Register(1000, "invalid sequence number").Of(errors.ErrUnauthorized)
	ErrInvalidSignature = errors.Register(1001, "invalid signature").Of(errors.ErrUnauthorized)
)

package app

import "github.com/paystream/paystream/errors"

// app reserves 1010 ~ 1019.
var (
	ErrNoSuchPath = errors.Register(1010, "path not registered").Of(errors.ErrNotFound)
)

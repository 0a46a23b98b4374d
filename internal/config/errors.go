package config

import "errors"

var ErrUnknownFormat = errors.New("unknown config format")
var ErrMissing = errors.New("missing setting")
var ErrInvalid = errors.New("invalid setting")

package common

import "errors"

var (
	ErrorInvalidValue       = errors.New("invalid value")
	ErrorLengthMismatch     = errors.New("curve length mismatch")
	ErrorInvalidAccuracy    = errors.New("accuracy out of range [0, 1]")
	ErrorInvalidDegradation = errors.New("degradation factor below 1")
	ErrorUnknownPolicy      = errors.New("unknown policy")
	ErrorDuplicatePolicy    = errors.New("duplicate policy")
)

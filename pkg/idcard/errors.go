package idcard

import "errors"

// Parse failures. Validators never return these; they answer with a bool.
var (
	// ErrInvalidFormat covers empty input, wrong length, bad characters and a
	// check digit mismatch alike.
	ErrInvalidFormat = errors.New("illegal idcard number")

	ErrInvalidProvince = errors.New("there is no province for this idcard number")

	// ErrInvalidDate wraps the underlying date parse error.
	ErrInvalidDate = errors.New("invalid birthdate in idcard number")

	// ErrUnsupportedRegion marks a recognized shape whose checksum rule is not
	// implemented (Macau).
	ErrUnsupportedRegion = errors.New("checksum not supported for this region")

	ErrChecksumMismatch = errors.New("idcard checksum mismatch")
)

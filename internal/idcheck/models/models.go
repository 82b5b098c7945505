package models

import "time"

// Scheme names the numbering scheme a number was checked against.
type Scheme string

const (
	SchemeMainland18 Scheme = "mainland18"
	SchemeMainland15 Scheme = "mainland15"
	SchemeTaiwan     Scheme = "taiwan"
	SchemeHongKong   Scheme = "hong_kong"
	SchemeMacau      Scheme = "macau"
	SchemeUnknown    Scheme = "unknown"
)

// Reason explains why a number did not check out. Empty for valid numbers.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonInvalidFormat     Reason = "invalid_format"
	ReasonInvalidProvince   Reason = "invalid_province"
	ReasonInvalidDate       Reason = "invalid_date"
	ReasonChecksumMismatch  Reason = "checksum_mismatch"
	ReasonUnsupportedRegion Reason = "unsupported_region"
	ReasonUnrecognized      Reason = "unrecognized"
)

// Hint flags a number that checks out but deserves a second look.
type Hint string

const (
	HintNone Hint = ""
	// HintUncommonPrefix marks a single-letter Hong Kong number whose prefix
	// letter is not in common circulation.
	HintUncommonPrefix Hint = "uncommon_prefix"
)

// ChecksumNone is reported for schemes without a check digit (legacy 15-digit).
const ChecksumNone = "none"

// ParseResult is the outcome of parsing an 18-digit Mainland number. The
// number is only ever carried masked.
type ParseResult struct {
	MaskedNumber string
	Birthdate    time.Time
	ProvinceCode string
	Province     string
	Gender       string
	Male         bool
	Age          int
}

// CheckResult is the outcome of checking a number of any supported scheme.
// Region is always the Chinese name: the province for Mainland numbers,
// 台湾, 香港 or 澳门 for regional ones.
type CheckResult struct {
	MaskedNumber string
	Scheme       Scheme
	Valid        bool
	Checksum     string
	Region       string
	Gender       string
	Reason       Reason
	Hint         Hint

	// Converted holds the masked 18-digit form of a valid legacy 15-digit
	// number. POST /v1/idcards/convert returns it in full.
	Converted string
}

// Package privacy keeps identity numbers out of logs.
//
// Log lines carry either the masked number (idcard.Mask, for humans) or a
// keyed fingerprint (for correlating repeated lookups of the same number without
// storing it).
package privacy

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// fingerprintLen is the digest size in bytes; 16 bytes is plenty for log
// correlation.
const fingerprintLen = 16

// ErrInvalidKey is returned for keys blake2b cannot use.
var ErrInvalidKey = errors.New("fingerprint key must be 1-64 bytes")

// Fingerprinter derives stable, keyed fingerprints of identity numbers.
type Fingerprinter struct {
	key []byte
}

// NewFingerprinter returns a Fingerprinter keyed with key.
func NewFingerprinter(key []byte) (*Fingerprinter, error) {
	if len(key) == 0 || len(key) > blake2b.Size {
		return nil, ErrInvalidKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Fingerprinter{key: k}, nil
}

// Fingerprint returns the hex-encoded keyed BLAKE2b digest of number. A nil
// Fingerprinter returns an empty string.
func (f *Fingerprinter) Fingerprint(number string) string {
	if f == nil {
		return ""
	}
	h, err := blake2b.New(fingerprintLen, f.key)
	if err != nil {
		return ""
	}
	h.Write([]byte(number))
	return hex.EncodeToString(h.Sum(nil))
}

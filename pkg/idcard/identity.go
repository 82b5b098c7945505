package idcard

import "time"

// Gender as encoded in an identity number.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// String returns the single-letter code used on the wire: M, F or N.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "M"
	case GenderFemale:
		return "F"
	default:
		return "N"
	}
}

// Identity is the result of a successful Parse of an 18-digit Mainland number.
//
// Invariants:
//   - number passes ValidateMainland18 and its check digit is upper case
//   - birthdate is a calendar date at UTC midnight
//   - province resolves in the province table
//
// The zero value is not a parsed identity; check IsZero.
type Identity struct {
	number       string
	birthdate    time.Time
	provinceCode string
	province     string
	male         bool
}

func (i Identity) Number() string {
	return i.number
}

func (i Identity) Birthdate() time.Time {
	return i.birthdate
}

func (i Identity) Province() string {
	return i.province
}

func (i Identity) ProvinceCode() string {
	return i.provinceCode
}

// IsMale reports whether the sequence digit (position 16) is odd.
func (i Identity) IsMale() bool {
	return i.male
}

func (i Identity) Gender() Gender {
	if i.IsZero() {
		return GenderUnknown
	}
	if i.male {
		return GenderMale
	}
	return GenderFemale
}

// AgeAt returns the holder's age in whole years at now. The value is derived
// on every call and never cached.
func (i Identity) AgeAt(now time.Time) int {
	return AgeAt(i.birthdate, now)
}

// IsZero returns true if this is the zero value.
func (i Identity) IsZero() bool {
	return i.number == ""
}

// AgeAt returns the number of whole calendar years between birth and now. A
// birthday that falls later in the year than now has not been reached yet.
// Returns 0 when now is before birth.
//
// Example:
//
//	birth := time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)
//	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
//	AgeAt(birth, now) // 23
func AgeAt(birth, now time.Time) int {
	by, bm, bd := birth.Date()
	ny, nm, nd := now.In(birth.Location()).Date()

	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

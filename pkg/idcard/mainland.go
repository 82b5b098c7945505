package idcard

import (
	"fmt"
	"strings"
	"time"
)

const (
	mainland18Len = 18
	mainland15Len = 15

	birthLayout = "20060102"
)

// CheckDigit computes the Mainland check digit for the first 17 digits of an
// 18-digit number. The result is one of '0'-'9' or 'X'.
func CheckDigit(first17 string) (byte, error) {
	if len(first17) != mainland18Len-1 || !allDigits(first17) {
		return 0, ErrInvalidFormat
	}
	return checkDigit(first17), nil
}

func checkDigit(first17 string) byte {
	sum := 0
	for i := 0; i < len(weights); i++ {
		sum += int(first17[i]-'0') * weights[i]
	}
	return checkAlphabet[sum%11]
}

// ValidateMainland18 reports whether raw is an 18-character Mainland number
// whose last character matches the weighted checksum of the first 17 digits.
// The check digit is compared case-insensitively. Region and birthdate are not
// inspected; use Parse for that.
func ValidateMainland18(raw string) bool {
	if len(raw) != mainland18Len {
		return false
	}
	first17 := raw[:mainland18Len-1]
	if !allDigits(first17) {
		return false
	}
	return checkDigit(first17) == upper(raw[mainland18Len-1])
}

// Parse validates an 18-digit Mainland number and extracts the attributes
// encoded in it. Surrounding whitespace is ignored.
//
// Errors:
//   - ErrInvalidFormat when the input is empty, not 18 characters, contains
//     non-digits or fails the checksum
//   - ErrInvalidProvince when the region code is not in the province table
//   - ErrInvalidDate (wrapping the parse error) when positions 6-13 are not a
//     calendar date
func Parse(raw string) (Identity, error) {
	number := strings.TrimSpace(raw)
	if !ValidateMainland18(number) {
		return Identity{}, ErrInvalidFormat
	}
	number = number[:mainland18Len-1] + string(upper(number[mainland18Len-1]))

	code := number[:2]
	province, ok := provinces[code]
	if !ok {
		return Identity{}, fmt.Errorf("%w: region code %s", ErrInvalidProvince, code)
	}

	birthdate, err := time.Parse(birthLayout, number[6:14])
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}

	return Identity{
		number:       number,
		birthdate:    birthdate,
		provinceCode: code,
		province:     province,
		male:         (number[16]-'0')%2 == 1,
	}, nil
}

// MustParse is Parse that panics on error. Use only in tests or with numbers
// known to be valid.
func MustParse(raw string) Identity {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

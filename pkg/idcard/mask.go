package idcard

import "strings"

// Mask hides the middle of a number for logs and responses, keeping the first
// and last four characters: 11010519491231002X -> 1101**********002X.
// Inputs shorter than 8 characters are fully masked. Characters are runes, so
// multi-byte input is never cut mid-character.
func Mask(number string) string {
	runes := []rune(number)
	n := len(runes)
	if n < 8 {
		return strings.Repeat("*", n)
	}
	return string(runes[:4]) + strings.Repeat("*", n-8) + string(runes[n-4:])
}

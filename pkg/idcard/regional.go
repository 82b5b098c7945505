package idcard

import "strings"

// Region of issue for the 10-character schemes.
type Region int

const (
	RegionUnknown Region = iota
	RegionTaiwan
	RegionHongKong
	RegionMacau
)

func (r Region) String() string {
	switch r {
	case RegionTaiwan:
		return "Taiwan"
	case RegionHongKong:
		return "Hong Kong"
	case RegionMacau:
		return "Macau"
	default:
		return "Unknown"
	}
}

// LocalName returns the region name as printed on Mainland documents.
func (r Region) LocalName() string {
	switch r {
	case RegionTaiwan:
		return "台湾"
	case RegionHongKong:
		return "香港"
	case RegionMacau:
		return "澳门"
	default:
		return ""
	}
}

// Shape is the structural class of a regional number.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeTaiwan
	ShapeHongKong
	ShapeMacau
)

func (s Shape) Region() Region {
	switch s {
	case ShapeTaiwan:
		return RegionTaiwan
	case ShapeHongKong:
		return RegionHongKong
	case ShapeMacau:
		return RegionMacau
	default:
		return RegionUnknown
	}
}

// Checksum is the outcome of a regional check digit verification.
type Checksum int

const (
	ChecksumInvalid Checksum = iota
	ChecksumValid
	ChecksumUnsupported
)

func (c Checksum) String() string {
	switch c {
	case ChecksumValid:
		return "valid"
	case ChecksumUnsupported:
		return "unsupported"
	default:
		return "invalid"
	}
}

// RegionalResult describes a recognized Taiwan, Hong Kong or Macau number.
type RegionalResult struct {
	Region   Region
	Gender   Gender
	Checksum Checksum
}

// Valid reports whether the check digit was verified.
func (r RegionalResult) Valid() bool {
	return r.Checksum == ChecksumValid
}

// Err returns nil for a verified number, ErrUnsupportedRegion when the
// region's checksum rule is not implemented and ErrChecksumMismatch otherwise.
func (r RegionalResult) Err() error {
	switch r.Checksum {
	case ChecksumValid:
		return nil
	case ChecksumUnsupported:
		return ErrUnsupportedRegion
	default:
		return ErrChecksumMismatch
	}
}

// normalizeRegional drops bracket characters and upper-cases ASCII letters.
// Other bytes pass through unchanged so non-ASCII input never folds into a
// recognized shape.
func normalizeRegional(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(trimmed))
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '(' || c == ')' {
			continue
		}
		b.WriteByte(upper(c))
	}
	return b.String()
}

// ClassifyRegional returns the structural class of raw after normalization:
//
//	Taiwan     letter + 9 digits
//	Hong Kong  1-2 letters + 6 digits + digit or "A"
//	Macau      1, 5 or 7 + 6 digits + digit or letter
func ClassifyRegional(raw string) Shape {
	return classify(normalizeRegional(raw))
}

func classify(card string) Shape {
	switch len(card) {
	case 10:
		if isLetter(card[0]) && allDigits(card[1:]) {
			return ShapeTaiwan
		}
	case 8:
		if isMacau(card) {
			return ShapeMacau
		}
		if isLetter(card[0]) && isHongKongTail(card[1:]) {
			return ShapeHongKong
		}
	case 9:
		if isLetter(card[0]) && isLetter(card[1]) && isHongKongTail(card[2:]) {
			return ShapeHongKong
		}
	}
	return ShapeUnrecognized
}

func isMacau(card string) bool {
	switch card[0] {
	case '1', '5', '7':
	default:
		return false
	}
	last := card[7]
	return allDigits(card[1:7]) && (isDigit(last) || isLetter(last))
}

// isHongKongTail matches 6 digits followed by a digit or "A".
func isHongKongTail(tail string) bool {
	if len(tail) != 7 || !allDigits(tail[:6]) {
		return false
	}
	return isDigit(tail[6]) || tail[6] == 'A'
}

// ValidateRegional10 classifies raw as a Taiwan, Hong Kong or Macau number and
// verifies its check digit where a rule exists. It returns false when the
// shape is not recognized.
func ValidateRegional10(raw string) (RegionalResult, bool) {
	card := normalizeRegional(raw)
	switch classify(card) {
	case ShapeTaiwan:
		return validateTaiwan(card), true
	case ShapeHongKong:
		return RegionalResult{
			Region:   RegionHongKong,
			Gender:   GenderUnknown,
			Checksum: checksumOf(validHongKong(card)),
		}, true
	case ShapeMacau:
		return RegionalResult{
			Region:   RegionMacau,
			Gender:   GenderUnknown,
			Checksum: ChecksumUnsupported,
		}, true
	default:
		return RegionalResult{}, false
	}
}

func checksumOf(ok bool) Checksum {
	if ok {
		return ChecksumValid
	}
	return ChecksumInvalid
}

// validateTaiwan expects a normalized card of ShapeTaiwan. A sex digit other
// than 1 or 2 fails without computing the checksum.
func validateTaiwan(card string) RegionalResult {
	result := RegionalResult{Region: RegionTaiwan}
	switch card[1] {
	case '1':
		result.Gender = GenderMale
	case '2':
		result.Gender = GenderFemale
	default:
		result.Checksum = ChecksumInvalid
		return result
	}
	result.Checksum = checksumOf(validTaiwan(card))
	return result
}

func validTaiwan(card string) bool {
	v, ok := taiwanLetters[card[0]]
	if !ok {
		return false
	}
	sum := v/10 + (v%10)*9
	weight := 8
	for i := 1; i < 9; i++ {
		sum += int(card[i]-'0') * weight
		weight--
	}
	expected := 0
	if sum%10 != 0 {
		expected = 10 - sum%10
	}
	return expected == int(card[9]-'0')
}

// validHongKong expects a normalized card of ShapeHongKong. Letters count as
// their ASCII code minus 55 (A=10); a missing first letter is a space worth
// 58, hence the 522 seed. Some special-issue numbers are rejected by this rule.
func validHongKong(card string) bool {
	var sum int
	if len(card) == 9 {
		sum = int(card[0]-55)*9 + int(card[1]-55)*8
		card = card[1:]
	} else {
		sum = 522 + int(card[0]-55)*8
	}
	weight := 7
	for i := 1; i < 7; i++ {
		sum += int(card[i]-'0') * weight
		weight--
	}
	if card[7] == 'A' {
		sum += 10
	} else {
		sum += int(card[7] - '0')
	}
	return sum%11 == 0
}

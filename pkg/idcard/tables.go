package idcard

// provinces maps the leading two digits of a Mainland number to the
// provincial-level region of issue.
var provinces = map[string]string{
	"11": "北京",
	"12": "天津",
	"13": "河北",
	"14": "山西",
	"15": "内蒙古",
	"21": "辽宁",
	"22": "吉林",
	"23": "黑龙江",
	"31": "上海",
	"32": "江苏",
	"33": "浙江",
	"34": "安徽",
	"35": "福建",
	"36": "江西",
	"37": "山东",
	"41": "河南",
	"42": "湖北",
	"43": "湖南",
	"44": "广东",
	"45": "广西",
	"46": "海南",
	"50": "重庆",
	"51": "四川",
	"52": "贵州",
	"53": "云南",
	"54": "西藏",
	"61": "陕西",
	"62": "甘肃",
	"63": "青海",
	"64": "宁夏",
	"65": "新疆",
	"71": "台湾",
	"81": "香港",
	"82": "澳门",
}

// taiwanLetters holds the numeric value of the leading letter of a Taiwan
// number. The order is historical, not alphabetical (I, O, W, Z were added last).
var taiwanLetters = map[byte]int{
	'A': 10, 'B': 11, 'C': 12, 'D': 13, 'E': 14, 'F': 15, 'G': 16, 'H': 17,
	'J': 18, 'K': 19, 'L': 20, 'M': 21, 'N': 22, 'P': 23, 'Q': 24, 'R': 25,
	'S': 26, 'T': 27, 'U': 28, 'V': 29, 'X': 30, 'Y': 31, 'W': 32, 'Z': 33,
	'I': 34, 'O': 35,
}

// hongKongLetters lists the Hong Kong prefixes in common circulation. The
// checksum does not use it; see HongKongPrefixKnown.
var hongKongLetters = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'N': 14, 'O': 15, 'R': 18, 'U': 21, 'W': 23, 'X': 24, 'Z': 26,
}

// weights are applied positionally to the first 17 digits of a Mainland number.
var weights = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}

// checkAlphabet is indexed by the weighted sum mod 11.
const checkAlphabet = "10X98765432"

// Province returns the region name for a two-digit Mainland region code.
func Province(code string) (string, bool) {
	name, ok := provinces[code]
	return name, ok
}

// Provinces returns a copy of the region table.
func Provinces() map[string]string {
	out := make(map[string]string, len(provinces))
	for k, v := range provinces {
		out[k] = v
	}
	return out
}

// HongKongPrefixKnown reports whether letter is one of the single-letter Hong
// Kong prefixes in common circulation.
func HongKongPrefixKnown(letter byte) bool {
	_, ok := hongKongLetters[upper(letter)]
	return ok
}

// IsASCIILetter reports whether c is an ASCII letter of either case.
func IsASCIILetter(c byte) bool { return isLetter(upper(c)) }

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// atoi2 reads two ASCII digits; callers have already checked the charset.
func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

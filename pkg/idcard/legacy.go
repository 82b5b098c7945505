package idcard

import "time"

// Pivot resolves two-digit years from legacy 15-digit numbers into a 100-year
// window. A date is placed in the earliest century where it does not fall
// before the window start.
//
// The mapping is inherently lossy: a holder born in 1925 and one born in 2025
// share the same legacy digits, and only the window decides which is reported.
type Pivot struct {
	start time.Time
}

// PivotAt reproduces the legacy clock rule: the window starts 80 years before
// now and extends 20 years after it.
func PivotAt(now time.Time) Pivot {
	y, m, d := now.AddDate(-80, 0, 0).Date()
	return Pivot{start: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// PivotFromYear returns a fixed window [year, year+100).
func PivotFromYear(year int) Pivot {
	return Pivot{start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// Start returns the first day of the window.
func (p Pivot) Start() time.Time {
	return p.start
}

// IsZero returns true if this is the zero value. A zero Pivot resolves into
// the window starting at year 1 and is almost never what callers want.
func (p Pivot) IsZero() bool {
	return p.start.IsZero()
}

// Year maps a two-digit year with its month and day to a four-digit year.
func (p Pivot) Year(yy, month, day int) int {
	sy := p.start.Year()
	year := sy - sy%100 + yy
	if time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Before(p.start) {
		year += 100
	}
	return year
}

// legacyBirthdate reads the yyMMdd block of a 15-digit number and returns the
// resolved calendar date.
func legacyBirthdate(number string, pivot Pivot) (time.Time, bool) {
	yy, month, day := atoi2(number[6:8]), atoi2(number[8:10]), atoi2(number[10:12])
	year := pivot.Year(yy, month, day)
	return civilDate(year, month, day)
}

// civilDate builds a UTC date and reports false when time.Date had to
// normalize it (month 13, February 30 and so on).
func civilDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ConvertMainland15To18 upgrades a legacy 15-digit number to the 18-digit
// form: the two-digit year is widened through pivot and the check digit is
// appended. It returns false when raw is not 15 ASCII digits or its birth
// block is not a calendar date.
func ConvertMainland15To18(raw string, pivot Pivot) (string, bool) {
	if len(raw) != mainland15Len || !allDigits(raw) {
		return "", false
	}
	birth, ok := legacyBirthdate(raw, pivot)
	if !ok {
		return "", false
	}
	first17 := raw[:6] + birth.Format("2006") + raw[8:]
	return first17 + string(checkDigit(first17)), true
}

// ValidateMainland15 checks the structure of a legacy 15-digit number: all
// digits, a known region code and a calendar-valid birthdate under pivot. Any
// fault, including a bad date, yields false.
func ValidateMainland15(raw string, pivot Pivot) bool {
	if len(raw) != mainland15Len || !allDigits(raw) {
		return false
	}
	if _, ok := provinces[raw[:2]]; !ok {
		return false
	}
	_, ok := legacyBirthdate(raw, pivot)
	return ok
}

// Package idcard validates and parses identity-card numbers issued under the
// Mainland China, Taiwan, Hong Kong and Macau numbering schemes.
//
// # Schemes
//
//	Mainland 18-digit   6-digit region, yyyyMMdd birthdate, 3-digit sequence, check digit (ISO 7064 MOD 11-2)
//	Mainland 15-digit   6-digit region, yyMMdd birthdate, 3-digit sequence, no check digit
//	Taiwan              letter, sex digit, 8 digits (last one is the check digit)
//	Hong Kong           1-2 letters, 6 digits, check digit or "A", usually bracketed
//	Macau               1/5/7, 6 digits, check character, usually bracketed
//
// # Domain Purity
//
// This package performs no I/O, takes no context.Context and never calls
// time.Now(). Anything that depends on the current date (age, the century of a
// two-digit year) receives the time from the caller, either directly or through
// a Pivot.
//
// Only numbering-scheme conformance is checked. A valid result says nothing
// about whether the card was ever issued or is still in force.
package idcard

package identity

import "strings"

// defaultCountryCode is prefixed onto bare national numbers. The
// marketplace onboards through Indian phone sign-in.
const defaultCountryCode = "91"

// CanonicalPhone normalizes a phone representation to a single
// international form used for every lookup and store. It tolerates bare
// 10-digit national numbers, 91-prefixed digits, 0-prefixed trunk dialing
// and already-canonical values; separators are stripped. Canonicalization
// is idempotent. Empty or non-numeric input yields "".
func CanonicalPhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	plus := strings.HasPrefix(s, "+")
	if strings.HasPrefix(s, "00") {
		plus = true
		s = s[2:]
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return ""
	}

	if plus {
		return "+" + d
	}
	switch {
	case len(d) == 10:
		return "+" + defaultCountryCode + d
	case len(d) == 11 && d[0] == '0':
		return "+" + defaultCountryCode + d[1:]
	case len(d) == 12 && strings.HasPrefix(d, defaultCountryCode):
		return "+" + d
	default:
		return "+" + d
	}
}

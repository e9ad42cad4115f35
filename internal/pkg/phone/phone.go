// Package phone normalises guest identities received from the chat channel.
package phone

import (
	"regexp"
	"strings"
)

var (
	nonDigit   = regexp.MustCompile(`\D`)
	phoneShape = regexp.MustCompile(`^\+?[0-9][0-9 ()\-.]*$`)
)

const (
	minDigits = 7
	maxDigits = 15
)

// channel prefixes added by messaging gateways, e.g. "whatsapp:+27821234567"
var channelPrefixes = []string{"whatsapp:", "sms:", "tel:"}

func stripChannel(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	for _, p := range channelPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

// Valid reports whether raw has a minimal phone-like shape: optional leading
// plus, digits with common separators, and 7 to 15 digits in total.
func Valid(raw string) bool {
	s := stripChannel(raw)
	if !phoneShape.MatchString(s) {
		return false
	}
	n := len(nonDigit.ReplaceAllString(s, ""))
	return n >= minDigits && n <= maxDigits
}

// Normalize returns the canonical "+<digits>" form used as storage key.
// Callers should check Valid first; invalid input yields "".
func Normalize(raw string) string {
	if !Valid(raw) {
		return ""
	}
	return "+" + nonDigit.ReplaceAllString(stripChannel(raw), "")
}

// Mask hides all but the last four digits for logs and guest-facing text.
func Mask(normalized string) string {
	digits := nonDigit.ReplaceAllString(normalized, "")
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

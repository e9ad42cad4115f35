package flow

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidNumber = errors.New("not a whole number between 1 and 20")
	ErrInvalidDate   = errors.New("unrecognised date")
	ErrInvalidTime   = errors.New("unrecognised time")
	ErrTooShort      = errors.New("answer too short")
)

const (
	MinGuests             = 1
	MaxGuests             = 20
	MinLocationLength     = 3
	MinSectionLength      = 2
	noSpecialRequestsWord = "none"
	dateLayout            = "2006-01-02"
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// H[:]MM, optionally followed by am/pm, or H am/pm.
	timePattern = regexp.MustCompile(`^(\d{1,2}):?(\d{2})\s*(am|pm)?$|^(\d{1,2})\s*(am|pm)$`)
)

// IsCancel reports whether input aborts the current flow: exactly "cancel",
// or any message containing "cancel queue" / "cancel booking".
func IsCancel(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return s == "cancel" || strings.Contains(s, "cancel queue") || strings.Contains(s, "cancel booking")
}

// ParseCount accepts a whole number within [MinGuests, MaxGuests].
func ParseCount(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < MinGuests || n > MaxGuests {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

// ParseDate accepts "today", "tomorrow" or a YYYY-MM-DD literal and returns
// the normalised YYYY-MM-DD string relative to now.
func ParseDate(input string, now time.Time) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "today":
		return now.Format(dateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(dateLayout), nil
	}
	if !isoDatePattern.MatchString(s) {
		return "", ErrInvalidDate
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// ParseTime matches the loose time pattern and returns the trimmed input as
// the guest typed it.
func ParseTime(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if !timePattern.MatchString(s) {
		return "", ErrInvalidTime
	}
	return strings.TrimSpace(input), nil
}

// ParseText enforces a minimum trimmed length.
func ParseText(input string, minLen int) (string, error) {
	s := strings.TrimSpace(input)
	if len([]rune(s)) < minLen {
		return "", ErrTooShort
	}
	return s, nil
}

// SpecialRequests maps the literal "none" (any case) to "".
func SpecialRequests(input string) string {
	s := strings.TrimSpace(input)
	if strings.EqualFold(s, noSpecialRequestsWord) {
		return ""
	}
	return s
}

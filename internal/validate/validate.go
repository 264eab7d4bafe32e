package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9_-]{3,30}$`)
	// Text-formatted decimal with up to two fraction digits, as stored.
	reEarnings = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Earnings validates a text-formatted decimal (unit earnings, declared
// average earnings).
func Earnings(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reEarnings.MatchString(s)
}

// Name validates a product display name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Coordinate reports whether the pair is a plausible GPS position.
func Coordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Secret enforces a simple length window; secrets are stored and compared
// as-is.
func Secret(s string) bool {
	return len(s) >= 6 && len(s) <= 50
}

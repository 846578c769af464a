package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	reRole   = regexp.MustCompile(`^(buyer|seller)$`)
	reStatus = regexp.MustCompile(`^(pending|shipped)$`)
	reQuery  = regexp.MustCompile(`^[\p{L}\p{N} _'.,:!?-]{1,50}$`)
)

// Role accepts exactly "buyer" or "seller"; case is significant.
// Surrounding whitespace is rejected, not trimmed.
func Role(s string) (string, bool) {
	return s, reRole.MatchString(s)
}

// Status accepts the two order states, matched exactly like Role.
func Status(s string) (string, bool) {
	return s, reStatus.MatchString(s)
}

// Name validates a user's display name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	return s, n > 0 && n <= 100
}

// Title validates a book title.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	return s, n > 0 && n <= 200
}

// Query validates a search keyword: letters, digits, spaces and light
// punctuation, at most 50 characters.
func Query(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reQuery.MatchString(s)
}

// ID reports whether n can be a row id.
func ID(n int64) bool { return n > 0 }

func Quantity(n int) bool { return n >= 1 }

func Stock(n int) bool { return n >= 0 }

func Price(d decimal.Decimal) bool { return !d.IsNegative() }

package utils

import (
	"regexp"
)

// local@domain.tld with no whitespace and exactly one @ on each side of the split.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

package domain

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^(?:\+?254|0)\d{9}$`)

func NormalizePhone(value string) string {
	return strings.TrimSpace(value)
}

// IsValidPhone accepts Kenyan mobile numbers in local (07...) or
// international (+254... / 254...) form.
func IsValidPhone(value string) bool {
	return phonePattern.MatchString(NormalizePhone(value))
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Version token validation

package evidence

import (
	"regexp"
	"strings"
)

var (
	numericVersion = regexp.MustCompile(`^\d+(?:\.\d+)*$`)
	versionToken   = regexp.MustCompile(`\d+(?:\.\d+)*`)
)

// IsNumericVersion reports whether s is a dot separated sequence of
// non-negative integers ("17", "1.8", "3.11.4")
func IsNumericVersion(s string) bool {
	return numericVersion.MatchString(s)
}

// ExtractVersion returns the first numeric version token inside s
// ("v20.11.0" -> "20.11.0", ">=3.9,<4" -> "3.9")
func ExtractVersion(s string) (string, bool) {
	token := versionToken.FindString(s)
	return token, token != ""
}

// CleanVersion trims whitespace and quotes and checks the result is numeric
func CleanVersion(s string) (string, bool) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if !IsNumericVersion(s) {
		return "", false
	}
	return s, true
}

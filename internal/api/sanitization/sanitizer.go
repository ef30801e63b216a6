package sanitization

import (
	"regexp"
	"strings"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	lineEnds = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// SanitizeString drops control characters, collapses whitespace runs into
// single spaces and trims. Values are stored raw and escaped by whoever
// renders them.
func SanitizeString(input string) string {
	input = spaceRun.ReplaceAllString(input, " ")
	return strings.TrimSpace(strings.Map(dropControl(""), input))
}

// SanitizeEmail trims an address and lowercases its domain. The local part
// is kept as typed since mailbox names may be case sensitive.
func SanitizeEmail(input string) string {
	input = strings.TrimSpace(strings.Map(dropControl(""), input))
	at := strings.LastIndex(input, "@")
	if at < 0 {
		return input
	}
	return input[:at+1] + strings.ToLower(input[at+1:])
}

// SanitizeText trims free text and normalises line endings, keeping newlines
// and tabs but no other control characters.
func SanitizeText(input string) string {
	input = lineEnds.Replace(input)
	return strings.TrimSpace(strings.Map(dropControl("\n\t"), input))
}

// SanitizeOptional applies fn to a non-nil value.
func SanitizeOptional(input *string, fn func(string) string) *string {
	if input == nil {
		return nil
	}
	v := fn(*input)
	return &v
}

// dropControl returns a strings.Map function removing C0 controls and DEL,
// except the runes listed in keep. Postgres TEXT rejects NUL outright.
func dropControl(keep string) func(rune) rune {
	return func(r rune) rune {
		if (r < 0x20 || r == 0x7f) && !strings.ContainsRune(keep, r) {
			return -1
		}
		return r
	}
}

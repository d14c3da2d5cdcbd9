// Package label holds the rules that decide which scanned strings may be
// printed: whitespace normalization and the deployment's validation policy.
package label

import (
	"strings"
	"unicode"
)

// Code is a scanned or typed string after normalization. It holds no CR or
// LF, no run of more than one whitespace character, and no leading or
// trailing whitespace.
type Code string

func (c Code) String() string {
	return string(c)
}

// Normalize cleans raw scanner input. Scanners append CR and/or LF as a
// terminator; those are removed outright so a terminator glued to the code
// does not turn into a space. Every remaining whitespace run becomes one
// space and the ends are trimmed.
func Normalize(raw string) Code {
	raw = strings.NewReplacer("\r", "", "\n", "").Replace(raw)

	var b strings.Builder
	b.Grow(len(raw))

	space := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}

	return Code(strings.TrimSpace(b.String()))
}

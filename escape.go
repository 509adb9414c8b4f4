package mdmd

import "strings"

// escaper replaces all reserved characters in a single pass, so an escape
// marker inserted for one character is never itself escaped.
var escaper = strings.NewReplacer(
	`$`, `\$`,
	`#`, `\#`,
	`{`, `\{`,
	`}`, `\}`,
	`&`, `\&`,
)

// Escape prefixes each of the reserved characters $ # { } & with a
// backslash.
func Escape(s string) string {
	return escaper.Replace(s)
}

package rendering

import (
	"regexp"
	"strings"
)

// blankRun matches three or more line breaks, counting whitespace-only lines.
var blankRun = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)

// Normalize prepares document text for persistence: line endings become LF,
// runs of blank lines collapse to a single paragraph break, and surrounding
// whitespace is trimmed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	return blankRun.ReplaceAllString(text, "\n\n")
}

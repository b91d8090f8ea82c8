package llm

import "strings"

// ExtractJSON returns the first complete JSON object or array in text.
// Models wrap JSON in ```json fences or add a sentence before or after it
// even when told not to. Text without a balanced object or array is returned
// trimmed and otherwise unchanged.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if end := matchingClose(text, start); end > start {
		return text[start : end+1]
	}
	return text
}

// matchingClose returns the index of the bracket closing text[start], skipping
// brackets inside string literals, or -1.
func matchingClose(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

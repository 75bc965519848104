package engine

import "strings"

// HighlightWith wraps each case-insensitive literal occurrence of the
// normalized query in text with the given open and close tags. Text is
// returned unchanged when the normalized query is empty or not found. The
// core never renders; callers decide what the markers mean.
func HighlightWith(text, query, openTag, closeTag string) string {
	normalized := Normalize(query)
	if normalized == "" || text == "" {
		return text
	}

	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// Case folding changed byte offsets (rare non-Latin edge case);
		// skip highlighting rather than corrupt the text.
		return text
	}

	var b strings.Builder
	start := 0
	for {
		i := strings.Index(lower[start:], normalized)
		if i < 0 {
			break
		}
		i += start
		end := i + len(normalized)
		b.WriteString(text[start:i])
		b.WriteString(openTag)
		b.WriteString(text[i:end])
		b.WriteString(closeTag)
		start = end
	}
	if start == 0 {
		return text
	}
	b.WriteString(text[start:])
	return b.String()
}

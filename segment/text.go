package segment

import "strings"

// countTokens approximates the token length of text by counting
// whitespace-delimited words. It does not need to match the embedding
// model's tokenizer; it only has to be monotonic and consistent so that
// size-threshold decisions are stable.
func countTokens(text string) int {
	return len(strings.Fields(text))
}

// normalize collapses runs of three or more newlines to exactly two,
// collapses runs of spaces and tabs to a single space, and trims the result.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	newlines := 0
	pendingSpace := false
	for _, r := range text {
		switch r {
		case '\n':
			newlines++
			pendingSpace = false
		case ' ', '\t', '\r':
			pendingSpace = true
		default:
			if newlines > 0 {
				if newlines > 2 {
					newlines = 2
				}
				for i := 0; i < newlines; i++ {
					b.WriteByte('\n')
				}
				newlines = 0
			} else if pendingSpace {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// splitParagraphs splits text into blank-line-delimited blocks.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

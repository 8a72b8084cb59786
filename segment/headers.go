package segment

import (
	"slices"
	"strings"
)

// maxHeaderLevel is the deepest markdown header recognized (######).
const maxHeaderLevel = 6

// header is a recognized header line with its byte offsets in the document.
type header struct {
	level int
	text  string
	start int // offset of the line start
	end   int // offset just past the line's trailing newline
}

// headerNode is a (level, text) pair on the breadcrumb stack.
type headerNode struct {
	level int
	text  string
}

// section is a header-scoped span of document text. stack holds the chain of
// enclosing headers, outermost first; body excludes the headers themselves.
type section struct {
	stack []headerNode
	body  string
}

// parseHeaderLine reports whether line is a markdown header: one to six '#'
// markers, a space, then non-empty text.
func parseHeaderLine(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 1 || level > maxHeaderLevel {
		return 0, "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	text = strings.TrimSpace(line[level+1:])
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

// scanHeaders walks the document line by line and returns every header with
// its byte offsets. A single linear pass, no backtracking.
func scanHeaders(text string) []header {
	var headers []header
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if level, headerText, ok := parseHeaderLine(line); ok {
			headers = append(headers, header{
				level: level,
				text:  headerText,
				start: offset,
				end:   offset + len(line) + 1,
			})
		}
		offset += len(line) + 1
	}
	return headers
}

// splitSections partitions the document into header-scoped sections. Each
// header at level L pops every stack entry with level >= L before pushing
// itself, so the stack always holds the chain of currently-open ancestors.
// A document with no headers (or no non-empty section bodies) falls back to
// a single unheadered section spanning the whole text.
func splitSections(text string, headers []header) []section {
	if len(headers) == 0 {
		return wholeDocumentSection(text)
	}

	var sections []section
	var stack []headerNode

	for i, h := range headers {
		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, headerNode{level: h.level, text: h.text})

		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		bodyStart := h.end
		if bodyStart > end {
			bodyStart = end
		}

		body := strings.TrimSpace(text[bodyStart:end])
		if body == "" {
			continue
		}
		sections = append(sections, section{stack: slices.Clone(stack), body: body})
	}

	if len(sections) == 0 {
		return wholeDocumentSection(text)
	}
	return sections
}

func wholeDocumentSection(text string) []section {
	body := strings.TrimSpace(text)
	if body == "" {
		return nil
	}
	return []section{{body: body}}
}

// breadcrumb renders the header stack as markdown header lines joined by
// newlines, outermost first.
func breadcrumb(stack []headerNode) string {
	if len(stack) == 0 {
		return ""
	}
	lines := make([]string, len(stack))
	for i, node := range stack {
		lines[i] = strings.Repeat("#", node.level) + " " + node.text
	}
	return strings.Join(lines, "\n")
}

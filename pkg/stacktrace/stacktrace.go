package stacktrace

import (
	"regexp"
	"strings"
)

// Location is the source position of the frame that raised a failure.
// Line and Column are kept as text, exactly as they appear in the stack.
type Location struct {
	URL    string `json:"url,omitempty"`
	Line   string `json:"line,omitempty"`
	Column string `json:"column,omitempty"`
}

// IsZero reports whether no location could be extracted.
func (l Location) IsZero() bool {
	return l.URL == "" && l.Line == "" && l.Column == ""
}

// Frames look like `<context> (<url>:<line>:<column>)`. Splitting the text in
// parentheses on ':' leaves the line second to last and the column last.
const (
	lineOffset   = 2
	columnOffset = 1
)

// Greedy on purpose: the last parenthesized group on the line wins.
var parensPattern = regexp.MustCompile(`.*\((.*)\).*`)

// Parse returns the location of the first frame in stack.
func Parse(stack string) Location {
	if strings.HasPrefix(stack, goroutinePrefix) {
		return parseGoroutine(stack)
	}

	lines := strings.Split(stack, "\n")

	// Line 0 is the message, which may itself contain a colon.
	frame := ""
	for i, line := range lines {
		if i > 0 && strings.Contains(line, ":") {
			frame = line
			break
		}
	}
	if frame == "" {
		return Location{}
	}

	inner := textInParens(frame)
	if inner == "" {
		return Location{}
	}

	parts := strings.Split(inner, ":")
	n := len(parts)
	if n < lineOffset {
		return Location{}
	}

	return Location{
		// URLs contain colons themselves (scheme, port), so rejoin the head.
		URL:    strings.Join(parts[:n-lineOffset], ":"),
		Line:   parts[n-lineOffset],
		Column: parts[n-columnOffset],
	}
}

func textInParens(s string) string {
	m := parensPattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

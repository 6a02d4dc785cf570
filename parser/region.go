package parser

import "strings"

// ExtractBody returns the brace-delimited region that starts at the first
// '{' at or after start, up to and including the '}' that balances it. An
// unterminated region yields everything scanned from the first '{'. If there
// is no '{' the result is empty.
func ExtractBody(source string, start int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(source) {
		return ""
	}

	depth := 0
	begin := -1
	for i := start; i < len(source); i++ {
		switch source[i] {
		case '{':
			if begin < 0 {
				begin = i
			}
			depth++
		case '}':
			if begin < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return source[begin : i+1]
			}
		}
	}

	if begin < 0 {
		return ""
	}
	return source[begin:]
}

// ExtractIndentedBody returns the block owned by the header line containing
// start: every following line indented deeper than the header. Blank lines
// inside the block are kept; the block ends at the first non-blank line
// indented at or below the header.
func ExtractIndentedBody(source string, start int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(source) {
		return ""
	}

	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	headerEnd := strings.IndexByte(source[start:], '\n')
	if headerEnd < 0 {
		return ""
	}
	headerEnd += start
	headerIndent := Indentation(source[lineStart:headerEnd])

	var b strings.Builder
	rest := source[headerEnd+1:]
	for len(rest) > 0 {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}

		if strings.TrimSpace(line) != "" && Indentation(line) <= headerIndent {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n\t ")
}

// tabWidth is the column width a leading tab counts for.
const tabWidth = 4

// Indentation returns the width of the leading whitespace of line.
func Indentation(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			return width
		}
	}
	return width
}

package parser

import "strings"

// Normalize lower-cases source for case-insensitive cue matching.
func Normalize(source string) string {
	return strings.ToLower(source)
}

// Lines splits source into lines, accepting both \n and \r\n endings.
func Lines(source string) []string {
	if source == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
}

// CountLines returns the number of non-blank lines in source.
func CountLines(source string) int {
	n := 0
	for _, line := range Lines(source) {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// FindDeclaration returns the first declaration named name.
func FindDeclaration(decls []Declaration, name string) (Declaration, bool) {
	for _, d := range decls {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

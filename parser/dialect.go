package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/TFMV/bigocode/types"
)

// NestingStyle is how a dialect delimits blocks.
type NestingStyle int

const (
	BraceStyle NestingStyle = iota
	IndentationStyle
)

func (s NestingStyle) String() string {
	if s == IndentationStyle {
		return "indentation"
	}
	return "brace"
}

// NestingTracker follows loop depth through a sequence of source lines.
type NestingTracker interface {
	// Observe consumes the next line and returns the loop depth after it.
	Observe(line string, loopHeader bool) int
}

// braceTracker opens a level on each loop header and closes one on any line
// holding a '}'.
type braceTracker struct {
	depth int
}

func (t *braceTracker) Observe(line string, loopHeader bool) int {
	switch {
	case loopHeader:
		t.depth++
	case strings.Contains(line, "}"):
		if t.depth > 0 {
			t.depth--
		}
	}
	return t.depth
}

// indentTracker keeps the indentation of every open loop header. A line
// indented at or left of an open header closes it.
type indentTracker struct {
	stack   []int
	comment string
}

func (t *indentTracker) Observe(line string, loopHeader bool) int {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, t.comment) {
		return len(t.stack)
	}

	indent := Indentation(line)
	for len(t.stack) > 0 && t.stack[len(t.stack)-1] >= indent {
		t.stack = t.stack[:len(t.stack)-1]
	}
	if loopHeader {
		t.stack = append(t.stack, indent)
	}
	return len(t.stack)
}

// Declaration is a function or method found in a snippet.
type Declaration struct {
	Name   string
	Offset int
	Header string
	Body   string
}

// Dialect holds the language-specific scanning rules.
type Dialect struct {
	Language types.Language
	Style    NestingStyle

	loopHeaders     []*regexp.Regexp
	loopExclusions  []*regexp.Regexp
	declarations    []*regexp.Regexp
	lineComment     string
	explicitMethods bool
}

var (
	braceLoops = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfor\s*\(`),
		regexp.MustCompile(`(?i)\bwhile\s*\(`),
		regexp.MustCompile(`(?i)\bdo\s*(?:\{|$)`),
	}
	doWhileTail = regexp.MustCompile(`(?i)^\s*\}\s*while\s*\(.*\)\s*;`)

	indentLoops = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*(?:async\s+)?for\s+.*:`),
		regexp.MustCompile(`(?i)^\s*while\s+.*:`),
	}

	pythonDecl      = regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?def[ \t]+(?P<name>\w+)[ \t]*\(`)
	jsFunctionDecl  = regexp.MustCompile(`\bfunction\s*\*?\s*(?P<name>\w+)\s*\(`)
	jsArrowDecl     = regexp.MustCompile(`\b(?:const|let|var)\s+(?P<name>\w+)\s*=\s*(?:async\s*)?(?:function\b[^(]*)?\([^)]*\)\s*(?:=>\s*)?\{`)
	jsMethodDecl    = regexp.MustCompile(`(?m)^[ \t]*(?:(?:async|static)[ \t]+)*(?P<name>\w+)[ \t]*\([^)\n]*\)[ \t]*\{`)
	javaMethodDecl  = regexp.MustCompile(`(?m)^[ \t]*(?:[\w<>\[\],.?]+[ \t]+)+(?P<name>\w+)[ \t]*\([^)]*\)[ \t]*(?:throws[ \t]+[\w.,\s]+?)?\{`)
	cppFunctionDecl = regexp.MustCompile(`(?m)^[ \t]*(?:[\w:<>,*&]+[ \t]+)+[*&]?(?:\w+::)*(?P<name>~?\w+)[ \t]*\([^)]*\)[ \t]*(?:const[ \t]*)?(?:noexcept[ \t]*)?\{`)
)

// notDeclared are words a header pattern can capture that never name a
// function.
var notDeclared = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "new": true, "else": true, "do": true, "try": true,
	"throw": true, "synchronized": true, "function": true, "elif": true,
	"sizeof": true, "delete": true, "case": true,
}

var dialects = map[types.Language]*Dialect{
	types.Python: {
		Language:     types.Python,
		Style:        IndentationStyle,
		loopHeaders:  indentLoops,
		declarations: []*regexp.Regexp{pythonDecl},
		lineComment:  "#",
	},
	types.JavaScript: {
		Language:       types.JavaScript,
		Style:          BraceStyle,
		loopHeaders:    braceLoops,
		loopExclusions: []*regexp.Regexp{doWhileTail},
		declarations:   []*regexp.Regexp{jsFunctionDecl, jsArrowDecl, jsMethodDecl},
		lineComment:    "//",
	},
	types.Java: {
		Language:        types.Java,
		Style:           BraceStyle,
		loopHeaders:     braceLoops,
		loopExclusions:  []*regexp.Regexp{doWhileTail},
		declarations:    []*regexp.Regexp{javaMethodDecl},
		lineComment:     "//",
		explicitMethods: true,
	},
	types.Cpp: {
		Language:       types.Cpp,
		Style:          BraceStyle,
		loopHeaders:    braceLoops,
		loopExclusions: []*regexp.Regexp{doWhileTail},
		declarations:   []*regexp.Regexp{cppFunctionDecl},
		lineComment:    "//",
	},
}

// DialectFor returns the dialect of lang. Unknown languages get the
// JavaScript dialect.
func DialectFor(lang types.Language) *Dialect {
	if d, ok := dialects[lang]; ok {
		return d
	}
	return dialects[types.JavaScript]
}

// NewTracker returns a fresh nesting tracker for one pass over a snippet.
func (d *Dialect) NewTracker() NestingTracker {
	if d.Style == IndentationStyle {
		return &indentTracker{comment: d.lineComment}
	}
	return &braceTracker{}
}

// IsLoopHeader reports whether line opens a loop.
func (d *Dialect) IsLoopHeader(line string) bool {
	if d.IsComment(line) {
		return false
	}
	for _, ex := range d.loopExclusions {
		if ex.MatchString(line) {
			return false
		}
	}
	for _, p := range d.loopHeaders {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// IsComment reports whether line holds only a line comment.
func (d *Dialect) IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), d.lineComment)
}

// ExplicitMethods reports whether the dialect declares methods with typed
// headers that the per-method analysis understands.
func (d *Dialect) ExplicitMethods() bool {
	return d.explicitMethods
}

// Body returns the body of the declaration whose header starts at offset.
func (d *Dialect) Body(source string, offset int) string {
	if d.Style == IndentationStyle {
		return ExtractIndentedBody(source, offset)
	}
	return ExtractBody(source, offset)
}

// Declarations returns every function or method declared in source, in
// source order.
func (d *Dialect) Declarations(source string) []Declaration {
	seen := make(map[int]bool)
	var decls []Declaration

	for _, p := range d.declarations {
		nameIdx := p.SubexpIndex("name")
		for _, loc := range p.FindAllStringSubmatchIndex(source, -1) {
			name := source[loc[2*nameIdx]:loc[2*nameIdx+1]]
			header := source[loc[0]:loc[1]]
			if notDeclared[name] || !validHeader(source[loc[0]:loc[2*nameIdx]]) {
				continue
			}
			offset := loc[2*nameIdx]
			if seen[offset] {
				continue
			}
			seen[offset] = true

			// Brace bodies start after the parameter list, so braces in a
			// return type or a default argument are not taken for the body.
			bodyFrom := paramsEnd(source, loc[2*nameIdx+1])
			if d.Style == IndentationStyle {
				bodyFrom = loc[0]
			}
			decls = append(decls, Declaration{
				Name:   name,
				Offset: offset,
				Header: strings.TrimSpace(header),
				Body:   d.Body(source, bodyFrom),
			})
		}
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].Offset < decls[j].Offset })
	return decls
}

// validHeader rejects headers whose leading words show a statement rather
// than a declaration, e.g. `return new Foo(x) {`. The function keyword is
// allowed since it introduces JavaScript declarations.
func validHeader(prefix string) bool {
	for _, word := range strings.Fields(prefix) {
		if word != "function" && notDeclared[word] {
			return false
		}
	}
	return true
}

// paramsEnd returns the offset just past the parenthesized list that opens
// at or after from. Without one, from is returned unchanged.
func paramsEnd(source string, from int) int {
	open := strings.IndexByte(source[from:], '(')
	if open < 0 {
		return from
	}
	depth := 0
	for i := from + open; i < len(source); i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return from
}

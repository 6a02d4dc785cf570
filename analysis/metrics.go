package analysis

import (
	"strings"
	"sync"

	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
	"github.com/cespare/xxhash/v2"
)

// SourceMetrics holds simple size measures of a snippet.
type SourceMetrics struct {
	Lines          int     // Non-blank lines
	CommentLines   int     // Lines holding only a comment
	Declarations   int     // Functions and methods found
	CommentDensity float64 // CommentLines / Lines
}

// ComputeSourceMetrics measures code with the dialect of lang.
func ComputeSourceMetrics(code string, lang types.Language) SourceMetrics {
	dialect := parser.DialectFor(lang)

	m := SourceMetrics{Lines: parser.CountLines(code)}
	for _, line := range parser.Lines(code) {
		if strings.TrimSpace(line) != "" && dialect.IsComment(line) {
			m.CommentLines++
		}
	}
	m.Declarations = len(dialect.Declarations(code))
	if m.Lines > 0 {
		m.CommentDensity = float64(m.CommentLines) / float64(m.Lines)
	}
	return m
}

// CodeDuplicationDetector detects snippets that were already seen, ignoring
// case, indentation and blank lines.
type CodeDuplicationDetector struct {
	mu   sync.Mutex
	seen map[uint64]string // hash -> first path seen
}

// NewCodeDuplicationDetector initializes the detector.
func NewCodeDuplicationDetector() *CodeDuplicationDetector {
	return &CodeDuplicationDetector{
		seen: make(map[uint64]string),
	}
}

// DetectDuplication records code under path and returns the path it
// duplicates, if any.
func (c *CodeDuplicationDetector) DetectDuplication(path, code string) (string, bool) {
	hash := xxhash.Sum64String(canonicalize(code))

	c.mu.Lock()
	defer c.mu.Unlock()
	if first, exists := c.seen[hash]; exists {
		return first, true
	}
	c.seen[hash] = path
	return "", false
}

// canonicalize strips what does not change a snippet's shape.
func canonicalize(code string) string {
	var b strings.Builder
	for _, line := range parser.Lines(code) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		b.WriteString(strings.ToLower(trimmed))
		b.WriteByte('\n')
	}
	return b.String()
}

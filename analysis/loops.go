package analysis

import (
	"regexp"

	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
)

var factorialIdioms = []*regexp.Regexp{
	regexp.MustCompile(`\bn!(?:[^=]|$)`),
	regexp.MustCompile(`factorial`),
	regexp.MustCompile(`\bpermute\b`),
	regexp.MustCompile(`\bfor\s*\(.*n-1.*\)`),
}

func hasFactorialIdiom(line string) bool {
	for _, p := range factorialIdioms {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// AnalyzeLoops walks text line by line, tracking loop nesting with the
// dialect of lang. text is expected lower-cased.
func AnalyzeLoops(text string, lang types.Language) types.LoopSignal {
	dialect := parser.DialectFor(lang)
	tracker := dialect.NewTracker()

	var signal types.LoopSignal
	for _, line := range parser.Lines(text) {
		depth := tracker.Observe(line, dialect.IsLoopHeader(line))
		if depth > signal.MaxNestingDepth {
			signal.MaxNestingDepth = depth
		}
		if !signal.HasFactorialIdiom && hasFactorialIdiom(line) {
			signal.HasFactorialIdiom = true
		}
	}

	// Search and sort idioms take precedence over the raw nesting count.
	switch {
	case IsLikelyBinarySearch(text):
		signal.ImpliedTimeClass = types.Logarithmic
		signal.IdiomOverride = true
	case IsSortingIdiom(text):
		signal.ImpliedTimeClass = types.Linearithmic
		signal.IdiomOverride = true
	default:
		signal.ImpliedTimeClass = types.Polynomial(signal.MaxNestingDepth)
	}

	return signal
}

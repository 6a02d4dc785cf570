package types

import "strings"

// ComplexityClass is an asymptotic growth label such as "O(n log n)".
type ComplexityClass string

const (
	Constant          ComplexityClass = "O(1)"
	Logarithmic       ComplexityClass = "O(log n)"
	Linear            ComplexityClass = "O(n)"
	Linearithmic      ComplexityClass = "O(n log n)"
	Quadratic         ComplexityClass = "O(n^2)"
	Cubic             ComplexityClass = "O(n^3)"
	Exponential       ComplexityClass = "O(2^n)"
	Factorial         ComplexityClass = "O(n!)"
	LinearExponential ComplexityClass = "O(n·2^n)"
)

func (c ComplexityClass) String() string {
	return string(c)
}

// Language is a declared source language tag.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	Java       Language = "java"
	Cpp        Language = "cpp"

	// LanguageUnknown is analyzed with the default dialect.
	LanguageUnknown Language = "unknown"
)

var languageAliases = map[string]Language{
	"python":     Python,
	"py":         Python,
	"python3":    Python,
	"javascript": JavaScript,
	"js":         JavaScript,
	"node":       JavaScript,
	"java":       Java,
	"cpp":        Cpp,
	"c++":        Cpp,
	"cc":         Cpp,
	"cxx":        Cpp,
}

// ParseLanguage maps a language tag (case-insensitive, common aliases
// accepted) to a Language. Unrecognized tags yield LanguageUnknown.
func ParseLanguage(tag string) Language {
	if lang, ok := languageAliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return lang
	}
	return LanguageUnknown
}

// Languages lists the supported languages.
func Languages() []Language {
	return []Language{Python, JavaScript, Java, Cpp}
}

// AnalysisResult is the time and space estimate for one snippet.
type AnalysisResult struct {
	Time  ComplexityClass `json:"time"`
	Space ComplexityClass `json:"space"`
}

// RecursionSignal describes the recursive shape found in a snippet.
type RecursionSignal struct {
	HasRecursion           bool `json:"has_recursion"`
	IsPermutation          bool `json:"is_permutation"`
	MultipleRecursiveCalls bool `json:"multiple_recursive_calls"`
	ProcessesAllElements   bool `json:"processes_all_elements"`
	IsDivideAndConquer     bool `json:"is_divide_and_conquer"`
}

// Merge ORs the flags of other into s.
func (s RecursionSignal) Merge(other RecursionSignal) RecursionSignal {
	return RecursionSignal{
		HasRecursion:           s.HasRecursion || other.HasRecursion,
		IsPermutation:          s.IsPermutation || other.IsPermutation,
		MultipleRecursiveCalls: s.MultipleRecursiveCalls || other.MultipleRecursiveCalls,
		ProcessesAllElements:   s.ProcessesAllElements || other.ProcessesAllElements,
		IsDivideAndConquer:     s.IsDivideAndConquer || other.IsDivideAndConquer,
	}
}

// LoopSignal describes loop nesting found in a snippet.
type LoopSignal struct {
	MaxNestingDepth   int             `json:"max_nesting_depth"`
	HasFactorialIdiom bool            `json:"has_factorial_idiom"`
	ImpliedTimeClass  ComplexityClass `json:"implied_time_class"`
	// IdiomOverride is set when a search or sort idiom replaced the
	// nesting-derived class.
	IdiomOverride bool `json:"idiom_override"`
}

// MethodSignal is the per-method estimate for explicit-method languages.
type MethodSignal struct {
	Name         string          `json:"name"`
	Time         ComplexityClass `json:"time"`
	Backtracking bool            `json:"backtracking"`
}

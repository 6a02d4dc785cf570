// Package bigocode estimates the asymptotic time and space complexity of a
// source snippet from its text alone. Nothing is parsed or executed: loops,
// self-calls and well-known algorithm idioms are recognized with patterns and
// folded into the highest class they imply.
//
//	r := bigocode.Classify(src, "python")
//	fmt.Println(r.Time, r.Space) // O(n log n) O(n)
package bigocode

import (
	"github.com/TFMV/bigocode/analysis"
	"github.com/TFMV/bigocode/types"
)

// Result is a classification with plain string labels.
type Result struct {
	Time  string `json:"time"`
	Space string `json:"space"`
}

// Classify estimates the complexity of code. language is one of python,
// javascript, java or cpp (aliases such as "js" and "c++" are accepted);
// anything else is read as JavaScript-like code. Classify never fails.
func Classify(code, language string) Result {
	r := analysis.Classify(code, types.ParseLanguage(language))
	return Result{
		Time:  r.Time.String(),
		Space: r.Space.String(),
	}
}

// Languages lists the supported language tags.
func Languages() []string {
	langs := types.Languages()
	tags := make([]string, len(langs))
	for i, l := range langs {
		tags[i] = string(l)
	}
	return tags
}

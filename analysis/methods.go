package analysis

import (
	"strings"

	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
)

// MethodSummary is the outcome of per-method analysis.
type MethodSummary struct {
	Methods      []types.MethodSignal
	Best         types.ComplexityClass
	Backtracking bool
}

// AnalyzeMethods estimates each method declared in code on its own body.
// Only explicit-method dialects are analyzed; other languages yield an empty
// summary with Best set to O(1).
func AnalyzeMethods(code string, lang types.Language) MethodSummary {
	dialect := parser.DialectFor(lang)
	if !dialect.ExplicitMethods() {
		return MethodSummary{Best: types.Constant}
	}
	return analyzeMethods(dialect.Declarations(code), lang)
}

func analyzeMethods(decls []parser.Declaration, lang types.Language) MethodSummary {
	summary := MethodSummary{Best: types.Constant}
	for _, decl := range decls {
		m := methodSignal(decl, lang)
		summary.Methods = append(summary.Methods, m)
		summary.Best = types.Max(summary.Best, m.Time)
		summary.Backtracking = summary.Backtracking || m.Backtracking
	}
	return summary
}

func methodSignal(decl parser.Declaration, lang types.Language) types.MethodSignal {
	body := parser.Normalize(decl.Body)
	name := strings.ToLower(decl.Name)

	var time types.ComplexityClass
	switch {
	case IsLikelyBinarySearch(body):
		time = types.Logarithmic
	case IsSortingIdiom(body):
		time = types.Linearithmic
	default:
		time = AnalyzeLoops(body, lang).ImpliedTimeClass
	}

	return types.MethodSignal{
		Name:         decl.Name,
		Time:         time,
		Backtracking: strings.Contains(name, "solve") || strings.Contains(name, "backtrack"),
	}
}

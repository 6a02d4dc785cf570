package analysis

import (
	"github.com/TFMV/bigocode/expr"
	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
)

// cascadeState is the working set of one classification.
type cascadeState struct {
	text     string // lower-cased source
	lang     types.Language
	dialect  *parser.Dialect
	decls    []parser.Declaration
	patterns *expr.PatternCache

	report types.Report
}

// tier is one step of the cascade. apply folds its effect into the state and
// reports whether it contributed and whether the cascade ends here.
type tier struct {
	name  string
	apply func(s *cascadeState) (fired, stop bool)
}

// cascade lists the tiers in priority order. Early tiers return on an exact
// match; later tiers only raise classes through types.Max.
var cascade = []tier{
	{name: "binary-search", apply: binarySearchTier},
	{name: "backtracking", apply: backtrackingTier},
	{name: "recursion", apply: recursionTier},
	{name: "loops", apply: loopTier},
	{name: "methods", apply: methodTier},
	{name: "sorting", apply: sortingTier},
	{name: "logarithmic", apply: logarithmicTier},
	{name: "allocation", apply: allocationTier},
}

// TierNames returns the cascade tiers in the order they run.
func TierNames() []string {
	names := make([]string, len(cascade))
	for i, t := range cascade {
		names[i] = t.name
	}
	return names
}

func runCascade(s *cascadeState) {
	s.report.Result = types.AnalysisResult{Time: types.Constant, Space: types.Constant}
	s.report.Tiers = []string{}
	for _, t := range cascade {
		fired, stop := t.apply(s)
		if fired {
			s.report.Tiers = append(s.report.Tiers, t.name)
		}
		if stop {
			return
		}
	}
}

func (s *cascadeState) raiseTime(c types.ComplexityClass) {
	s.report.Result.Time = types.Max(s.report.Result.Time, c)
}

func (s *cascadeState) raiseSpace(c types.ComplexityClass) {
	s.report.Result.Space = types.Max(s.report.Result.Space, c)
}

func binarySearchTier(s *cascadeState) (bool, bool) {
	if !IsLikelyBinarySearch(s.text) {
		return false, false
	}
	s.report.Result = types.AnalysisResult{Time: types.Logarithmic, Space: types.Constant}
	return true, true
}

func backtrackingTier(s *cascadeState) (bool, bool) {
	if !IsBacktrackingIdiom(s.text, s.lang) {
		return false, false
	}
	s.report.Result = types.AnalysisResult{Time: types.Factorial, Space: types.Quadratic}
	return true, true
}

func recursionTier(s *cascadeState) (bool, bool) {
	sig := analyzeRecursion(s.patterns, s.decls)
	s.report.Recursion = sig
	if !sig.HasRecursion {
		return false, false
	}

	var r types.AnalysisResult
	switch {
	case sig.IsPermutation:
		r = types.AnalysisResult{Time: types.Factorial, Space: types.Linear}
	case sig.MultipleRecursiveCalls:
		r = types.AnalysisResult{Time: types.Exponential, Space: types.Linear}
		if sig.ProcessesAllElements {
			r.Time = types.LinearExponential
		}
	case sig.IsDivideAndConquer:
		r = types.AnalysisResult{Time: types.Logarithmic, Space: types.Logarithmic}
		if sig.ProcessesAllElements {
			r.Time = types.Linearithmic
		}
	default:
		r = types.AnalysisResult{Time: types.Linear, Space: types.Linear}
	}
	s.report.Result = r
	return true, false
}

func loopTier(s *cascadeState) (bool, bool) {
	sig := AnalyzeLoops(s.text, s.lang)
	s.report.Loops = sig

	if sig.HasFactorialIdiom {
		s.raiseTime(types.Factorial)
		return true, false
	}
	// Without a loop or an idiom there is nothing to fold; folding O(1)
	// would only overwrite an unranked class.
	if sig.MaxNestingDepth == 0 && !sig.IdiomOverride {
		return false, false
	}
	s.raiseTime(sig.ImpliedTimeClass)
	return true, false
}

func methodTier(s *cascadeState) (bool, bool) {
	if !s.dialect.ExplicitMethods() {
		return false, false
	}
	summary := analyzeMethods(s.decls, s.lang)
	s.report.Methods = summary.Methods
	if len(summary.Methods) == 0 {
		return false, false
	}
	s.raiseTime(summary.Best)
	return true, false
}

func sortingTier(s *cascadeState) (bool, bool) {
	if !IsSortingIdiom(s.text) {
		return false, false
	}
	s.raiseTime(types.Linearithmic)
	if IsMergeSortIdiom(s.text) {
		s.raiseSpace(types.Linear)
	}
	return true, false
}

func logarithmicTier(s *cascadeState) (bool, bool) {
	if !HasLogarithmicIdiom(s.text) {
		return false, false
	}
	s.raiseTime(types.Logarithmic)
	return true, false
}

func allocationTier(s *cascadeState) (bool, bool) {
	if !AllocatesNewContainer(s.text) {
		return false, false
	}
	space := types.Linear
	if depth := s.report.Loops.MaxNestingDepth; depth > 1 {
		space = types.Polynomial(depth)
	}
	s.raiseSpace(space)
	return true, false
}

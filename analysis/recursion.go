package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/TFMV/bigocode/expr"
	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
)

var (
	permutationVocabulary = regexp.MustCompile(`permut|factorial`)
	elementwiseIteration  = regexp.MustCompile(`\b(?:for|while)\b|\.foreach\s*\(|\.map\s*\(`)
	swapIdioms            = []*regexp.Regexp{
		regexp.MustCompile(`\bswap\w*\s*\(`),
		regexp.MustCompile(`\[\s*\w+\[[^\]\n]+\]\s*,\s*\w+\[[^\]\n]+\]\s*\]\s*=`),
		regexp.MustCompile(`\w+\[[^\]\n]+\]\s*,\s*\w+\[[^\]\n]+\]\s*=\s*\w+\[[^\]\n]+\]\s*,`),
		regexp.MustCompile(`\b(?:temp|tmp)\s*=\s*\w+\[`),
	}
)

var defaultPatterns = expr.NewPatternCache(1024)

// AnalyzeRecursion inspects every function declared in code for calls to
// itself. Signals from all functions are OR-combined.
func AnalyzeRecursion(code string, lang types.Language) types.RecursionSignal {
	decls := parser.DialectFor(lang).Declarations(code)
	return analyzeRecursion(defaultPatterns, decls)
}

func analyzeRecursion(patterns *expr.PatternCache, decls []parser.Declaration) types.RecursionSignal {
	var signal types.RecursionSignal
	for _, decl := range decls {
		signal = signal.Merge(recursionShape(patterns, decl))
	}
	return signal
}

// recursionShape classifies a single declaration.
func recursionShape(patterns *expr.PatternCache, decl parser.Declaration) types.RecursionSignal {
	calls := patterns.CallPattern(decl.Name).FindAllStringIndex(decl.Body, -1)
	if len(calls) == 0 {
		return types.RecursionSignal{}
	}

	name := strings.ToLower(decl.Name)
	body := strings.ToLower(decl.Body)
	lastCall := calls[len(calls)-1][0]

	return types.RecursionSignal{
		HasRecursion: true,
		IsPermutation: permutationVocabulary.MatchString(name) ||
			permutationVocabulary.MatchString(body) ||
			swapBefore(body, lastCall),
		MultipleRecursiveCalls: len(calls) > 1,
		IsDivideAndConquer:     IsLikelyBinarySearch(body) || IsSortingIdiom(body),
		ProcessesAllElements:   elementwiseIteration.MatchString(body),
	}
}

// swapBefore reports whether body swaps two elements before offset.
func swapBefore(body string, offset int) bool {
	for _, p := range swapIdioms {
		if loc := p.FindStringIndex(body); loc != nil && loc[0] < offset {
			return true
		}
	}
	return false
}

type functionNode struct {
	name    string
	index   int
	lowlink int
	inStack bool
}

// DetectCycles returns the groups of declarations that call each other in a
// cycle (mutual recursion). Direct self-calls are not reported here.
func DetectCycles(patterns *expr.PatternCache, decls []parser.Declaration) [][]string {
	callees := make(map[string][]string, len(decls))
	var order []string
	for _, caller := range decls {
		if _, seen := callees[caller.Name]; seen {
			continue
		}
		order = append(order, caller.Name)
		callees[caller.Name] = []string{}
		for _, callee := range decls {
			if callee.Name == caller.Name {
				continue
			}
			if patterns.CallPattern(callee.Name).MatchString(caller.Body) {
				callees[caller.Name] = append(callees[caller.Name], callee.Name)
			}
		}
	}

	index := 0
	stack := []string{}
	recData := map[string]*functionNode{}
	var cycles [][]string

	var tarjan func(caller string)
	tarjan = func(caller string) {
		rec := &functionNode{
			name:    caller,
			index:   index,
			lowlink: index,
			inStack: true,
		}
		recData[caller] = rec
		index++
		stack = append(stack, caller)

		for _, callee := range callees[caller] {
			if data, found := recData[callee]; !found {
				tarjan(callee)
				rec.lowlink = min(rec.lowlink, recData[callee].lowlink)
			} else if data.inStack {
				rec.lowlink = min(rec.lowlink, data.index)
			}
		}

		if rec.lowlink == rec.index {
			var sccNodes []string
			for {
				n := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				recData[n].inStack = false
				sccNodes = append(sccNodes, n)
				if n == caller {
					break
				}
			}
			if len(sccNodes) > 1 {
				sort.Strings(sccNodes)
				cycles = append(cycles, sccNodes)
			}
		}
	}

	for _, caller := range order {
		if _, found := recData[caller]; !found {
			tarjan(caller)
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

package analysis

import (
	"regexp"

	"github.com/TFMV/bigocode/types"
)

// Detector names a signature in the order the classifier consults them.
type Detector int

const (
	BinarySearch Detector = iota
	Backtracking
	Sorting
	MergeSort
	Logarithmic
	ContainerAllocation
)

var detectorNames = [...]string{
	BinarySearch:        "binary-search",
	Backtracking:        "backtracking",
	Sorting:             "sorting",
	MergeSort:           "merge-sort",
	Logarithmic:         "logarithmic",
	ContainerAllocation: "allocation",
}

func (d Detector) String() string {
	if d >= 0 && int(d) < len(detectorNames) {
		return detectorNames[d]
	}
	return "unknown"
}

// Cue is one structural hint a detector looks for.
type Cue struct {
	Name    string
	Pattern *regexp.Regexp
}

func cue(name, pattern string) Cue {
	return Cue{Name: name, Pattern: regexp.MustCompile(pattern)}
}

// binarySearchQuorum is how many distinct binary-search cues must match.
// Single names like mid, left and right are too common to trust alone.
const binarySearchQuorum = 3

var binarySearchCues = []Cue{
	cue("phrase", `binary[\s_-]*search`),
	cue("midpoint", `/\s*2\b|>>>?\s*1\b`),
	cue("narrowing", `\b(?:left|right|low|high|lo|hi|start|end|l|r)\s*=\s*(?:mid|middle)\b`),
	cue("mid-index", `\w\s*\[\s*(?:mid|middle)\s*\]`),
	cue("target-compare", `\b(?:if|elif)\b[^\n]*(?:[<>]=?|==)[^\n]*\b(?:target|key)\b|\b(?:if|elif)\b[^\n]*\b(?:target|key)\b[^\n]*(?:[<>]=?|==)`),
}

var backtrackingCues = []Cue{
	cue("n-queens", `n-queens|nqueens|n_queens|n queens`),
	cue("safe-queen", `(?:check|is)_?safe.*queen`),
	cue("place-queen", `place.*queen`),
	cue("named-solver", `\b(?:boolean|bool|void)\s+(?:solve|backtrack|issafe)\s*\(`),
	cue("is-safe", `\b(?:is_safe|issafe)\s*\(`),
	cue("solve-board", `solve.*board`),
	cue("check-diagonal", `check.*diagonal`),
	cue("check-row-col", `check.*row.*col`),
	cue("backtrack", `backtrack`),
	cue("board-call", `\(\s*board\s*,\s*\d+\s*\)`),
	cue("grid-call", `\(\s*grid\s*,\s*\d+\s*,\s*\d+\s*\)`),
}

// javaBacktrackingCues apply on top of backtrackingCues for Java.
var javaBacktrackingCues = []Cue{
	cue("void-backtrack", `\b(?:void|boolean)\s+backtrack\s*\(`),
	cue("board-solver", `list\s*<\s*list\s*<\s*string\s*>\s*>\s+solve`),
	cue("row-solver", `arraylist\s*<\s*string\s*>\s+solve`),
}

var sortingCues = []Cue{
	cue("sort-method", `\.sort\s*\(`),
	cue("sort-call", `\bsort\s*\(`),
	cue("sorted-call", `\bsorted\s*\(`),
	cue("named-sort", `quick_?sort|merge_?sort|heap_?sort`),
	cue("library-sort", `arrays\.sort|collections\.sort|std::sort|std::stable_sort|\bqsort\s*\(`),
	cue("partition-pivot", `partition.*pivot|pivot.*partition`),
	cue("merge-halves", `merge.*\b(?:left|right)\b`),
}

var mergeSortCues = []Cue{
	cue("named-merge-sort", `merge_?sort`),
	cue("merge-halves", `merge.*\b(?:left|right)\b`),
}

var allocationCues = []Cue{
	cue("new-container", `\bnew\s+(?:array|map|set|weakmap|weakset|node|treenode|listnode|arraylist|hashmap|hashset|linkedlist|arraydeque|priorityqueue)\b`),
	cue("new-array", `\bnew\s+\w+\s*\[`),
	cue("empty-brackets", `\[\s*\]`),
	cue("empty-braces", `\{\s*\}`),
	cue("constructor-call", `\b(?:list|dict|set|deque|defaultdict)\(\)`),
	cue("generic-container", `\b(?:array|arraylist|vector|list|map|hashmap|set|hashset|deque|queue|stack|unordered_map|unordered_set)\s*<[^>\n]*>`),
	cue("heap-allocation", `\bmalloc\s*\(\s*sizeof\s*\(|\bcalloc\s*\(`),
}

// MatchedCues returns the names of the cues in cues that match text.
func MatchedCues(cues []Cue, text string) []string {
	var matched []string
	for _, c := range cues {
		if c.Pattern.MatchString(text) {
			matched = append(matched, c.Name)
		}
	}
	return matched
}

func anyCue(cues []Cue, text string) bool {
	for _, c := range cues {
		if c.Pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// BinarySearchVotes counts the distinct binary-search cues in text.
func BinarySearchVotes(text string) int {
	return len(MatchedCues(binarySearchCues, text))
}

// IsLikelyBinarySearch reports whether text carries at least three
// binary-search cues. text is expected lower-cased.
func IsLikelyBinarySearch(text string) bool {
	return BinarySearchVotes(text) >= binarySearchQuorum
}

// IsBacktrackingIdiom reports whether text looks like a backtracking search.
func IsBacktrackingIdiom(text string, lang types.Language) bool {
	if anyCue(backtrackingCues, text) {
		return true
	}
	return lang == types.Java && anyCue(javaBacktrackingCues, text)
}

// IsSortingIdiom reports whether text sorts, by call or by implementation.
func IsSortingIdiom(text string) bool {
	return anyCue(sortingCues, text)
}

// IsMergeSortIdiom reports whether text uses merge-sort vocabulary.
func IsMergeSortIdiom(text string) bool {
	return anyCue(mergeSortCues, text)
}

// HasLogarithmicIdiom reports whether text shows a logarithmic shape.
// Only binary-search shaped code is recognized.
func HasLogarithmicIdiom(text string) bool {
	return IsLikelyBinarySearch(text)
}

// AllocatesNewContainer reports whether text builds a new collection.
func AllocatesNewContainer(text string) bool {
	return anyCue(allocationCues, text)
}

// Detect runs the detector d over text.
func Detect(d Detector, text string, lang types.Language) bool {
	switch d {
	case BinarySearch:
		return IsLikelyBinarySearch(text)
	case Backtracking:
		return IsBacktrackingIdiom(text, lang)
	case Sorting:
		return IsSortingIdiom(text)
	case MergeSort:
		return IsMergeSortIdiom(text)
	case Logarithmic:
		return HasLogarithmicIdiom(text)
	case ContainerAllocation:
		return AllocatesNewContainer(text)
	}
	return false
}

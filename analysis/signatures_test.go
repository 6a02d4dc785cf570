package analysis_test

import (
	"testing"

	"github.com/TFMV/bigocode/analysis"
	"github.com/TFMV/bigocode/types"
	"github.com/stretchr/testify/assert"
)

func TestIsLikelyBinarySearch(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		votes int
		want  bool
	}{
		{
			name: "classic",
			text: `while (left <= right) {
  const mid = math.floor((left + right) / 2);
  if (arr[mid] === target) return mid;
  if (arr[mid] < target) left = mid + 1; else right = mid - 1;
}`,
			votes: 4,
			want:  true,
		},
		{
			name:  "named only",
			text:  "// binary search goes here",
			votes: 1,
			want:  false,
		},
		{
			name:  "two cues",
			text:  "mid = (a + b) / 2\nreturn xs[mid]",
			votes: 2,
			want:  false,
		},
		{
			name:  "shift midpoint",
			text:  "int mid = (lo + hi) >>> 1;\nif (a[mid] < key) lo = mid + 1;",
			votes: 4,
			want:  true,
		},
		{
			name:  "plain loop",
			text:  "for (let i = 0; i < n; i++) { total += a[i]; }",
			votes: 0,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.votes, analysis.BinarySearchVotes(tt.text))
			assert.Equal(t, tt.want, analysis.IsLikelyBinarySearch(tt.text))
			assert.Equal(t, tt.want, analysis.HasLogarithmicIdiom(tt.text))
		})
	}
}

func TestIsBacktrackingIdiom(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang types.Language
		want bool
	}{
		{"queens", "def solve_n_queens(n):", types.Python, true},
		{"is safe", "if is_safe(board, row, col):", types.Python, true},
		{"boolean solver", "boolean solve(int[][] grid) {", types.Java, true},
		{"board call", "solveutil(board, 0)", types.Cpp, true},
		{"java list solver", "public list<list<string>> solvepuzzle(int n) {", types.Java, true},
		{"java list solver in js", "public list<list<string>> solvepuzzle(int n) {", types.JavaScript, false},
		{"generic solve", "def solve(nums):\n    return sum(nums)", types.Python, false},
		{"loop", "for (int i = 0; i < n; i++) sum += i;", types.Cpp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.IsBacktrackingIdiom(tt.text, tt.lang))
		})
	}
}

func TestSortingIdioms(t *testing.T) {
	tests := []struct {
		text      string
		sorting   bool
		mergeSort bool
	}{
		{"arr.sort((a, b) => a - b)", true, false},
		{"return sorted(xs)", true, false},
		{"std::sort(v.begin(), v.end());", true, false},
		{"collections.sort(list);", true, false},
		{"def merge_sort(a):", true, true},
		{"return merge(left, right)", true, true},
		{"int p = partition(a, lo, hi); // around pivot", true, false},
		{"total += x", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.sorting, analysis.IsSortingIdiom(tt.text))
			assert.Equal(t, tt.mergeSort, analysis.IsMergeSortIdiom(tt.text))
		})
	}
}

func TestAllocatesNewContainer(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"const out = [];", true},
		{"seen = {}", true},
		{"counts = dict()", true},
		{"map<string, integer> m = new hashmap<>();", true},
		{"int[] copy = new int[n];", true},
		{"std::vector<int> v;", true},
		{"int *p = malloc(sizeof(int) * n);", true},
		{"return a + b;", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.AllocatesNewContainer(tt.text))
		})
	}
}

func TestDetect(t *testing.T) {
	text := "const out = [];\narr.sort();"
	assert.True(t, analysis.Detect(analysis.Sorting, text, types.JavaScript))
	assert.True(t, analysis.Detect(analysis.ContainerAllocation, text, types.JavaScript))
	assert.False(t, analysis.Detect(analysis.BinarySearch, text, types.JavaScript))
	assert.False(t, analysis.Detect(analysis.Detector(42), text, types.JavaScript))

	assert.Equal(t, "merge-sort", analysis.MergeSort.String())
	assert.Equal(t, "unknown", analysis.Detector(-1).String())
}

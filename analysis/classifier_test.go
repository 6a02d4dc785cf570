package analysis_test

import (
	"sync"
	"testing"

	"github.com/TFMV/bigocode/analysis"
	"github.com/TFMV/bigocode/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarios = []struct {
	name  string
	code  string
	lang  types.Language
	want  types.AnalysisResult
	tiers []string
}{
	{
		name: "binary search",
		code: `function binarySearch(arr, target) {
  let left = 0, right = arr.length - 1;
  while (left <= right) {
    const mid = Math.floor((left + right) / 2);
    if (arr[mid] === target) return mid;
    if (arr[mid] < target) left = mid + 1; else right = mid - 1;
  }
  return -1;
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Logarithmic, Space: types.Constant},
		tiers: []string{"binary-search"},
	},
	{
		name: "n queens",
		code: `def is_safe(board, row, col):
    for i in range(col):
        if board[row][i] == 1:
            return False
    return True

def place(board, col):
    if col >= len(board):
        return True
    for r in range(len(board)):
        if is_safe(board, r, col):
            board[r][col] = 1
            if place(board, col + 1):
                return True
            board[r][col] = 0
    return False
`,
		lang:  types.Python,
		want:  types.AnalysisResult{Time: types.Factorial, Space: types.Quadratic},
		tiers: []string{"backtracking"},
	},
	{
		name: "permutations by swapping",
		code: `function permute(arr, l, r) {
  if (l === r) { console.log(arr.join('')); return; }
  for (let i = l; i <= r; i++) {
    [arr[l], arr[i]] = [arr[i], arr[l]];
    permute(arr, l + 1, r);
    [arr[l], arr[i]] = [arr[i], arr[l]];
  }
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Factorial, Space: types.Linear},
		tiers: []string{"recursion", "loops"},
	},
	{
		name: "two nested loops",
		code: `function countPairs(a) {
  let c = 0;
  for (let i = 0; i < a.length; i++) {
    for (let j = i + 1; j < a.length; j++) {
      if (a[i] + a[j] === 0) c++;
    }
  }
  return c;
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Quadratic, Space: types.Constant},
		tiers: []string{"loops"},
	},
	{
		name: "loop with library sort",
		code: `function doubledSorted(items) {
  const out = [];
  for (const item of items) {
    out.push(item * 2);
  }
  out.sort((a, b) => a - b);
  return out;
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Linearithmic, Space: types.Linear},
		tiers: []string{"loops", "sorting", "allocation"},
	},
	{
		name:  "garbage",
		code:  "%%% ??? lorem ipsum ;;; )(",
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Constant, Space: types.Constant},
		tiers: []string{},
	},
	{
		name:  "empty",
		code:  "",
		lang:  types.Python,
		want:  types.AnalysisResult{Time: types.Constant, Space: types.Constant},
		tiers: []string{},
	},
	{
		name: "exponential recursion beside a loop",
		code: `function fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
function scan(a) {
  for (let i = 0; i < a.length; i++) { use(a[i]); }
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Exponential, Space: types.Linear},
		tiers: []string{"recursion", "loops"},
	},
	{
		name: "linear recursion beside nested loops",
		code: `function sum(a, i) {
  if (i === a.length) return 0;
  return a[i] + sum(a, i + 1);
}
function grid(n) {
  for (let i = 0; i < n; i++) {
    for (let j = 0; j < n; j++) { cell(i, j); }
  }
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Quadratic, Space: types.Linear},
		tiers: []string{"recursion", "loops"},
	},
	{
		name: "merge sort keeps the branching estimate",
		code: `function mergeSort(a) {
  if (a.length < 2) return a;
  const mid = Math.floor(a.length / 2);
  return merge(mergeSort(a.slice(0, mid)), mergeSort(a.slice(mid)));
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Exponential, Space: types.Linear},
		tiers: []string{"recursion", "loops", "sorting"},
	},
	{
		name: "subsets without loops",
		code: `function subsets(items, i, cur) {
  if (i === items.length) { items.forEach(x => emit(x)); return; }
  subsets(items, i + 1, cur);
  subsets(items, i + 1, cur.concat(items[i]));
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.LinearExponential, Space: types.Linear},
		tiers: []string{"recursion"},
	},
	{
		name: "subsets with a loop",
		code: `function subsets(items, i, cur) {
  if (i === items.length) { items.forEach(x => emit(x)); return; }
  for (let k = 0; k < 1; k++) { tick(k); }
  subsets(items, i + 1, cur);
  subsets(items, i + 1, cur.concat(items[i]));
}`,
		lang:  types.JavaScript,
		want:  types.AnalysisResult{Time: types.Linear, Space: types.Linear},
		tiers: []string{"recursion", "loops"},
	},
	{
		name: "java methods",
		code: `class Grid {
    int total(int[][] g) {
        int s = 0;
        for (int i = 0; i < g.length; i++) {
            s += rowSum(g[i]);
        }
        return s;
    }

    void order(int[] a) {
        Arrays.sort(a);
    }
}`,
		lang:  types.Java,
		want:  types.AnalysisResult{Time: types.Linearithmic, Space: types.Linear},
		tiers: []string{"loops", "methods", "sorting", "allocation"},
	},
	{
		name: "nested loops allocating",
		code: `for i in range(n):
    row = []
    for j in range(n):
        row.append(i * j)
`,
		lang:  types.Python,
		want:  types.AnalysisResult{Time: types.Quadratic, Space: types.Quadratic},
		tiers: []string{"loops", "allocation"},
	},
}

func TestClassify(t *testing.T) {
	for _, tt := range scenarios {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.Classify(tt.code, tt.lang))
		})
	}
}

func TestExplain(t *testing.T) {
	for _, tt := range scenarios {
		t.Run(tt.name, func(t *testing.T) {
			report := analysis.Explain(tt.code, tt.lang)
			assert.Equal(t, tt.want, report.Result)
			assert.Equal(t, tt.lang, report.Language)
			assert.Equal(t, tt.tiers, report.Tiers)
		})
	}
}

func TestExplain_Signals(t *testing.T) {
	code := `function isEven(n) { return n === 0 ? true : isOdd(n - 1); }
function isOdd(n) { return n === 0 ? false : isEven(n - 1); }`

	report := analysis.Explain(code, types.JavaScript)
	assert.Equal(t, [][]string{{"isEven", "isOdd"}}, report.Cycles)
	assert.False(t, report.Recursion.HasRecursion)
	assert.Equal(t, types.AnalysisResult{Time: types.Constant, Space: types.Constant}, report.Result)

	java := scenarios[len(scenarios)-2]
	report = analysis.Explain(java.code, java.lang)
	require.Len(t, report.Methods, 2)
	assert.Equal(t, "total", report.Methods[0].Name)
	assert.Equal(t, types.Linear, report.Methods[0].Time)
	assert.Equal(t, types.Linearithmic, report.Methods[1].Time)
	assert.Equal(t, 1, report.Loops.MaxNestingDepth)
}

func TestTierNames(t *testing.T) {
	assert.Equal(t, []string{
		"binary-search", "backtracking", "recursion", "loops",
		"methods", "sorting", "logarithmic", "allocation",
	}, analysis.TierNames())
}

func TestClassify_BinarySearchPrecedence(t *testing.T) {
	code := `// backtrack over the sorted board with binary search
function find(board, target) {
  let lo = 0, hi = board.length - 1;
  while (lo <= hi) {
    const mid = (lo + hi) >> 1;
    if (board[mid] < target) lo = mid + 1; else hi = mid - 1;
  }
}`
	assert.True(t, analysis.IsBacktrackingIdiom(code, types.JavaScript))
	assert.Equal(t,
		types.AnalysisResult{Time: types.Logarithmic, Space: types.Constant},
		analysis.Classify(code, types.JavaScript))
}

func TestClassify_UnknownLanguage(t *testing.T) {
	for _, tt := range scenarios {
		if tt.lang != types.JavaScript {
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.Classify(tt.code, types.LanguageUnknown))
			assert.Equal(t, tt.want, analysis.Classify(tt.code, "ruby"))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	classifier := analysis.NewClassifier(4, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tt := range scenarios {
				assert.Equal(t, tt.want, classifier.Classify(tt.code, tt.lang), tt.name)
			}
		}()
	}
	wg.Wait()
}

func TestClassify_NeverLowersRecursionClass(t *testing.T) {
	for _, tt := range scenarios {
		t.Run(tt.name, func(t *testing.T) {
			report := analysis.Explain(tt.code, tt.lang)
			if !report.Recursion.HasRecursion || !types.Ranked(recursionTime(report.Recursion)) {
				return
			}
			assert.GreaterOrEqual(t,
				types.Rank(report.Result.Time),
				types.Rank(recursionTime(report.Recursion)))
		})
	}
}

// recursionTime mirrors the class the recursion tier assigns.
func recursionTime(sig types.RecursionSignal) types.ComplexityClass {
	switch {
	case sig.IsPermutation:
		return types.Factorial
	case sig.MultipleRecursiveCalls && sig.ProcessesAllElements:
		return types.LinearExponential
	case sig.MultipleRecursiveCalls:
		return types.Exponential
	case sig.IsDivideAndConquer && sig.ProcessesAllElements:
		return types.Linearithmic
	case sig.IsDivideAndConquer:
		return types.Logarithmic
	}
	return types.Linear
}

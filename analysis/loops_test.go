package analysis_test

import (
	"testing"

	"github.com/TFMV/bigocode/analysis"
	"github.com/TFMV/bigocode/types"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeLoops(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		lang      types.Language
		depth     int
		factorial bool
		implied   types.ComplexityClass
		override  bool
	}{
		{
			name:    "no loops",
			text:    "return a + b;",
			lang:    types.JavaScript,
			implied: types.Constant,
		},
		{
			name: "sequential loops",
			text: `for (let i = 0; i < n; i++) {
  a += i;
}
for (let j = 0; j < n; j++) {
  b += j;
}`,
			lang:    types.JavaScript,
			depth:   1,
			implied: types.Linear,
		},
		{
			name: "triple nested",
			text: `for (int i = 0; i < n; i++) {
  for (int j = 0; j < n; j++) {
    for (int k = 0; k < n; k++) {
      c[i][j] += a[i][k] * b[k][j];
    }
  }
}`,
			lang:    types.Cpp,
			depth:   3,
			implied: types.Cubic,
		},
		{
			name: "four deep",
			text: `for (a) {
for (b) {
for (c) {
for (d) {
}
}
}
}`,
			lang:    types.Java,
			depth:   4,
			implied: "O(n^4)",
		},
		{
			name: "do while",
			text: `do {
  while (x > 0) {
    x--;
  }
} while (y-- > 0);`,
			lang:    types.JavaScript,
			depth:   2,
			implied: types.Quadratic,
		},
		{
			name: "commented loop",
			text: `// for (let i = 0; i < n; i++) {
return 1;`,
			lang:    types.JavaScript,
			implied: types.Constant,
		},
		{
			name: "python nested",
			text: `for i in range(n):
    for j in range(n):
        total += i * j
for k in range(n):
    total -= k`,
			lang:    types.Python,
			depth:   2,
			implied: types.Quadratic,
		},
		{
			name: "python dedent closes loop",
			text: `for i in range(n):
    total += i
while total > 0:
    total -= 1`,
			lang:    types.Python,
			depth:   1,
			implied: types.Linear,
		},
		{
			name: "sort overrides nesting",
			text: `for (const row of rows) {
  row.sort();
}`,
			lang:     types.JavaScript,
			depth:    1,
			implied:  types.Linearithmic,
			override: true,
		},
		{
			name:      "factorial vocabulary",
			text:      "def factorial(n):\n    return 1",
			lang:      types.Python,
			factorial: true,
			implied:   types.Constant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := analysis.AnalyzeLoops(tt.text, tt.lang)
			assert.Equal(t, tt.depth, sig.MaxNestingDepth)
			assert.Equal(t, tt.factorial, sig.HasFactorialIdiom)
			assert.Equal(t, tt.implied, sig.ImpliedTimeClass)
			assert.Equal(t, tt.override, sig.IdiomOverride)
		})
	}
}

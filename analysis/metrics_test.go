package analysis_test

import (
	"sync"
	"testing"

	"github.com/TFMV/bigocode/analysis"
	"github.com/TFMV/bigocode/types"
	"github.com/stretchr/testify/assert"
)

func TestComputeSourceMetrics(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		lang     types.Language
		lines    int
		comments int
		decls    int
		density  float64
	}{
		{
			name: "python",
			code: `# helper
def twice(x):
    # doubles x

    return x * 2
`,
			lang:     types.Python,
			lines:    4,
			comments: 2,
			decls:    1,
			density:  0.5,
		},
		{
			name: "javascript",
			code: `// sum
function sum(xs) {
  let s = 0;
  for (const x of xs) { s += x; }
  return s;
}`,
			lang:     types.JavaScript,
			lines:    6,
			comments: 1,
			decls:    1,
			density:  1.0 / 6,
		},
		{
			name: "empty",
			code: "",
			lang: types.Cpp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := analysis.ComputeSourceMetrics(tt.code, tt.lang)
			assert.Equal(t, tt.lines, m.Lines)
			assert.Equal(t, tt.comments, m.CommentLines)
			assert.Equal(t, tt.decls, m.Declarations)
			assert.InDelta(t, tt.density, m.CommentDensity, 1e-9)
		})
	}
}

func TestDetectDuplication(t *testing.T) {
	detector := analysis.NewCodeDuplicationDetector()

	first := "function f(x) {\n  return x + 1;\n}\n"
	reformatted := "FUNCTION f(x) {\n\n      return x + 1;\n}"
	different := "function f(x) {\n  return x + 2;\n}\n"

	_, dup := detector.DetectDuplication("a.js", first)
	assert.False(t, dup)

	orig, dup := detector.DetectDuplication("b.js", reformatted)
	assert.True(t, dup)
	assert.Equal(t, "a.js", orig)

	_, dup = detector.DetectDuplication("c.js", different)
	assert.False(t, dup)
}

func TestDetectDuplication_Concurrent(t *testing.T) {
	detector := analysis.NewCodeDuplicationDetector()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		dupes int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, dup := detector.DetectDuplication("f.py", "x = 1\n"); dup {
				mu.Lock()
				dupes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 15, dupes)
}

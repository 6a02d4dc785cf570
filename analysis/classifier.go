package analysis

import (
	"github.com/TFMV/bigocode/expr"
	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
	"github.com/rs/zerolog"
)

// Classifier estimates the time and space complexity of source snippets.
// It holds no per-call state and is safe for concurrent use.
type Classifier struct {
	patterns *expr.PatternCache
	logger   zerolog.Logger
}

// NewClassifier creates a Classifier whose self-call pattern cache holds up
// to cacheSize entries.
func NewClassifier(cacheSize int, logger zerolog.Logger) *Classifier {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	return &Classifier{
		patterns: expr.NewPatternCache(cacheSize),
		logger:   logger.With().Str("component", "classifier").Logger(),
	}
}

var defaultClassifier = &Classifier{
	patterns: defaultPatterns,
	logger:   zerolog.Nop(),
}

// Classify estimates the complexity of code written in lang. It never fails:
// input without a recognizable idiom yields O(1) time and space.
func Classify(code string, lang types.Language) types.AnalysisResult {
	return defaultClassifier.Classify(code, lang)
}

// Explain is Classify plus the signals and tiers behind the result.
func Explain(code string, lang types.Language) types.Report {
	return defaultClassifier.Explain(code, lang)
}

func (c *Classifier) Classify(code string, lang types.Language) types.AnalysisResult {
	return c.Explain(code, lang).Result
}

func (c *Classifier) Explain(code string, lang types.Language) types.Report {
	dialect := parser.DialectFor(lang)
	s := &cascadeState{
		text:     parser.Normalize(code),
		lang:     lang,
		dialect:  dialect,
		decls:    dialect.Declarations(code),
		patterns: c.patterns,
	}
	s.report.Language = lang

	runCascade(s)
	s.report.Cycles = DetectCycles(c.patterns, s.decls)

	c.logger.Debug().
		Str("language", string(lang)).
		Str("time", string(s.report.Result.Time)).
		Str("space", string(s.report.Result.Space)).
		Strs("tiers", s.report.Tiers).
		Msg("classified snippet")

	return s.report
}

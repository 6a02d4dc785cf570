package analysis

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/TFMV/bigocode/config"
	"github.com/TFMV/bigocode/db"
	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/golang/groupcache/lru"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Analyzer classifies whole trees and stores the results
type Analyzer struct {
	DB         db.DB
	Parser     *parser.Parser
	Classifier *Classifier

	scan   config.Scan
	memo   *reportCache
	logger zerolog.Logger
}

// NewAnalyzer creates an Analyzer backed by SurrealDB
func NewAnalyzer(cfg config.Config, logger zerolog.Logger) (*Analyzer, error) {
	sdb, err := db.NewSurrealDB(cfg.DB())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	return New(sdb, cfg.Scan, logger), nil
}

// New creates an Analyzer over any DB implementation
func New(store db.DB, scan config.Scan, logger zerolog.Logger) *Analyzer {
	if scan.Workers <= 0 {
		scan.Workers = 1
	}
	return &Analyzer{
		DB:         store,
		Parser:     parser.NewParser(logger),
		Classifier: NewClassifier(0, logger),
		scan:       scan,
		memo:       newReportCache(scan.CacheSize),
		logger:     logger.With().Str("component", "analyzer").Logger(),
	}
}

// Initialize sets up the database connection and schema
func (a *Analyzer) Initialize(ctx context.Context) error {
	return a.DB.Initialize(ctx)
}

// Explain classifies code, reusing the result for code seen before.
func (a *Analyzer) Explain(code string, lang types.Language) types.Report {
	key := memoKey(code, lang)
	if report, ok := a.memo.get(key); ok {
		return report
	}
	report := a.Classifier.Explain(code, lang)
	a.memo.add(key, report)
	return report
}

// AnalyzeFile loads and classifies a single file.
func (a *Analyzer) AnalyzeFile(path string) (types.FileReport, error) {
	src, err := a.Parser.ParseFile(path, "")
	if err != nil {
		return types.FileReport{}, err
	}
	return a.fileReport(src), nil
}

func (a *Analyzer) fileReport(src parser.SourceFile) types.FileReport {
	report := a.Explain(src.Content, src.Language)
	metrics := ComputeSourceMetrics(src.Content, src.Language)
	return types.FileReport{
		File:           src.Path,
		Language:       src.Language,
		Time:           report.Result.Time,
		Space:          report.Result.Space,
		Tiers:          report.Tiers,
		Lines:          metrics.Lines,
		CommentDensity: metrics.CommentDensity,
		Methods:        report.Methods,
	}
}

// AnalyzeDirectory scans a directory tree and stores analysis results
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, dir string) (types.ScanReport, error) {
	report, err := a.GetAnalysis(ctx, dir)
	if err != nil {
		return types.ScanReport{}, fmt.Errorf("failed to analyze directory: %w", err)
	}

	if err := a.DB.StoreAnalysis(ctx, report); err != nil {
		return types.ScanReport{}, fmt.Errorf("failed to store analysis results: %w", err)
	}

	return report, nil
}

// GetAnalysis classifies every selected file under dir without storing
// results. Files are reported in path order.
func (a *Analyzer) GetAnalysis(ctx context.Context, dir string) (types.ScanReport, error) {
	report := types.ScanReport{Root: dir}

	var filePaths []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk directory: %w", err)
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			if a.excluded(dir, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := parser.LanguageOf(path); !ok {
			a.logger.Trace().Str("file", path).Err(parser.ErrUnsupportedFile).Msg("ignoring file")
			return nil
		}
		if !a.Selected(dir, path) {
			a.logger.Debug().Str("file", path).Msg("skipping file")
			report.Skipped = append(report.Skipped, path)
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	}); err != nil {
		return types.ScanReport{}, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	type result struct {
		file    types.FileReport
		content string
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.scan.Workers)
	resultCh := make(chan result, len(filePaths))

	for _, path := range filePaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := a.Parser.ParseFile(path, "")
			if err != nil {
				return fmt.Errorf("error reading %s: %w", path, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case resultCh <- result{file: a.fileReport(src), content: src.Content}:
				return nil
			}
		})
	}

	go func() {
		g.Wait()
		close(resultCh)
	}()

	var results []result
	for res := range resultCh {
		results = append(results, res)
	}

	if err := g.Wait(); err != nil {
		return types.ScanReport{}, err
	}

	// Duplicates are marked after sorting so the first copy is always the
	// lowest path.
	sort.Slice(results, func(i, j int) bool { return results[i].file.File < results[j].file.File })
	dupes := NewCodeDuplicationDetector()
	report.Files = make([]types.FileReport, 0, len(results))
	for _, res := range results {
		if first, dup := dupes.DetectDuplication(res.file.File, res.content); dup {
			a.logger.Debug().Str("file", res.file.File).Str("duplicate_of", first).Msg("duplicate source")
			res.file.IsDuplicate = true
		}
		report.Files = append(report.Files, res.file)
	}

	a.logger.Info().
		Str("root", dir).
		Int("files", len(report.Files)).
		Int("skipped", len(report.Skipped)).
		Msg("scan complete")

	return report, nil
}

// Selected reports whether path, a file under root, passes the include and
// exclude globs.
func (a *Analyzer) Selected(root, path string) bool {
	rel, ok := relative(root, path)
	if !ok {
		return false
	}
	if matchAny(a.scan.Exclude, rel) {
		return false
	}
	return matchAny(a.scan.Include, rel)
}

func (a *Analyzer) excluded(root, dir string) bool {
	rel, ok := relative(root, dir)
	if !ok {
		return true
	}
	// "**/x/**" only matches entries below x, so test a child path too.
	return matchAny(a.scan.Exclude, rel) || matchAny(a.scan.Exclude, rel+"/_")
}

func relative(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

func memoKey(code string, lang types.Language) uint64 {
	h := xxhash.New()
	h.WriteString(string(lang))
	h.WriteString("\x00")
	h.WriteString(code)
	return h.Sum64()
}

// reportCache memoizes classifications by content hash.
type reportCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// newReportCache returns a cache of size entries; size 0 disables caching.
func newReportCache(size int) *reportCache {
	if size <= 0 {
		return &reportCache{}
	}
	return &reportCache{cache: lru.New(size)}
}

func (c *reportCache) get(key uint64) (types.Report, bool) {
	if c.cache == nil {
		return types.Report{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if val, ok := c.cache.Get(key); ok {
		return val.(types.Report), true
	}
	return types.Report{}, false
}

func (c *reportCache) add(key uint64, report types.Report) {
	if c.cache == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, report)
}

// Cached returns the number of memoized classifications.
func (a *Analyzer) Cached() int {
	return a.memo.len()
}

func (c *reportCache) len() int {
	if c.cache == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/TFMV/bigocode/analysis"
	"github.com/TFMV/bigocode/config"
	"github.com/TFMV/bigocode/db"
	"github.com/TFMV/bigocode/growth"
	"github.com/TFMV/bigocode/types"
	"github.com/docopt/docopt-go"
	"github.com/rs/zerolog"
)

const version = "bigocode 0.1.0"

const usage = `bigocode estimates the time and space complexity of source code.

Usage:
  bigocode classify [--lang=<lang>] [--config=<file>] <file>
  bigocode explain [--lang=<lang>] [--config=<file>] <file>
  bigocode scan [--config=<file>] [--store] <dir>
  bigocode watch [--config=<file>] <dir>
  bigocode chart <time> [<space>]
  bigocode -h | --help
  bigocode --version

Options:
  -h --help         Show this screen.
  --version         Show version.
  --lang=<lang>     Language of <file>: python, javascript, java or cpp.
                    Inferred from the extension when omitted.
  --config=<file>   TOML configuration file.
  --store           Store the scan in SurrealDB.

Start SurrealDB for --store:
  surreal start --user root --pass root --bind 0.0.0.0:8000 memory
`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(stringOpt(opts, "--config"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case boolOpt(opts, "classify"), boolOpt(opts, "explain"):
		err = runClassify(opts, cfg, logger)
	case boolOpt(opts, "scan"):
		err = runScan(ctx, opts, cfg, logger)
	case boolOpt(opts, "watch"):
		err = runWatch(ctx, opts, cfg, logger)
	case boolOpt(opts, "chart"):
		err = runChart(opts)
	}
	if err != nil {
		stop()
		logger.Fatal().Err(err).Msg("bigocode failed")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func runClassify(opts docopt.Opts, cfg config.Config, logger zerolog.Logger) error {
	var lang types.Language
	if tag := stringOpt(opts, "--lang"); tag != "" {
		if lang = types.ParseLanguage(tag); lang == types.LanguageUnknown {
			logger.Warn().Str("lang", tag).Msg("unknown language, using the default dialect")
		}
	}

	analyzer := analysis.New(db.NewMockDB(), cfg.Scan, logger)
	src, err := analyzer.Parser.ParseFile(stringOpt(opts, "<file>"), lang)
	if err != nil {
		return err
	}

	report := analyzer.Explain(src.Content, src.Language)
	if boolOpt(opts, "explain") {
		return printJSON(report)
	}
	return printJSON(report.Result)
}

func runScan(ctx context.Context, opts docopt.Opts, cfg config.Config, logger zerolog.Logger) error {
	dir := stringOpt(opts, "<dir>")

	if !boolOpt(opts, "--store") {
		report, err := analysis.New(db.NewMockDB(), cfg.Scan, logger).GetAnalysis(ctx, dir)
		if err != nil {
			return err
		}
		fmt.Println(report.PrettyPrint())
		return nil
	}

	analyzer, err := analysis.NewAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}
	if closer, ok := analyzer.DB.(io.Closer); ok {
		defer closer.Close()
	}
	if err := analyzer.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}
	report, err := analyzer.AnalyzeDirectory(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Println(report.PrettyPrint())
	logger.Info().Int("files", len(report.Files)).Msg("classifications stored")
	return nil
}

func runWatch(ctx context.Context, opts docopt.Opts, cfg config.Config, logger zerolog.Logger) error {
	analyzer := analysis.New(db.NewMockDB(), cfg.Scan, logger)
	enc := json.NewEncoder(os.Stdout)

	return analyzer.Watch(ctx, stringOpt(opts, "<dir>"), cfg.Debounce(), func(report types.FileReport, err error) {
		if err != nil {
			logger.Error().Err(err).Msg("failed to classify")
			return
		}
		if err := enc.Encode(report); err != nil {
			logger.Error().Err(err).Msg("failed to write report")
		}
	})
}

func runChart(opts docopt.Opts) error {
	timeClass := types.ComplexityClass(stringOpt(opts, "<time>"))
	spaceClass := types.ComplexityClass(stringOpt(opts, "<space>"))
	if spaceClass == "" {
		spaceClass = types.Constant
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "n\ttime %s\tspace %s\n", timeClass, spaceClass)
	for _, p := range growth.Series(timeClass, spaceClass) {
		fmt.Fprintf(w, "%d\t%.4g\t%.4g\n", p.N, p.Time, p.Space)
	}
	return w.Flush()
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func stringOpt(opts docopt.Opts, key string) string {
	if s, ok := opts[key].(string); ok {
		return s
	}
	return ""
}

func boolOpt(opts docopt.Opts, key string) bool {
	b, _ := opts[key].(bool)
	return b
}

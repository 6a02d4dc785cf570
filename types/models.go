package types

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Report is the full outcome of classifying one snippet.
type Report struct {
	Result    AnalysisResult  `json:"result"`
	Language  Language        `json:"language"`
	Tiers     []string        `json:"tiers"`
	Recursion RecursionSignal `json:"recursion"`
	Loops     LoopSignal      `json:"loops"`
	Methods   []MethodSignal  `json:"methods,omitempty"`
	Cycles    [][]string      `json:"cycles,omitempty"`
}

// FileReport is a classification record for one source file
type FileReport struct {
	ID             *models.RecordID `json:"id,omitempty"`
	File           string           `json:"file"`
	Language       Language         `json:"language"`
	Time           ComplexityClass  `json:"time"`
	Space          ComplexityClass  `json:"space"`
	Tiers          []string         `json:"tiers"`
	Lines          int              `json:"lines"`
	CommentDensity float64          `json:"comment_density"`
	IsDuplicate    bool             `json:"is_duplicate"`
	Methods        []MethodSignal   `json:"methods"`
}

// ScanReport contains the classification of every file in a tree
type ScanReport struct {
	Root    string
	Files   []FileReport
	Skipped []string
}

// ScanSummary is a high-level view of a scan
type ScanSummary struct {
	TotalFiles     int            `json:"total_files"`
	TotalLines     int            `json:"total_lines"`
	DuplicateFiles int            `json:"duplicate_files"`
	SkippedFiles   int            `json:"skipped_files"`
	ByTime         map[string]int `json:"by_time"`
	BySpace        map[string]int `json:"by_space"`

	// Hotspots are the files with the highest time class
	Hotspots []string `json:"hotspots"`
}

// Summary aggregates the scan into counts per class.
func (r ScanReport) Summary() ScanSummary {
	s := ScanSummary{
		TotalFiles:   len(r.Files),
		SkippedFiles: len(r.Skipped),
		ByTime:       make(map[string]int),
		BySpace:      make(map[string]int),
		Hotspots:     make([]string, 0),
	}

	top := 0
	for _, f := range r.Files {
		s.TotalLines += f.Lines
		if f.IsDuplicate {
			s.DuplicateFiles++
		}
		s.ByTime[string(f.Time)]++
		s.BySpace[string(f.Space)]++

		rank := Rank(f.Time)
		switch {
		case rank > top:
			top = rank
			s.Hotspots = []string{f.File}
		case rank == top && rank > 0:
			s.Hotspots = append(s.Hotspots, f.File)
		}
	}
	sort.Strings(s.Hotspots)
	return s
}

// PrettyPrint returns a formatted summary of the scan
func (r ScanReport) PrettyPrint() string {
	type FileSummary struct {
		File     string `json:"file"`
		Language string `json:"language"`
		Time     string `json:"time"`
		Space    string `json:"space"`
		Lines    int    `json:"lines"`
	}

	type Summary struct {
		Root  string        `json:"root"`
		Stats ScanSummary   `json:"stats"`
		Files []FileSummary `json:"files"`
	}

	summary := Summary{
		Root:  r.Root,
		Stats: r.Summary(),
		Files: make([]FileSummary, 0, len(r.Files)),
	}

	for _, f := range r.Files {
		summary.Files = append(summary.Files, FileSummary{
			File:     f.File,
			Language: string(f.Language),
			Time:     string(f.Time),
			Space:    string(f.Space),
			Lines:    f.Lines,
		})
	}

	jsonBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating summary: %v", err)
	}

	return string(jsonBytes)
}

package db

import (
	"context"
	"fmt"

	"github.com/TFMV/bigocode/schema"
	"github.com/TFMV/bigocode/types"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

func NewSurrealDB(config Config) (*SurrealDB, error) {
	db, err := surrealdb.New(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SurrealDB{
		db:     db,
		config: config,
	}, nil
}

// Initialize selects the namespace, signs in and defines the schema.
func (s *SurrealDB) Initialize(ctx context.Context) error {
	if err := s.db.Use(s.config.Namespace, s.config.Database); err != nil {
		return fmt.Errorf("failed to set namespace/database: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: s.config.Username,
		Password: s.config.Password,
	}
	token, err := s.db.SignIn(authData)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}

	if err := s.db.Authenticate(token); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := schema.InitializeSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// StoreAnalysis writes one scan row and one classification row per file.
func (s *SurrealDB) StoreAnalysis(ctx context.Context, report types.ScanReport) error {
	summary := report.Summary()
	scan := scanRecord{
		Root:           report.Root,
		TotalFiles:     summary.TotalFiles,
		TotalLines:     summary.TotalLines,
		DuplicateFiles: summary.DuplicateFiles,
		Skipped:        report.Skipped,
		Hotspots:       summary.Hotspots,
	}
	if _, err := surrealdb.Create[scanRecord](s.db, models.Table(schema.ScansTable), scan); err != nil {
		return fmt.Errorf("error storing scan %s: %w", report.Root, err)
	}

	for _, f := range report.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := surrealdb.Create[types.FileReport](s.db, models.Table(schema.ClassificationsTable), f); err != nil {
			return fmt.Errorf("error storing classification %s: %w", f.File, err)
		}
	}

	return nil
}

// Close ends the session.
func (s *SurrealDB) Close() error {
	return s.db.Close()
}

type scanRecord struct {
	ID             *models.RecordID `json:"id,omitempty"`
	Root           string           `json:"root"`
	TotalFiles     int              `json:"total_files"`
	TotalLines     int              `json:"total_lines"`
	DuplicateFiles int              `json:"duplicate_files"`
	Skipped        []string         `json:"skipped"`
	Hotspots       []string         `json:"hotspots"`
}

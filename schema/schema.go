package schema

import (
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

const (
	ScansTable           = "scans"
	ClassificationsTable = "classifications"
)

// Definitions returns the SurrealQL statements run by InitializeSchema, in order.
func Definitions() []string {
	return []string{
		// One row per scanned tree
		`DEFINE TABLE scans SCHEMAFULL;
		 DEFINE FIELD root ON scans TYPE string;
		 DEFINE FIELD total_files ON scans TYPE int;
		 DEFINE FIELD total_lines ON scans TYPE int;
		 DEFINE FIELD duplicate_files ON scans TYPE int;
		 DEFINE FIELD skipped ON scans TYPE array<string>;
		 DEFINE FIELD hotspots ON scans TYPE array<string>;
		 DEFINE FIELD created_at ON scans TYPE datetime DEFAULT time::now();
		 DEFINE INDEX scan_root ON scans FIELDS root;`,

		// One row per classified file
		`DEFINE TABLE classifications SCHEMAFULL;
		 DEFINE FIELD file ON classifications TYPE string;
		 DEFINE FIELD language ON classifications TYPE string;
		 DEFINE FIELD time ON classifications TYPE string;
		 DEFINE FIELD space ON classifications TYPE string;
		 DEFINE FIELD tiers ON classifications TYPE array<string>;
		 DEFINE FIELD lines ON classifications TYPE int;
		 DEFINE FIELD comment_density ON classifications TYPE float;
		 DEFINE FIELD is_duplicate ON classifications TYPE bool;
		 DEFINE FIELD methods ON classifications FLEXIBLE TYPE option<array<object>>;
		 DEFINE FIELD created_at ON classifications TYPE datetime DEFAULT time::now();
		 DEFINE INDEX classification_file ON classifications FIELDS file;
		 DEFINE INDEX classification_time ON classifications FIELDS time;
		 DEFINE INDEX classification_language ON classifications FIELDS language;`,
	}
}

// InitializeSchema sets up the tables and indexes for classification records
func InitializeSchema(db *surrealdb.DB) error {
	for _, schema := range Definitions() {
		if _, err := surrealdb.Query[any](db, schema, map[string]interface{}{}); err != nil {
			return fmt.Errorf("schema initialization error: %w", err)
		}
	}

	return nil
}

package source

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pivotr-org/pivotr/catalog"
	"github.com/pivotr-org/pivotr/engine"
)

// ============================================================================
// SQLITE SOURCE — loads records from a local SQLite table
// ============================================================================
// Ingestion jobs land transaction snapshots in SQLite; this adapter reads a
// table back into records. Only the catalog's columns are selected, typed by
// their field kind.
// ============================================================================

// DB wraps a SQLite connection used as a record source.
type DB struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database file.
func OpenSQLite(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadRecords reads every row of a table into records. Table and column
// names must be plain identifiers; NULLs read as absent values.
func (d *DB) LoadRecords(table string, cat catalog.Catalog) ([]engine.Record, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	fields := cat.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("catalog has no fields")
	}
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if !identRe.MatchString(f.ID) {
			return nil, fmt.Errorf("invalid column name %q", f.ID)
		}
		cols = append(cols, `"`+f.ID+`"`)
	}

	rows, err := d.db.Query(fmt.Sprintf(`SELECT %s FROM "%s"`, strings.Join(cols, ", "), table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var records []engine.Record
	for rows.Next() {
		dest := make([]any, len(fields))
		strVals := make([]sql.NullString, len(fields))
		numVals := make([]sql.NullFloat64, len(fields))
		for i, f := range fields {
			if f.Kind == catalog.Measure {
				dest[i] = &numVals[i]
			} else {
				dest[i] = &strVals[i]
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}
		for i, f := range fields {
			if f.Kind == catalog.Measure {
				if numVals[i].Valid {
					rec.Measures[f.ID] = numVals[i].Float64
				}
			} else if strVals[i].Valid {
				rec.Dimensions[f.ID] = strVals[i].String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", table, err)
	}

	return records, nil
}

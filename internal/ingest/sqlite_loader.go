package ingest

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/agentic-research/keysearch/internal/tree"
)

// ResultsTable is the table LoadSQLite reads. Each row holds one JSON record.
const ResultsTable = "results"

// StreamSQLite iterates over all rows of the results table, calling fn with
// each raw (id, json) pair in rowid order.
func StreamSQLite(dbPath string, fn func(id, raw string) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query("SELECT id, record FROM " + ResultsTable + " ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("query %s: %w", ResultsTable, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadSQLite builds a keyed root with one member per row of the results
// table: the row id maps to the parsed record.
func LoadSQLite(dbPath string) (*tree.Node, error) {
	root := tree.NewKeyed()
	err := StreamSQLite(dbPath, func(id, raw string) error {
		record, err := ParseYAML([]byte(raw))
		if err != nil {
			return fmt.Errorf("parse record %s: %w", id, err)
		}
		root.Add(id, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

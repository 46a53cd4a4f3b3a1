package persist

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/siso-ai/siso-database/internal/table"
)

//go:embed schema.sql
var schemaSQL string

// SaveSQLite writes the store as a SQLite snapshot at path. Any
// existing file is replaced so the snapshot never mixes with stale
// tables from an earlier save.
func SaveSQLite(s *table.Store, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replace snapshot %s: %w", path, err)
	}

	db, err := openSnapshot(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for pos, t := range s.Tables() {
		jt, err := encodeTable(t)
		if err != nil {
			return fmt.Errorf("encode table %s: %w", t.Schema.Name, err)
		}

		schemaDoc, err := json.Marshal(jt.Columns)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO snapshot_tables (position, name, schema_json) VALUES (?, ?, ?)",
			pos, jt.Name, string(schemaDoc),
		); err != nil {
			return fmt.Errorf("save table %s: %w", jt.Name, err)
		}

		for rowPos, jr := range jt.Rows {
			rowDoc, err := json.Marshal(jr)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				"INSERT INTO snapshot_rows (table_name, position, row_json) VALUES (?, ?, ?)",
				jt.Name, rowPos, string(rowDoc),
			); err != nil {
				return fmt.Errorf("save row %d of %s: %w", rowPos, jt.Name, err)
			}
		}
	}

	return tx.Commit()
}

// LoadSQLite reads a SQLite snapshot into a fresh store, restoring
// tables in creation order and rows in insertion order.
func LoadSQLite(path string) (*table.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}

	db, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	s := table.NewStore()

	rows, err := db.Query("SELECT name, schema_json FROM snapshot_tables ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("read snapshot tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name, schemaDoc string
		if err := rows.Scan(&name, &schemaDoc); err != nil {
			return nil, err
		}

		var columns []jsonColumn
		if err := json.Unmarshal([]byte(schemaDoc), &columns); err != nil {
			return nil, fmt.Errorf("parse schema for %s: %w", name, err)
		}
		if err := decodeTable(s, jsonTable{Name: name, Columns: columns}); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range names {
		if err := loadRows(db, s, name); err != nil {
			return nil, fmt.Errorf("load rows of %s: %w", name, err)
		}
	}
	return s, nil
}

func loadRows(db *sql.DB, s *table.Store, name string) error {
	rows, err := db.Query(
		"SELECT row_json FROM snapshot_rows WHERE table_name = ? ORDER BY position", name)
	if err != nil {
		return err
	}
	defer rows.Close()

	var batch []table.Row
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return err
		}

		var jr jsonRow
		if err := json.Unmarshal([]byte(doc), &jr); err != nil {
			return err
		}
		row, err := decodeRow(jr)
		if err != nil {
			return err
		}
		batch = append(batch, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return s.InsertAll(name, batch)
}

// openSnapshot opens the snapshot file with the pragmas a short-lived
// single-writer connection needs.
func openSnapshot(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to snapshot %s: %w", path, err)
	}

	// One connection: the snapshot is written and read by a single caller.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply snapshot schema: %w", err)
	}
	return db, nil
}

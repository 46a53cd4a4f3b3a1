// Package persist snapshots the in-memory store to disk and loads it
// back. Two backends: a JSON document for portability, and a SQLite
// file for anything ending in a sqlite-ish extension. The round-trip is
// exact - schema flags, declared defaults, and null cells all survive.
package persist

import (
	"path/filepath"
	"strings"

	"github.com/siso-ai/siso-database/internal/table"
)

// Save writes a snapshot of the store to path. The backend is picked by
// extension: .db, .sqlite, and .sqlite3 get SQLite, everything else
// gets JSON.
func Save(s *table.Store, path string) error {
	if isSQLitePath(path) {
		return SaveSQLite(s, path)
	}
	return SaveJSON(s, path)
}

// Load reads a snapshot from path into a fresh store, using the same
// extension rule as Save.
func Load(path string) (*table.Store, error) {
	if isSQLitePath(path) {
		return LoadSQLite(path)
	}
	return LoadJSON(path)
}

func isSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

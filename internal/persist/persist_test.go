package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

func snapshotStore(t *testing.T) *table.Store {
	t.Helper()
	s := table.NewStore()

	require.NoError(t, s.CreateTable(table.Schema{
		Name: "users",
		Columns: []table.Column{
			{Name: "id", Type: "INT", PrimaryKey: true},
			{Name: "name", Type: "TEXT", NotNull: true},
			{Name: "city", Type: "TEXT", Default: value.String("unknown")},
			{Name: "score", Type: "FLOAT"},
		},
	}))
	require.NoError(t, s.InsertAll("users", []table.Row{
		{"id": value.Int(1), "name": value.String("ada"), "score": value.Float(9.5)},
		{"id": value.Int(2), "name": value.String("grace"), "city": value.String("nyc")},
	}))

	require.NoError(t, s.CreateTable(table.Schema{
		Name:    "tags",
		Columns: []table.Column{{Name: "label", Type: "TEXT"}},
	}))
	return s
}

// assertSnapshotEqual checks the loaded store matches the original:
// schemas with flags and defaults, rows with exact value types, and
// table order.
func assertSnapshotEqual(t *testing.T, want, got *table.Store) {
	t.Helper()

	wantTables, gotTables := want.Tables(), got.Tables()
	require.Len(t, gotTables, len(wantTables))
	for i, wt := range wantTables {
		gt := gotTables[i]
		assert.Equal(t, wt.Schema, gt.Schema)
		assert.Equal(t, wt.Rows, gt.Rows)
	}
}

// TestJSON_RoundTrip verifies the JSON backend restores schemas, rows,
// defaults, and null cells exactly.
func TestJSON_RoundTrip(t *testing.T) {
	s := snapshotStore(t)
	path := filepath.Join(t.TempDir(), "db.json")

	require.NoError(t, SaveJSON(s, path))
	back, err := LoadJSON(path)
	require.NoError(t, err)

	assertSnapshotEqual(t, s, back)

	// The default filled city in row 1 and the null score in row 2 must
	// survive with their exact types.
	users, _ := back.Table("users")
	assert.Equal(t, value.String("unknown"), users.Rows[0]["city"])
	assert.Equal(t, value.Null{}, users.Rows[1]["score"])
	assert.Equal(t, value.Int(2), users.Rows[1]["id"])
}

// TestSQLite_RoundTrip verifies the SQLite backend restores the same
// snapshot, including creation and insertion order.
func TestSQLite_RoundTrip(t *testing.T) {
	s := snapshotStore(t)
	path := filepath.Join(t.TempDir(), "db.sqlite")

	require.NoError(t, SaveSQLite(s, path))
	back, err := LoadSQLite(path)
	require.NoError(t, err)

	assertSnapshotEqual(t, s, back)
}

// TestSQLite_SaveReplacesExisting verifies a second save never mixes
// with tables from the first.
func TestSQLite_SaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.db")

	first := table.NewStore()
	require.NoError(t, first.CreateTable(table.Schema{Name: "old", Columns: []table.Column{{Name: "x"}}}))
	require.NoError(t, SaveSQLite(first, path))

	second := table.NewStore()
	require.NoError(t, second.CreateTable(table.Schema{Name: "new", Columns: []table.Column{{Name: "y"}}}))
	require.NoError(t, SaveSQLite(second, path))

	back, err := LoadSQLite(path)
	require.NoError(t, err)
	assert.False(t, back.HasTable("old"))
	assert.True(t, back.HasTable("new"))
}

// TestSaveLoad_ExtensionDispatch verifies the backend choice follows
// the file extension.
func TestSaveLoad_ExtensionDispatch(t *testing.T) {
	s := snapshotStore(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "snap.json")
	require.NoError(t, Save(s, jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tables"`, "non-sqlite extensions get the JSON document")

	for _, name := range []string{"snap.db", "snap.sqlite", "snap.SQLITE3"} {
		p := filepath.Join(dir, name)
		require.NoError(t, Save(s, p))
		back, err := Load(p)
		require.NoError(t, err)
		assertSnapshotEqual(t, s, back)
	}
}

// TestLoad_MissingFile verifies both backends report a missing
// snapshot instead of inventing an empty one.
func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "nope.db"))
	assert.Error(t, err)
}

// TestLoadJSON_Malformed verifies a corrupt document is rejected with
// the path in the message.
func TestLoadJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

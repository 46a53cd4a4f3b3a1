package table

import (
	"errors"
	"fmt"

	"github.com/siso-ai/siso-database/internal/value"
)

// Sentinel errors for store operations. Callers match with errors.Is;
// the wrapped message carries the table or column name.
var (
	ErrTableExists   = errors.New("table already exists")
	ErrNoSuchTable   = errors.New("table does not exist")
	ErrNoSuchColumn  = errors.New("column does not exist")
	ErrNotNull       = errors.New("column is NOT NULL")
	ErrInvalidSchema = errors.New("invalid schema")
)

// MatchFunc decides whether a row is affected by an update or delete.
// A nil MatchFunc matches every row. The store stays ignorant of how the
// decision is made - predicate evaluation lives with the caller.
type MatchFunc func(Row) bool

// Store is the in-memory table store. Single-caller, non-reentrant:
// the engine assumes one dispatch run at a time and the store does
// no locking of its own.
type Store struct {
	tables map[string]*Table
	names  []string // creation order, for deterministic dumps
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tables: make(map[string]*Table)}
}

// HasTable reports whether a table with the name exists.
func (s *Store) HasTable(name string) bool {
	_, ok := s.tables[name]
	return ok
}

// Table returns the named table, if present.
func (s *Store) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Tables returns all tables in creation order.
func (s *Store) Tables() []*Table {
	out := make([]*Table, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.tables[n])
	}
	return out
}

// CreateTable registers a new table with the given schema.
func (s *Store) CreateTable(schema Schema) error {
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if s.HasTable(schema.Name) {
		return fmt.Errorf("table %s: %w", schema.Name, ErrTableExists)
	}
	s.tables[schema.Name] = &Table{Schema: schema}
	s.names = append(s.names, schema.Name)
	return nil
}

// DropTable removes a table and all its rows.
func (s *Store) DropTable(name string) error {
	if !s.HasTable(name) {
		return fmt.Errorf("table %s: %w", name, ErrNoSuchTable)
	}
	delete(s.tables, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return nil
}

// Insert appends one row to a table. Columns absent from the row receive
// their declared default, or NULL. The row is validated in full before it
// is stored - a NOT NULL violation leaves the table untouched.
func (s *Store) Insert(name string, row Row) error {
	return s.InsertAll(name, []Row{row})
}

// InsertAll appends a batch of rows atomically: every row is completed
// and checked before the first one is stored, so a bad tuple anywhere in
// the batch means zero rows inserted.
func (s *Store) InsertAll(name string, rows []Row) error {
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("table %s: %w", name, ErrNoSuchTable)
	}

	full := make([]Row, len(rows))
	for i, row := range rows {
		completed, err := completeRow(t.Schema, row)
		if err != nil {
			return err
		}
		full[i] = completed
	}

	t.Rows = append(t.Rows, full...)
	return nil
}

// UpdateRows applies the changes to every row accepted by match and returns
// the affected count. Validation happens before any row is touched: unknown
// changed columns fail the whole operation with zero rows modified.
func (s *Store) UpdateRows(name string, changes Row, match MatchFunc) (int, error) {
	t, ok := s.tables[name]
	if !ok {
		return 0, fmt.Errorf("table %s: %w", name, ErrNoSuchTable)
	}

	for col := range changes {
		if !t.Schema.HasColumn(col) {
			return 0, fmt.Errorf("column %s in table %s: %w", col, name, ErrNoSuchColumn)
		}
	}

	// Two passes: select first, mutate second.
	var hits []int
	for i, row := range t.Rows {
		if match == nil || match(row) {
			hits = append(hits, i)
		}
	}

	for _, i := range hits {
		updated := t.Rows[i].Clone()
		for col, v := range changes {
			updated[col] = v
		}
		t.Rows[i] = updated
	}
	return len(hits), nil
}

// DeleteRows removes every row accepted by match and returns the count.
func (s *Store) DeleteRows(name string, match MatchFunc) (int, error) {
	t, ok := s.tables[name]
	if !ok {
		return 0, fmt.Errorf("table %s: %w", name, ErrNoSuchTable)
	}

	kept := t.Rows[:0:0]
	deleted := 0
	for _, row := range t.Rows {
		if match == nil || match(row) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	return deleted, nil
}

// completeRow fills in defaults and enforces NOT NULL for one row.
// Unknown columns in the input are rejected.
func completeRow(schema Schema, row Row) (Row, error) {
	for col := range row {
		if !schema.HasColumn(col) {
			return nil, fmt.Errorf("column %s in table %s: %w", col, schema.Name, ErrNoSuchColumn)
		}
	}

	full := make(Row, len(schema.Columns))
	for _, c := range schema.Columns {
		v, present := row[c.Name]
		if !present || v == nil {
			if c.Default != nil {
				v = c.Default
			} else {
				v = value.Null{}
			}
		}
		if c.NotNull && value.IsNull(v) {
			return nil, fmt.Errorf("column %s in table %s: %w", c.Name, schema.Name, ErrNotNull)
		}
		full[c.Name] = v
	}
	return full, nil
}

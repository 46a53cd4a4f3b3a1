package table

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/value"
)

// Column describes one column of a table schema.
type Column struct {
	Name       string
	Type       string // Declared type name, uppercased (TEXT, INT, ...). Informational.
	PrimaryKey bool
	NotNull    bool
	Default    value.Value // nil when no default was declared
}

// Schema describes a table: its name and ordered column list.
type Schema struct {
	Name    string
	Columns []Column
}

// Column returns the column with the given name, if present.
// Lookups are case-sensitive - column names are stored as declared.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the schema declares a column with the name.
func (s Schema) HasColumn(name string) bool {
	_, ok := s.Column(name)
	return ok
}

// ColumnNames returns the column names in declaration order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks structural invariants of a schema declaration:
// a non-empty name, at least one column, no duplicate column names,
// and at most one PRIMARY KEY column.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("table name is required")
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("table %s declares no columns", s.Name)
	}

	seen := make(map[string]bool, len(s.Columns))
	pk := ""
	for _, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("table %s declares an unnamed column", s.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("table %s declares column %s twice", s.Name, c.Name)
		}
		seen[c.Name] = true

		if c.PrimaryKey {
			if pk != "" {
				return fmt.Errorf("table %s declares more than one primary key (%s, %s)", s.Name, pk, c.Name)
			}
			pk = c.Name
		}
	}
	return nil
}

// Row is one record: column name to value. Absent keys read as NULL.
type Row map[string]value.Value

// Clone returns a shallow copy of the row. Values are immutable, so a
// key-level copy is enough to keep the original untouched.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table holds a schema and its rows.
type Table struct {
	Schema Schema
	Rows   []Row
}

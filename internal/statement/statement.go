// Package statement defines the typed intermediate representations of SQL
// statements and the parser stages that produce them from raw text.
//
// Each parser stage applies only to raw-text units and recognizes its
// statement kind by keyword prefix. On success it emits a typed spec unit;
// on syntax failure it emits a terminal error unit naming the expected
// grammar. Specs are immutable once built.
package statement

import (
	"github.com/siso-ai/siso-database/internal/predicate"
	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

// Raw is the body of a freshly submitted unit: unparsed statement text.
// Parser stages only ever apply to Raw bodies, never to typed specs, so a
// stage can never reprocess its own output.
type Raw struct {
	Text string
}

// CreateTable is the parsed form of a CREATE TABLE statement.
type CreateTable struct {
	Schema      table.Schema
	IfNotExists bool
}

// DropTable is the parsed form of a DROP TABLE statement.
type DropTable struct {
	Name     string
	IfExists bool
}

// Insert is the parsed form of an INSERT statement. Columns is nil when no
// column list was given (values then bind to the schema in order). Rows
// holds one value tuple per batch entry.
type Insert struct {
	Table   string
	Columns []string
	Rows    [][]value.Value
}

// Select is the parsed form of a SELECT statement. Columns is nil for
// SELECT *. The spec travels with the row-set through the operator chain,
// so later stages read order/limit/distinct settings without re-parsing.
type Select struct {
	Table    string
	Columns  []string
	Where    predicate.Tree
	Distinct bool

	OrderBy string
	Desc    bool

	Limit    int
	Offset   int
	HasLimit bool
}

// HasOrder reports whether an ORDER BY clause was given.
func (s *Select) HasOrder() bool {
	return s.OrderBy != ""
}

// Assignment is one col=value pair of an UPDATE SET list.
type Assignment struct {
	Column string
	Value  value.Value
}

// Update is the parsed form of an UPDATE statement. A nil Where matches
// every row.
type Update struct {
	Table string
	Set   []Assignment
	Where predicate.Tree
}

// Delete is the parsed form of a DELETE statement. A nil Where matches
// every row.
type Delete struct {
	Table string
	Where predicate.Tree
}

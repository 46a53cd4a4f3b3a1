package exec

import (
	"log/slog"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/predicate"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// UpdateExec executes UPDATE specs against the row store.
// Every SET column and every predicate column is validated against the
// schema before any row is touched.
type UpdateExec struct {
	Store *table.Store
}

func (e *UpdateExec) ID() string { return "exec-update" }

func (e *UpdateExec) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*statement.Update)
	return ok
}

func (e *UpdateExec) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	spec := u.Body.(*statement.Update)

	t, ok := e.Store.Table(spec.Table)
	if !ok {
		d.Submit(engine.NewUnit(engine.Errorf("table %s does not exist", spec.Table)))
		return nil
	}

	changes := make(table.Row, len(spec.Set))
	for _, assign := range spec.Set {
		if !t.Schema.HasColumn(assign.Column) {
			d.Submit(engine.NewUnit(engine.Errorf("column %s does not exist in table %s", assign.Column, spec.Table)))
			return nil
		}
		changes[assign.Column] = assign.Value
	}

	if msg, ok := checkPredicateColumns(t.Schema, spec.Where); !ok {
		d.Submit(engine.NewUnit(engine.Errorf("%s", msg)))
		return nil
	}

	match := matchFunc(spec.Where)
	count, err := e.Store.UpdateRows(spec.Table, changes, match)
	if err != nil {
		d.Submit(engine.NewUnit(engine.FromError(err)))
		return nil
	}

	if spec.Where != nil {
		slog.Debug("rows updated", "table", spec.Table, "count", count, "where", predicate.Render(spec.Where))
	} else {
		slog.Debug("rows updated", "table", spec.Table, "count", count)
	}
	d.Submit(engine.NewUnit(engine.Successf("%d %s updated", count, rowsWord(count))))
	return nil
}

// matchFunc lifts a predicate tree into the store's MatchFunc contract.
// A nil tree matches everything.
func matchFunc(tree predicate.Tree) table.MatchFunc {
	if tree == nil {
		return nil
	}
	return func(row table.Row) bool {
		return predicate.Evaluate(tree, row)
	}
}

// checkPredicateColumns verifies every column a predicate references
// exists in the schema. Returns the error message on failure.
func checkPredicateColumns(schema table.Schema, tree predicate.Tree) (string, bool) {
	if tree == nil {
		return "", true
	}
	for _, col := range predicate.Columns(tree) {
		if !schema.HasColumn(col) {
			return "column " + col + " does not exist in table " + schema.Name, false
		}
	}
	return "", true
}

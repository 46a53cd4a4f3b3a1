package exec

import (
	"log/slog"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// InsertExec executes INSERT specs against the row store.
//
// Validation happens for the whole batch before any row is stored: an
// arity mismatch or unknown column in any tuple rejects the statement
// with zero rows inserted.
type InsertExec struct {
	Store *table.Store
}

func (e *InsertExec) ID() string { return "exec-insert" }

func (e *InsertExec) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*statement.Insert)
	return ok
}

func (e *InsertExec) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	spec := u.Body.(*statement.Insert)

	t, ok := e.Store.Table(spec.Table)
	if !ok {
		d.Submit(engine.NewUnit(engine.Errorf("table %s does not exist", spec.Table)))
		return nil
	}

	columns := spec.Columns
	if columns == nil {
		columns = t.Schema.ColumnNames()
	} else {
		for _, col := range columns {
			if !t.Schema.HasColumn(col) {
				d.Submit(engine.NewUnit(engine.Errorf("column %s does not exist in table %s", col, spec.Table)))
				return nil
			}
		}
	}

	// Build every row up front so a bad tuple leaves the table untouched.
	rows := make([]table.Row, 0, len(spec.Rows))
	for _, tuple := range spec.Rows {
		if len(tuple) != len(columns) {
			d.Submit(engine.NewUnit(engine.Errorf("INSERT into %s expects %d values per tuple, got %d",
				spec.Table, len(columns), len(tuple))))
			return nil
		}
		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[col] = tuple[i]
		}
		rows = append(rows, row)
	}

	if err := e.Store.InsertAll(spec.Table, rows); err != nil {
		d.Submit(engine.NewUnit(engine.FromError(err)))
		return nil
	}

	slog.Debug("rows inserted", "table", spec.Table, "count", len(rows))
	d.Submit(engine.NewUnit(engine.Successf("%d %s inserted", len(rows), rowsWord(len(rows)))))
	return nil
}

package exec

import (
	"log/slog"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// Scan turns a SELECT spec into the initial row-set: a snapshot of the
// table's rows with the projection list resolved. All validation that
// needs the schema happens here, before the operator chain starts.
type Scan struct {
	Store *table.Store
}

func (e *Scan) ID() string { return "exec-scan" }

func (e *Scan) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*statement.Select)
	return ok
}

func (e *Scan) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	spec := u.Body.(*statement.Select)

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

	if msg, ok := checkPredicateColumns(t.Schema, spec.Where); !ok {
		d.Submit(engine.NewUnit(engine.Errorf("%s", msg)))
		return nil
	}

	if spec.HasOrder() && !t.Schema.HasColumn(spec.OrderBy) {
		d.Submit(engine.NewUnit(engine.Errorf("column %s does not exist in table %s", spec.OrderBy, spec.Table)))
		return nil
	}

	// Snapshot the slice so later mutations to the table never reach a
	// row-set already in flight.
	rows := make([]table.Row, len(t.Rows))
	copy(rows, t.Rows)

	slog.Debug("scan", "table", spec.Table, "rows", len(rows))
	d.Submit(engine.NewUnit(&RowSet{Rows: rows, Columns: columns, Spec: spec}))
	return nil
}

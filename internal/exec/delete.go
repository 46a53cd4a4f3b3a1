package exec

import (
	"log/slog"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/predicate"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// DeleteExec executes DELETE specs against the row store.
// Predicate columns are validated before any row is removed.
type DeleteExec struct {
	Store *table.Store
}

func (e *DeleteExec) ID() string { return "exec-delete" }

func (e *DeleteExec) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*statement.Delete)
	return ok
}

func (e *DeleteExec) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	spec := u.Body.(*statement.Delete)

	t, ok := e.Store.Table(spec.Table)
	if !ok {
		d.Submit(engine.NewUnit(engine.Errorf("table %s does not exist", spec.Table)))
		return nil
	}

	if msg, ok := checkPredicateColumns(t.Schema, spec.Where); !ok {
		d.Submit(engine.NewUnit(engine.Errorf("%s", msg)))
		return nil
	}

	count, err := e.Store.DeleteRows(spec.Table, matchFunc(spec.Where))
	if err != nil {
		d.Submit(engine.NewUnit(engine.FromError(err)))
		return nil
	}

	if spec.Where != nil {
		slog.Debug("rows deleted", "table", spec.Table, "count", count, "where", predicate.Render(spec.Where))
	} else {
		slog.Debug("rows deleted", "table", spec.Table, "count", count)
	}
	d.Submit(engine.NewUnit(engine.Successf("%d %s deleted", count, rowsWord(count))))
	return nil
}

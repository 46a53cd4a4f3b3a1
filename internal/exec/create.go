package exec

import (
	"log/slog"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// CreateExec executes CREATE TABLE specs against the row store.
type CreateExec struct {
	Store *table.Store
}

func (e *CreateExec) ID() string { return "exec-create" }

func (e *CreateExec) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*statement.CreateTable)
	return ok
}

func (e *CreateExec) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	spec := u.Body.(*statement.CreateTable)
	name := spec.Schema.Name

	if e.Store.HasTable(name) {
		if spec.IfNotExists {
			d.Submit(engine.NewUnit(engine.Successf("Table %s already exists", name)))
			return nil
		}
		d.Submit(engine.NewUnit(engine.Errorf("table %s already exists", name)))
		return nil
	}

	if err := e.Store.CreateTable(spec.Schema); err != nil {
		d.Submit(engine.NewUnit(engine.FromError(err)))
		return nil
	}

	slog.Debug("table created", "table", name, "columns", len(spec.Schema.Columns))
	d.Submit(engine.NewUnit(engine.Successf("Table %s created", name)))
	return nil
}

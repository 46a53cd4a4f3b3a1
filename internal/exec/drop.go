package exec

import (
	"log/slog"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// DropExec executes DROP TABLE specs against the row store.
type DropExec struct {
	Store *table.Store
}

func (e *DropExec) ID() string { return "exec-drop" }

func (e *DropExec) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*statement.DropTable)
	return ok
}

func (e *DropExec) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	spec := u.Body.(*statement.DropTable)

	if !e.Store.HasTable(spec.Name) {
		if spec.IfExists {
			d.Submit(engine.NewUnit(engine.Successf("Table %s does not exist, skipped", spec.Name)))
			return nil
		}
		d.Submit(engine.NewUnit(engine.Errorf("table %s does not exist", spec.Name)))
		return nil
	}

	if err := e.Store.DropTable(spec.Name); err != nil {
		d.Submit(engine.NewUnit(engine.FromError(err)))
		return nil
	}

	slog.Debug("table dropped", "table", spec.Name)
	d.Submit(engine.NewUnit(engine.Successf("Table %s dropped", spec.Name)))
	return nil
}

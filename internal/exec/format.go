package exec

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/value"
)

// Format renders a fully refined row-set into the terminal result text.
// Registered after every operator, so it only ever fires once all the
// applicable operators have declined or run.
type Format struct{}

func (f *Format) ID() string { return "format-result" }

func (f *Format) Applies(u *engine.Unit) bool {
	_, ok := u.Body.(*RowSet)
	return ok
}

func (f *Format) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	rs := u.Body.(*RowSet)

	var b strings.Builder
	b.WriteString(countLine(len(rs.Rows)))

	if len(rs.Rows) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Join(rs.Columns, " | "))
		for _, row := range rs.Rows {
			cells := make([]string, len(rs.Columns))
			for i, col := range rs.Columns {
				cells[i] = value.Render(row[col])
			}
			b.WriteByte('\n')
			b.WriteString(strings.Join(cells, " | "))
		}
	}

	d.Submit(engine.NewUnit(engine.Successf("%s", b.String())))
	return nil
}

func countLine(n int) string {
	return fmt.Sprintf("%d %s", n, rowsWord(n))
}

func rowsWord(n int) string {
	if n == 1 {
		return "row"
	}
	return "rows"
}

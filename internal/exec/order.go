package exec

import (
	"sort"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

// Order sorts the row-set by the ORDER BY column. The sort is stable,
// so rows with equal keys keep their insertion order. NULL keys sort
// after every non-null key in both directions; DESC reverses only the
// comparisons between non-null keys.
type Order struct{}

func (o *Order) ID() string { return "exec-order" }

func (o *Order) Applies(u *engine.Unit) bool {
	rs, ok := u.Body.(*RowSet)
	if !ok || !rs.Spec.HasOrder() || rs.Passed(PhaseOrder) {
		return false
	}
	if rs.Spec.Where != nil && !rs.Passed(PhaseFilter) {
		return false
	}
	return true
}

func (o *Order) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	rs := u.Body.(*RowSet)
	col := rs.Spec.OrderBy
	desc := rs.Spec.Desc

	sorted := make([]table.Row, len(rs.Rows))
	copy(sorted, rs.Rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i][col], sorted[j][col]
		aNull, bNull := value.IsNull(a), value.IsNull(b)
		if aNull || bNull {
			// Nulls go last regardless of direction.
			return !aNull && bNull
		}
		c, ok := value.Compare(a, b)
		if !ok {
			return false
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	d.Submit(engine.NewUnit(rs.next(PhaseOrder, sorted)))
	return nil
}

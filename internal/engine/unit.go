package engine

import "github.com/google/uuid"

// Unit is one in-flight piece of work moving through the dispatcher.
//
// The body is an immutable payload - raw statement text, a typed statement
// spec, a row-set, or a terminal Result. The bookkeeping alongside it
// (which stages declined it, which transformed it) grows as the unit moves
// through the pipeline and is the basis for exhaustion reporting.
//
// INVARIANTS:
//   - declines are idempotent: a stage appears at most once, in visit order
//   - a unit is exhausted iff every registered stage has declined it
//   - bodies are never mutated; stages emit new units instead
type Unit struct {
	// ID identifies the unit across log lines and decline reports.
	ID uuid.UUID

	// Body is the payload. Stages type-switch on it to test applicability.
	Body any

	declined     map[string]bool
	declineOrder []string
	transformed  []string
	totalStages  int
}

// NewUnit wraps a payload into a fresh unit with no history.
func NewUnit(body any) *Unit {
	return &Unit{
		ID:       uuid.New(),
		Body:     body,
		declined: make(map[string]bool),
	}
}

// beginPass pins the pipeline width for the current dequeue. Exhaustion is
// judged against this number, so it is set every time the unit is popped.
func (u *Unit) beginPass(totalStages int) {
	u.totalStages = totalStages
}

// Decline records that a stage visited the unit without selecting it.
// Redundant declines are no-ops.
func (u *Unit) Decline(stageID string) {
	if u.declined[stageID] {
		return
	}
	u.declined[stageID] = true
	u.declineOrder = append(u.declineOrder, stageID)
}

// DeclinedBy returns the decliner identities in visit order.
func (u *Unit) DeclinedBy() []string {
	out := make([]string, len(u.declineOrder))
	copy(out, u.declineOrder)
	return out
}

// MarkTransformed appends a stage to the unit's transform log.
func (u *Unit) MarkTransformed(stageID string) {
	u.transformed = append(u.transformed, stageID)
}

// TransformedBy returns the transforming stage identities in order.
func (u *Unit) TransformedBy() []string {
	out := make([]string, len(u.transformed))
	copy(out, u.transformed)
	return out
}

// Exhausted reports whether every stage of the current pass declined.
func (u *Unit) Exhausted() bool {
	return u.totalStages > 0 && len(u.declined) == u.totalStages
}

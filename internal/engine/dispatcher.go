package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Stage is a matcher+transformer registered into the pipeline.
//
// Applies tests a unit without consuming it. Transform consumes the unit
// and may submit zero or more new units through the dispatcher. The
// dispatcher only needs this capability pair; bookkeeping keys on the
// stable ID string, never on run-time type identity.
type Stage interface {
	// ID returns a stable identifier for decline and transform logs.
	ID() string

	// Applies reports whether this stage can process the unit.
	Applies(u *Unit) bool

	// Transform processes the unit, submitting any follow-on units.
	// A non-nil error marks an internal stage failure, not bad input -
	// input problems are reported by submitting a terminal error unit.
	Transform(u *Unit, d *Dispatcher) error
}

// Dispatcher owns an ordered stage pipeline and a worklist of pending
// units, and runs the dispatch loop.
//
// Registration order is significant: the first applicable stage wins, and
// at most one stage processes a given unit per dequeue. Stages communicate
// purely by re-emitting units, which keeps statement kinds and query
// operators pluggable without a central switch - at the cost of needing
// the dequeue budget as cycle protection.
//
// A dispatcher is single-caller and non-reentrant: one Run at a time, no
// state shared across runs except the external row store the stages call.
type Dispatcher struct {
	stages      []Stage
	queue       *workQueue
	maxDequeues int
	runID       string

	result      *Result
	unprocessed []*Unit
}

// Option configures a dispatcher.
type Option func(*Dispatcher)

// WithMaxDequeues overrides the iteration budget.
// Use a small value to test cycle protection.
func WithMaxDequeues(n int) Option {
	return func(d *Dispatcher) {
		d.maxDequeues = n
	}
}

// New creates a dispatcher with the terminal-capture stage pre-registered.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		queue:       newWorkQueue(),
		maxDequeues: DefaultMaxDequeues,
		runID:       uuid.NewString(),
	}
	d.stages = append(d.stages, &captureStage{d: d})

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register appends a stage to the pipeline. Stage IDs must be unique -
// decline reports and transform logs key on them.
func (d *Dispatcher) Register(s Stage) error {
	for _, existing := range d.stages {
		if existing.ID() == s.ID() {
			return fmt.Errorf("duplicate stage ID: %s", s.ID())
		}
	}
	d.stages = append(d.stages, s)
	return nil
}

// Submit enqueues a unit for processing.
func (d *Dispatcher) Submit(u *Unit) {
	d.queue.Enqueue(u)
}

// QueueLen returns the number of pending units. Used in tests.
func (d *Dispatcher) QueueLen() int {
	return d.queue.Len()
}

// Unprocessable returns the units no stage recognized. Used in tests
// and for exhaustion reporting.
func (d *Dispatcher) Unprocessable() []*Unit {
	return d.unprocessed
}

// Run drains the worklist and returns the terminal result.
//
// Each dequeue scans stages in registration order; the first stage whose
// Applies returns true transforms the unit and the scan stops. Every stage
// visited but not selected marks itself as a decliner. A unit declined by
// all stages is recorded as unprocessable and not resubmitted.
//
// Terminal capture is last-write-wins: if multiple terminal units are
// produced, the one dequeued last provides the run's result. This is
// intentional - later emissions supersede earlier ones still in flight.
//
// Exceeding the dequeue budget aborts with BudgetExceededError; no partial
// result is trusted in that case.
func (d *Dispatcher) Run() (Result, error) {
	slog.Debug("dispatch run starting", "run", d.runID, "stages", len(d.stages), "pending", d.queue.Len())

	dequeues := 0
	for {
		u, ok := d.queue.TryDequeue()
		if !ok {
			break
		}

		dequeues++
		if dequeues > d.maxDequeues {
			return Result{}, &BudgetExceededError{
				RunID:    d.runID,
				Dequeues: dequeues,
				Limit:    d.maxDequeues,
			}
		}

		u.beginPass(len(d.stages))
		d.dispatchOne(u)
	}

	if d.result != nil {
		slog.Debug("dispatch run finished", "run", d.runID, "dequeues", dequeues, "error", d.result.IsError)
		return *d.result, nil
	}

	if len(d.unprocessed) > 0 {
		// The first unit to exhaust is the one reported.
		first := d.unprocessed[0]
		return Errorf("statement not recognized by any stage (declined by: %s)",
			strings.Join(first.DeclinedBy(), ", ")), nil
	}

	return Result{}, nil
}

// dispatchOne routes a single unit through the stage scan.
func (d *Dispatcher) dispatchOne(u *Unit) {
	for _, s := range d.stages {
		if !s.Applies(u) {
			u.Decline(s.ID())
			continue
		}

		u.MarkTransformed(s.ID())
		slog.Debug("stage selected", "run", d.runID, "stage", s.ID(), "unit", u.ID)

		if err := s.Transform(u, d); err != nil {
			// Internal stage failure. Surface it as a terminal error so
			// the caller still observes a textual outcome.
			slog.Error("stage transform failed", "run", d.runID, "stage", s.ID(), "unit", u.ID, "error", err)
			res := FromError(err)
			d.Submit(NewUnit(res))
		}
		return
	}

	slog.Debug("unit exhausted", "run", d.runID, "unit", u.ID, "declined_by", u.DeclinedBy())
	d.unprocessed = append(d.unprocessed, u)
}

// captureStage is the designated terminal stage. It recognizes Result
// bodies and stores them as the run's outcome, overwriting any earlier
// capture (last terminal unit wins).
type captureStage struct {
	d *Dispatcher
}

func (s *captureStage) ID() string { return "result-capture" }

func (s *captureStage) Applies(u *Unit) bool {
	_, ok := u.Body.(Result)
	return ok
}

func (s *captureStage) Transform(u *Unit, d *Dispatcher) error {
	res := u.Body.(Result)
	d.result = &res
	return nil
}

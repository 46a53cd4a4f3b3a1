package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStage is a configurable stage for dispatch tests.
type stubStage struct {
	id        string
	applies   func(*Unit) bool
	transform func(*Unit, *Dispatcher) error
}

func (s *stubStage) ID() string           { return s.id }
func (s *stubStage) Applies(u *Unit) bool { return s.applies(u) }

func (s *stubStage) Transform(u *Unit, d *Dispatcher) error {
	if s.transform == nil {
		return nil
	}
	return s.transform(u, d)
}

// echoStage turns string bodies into a success Result.
func echoStage(id string) *stubStage {
	return &stubStage{
		id: id,
		applies: func(u *Unit) bool {
			_, ok := u.Body.(string)
			return ok
		},
		transform: func(u *Unit, d *Dispatcher) error {
			d.Submit(NewUnit(Successf("echo: %s", u.Body.(string))))
			return nil
		},
	}
}

// TestRun_CapturesTerminalResult verifies a stage-submitted Result body
// becomes the run's outcome.
func TestRun_CapturesTerminalResult(t *testing.T) {
	d := New()
	require.NoError(t, d.Register(echoStage("echo")))

	d.Submit(NewUnit("hello"))
	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", res.Text)
	assert.False(t, res.IsError)
}

// TestRun_FirstApplicableStageWins verifies registration order decides
// which of two applicable stages transforms a unit.
func TestRun_FirstApplicableStageWins(t *testing.T) {
	d := New()
	require.NoError(t, d.Register(echoStage("first")))
	require.NoError(t, d.Register(echoStage("second")))

	d.Submit(NewUnit("x"))
	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, "echo: x", res.Text)
}

// TestRun_LastTerminalWins verifies that when multiple terminal units
// are in flight, the one dequeued last provides the result.
func TestRun_LastTerminalWins(t *testing.T) {
	d := New()
	emitted := false
	require.NoError(t, d.Register(&stubStage{
		id: "emit-two",
		applies: func(u *Unit) bool {
			_, ok := u.Body.(string)
			return ok && !emitted
		},
		transform: func(u *Unit, d *Dispatcher) error {
			emitted = true
			d.Submit(NewUnit(Successf("first")))
			d.Submit(NewUnit(Successf("second")))
			return nil
		},
	}))

	d.Submit(NewUnit("go"))
	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, "second", res.Text)
}

// TestRun_ExhaustionReportsDeclinersInOrder verifies a unit no stage
// recognizes produces the decline report, with stage IDs in
// registration order.
func TestRun_ExhaustionReportsDeclinersInOrder(t *testing.T) {
	d := New()
	never := func(u *Unit) bool { return false }
	require.NoError(t, d.Register(&stubStage{id: "alpha", applies: never}))
	require.NoError(t, d.Register(&stubStage{id: "beta", applies: never}))

	d.Submit(NewUnit(42))
	res, err := d.Run()
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(res.Text, ErrorPrefix))
	assert.Contains(t, res.Text, "result-capture, alpha, beta")

	require.Len(t, d.Unprocessable(), 1)
	assert.Equal(t, []string{"result-capture", "alpha", "beta"}, d.Unprocessable()[0].DeclinedBy())
}

// TestRun_ReportsFirstUnprocessableUnit verifies that when several units
// exhaust in one run, the decline report describes the first of them.
// The mid-run registration lengthens the later unit's decline list, so
// which unit the report came from is observable.
func TestRun_ReportsFirstUnprocessableUnit(t *testing.T) {
	d := New()
	never := func(u *Unit) bool { return false }
	require.NoError(t, d.Register(&stubStage{id: "alpha", applies: never}))
	require.NoError(t, d.Register(&stubStage{
		id: "grower",
		applies: func(u *Unit) bool {
			_, ok := u.Body.(string)
			return ok
		},
		transform: func(u *Unit, d *Dispatcher) error {
			if err := d.Register(&stubStage{id: "late", applies: never}); err != nil {
				return err
			}
			d.Submit(NewUnit(7))
			return nil
		},
	}))

	d.Submit(NewUnit(1))
	d.Submit(NewUnit("grow"))

	res, err := d.Run()
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "result-capture, alpha, grower)")
	assert.NotContains(t, res.Text, "late")
	require.Len(t, d.Unprocessable(), 2)
}

// TestRun_BudgetExceeded verifies a stage that re-emits its own input
// forever aborts with the budget error instead of spinning.
func TestRun_BudgetExceeded(t *testing.T) {
	d := New(WithMaxDequeues(10))
	require.NoError(t, d.Register(&stubStage{
		id: "loop",
		applies: func(u *Unit) bool {
			_, ok := u.Body.(string)
			return ok
		},
		transform: func(u *Unit, d *Dispatcher) error {
			d.Submit(NewUnit(u.Body))
			return nil
		},
	}))

	d.Submit(NewUnit("spin"))
	_, err := d.Run()
	require.Error(t, err)
	assert.True(t, IsBudgetExceededError(err))

	var be *BudgetExceededError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 10, be.Limit)
	assert.Contains(t, be.Error(), "possible infinite loop")
}

// TestRun_TransformErrorBecomesTerminalError verifies an internal stage
// failure still yields a textual error outcome.
func TestRun_TransformErrorBecomesTerminalError(t *testing.T) {
	d := New()
	require.NoError(t, d.Register(&stubStage{
		id: "broken",
		applies: func(u *Unit) bool {
			_, ok := u.Body.(string)
			return ok
		},
		transform: func(u *Unit, d *Dispatcher) error {
			return errors.New("disk on fire")
		},
	}))

	d.Submit(NewUnit("x"))
	res, err := d.Run()
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, ErrorPrefix+"disk on fire", res.Text)
}

// TestRun_EmptyQueue verifies draining nothing yields the zero Result.
func TestRun_EmptyQueue(t *testing.T) {
	d := New()
	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

// TestRegister_DuplicateID verifies stage IDs must be unique, including
// against the pre-registered capture stage.
func TestRegister_DuplicateID(t *testing.T) {
	d := New()
	require.NoError(t, d.Register(echoStage("echo")))
	assert.Error(t, d.Register(echoStage("echo")))
	assert.Error(t, d.Register(echoStage("result-capture")))
}

// TestRun_AtMostOneStagePerDequeue verifies a transformed unit is not
// offered to later stages in the same pass.
func TestRun_AtMostOneStagePerDequeue(t *testing.T) {
	var secondSawIt bool
	d := New()
	require.NoError(t, d.Register(&stubStage{
		id: "taker",
		applies: func(u *Unit) bool {
			_, ok := u.Body.(string)
			return ok
		},
	}))
	require.NoError(t, d.Register(&stubStage{
		id: "watcher",
		applies: func(u *Unit) bool {
			if _, ok := u.Body.(string); ok {
				secondSawIt = true
			}
			return false
		},
	}))

	d.Submit(NewUnit("once"))
	_, err := d.Run()
	require.NoError(t, err)
	assert.False(t, secondSawIt, "later stages must not see a transformed unit")
}

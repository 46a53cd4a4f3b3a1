package engine

import (
	"errors"
	"fmt"
)

// DefaultMaxDequeues is the default iteration budget per dispatch run.
// Stages communicate purely by re-emitting units, so a mis-built pipeline
// can loop forever; the budget turns that into a fatal, diagnosable error.
const DefaultMaxDequeues = 1000

// BudgetExceededError is returned when a run exceeds its dequeue budget.
//
// This is fatal: it indicates a pipeline construction bug (a stage
// unconditionally re-emitting its input), not bad user input. The run
// aborts and no partial result is trusted.
type BudgetExceededError struct {
	RunID    string // The run that exceeded the budget
	Dequeues int    // Number of dequeues performed
	Limit    int    // Maximum allowed dequeues
}

// Error implements the error interface.
func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("run %s exceeded dequeue budget: %d dequeues > %d limit (possible infinite loop)",
		e.RunID, e.Dequeues, e.Limit)
}

// IsBudgetExceededError returns true if the error is a BudgetExceededError.
// Uses errors.As to handle wrapped errors.
func IsBudgetExceededError(err error) bool {
	var be *BudgetExceededError
	return errors.As(err, &be)
}

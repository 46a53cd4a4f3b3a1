// Package harness runs YAML-defined scenarios through the statement
// pipeline and compares their transcripts against golden files.
package harness

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/exec"
	"github.com/siso-ai/siso-database/internal/table"
)

// StepResult pairs a statement with the output it produced.
type StepResult struct {
	Statement string
	Output    string
}

// Result holds everything a scenario run produced.
type Result struct {
	Scenario *Scenario

	// Transcript covers the main steps only, in order. Setup output is
	// checked but not recorded.
	Transcript []StepResult

	// Store is the final state, for callers that want to inspect it.
	Store *table.Store
}

// Run executes a scenario against a fresh store.
//
// Setup statements must succeed. Main steps always execute even when an
// expectation fails later; expectation mismatches come back as errors
// after the transcript is complete.
func Run(sc *Scenario) (*Result, error) {
	store := table.NewStore()

	for i, stmt := range sc.Setup {
		out, err := exec.Execute(store, stmt)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: setup %d: %w", sc.Name, i+1, err)
		}
		if strings.HasPrefix(out, engine.ErrorPrefix) {
			return nil, fmt.Errorf("scenario %s: setup %d failed: %s", sc.Name, i+1, out)
		}
	}

	res := &Result{Scenario: sc, Store: store}
	for i, step := range sc.Steps {
		out, err := exec.Execute(store, step.Statement)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", sc.Name, i+1, err)
		}
		res.Transcript = append(res.Transcript, StepResult{Statement: step.Statement, Output: out})
	}

	if err := checkExpectations(sc, res); err != nil {
		return res, err
	}
	return res, nil
}

func checkExpectations(sc *Scenario, res *Result) error {
	for i, step := range sc.Steps {
		out := res.Transcript[i].Output
		if step.ExpectError && !strings.HasPrefix(out, engine.ErrorPrefix) {
			return fmt.Errorf("scenario %s: step %d expected an error, got: %s", sc.Name, i+1, out)
		}
		if step.Expect != "" && out != step.Expect {
			return fmt.Errorf("scenario %s: step %d expected %q, got %q", sc.Name, i+1, step.Expect, out)
		}
	}
	return nil
}

// RenderTranscript formats a result for golden comparison: each
// statement echoed with a prompt prefix, followed by its output.
func RenderTranscript(res *Result) []byte {
	var b strings.Builder
	for _, sr := range res.Transcript {
		b.WriteString("> ")
		b.WriteString(sr.Statement)
		b.WriteByte('\n')
		b.WriteString(sr.Output)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a sequence of SQL
// statements run against a fresh store, with optional expected outputs.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Setup contains statements run before the main steps. They establish
	// initial state and are expected to succeed; a failing setup statement
	// aborts the scenario.
	Setup []string `yaml:"setup,omitempty"`

	// Steps contains the main statements with optional expectations.
	Steps []Step `yaml:"steps"`
}

// Step is one statement of a scenario flow.
type Step struct {
	// Statement is the SQL text to execute.
	Statement string `yaml:"statement"`

	// Expect is the exact expected output, when given. A multi-line
	// expectation must match the rendered result line for line.
	Expect string `yaml:"expect,omitempty"`

	// ExpectError asserts that the output is an error result. Used when
	// the exact message doesn't matter, only that the statement fails.
	ExpectError bool `yaml:"expect_error,omitempty"`
}

// LoadScenario reads and validates a scenario from a YAML file.
// Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks structural requirements: a name, at least one step,
// and no step that is both an exact and an error expectation.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %s has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if step.Statement == "" {
			return fmt.Errorf("scenario %s: step %d has no statement", s.Name, i+1)
		}
		if step.Expect != "" && step.ExpectError {
			return fmt.Errorf("scenario %s: step %d sets both expect and expect_error", s.Name, i+1)
		}
	}
	return nil
}

package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios_Golden runs every scenario file in testdata/scenarios
// and compares its transcript against the matching golden file.
func TestScenarios_Golden(t *testing.T) {
	entries, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "no scenario files found")

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join("testdata", "scenarios", entry.Name())

		t.Run(strings.TrimSuffix(entry.Name(), ".yaml"), func(t *testing.T) {
			sc, err := LoadScenario(path)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, sc))
		})
	}
}

// TestRun_TranscriptCoversStepsOnly verifies setup statements stay out
// of the transcript while still shaping the state the steps observe.
func TestRun_TranscriptCoversStepsOnly(t *testing.T) {
	sc := &Scenario{
		Name:  "transcript-shape",
		Setup: []string{"CREATE TABLE pets (name TEXT)", "INSERT INTO pets (name) VALUES ('rex')"},
		Steps: []Step{
			{Statement: "SELECT name FROM pets", Expect: "1 row\nname\nrex"},
		},
	}

	res, err := Run(sc)
	require.NoError(t, err)
	require.Len(t, res.Transcript, 1)
	assert.Equal(t, "SELECT name FROM pets", res.Transcript[0].Statement)
	assert.Equal(t, "1 row\nname\nrex", res.Transcript[0].Output)
}

// TestRun_SetupFailureAborts verifies a failing setup statement stops
// the scenario before any step runs.
func TestRun_SetupFailureAborts(t *testing.T) {
	sc := &Scenario{
		Name:  "bad-setup",
		Setup: []string{"INSERT INTO missing (x) VALUES (1)"},
		Steps: []Step{{Statement: "SELECT * FROM missing"}},
	}

	_, err := Run(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup 1 failed")
}

// TestRun_ExpectationMismatch verifies an exact expectation mismatch is
// reported after the transcript completes.
func TestRun_ExpectationMismatch(t *testing.T) {
	sc := &Scenario{
		Name: "wrong-expect",
		Steps: []Step{
			{Statement: "CREATE TABLE t (id INT)", Expect: "something else"},
		},
	}

	res, err := Run(sc)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Transcript, 1)
}

// TestRun_ExpectError verifies expect_error accepts any error output.
func TestRun_ExpectError(t *testing.T) {
	sc := &Scenario{
		Name: "expect-error",
		Steps: []Step{
			{Statement: "DROP TABLE nothing", ExpectError: true},
		},
	}

	_, err := Run(sc)
	require.NoError(t, err)
}

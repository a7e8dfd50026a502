package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario YAML plus a graph stub into a temp dir
// so path validation succeeds.
func writeScenario(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	graphSrc, err := os.ReadFile("testdata/graphs/scalar.cue")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graph.cue"), graphSrc, 0644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	return path
}

func TestLoadScenario_ResolvesRelativePaths(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/scalar_import.yaml")
	require.NoError(t, err)

	assert.Equal(t, "scalar_import", s.Name)
	// Relative graph paths resolve against the scenario file's directory.
	assert.Equal(t, filepath.Join("testdata", "graphs", "scalar.cue"), s.Graph)
	assert.Len(t, s.Assertions, 6)
}

func TestLoadScenario_ExpectClause(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/bad_reference.yaml")
	require.NoError(t, err)

	require.NotNil(t, s.Expect)
	assert.Equal(t, "BAD_REFERENCE", s.Expect.Error)
	assert.Equal(t, "unknown object", s.Expect.Message)
	assert.Empty(t, s.Assertions)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: a stray field is a typo, not an extension point
graph: graph.cue
assertion:
  - type: deterministic
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\ngraph: graph.cue\nassertions: [{type: deterministic}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\ngraph: graph.cue\nassertions: [{type: deterministic}]\n",
			wantErr: "description is required",
		},
		{
			name:    "missing graph",
			yaml:    "name: n\ndescription: d\nassertions: [{type: deterministic}]\n",
			wantErr: "graph is required",
		},
		{
			name:    "graph not found",
			yaml:    "name: n\ndescription: d\ngraph: gone.cue\nassertions: [{type: deterministic}]\n",
			wantErr: "graph document not found",
		},
		{
			name:    "expect without error code",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\nexpect: {message: boom}\n",
			wantErr: "expect: error code is required",
		},
		{
			name:    "expect and assertions are exclusive",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\nexpect: {error: BAD_KIND}\nassertions: [{type: deterministic}]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "no assertions",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "ir_contains without fragment",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\nassertions: [{type: ir_contains}]\n",
			wantErr: "fragment is required",
		},
		{
			name:    "ir_order with one fragment",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\nassertions: [{type: ir_order, fragments: [a]}]\n",
			wantErr: "at least two fragments",
		},
		{
			name:    "root_class without name",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\nassertions: [{type: root_class}]\n",
			wantErr: "name is required for root_class",
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: n\ndescription: d\ngraph: graph.cue\nassertions: [{type: ir_equals}]\n",
			wantErr: `unknown assertion type "ir_equals"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.yaml)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

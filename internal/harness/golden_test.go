package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_ScalarImport(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/scalar_import.yaml")
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, scenario))
}

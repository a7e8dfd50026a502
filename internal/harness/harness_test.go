package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScenarioFile(t *testing.T, path string) *Result {
	t.Helper()
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)
	return result
}

func TestRun_ScalarImport(t *testing.T) {
	result := runScenarioFile(t, "testdata/scenarios/scalar_import.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "test.M", result.RootClass)
	assert.Equal(t, 1, result.Classes)
	assert.Equal(t, 0, result.Funcs)
	assert.True(t, result.Deterministic)
	assert.Len(t, result.Hash, 64)
	assert.Contains(t, result.IRText, "%1 = const 3 : i64")
}

func TestRun_SharedChild(t *testing.T) {
	result := runScenarioFile(t, "testdata/scenarios/shared_child.yaml")
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_PrunedExport(t *testing.T) {
	result := runScenarioFile(t, "testdata/scenarios/pruned_export.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.NotContains(t, result.IRText, `slot "x"`)
}

func TestRun_ExpectedFailure(t *testing.T) {
	result := runScenarioFile(t, "testdata/scenarios/bad_reference.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "BAD_REFERENCE", result.ErrorCode)
	assert.Contains(t, result.ErrorMessage, "unknown object")
	assert.Empty(t, result.IRText)
}

func TestRun_WrongErrorCode(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/bad_reference.yaml")
	require.NoError(t, err)
	scenario.Expect.Error = "UNKNOWN_METHOD"

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `expected error code "UNKNOWN_METHOD", got "BAD_REFERENCE"`)
}

func TestRun_WrongErrorMessage(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/bad_reference.yaml")
	require.NoError(t, err)
	scenario.Expect.Message = "tuple refers to itself"

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `does not contain "tuple refers to itself"`)
}

func TestRun_UnexpectedSuccess(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/scalar_import.yaml")
	require.NoError(t, err)
	scenario.Assertions = nil
	scenario.Expect = &ExpectClause{Error: "CYCLIC_RESOLUTION"}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "but the pass succeeded")
}

func TestRun_UnexpectedFailure(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/bad_reference.yaml")
	require.NoError(t, err)
	scenario.Expect = nil
	scenario.Assertions = []Assertion{{Type: AssertDeterministic}}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "pass failed:")
}

func TestRun_FailedAssertionCarriesIR(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/scalar_import.yaml")
	require.NoError(t, err)
	scenario.Assertions = []Assertion{
		{Type: AssertIRContains, Fragment: "func @test.M.forward"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Printed IR:")
}

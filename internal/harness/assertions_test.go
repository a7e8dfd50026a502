package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	r := NewResult()
	r.IRText = "module {\n\n  class @test.M {\n  }\n\n  %0 = new @test.M {} : class<\"test.M\">\n  root %0\n}\n"
	r.RootClass = "test.M"
	r.Classes = 1
	r.Funcs = 0
	r.Deterministic = true
	return r
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertIRContains, Fragment: "class @test.M {"},
		{Type: AssertIROrder, Fragments: []string{"module {", "root %0", "}"}},
		{Type: AssertClassCount, Count: 1},
		{Type: AssertFuncCount, Count: 0},
		{Type: AssertRootClass, Name: "test.M"},
		{Type: AssertDeterministic},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantMsg   string
	}{
		{
			name:      "fragment missing",
			assertion: Assertion{Type: AssertIRContains, Fragment: "func @test.M.forward"},
			wantMsg:   "fragment not found",
		},
		{
			name:      "fragments out of order",
			assertion: Assertion{Type: AssertIROrder, Fragments: []string{"root %0", "class @test.M"}},
			wantMsg:   "not found after offset",
		},
		{
			name:      "class count mismatch",
			assertion: Assertion{Type: AssertClassCount, Count: 3},
			wantMsg:   "3 declarations",
		},
		{
			name:      "func count mismatch",
			assertion: Assertion{Type: AssertFuncCount, Count: 1},
			wantMsg:   "1 declarations",
		},
		{
			name:      "wrong root class",
			assertion: Assertion{Type: AssertRootClass, Name: "test.Other"},
			wantMsg:   `root class "test.Other"`,
		},
		{
			name:      "unknown type",
			assertion: Assertion{Type: "ir_equals"},
			wantMsg:   `unknown assertion type "ir_equals"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(sampleResult(), []Assertion{tt.assertion})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantMsg)
		})
	}
}

func TestEvaluateAssertions_Deterministic(t *testing.T) {
	r := sampleResult()
	r.Deterministic = false

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertDeterministic}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "passes diverged")
}

func TestIROrder_NonAdjacentFragments(t *testing.T) {
	r := NewResult()
	r.IRText = "alpha middle beta middle gamma"

	errs := EvaluateAssertions(r, []Assertion{
		{Type: AssertIROrder, Fragments: []string{"alpha", "beta", "gamma"}},
	})
	assert.Empty(t, errs)

	// Each match starts after the previous one ends, so a fragment
	// cannot satisfy two positions.
	errs = EvaluateAssertions(r, []Assertion{
		{Type: AssertIROrder, Fragments: []string{"gamma", "alpha"}},
	})
	require.Len(t, errs, 1)
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{
		Type:     AssertRootClass,
		Expected: `root class "test.A"`,
		Actual:   `root class "test.B"`,
		IRText:   "module {\n}\n",
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: root_class")
	assert.Contains(t, msg, `Expected: root class "test.A"`)
	assert.Contains(t, msg, `Actual: root class "test.B"`)
	assert.Contains(t, msg, "Printed IR:\nmodule {")
}

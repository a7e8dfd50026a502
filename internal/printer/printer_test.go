package printer

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/importer"
	"github.com/tracelift/tracelift/internal/testutil"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func printFixture(t *testing.T, root *graph.Object) string {
	t.Helper()
	mod, err := importer.Import(root)
	require.NoError(t, err)
	return Print(mod)
}

func TestPrintScalarModule(t *testing.T) {
	golden(t).Assert(t, "scalar_module", []byte(printFixture(t, testutil.ScalarModule())))
}

func TestPrintPairTupleModule(t *testing.T) {
	golden(t).Assert(t, "pair_tuple", []byte(printFixture(t, testutil.PairTupleModule())))
}

func TestPrintSharedSubmodule(t *testing.T) {
	golden(t).Assert(t, "shared_submodule", []byte(printFixture(t, testutil.SharedSubmoduleProgram())))
}

func TestPrintSelfReferentialModule(t *testing.T) {
	golden(t).Assert(t, "self_referential", []byte(printFixture(t, testutil.SelfReferentialModule())))
}

func TestPrintCallsMethod(t *testing.T) {
	golden(t).Assert(t, "calls_method", []byte(printFixture(t, testutil.CallsMethodProgram())))
}

func TestPrintCallsFreeFunction(t *testing.T) {
	golden(t).Assert(t, "calls_free_function", []byte(printFixture(t, testutil.CallsFreeFunctionModule())))
}

func TestPrintTensorModule(t *testing.T) {
	golden(t).Assert(t, "tensor_module", []byte(printFixture(t, testutil.TensorModule([]byte{1, 2, 3, 4, 5, 6}))))
}

func TestPrintEmptyModule(t *testing.T) {
	mod, err := importer.Import(&graph.Object{Class: &graph.Class{Namespace: "test", Name: "Empty"}})
	require.NoError(t, err)

	text := Print(mod)
	assert.True(t, strings.HasPrefix(text, "module {\n"))
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, `%0 = new @test.Empty {} : class<"test.Empty">`)
	assert.Contains(t, text, "root %0")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{2, "2.0"},
		{-3, "-3.0"},
		{0.25, "0.25"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in))
	}
}

func TestPrintDeterministic(t *testing.T) {
	first, err := importer.Import(testutil.CallsMethodProgram())
	require.NoError(t, err)
	second, err := importer.Import(testutil.CallsMethodProgram())
	require.NoError(t, err)

	assert.Equal(t, Print(first), Print(second))
}

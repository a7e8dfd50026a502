package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/ir"
	"github.com/tracelift/tracelift/internal/testutil"
)

func ops(f *ir.Func) []ir.OpKind {
	out := make([]ir.OpKind, len(f.Body.Instrs))
	for i, in := range f.Body.Instrs {
		out[i] = in.Op
	}
	return out
}

func TestImportDirectAndIndirectCall(t *testing.T) {
	mod, err := Import(testutil.CallsFreeFunctionModule())
	require.NoError(t, err)

	// forward registers before its callee's body is imported.
	require.Len(t, mod.Funcs, 2)
	assert.Equal(t, "test.Caller.forward", mod.Funcs[0].Name)
	assert.Equal(t, "util.double", mod.Funcs[1].Name)

	forward := mod.Funcs[0]
	assert.Equal(t, []ir.OpKind{ir.OpCall, ir.OpFuncConst, ir.OpCallIndirect, ir.OpReturn}, ops(forward))

	direct := forward.Body.Instrs[0]
	assert.Equal(t, "util.double", direct.Callee)
	assert.Equal(t, ir.FuncType([]ir.Type{ir.I64Type}, ir.I64Type), direct.CalleeType)

	// The indirect call's first operand is the function-reference value.
	fc := forward.Body.Instrs[1]
	indirect := forward.Body.Instrs[2]
	assert.Equal(t, "util.double", fc.Callee)
	require.NotEmpty(t, indirect.Args)
	assert.Equal(t, fc.Result, indirect.Args[0])
}

func TestImportCallMethodLowering(t *testing.T) {
	mod, err := Import(testutil.CallsMethodProgram())
	require.NoError(t, err)

	require.Len(t, mod.Funcs, 2)
	forward := mod.FindFunc("test.Caller.forward")
	require.NotNil(t, forward)

	var cm *ir.Instr
	for i := range forward.Body.Instrs {
		if forward.Body.Instrs[i].Op == ir.OpCallMethod {
			cm = &forward.Body.Instrs[i]
		}
	}
	require.NotNil(t, cm)

	assert.Equal(t, "helper", cm.Method)
	// Args[0] is the receiver (the self parameter, value 0).
	require.Len(t, cm.Args, 2)
	assert.Equal(t, ir.ValueID(0), cm.Args[0])
	// The bound signature leads with the receiver class type.
	require.NotEmpty(t, cm.CalleeType.Params)
	assert.Equal(t, ir.ClassType("test.Caller"), cm.CalleeType.Params[0])
	assert.Equal(t, ir.I64Type, cm.Type)

	// Dispatch does not force a second import of the target.
	helper := mod.FindFunc("test.Caller.helper")
	require.NotNil(t, helper)
}

func TestImportRecursiveMethod(t *testing.T) {
	c := &graph.Class{Namespace: "test", Name: "Rec"}
	forward := &graph.Method{
		Class: c,
		Name:  "forward",
		Params: []graph.Param{
			{Name: "self", Type: graph.ClassType(c)},
			{Name: "x", Type: graph.IntType()},
		},
		Result: graph.IntType(),
	}
	forward.Body = []graph.Instr{
		graph.Call(forward, 1), // value 2: calls itself
		graph.Return(2),
	}
	c.Methods = []*graph.Method{forward}

	mod, err := Import(&graph.Object{Class: c})
	require.NoError(t, err)

	// The memo entry registered before the body breaks the recursion:
	// exactly one function, calling its own symbol.
	require.Len(t, mod.Funcs, 1)
	f := mod.Funcs[0]
	require.GreaterOrEqual(t, len(f.Body.Instrs), 1)
	assert.Equal(t, ir.OpCall, f.Body.Instrs[0].Op)
	assert.Equal(t, f.Name, f.Body.Instrs[0].Callee)
}

func TestImportImplicitNoneReturn(t *testing.T) {
	c := &graph.Class{Namespace: "test", Name: "Fall"}
	forward := &graph.Method{
		Class:  c,
		Name:   "forward",
		Params: []graph.Param{{Name: "self", Type: graph.ClassType(c)}},
		Result: graph.NoneType(),
		// No explicit return.
	}
	c.Methods = []*graph.Method{forward}

	mod, err := Import(&graph.Object{Class: c})
	require.NoError(t, err)

	f := mod.FindFunc("test.Fall.forward")
	require.NotNil(t, f)
	require.Len(t, f.Body.Instrs, 2)
	assert.Equal(t, ir.ConstNone, f.Body.Instrs[0].ConstKind)
	assert.Equal(t, ir.OpReturn, f.Body.Instrs[1].Op)
	assert.Equal(t, f.Body.Instrs[0].Result, f.Body.Instrs[1].Args[0])
}

func TestImportMethodMemoizedAcrossInstances(t *testing.T) {
	c := &graph.Class{Namespace: "test", Name: "Node"}
	forward := &graph.Method{
		Class:  c,
		Name:   "forward",
		Params: []graph.Param{{Name: "self", Type: graph.ClassType(c)}},
		Result: graph.NoneType(),
		Body:   []graph.Instr{graph.ReturnNone()},
	}
	c.Methods = []*graph.Method{forward}
	root := &graph.Class{
		Namespace: "test",
		Name:      "Root",
		Slots: []graph.SlotDecl{
			{Name: "a", Type: graph.ClassType(c)},
			{Name: "b", Type: graph.ClassType(c)},
		},
	}
	obj := &graph.Object{
		Class: root,
		Slots: []*graph.Value{
			graph.ObjectValue(&graph.Object{Class: c}),
			graph.ObjectValue(&graph.Object{Class: c}),
		},
	}

	mod, err := Import(obj)
	require.NoError(t, err)

	// Two distinct instances of the same class share one body import.
	count := 0
	for _, f := range mod.Funcs {
		if f.Name == "test.Node.forward" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestImportOutOfRangeOperand(t *testing.T) {
	callee := &graph.Method{
		Namespace: "util",
		Name:      "id",
		Params:    []graph.Param{{Name: "x", Type: graph.IntType()}},
		Result:    graph.IntType(),
		Body:      []graph.Instr{graph.Return(0)},
	}

	tests := []struct {
		name string
		body []graph.Instr
	}{
		{"call_method receiver", []graph.Instr{graph.CallMethod(5, "anything")}},
		{"call argument", []graph.Instr{graph.Call(callee, 7)}},
		{"return value", []graph.Instr{graph.Return(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &graph.Class{Namespace: "test", Name: "Broken"}
			forward := &graph.Method{
				Class:  c,
				Name:   "forward",
				Params: []graph.Param{{Name: "self", Type: graph.ClassType(c)}},
				Result: graph.NoneType(),
				Body:   tt.body,
			}
			c.Methods = []*graph.Method{forward}

			mod, err := Import(&graph.Object{Class: c})
			require.Error(t, err)
			assert.True(t, IsBadOperand(err), "got %v", err)
			assert.Contains(t, err.Error(), "test.Broken.forward")
			assert.Nil(t, mod)
		})
	}
}

func TestImportFreeFunctionForwardsMethodCall(t *testing.T) {
	mod, err := Import(testutil.ForwardsThroughFunctionProgram())
	require.NoError(t, err)

	// The method invocation written inside the free function lowers as a
	// bound-method-call against its module-typed first parameter.
	f := mod.FindFunc("util.f")
	require.NotNil(t, f)
	var cm *ir.Instr
	for i := range f.Body.Instrs {
		if f.Body.Instrs[i].Op == ir.OpCallMethod {
			cm = &f.Body.Instrs[i]
		}
	}
	require.NotNil(t, cm)
	assert.Equal(t, "method", cm.Method)
	require.Len(t, cm.Args, 2)
	assert.Equal(t, ir.ValueID(0), cm.Args[0])
	require.NotEmpty(t, cm.CalleeType.Params)
	assert.Equal(t, ir.ClassType("test.Mod"), cm.CalleeType.Params[0])
	assert.Equal(t, ir.NoneType, cm.Type)

	// The method's call to f, whose callee reaches the site as a runtime
	// function value, lowers to a function-reference constant plus an
	// indirect call through it.
	forward := mod.FindFunc("test.Mod.forward")
	require.NotNil(t, forward)
	assert.Equal(t, []ir.OpKind{ir.OpConst, ir.OpFuncConst, ir.OpCallIndirect, ir.OpReturn}, ops(forward))
	fc := forward.Body.Instrs[1]
	indirect := forward.Body.Instrs[2]
	assert.Equal(t, "util.f", fc.Callee)
	require.NotEmpty(t, indirect.Args)
	assert.Equal(t, fc.Result, indirect.Args[0])
}

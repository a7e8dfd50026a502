package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSlotAndMethod(t *testing.T) {
	c := &Class{
		Name:  "Model",
		Slots: []SlotDecl{{Name: "w", Type: TensorType()}, {Name: "b", Type: TensorType()}},
	}
	forward := &Method{Class: c, Name: "forward"}
	c.Methods = []*Method{forward}

	assert.Equal(t, 0, c.FindSlot("w"))
	assert.Equal(t, 1, c.FindSlot("b"))
	assert.Equal(t, -1, c.FindSlot("missing"))
	assert.Same(t, forward, c.FindMethod("forward"))
	assert.Nil(t, c.FindMethod("backward"))
}

func TestValueTypeOf(t *testing.T) {
	c := &Class{Name: "Model"}
	obj := &Object{Class: c}

	tests := []struct {
		name string
		v    *Value
		want TypeKind
	}{
		{"int", IntValue(1), KindInt},
		{"float", FloatValue(1.5), KindFloat},
		{"bool", BoolValue(true), KindBool},
		{"str", StringValue("x"), KindString},
		{"none", NoneValue(), KindNone},
		{"tuple", TupleValue(IntValue(1)), KindTuple},
		{"list", ListValue(), KindList},
		{"tensor", TensorValue(&Tensor{DType: "f32"}), KindTensor},
		{"object", ObjectValue(obj), KindClass},
		{"function", FunctionValue(&Method{Name: "f"}), KindFunction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.TypeOf().Kind)
		})
	}

	assert.Same(t, c, ObjectValue(obj).TypeOf().Class)
}

func TestTensorNumElements(t *testing.T) {
	assert.Equal(t, int64(6), (&Tensor{Shape: []int64{2, 3}}).NumElements())
	assert.Equal(t, int64(1), (&Tensor{}).NumElements())
	assert.Equal(t, int64(0), (&Tensor{Shape: []int64{4, 0}}).NumElements())
}

func TestInstrConstructors(t *testing.T) {
	callee := &Method{Name: "f"}

	in := Call(callee, 0, 1)
	assert.Equal(t, InstrCall, in.Kind)
	assert.False(t, in.Indirect)
	assert.Equal(t, []int{0, 1}, in.Args)

	in = IndirectCall(callee, 2)
	assert.Equal(t, InstrCall, in.Kind)
	assert.True(t, in.Indirect)

	in = CallMethod(0, "helper", 1)
	assert.Equal(t, InstrCallMethod, in.Kind)
	assert.Equal(t, 0, in.Receiver)
	assert.Equal(t, "helper", in.Method)

	in = Return(3)
	assert.Equal(t, InstrReturn, in.Kind)
	assert.Equal(t, 3, in.Value)

	in = ReturnNone()
	assert.Equal(t, InstrReturn, in.Kind)
	assert.Equal(t, NoValue, in.Value)
}

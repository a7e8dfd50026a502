// Package printer serializes an IR module to text. Output is a pure
// function of the module's emission order: value names derive from
// allocation IDs and every collection prints in insertion order, so two
// imports of structurally identical graphs print byte-identically.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tracelift/tracelift/internal/ir"
)

const indent = "  "

// Print renders the module as text.
func Print(m *ir.Module) string {
	var b strings.Builder
	Fprint(&b, m)
	return b.String()
}

// Fprint renders the module to w.
func Fprint(w io.Writer, m *ir.Module) {
	fmt.Fprintln(w, "module {")
	for _, c := range m.Classes {
		printClass(w, c)
	}
	for _, f := range m.Funcs {
		printFunc(w, f)
	}
	if len(m.Init.Instrs) > 0 {
		fmt.Fprintln(w)
		names := initNamer()
		for _, in := range m.Init.Instrs {
			printInstr(w, indent, in, names)
		}
		if m.Root != ir.NoResult {
			fmt.Fprintf(w, "%sroot %s\n", indent, names(m.Root))
		}
	}
	fmt.Fprintln(w, "}")
}

func printClass(w io.Writer, c *ir.ClassDecl) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%sclass @%s {\n", indent, c.Name)
	for _, s := range c.Slots {
		fmt.Fprintf(w, "%s%sslot %q : %s\n", indent, indent, s.Name, s.Type)
	}
	for _, m := range c.Methods {
		fmt.Fprintf(w, "%s%smethod %q -> @%s\n", indent, indent, m.Name, m.Func)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

func printFunc(w io.Writer, f *ir.Func) {
	fmt.Fprintln(w)
	names := funcNamer(len(f.Params))
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", names(ir.ValueID(i)), p.Type)
	}
	fmt.Fprintf(w, "%sfunc @%s(%s) -> %s {\n", indent, f.Name, strings.Join(params, ", "), f.Result)
	for _, in := range f.Body.Instrs {
		printInstr(w, indent+indent, in, names)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

// initNamer names module-scope values %0, %1, ... by allocation ID.
func initNamer() func(ir.ValueID) string {
	return func(id ir.ValueID) string {
		return "%" + strconv.Itoa(int(id))
	}
}

// funcNamer names the first nparams values %arg0..%argN-1 and the rest
// %0, %1, ... by allocation ID.
func funcNamer(nparams int) func(ir.ValueID) string {
	return func(id ir.ValueID) string {
		if int(id) < nparams {
			return "%arg" + strconv.Itoa(int(id))
		}
		return "%" + strconv.Itoa(int(id)-nparams)
	}
}

func printInstr(w io.Writer, pad string, in ir.Instr, names func(ir.ValueID) string) {
	switch in.Op {
	case ir.OpConst:
		printConst(w, pad, in, names)

	case ir.OpTuple:
		fmt.Fprintf(w, "%s%s = tuple(%s) : %s\n", pad, names(in.Result), operands(in.Args, names), in.Type)

	case ir.OpList:
		fmt.Fprintf(w, "%s%s = list(%s) : %s\n", pad, names(in.Result), operands(in.Args, names), in.Type)

	case ir.OpFuncConst:
		fmt.Fprintf(w, "%s%s = func_const @%s : %s\n", pad, names(in.Result), in.Callee, in.CalleeType)

	case ir.OpCall:
		fmt.Fprintf(w, "%s%s = call @%s(%s) : %s\n", pad, names(in.Result), in.Callee, operands(in.Args, names), in.CalleeType)

	case ir.OpCallIndirect:
		fmt.Fprintf(w, "%s%s = call_indirect %s(%s) : %s\n", pad, names(in.Result), names(in.Args[0]), operands(in.Args[1:], names), in.CalleeType)

	case ir.OpCallMethod:
		recvType := "class"
		rest := in.CalleeType.Params
		if len(rest) > 0 {
			recvType = rest[0].String()
			rest = rest[1:]
		}
		result := in.Type.String()
		restStrs := make([]string, len(rest))
		for i, t := range rest {
			restStrs[i] = t.String()
		}
		fmt.Fprintf(w, "%s%s = call_method %s[%q](%s) : %s, (%s) -> %s\n",
			pad, names(in.Result), names(in.Args[0]), in.Method,
			operands(in.Args[1:], names), recvType, strings.Join(restStrs, ", "), result)

	case ir.OpNewModule:
		if len(in.Slots) == 0 {
			fmt.Fprintf(w, "%s%s = new @%s {} : %s\n", pad, names(in.Result), in.ClassName, in.Type)
			return
		}
		fmt.Fprintf(w, "%s%s = new @%s {\n", pad, names(in.Result), in.ClassName)
		for _, s := range in.Slots {
			fmt.Fprintf(w, "%s%sslot %q = %s\n", pad, indent, s.Name, names(s.Value))
		}
		fmt.Fprintf(w, "%s} : %s\n", pad, in.Type)

	case ir.OpReturn:
		fmt.Fprintf(w, "%sreturn %s : %s\n", pad, names(in.Args[0]), in.Type)
	}
}

func printConst(w io.Writer, pad string, in ir.Instr, names func(ir.ValueID) string) {
	switch in.ConstKind {
	case ir.ConstInt:
		fmt.Fprintf(w, "%s%s = const %d : i64\n", pad, names(in.Result), in.Int)
	case ir.ConstFloat:
		fmt.Fprintf(w, "%s%s = const %s : f64\n", pad, names(in.Result), formatFloat(in.Float))
	case ir.ConstBool:
		fmt.Fprintf(w, "%s%s = const %t : bool\n", pad, names(in.Result), in.Bool)
	case ir.ConstStr:
		fmt.Fprintf(w, "%s%s = const %s : str\n", pad, names(in.Result), strconv.Quote(in.Str))
	case ir.ConstNone:
		fmt.Fprintf(w, "%s%s = none\n", pad, names(in.Result))
	case ir.ConstTensor:
		fmt.Fprintf(w, "%s%s = tensor_const dtype=%q shape=[%s] bytes=%d : tensor\n",
			pad, names(in.Result), in.Tensor.DType, dims(in.Tensor.Shape), len(in.Tensor.Data))
	}
}

// formatFloat renders floats with a trailing ".0" for integral values so
// f64 constants never print like i64 ones.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func dims(shape []int64) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.FormatInt(d, 10)
	}
	return strings.Join(parts, ", ")
}

func operands(args []ir.ValueID, names func(ir.ValueID) string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = names(a)
	}
	return strings.Join(parts, ", ")
}

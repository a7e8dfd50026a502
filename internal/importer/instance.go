package importer

import (
	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/ir"
)

// importInstance lowers one module instance to a module-literal value at
// module scope, deduplicated by object identity. Shared instances import
// once and are referenced by value thereafter; instance cycles resolve to
// the placeholder registered before slot recursion.
func (imp *Importer) importInstance(obj *graph.Object) (ir.ValueID, error) {
	if id, ok := imp.instances[obj]; ok {
		return id, nil
	}

	// Class declaration precedes the first instance of the class.
	decl, err := imp.registry.Resolve(obj.Class)
	if err != nil {
		return ir.NoResult, err
	}

	// Pre-allocate the literal's value and register it before recursing,
	// so a slot that refers back to obj short-circuits to this ID.
	id := imp.mod.Init.AllocValue()
	imp.instances[obj] = id

	slots := make([]ir.SlotBinding, 0, len(obj.Slots))
	for i, sv := range obj.Slots {
		declared := graph.TypeRef{}
		slotName := ""
		if i < len(obj.Class.Slots) {
			declared = obj.Class.Slots[i].Type
			slotName = obj.Class.Slots[i].Name
		}
		// Unexported slots are pruned from the declaration, so their
		// values never enter the module.
		if slotName != "" && !imp.annotations.IsSlotExported(obj.Class, slotName) {
			continue
		}
		v, err := imp.importValue(&imp.mod.Init, sv, declared)
		if err != nil {
			return ir.NoResult, err
		}
		slots = append(slots, ir.SlotBinding{Name: slotName, Value: v})
	}

	imp.mod.Init.Append(ir.Instr{
		Op:        ir.OpNewModule,
		Result:    id,
		Type:      ir.ClassType(decl.Name),
		ClassName: decl.Name,
		Slots:     slots,
	})

	// Import the class's exported method bodies once per class; the
	// memo table makes repeats free for later instances.
	for _, m := range obj.Class.Methods {
		if !imp.annotations.IsMethodExported(obj.Class, m.Name) {
			continue
		}
		if _, err := imp.importMethod(m); err != nil {
			return ir.NoResult, err
		}
	}
	return id, nil
}

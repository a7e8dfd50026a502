package annotate

import (
	"fmt"

	"github.com/tracelift/tracelift/internal/graph"
)

// SlotAnnotation carries per-slot annotations.
type SlotAnnotation struct {
	Name     string
	Exported bool
}

// MethodAnnotation carries per-method annotations.
type MethodAnnotation struct {
	Name     string
	Exported bool
}

// ClassAnnotation holds annotations for one class, with slot and method
// entries parallel to the class's declared order.
type ClassAnnotation struct {
	class   *graph.Class
	Slots   []SlotAnnotation
	Methods []MethodAnnotation
}

func newClassAnnotation(c *graph.Class) *ClassAnnotation {
	ann := &ClassAnnotation{class: c}
	for _, s := range c.Slots {
		ann.Slots = append(ann.Slots, SlotAnnotation{Name: s.Name, Exported: true})
	}
	for _, m := range c.Methods {
		ann.Methods = append(ann.Methods, MethodAnnotation{Name: m.Name, Exported: true})
	}
	return ann
}

// Annotator accumulates class annotations for one import pass. It is
// keyed by class descriptor identity and, like the importer's own tables,
// must not be shared across concurrent passes.
type Annotator struct {
	byClass map[*graph.Class]*ClassAnnotation
}

// New returns an empty annotator. A nil *Annotator is valid and treats
// everything as exported.
func New() *Annotator {
	return &Annotator{byClass: make(map[*graph.Class]*ClassAnnotation)}
}

// GetOrCreate returns the annotation record for c, creating a fully
// exported default on first use.
func (a *Annotator) GetOrCreate(c *graph.Class) *ClassAnnotation {
	if ann, ok := a.byClass[c]; ok {
		return ann
	}
	ann := newClassAnnotation(c)
	a.byClass[c] = ann
	return ann
}

// ExportNone marks every slot and method of root and of every class
// reachable through class-typed slots as unexported.
func (a *Annotator) ExportNone(root *graph.Class) {
	a.exportNoneRecurse(root, make(map[*graph.Class]bool))
}

func (a *Annotator) exportNoneRecurse(c *graph.Class, seen map[*graph.Class]bool) {
	if seen[c] {
		return
	}
	seen[c] = true
	ann := a.GetOrCreate(c)
	for i := range ann.Slots {
		ann.Slots[i].Exported = false
	}
	for i := range ann.Methods {
		ann.Methods[i].Exported = false
	}
	for _, slot := range c.Slots {
		if slot.Type.Kind == graph.KindClass && slot.Type.Class != nil {
			a.exportNoneRecurse(slot.Type.Class, seen)
		}
	}
}

// ExportPath marks the slot or method at the given attribute path,
// starting from root, as exported. All path atoms but the last must be
// class-typed slots (submodules).
func (a *Annotator) ExportPath(root *graph.Class, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty export path: can only export a slot or method of a class")
	}
	c := root
	for len(path) != 1 {
		atom := path[0]
		idx := c.FindSlot(atom)
		if idx < 0 {
			return fmt.Errorf("class %q does not have a submodule in attribute %q",
				className(c), atom)
		}
		slot := c.Slots[idx]
		if slot.Type.Kind != graph.KindClass || slot.Type.Class == nil {
			return fmt.Errorf("class %q does not have a submodule in attribute %q",
				className(c), atom)
		}
		c = slot.Type.Class
		path = path[1:]
	}

	leaf := path[0]
	if c.FindSlot(leaf) < 0 && c.FindMethod(leaf) == nil {
		return fmt.Errorf("class %q does not have a method or attribute called %q",
			className(c), leaf)
	}

	ann := a.GetOrCreate(c)
	for i := range ann.Slots {
		if ann.Slots[i].Name == leaf {
			ann.Slots[i].Exported = true
		}
	}
	for i := range ann.Methods {
		if ann.Methods[i].Name == leaf {
			ann.Methods[i].Exported = true
		}
	}
	return nil
}

// IsMethodExported reports whether the named method of c is exported.
// Classes without annotations default to fully exported.
func (a *Annotator) IsMethodExported(c *graph.Class, name string) bool {
	if a == nil {
		return true
	}
	ann, ok := a.byClass[c]
	if !ok {
		return true
	}
	for _, m := range ann.Methods {
		if m.Name == name {
			return m.Exported
		}
	}
	return true
}

// IsSlotExported reports whether the named slot of c is exported.
func (a *Annotator) IsSlotExported(c *graph.Class, name string) bool {
	if a == nil {
		return true
	}
	ann, ok := a.byClass[c]
	if !ok {
		return true
	}
	for _, s := range ann.Slots {
		if s.Name == name {
			return s.Exported
		}
	}
	return true
}

func className(c *graph.Class) string {
	if c.Namespace != "" && c.Name != "" {
		return c.Namespace + "." + c.Name
	}
	if c.Name != "" {
		return c.Name
	}
	return "<anonymous>"
}

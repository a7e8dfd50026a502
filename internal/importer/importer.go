package importer

import (
	"fmt"

	"github.com/tracelift/tracelift/internal/annotate"
	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/ir"
)

// Importer holds the mutable state of one import pass: the type registry,
// the instance dedup table, and the method memo table. It must be used
// for exactly one root instance and then dropped.
type Importer struct {
	mod      *ir.Module
	registry *Registry

	instances map[*graph.Object]ir.ValueID
	methods   map[*graph.Method]*ir.Func

	// inFlight tracks compound values currently being imported, to turn
	// value-level cycles into CyclicResolutionError instead of blowing
	// the stack. Instance cycles are handled by the placeholder, not here.
	inFlight map[*graph.Value]bool

	// nones memoizes the none singleton per block. None is stateless and
	// freely shareable by construction.
	nones map[*ir.Block]ir.ValueID

	annotations *annotate.Annotator
	used        bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithAnnotations attaches export annotations consulted while emitting
// class declarations and importing methods.
func WithAnnotations(a *annotate.Annotator) Option {
	return func(imp *Importer) { imp.annotations = a }
}

// New returns a fresh Importer for a single pass.
func New(opts ...Option) *Importer {
	imp := &Importer{
		mod:       ir.NewModule(),
		instances: make(map[*graph.Object]ir.ValueID),
		methods:   make(map[*graph.Method]*ir.Func),
		inFlight:  make(map[*graph.Value]bool),
		nones:     make(map[*ir.Block]ir.ValueID),
	}
	for _, opt := range opts {
		opt(imp)
	}
	imp.registry = newRegistry(imp.mod, imp.annotations)
	return imp
}

// Import runs one import pass over the graph rooted at root with a fresh
// Importer. This is the whole-pass entry point: it either returns a
// complete module or an error, never partial IR.
func Import(root *graph.Object, opts ...Option) (*ir.Module, error) {
	return New(opts...).ImportModule(root)
}

// ImportModule imports the instance graph rooted at root. An Importer is
// single-use: a second call fails rather than reuse stale dedup tables.
func (imp *Importer) ImportModule(root *graph.Object) (*ir.Module, error) {
	if imp.used {
		return nil, fmt.Errorf("importer already used: construct a fresh Importer per pass")
	}
	imp.used = true

	id, err := imp.importInstance(root)
	if err != nil {
		return nil, err
	}
	imp.mod.Root = id
	return imp.mod, nil
}

// Registry exposes the pass's type registry, mainly for tests.
func (imp *Importer) Registry() *Registry {
	return imp.registry
}

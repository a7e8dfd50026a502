// Package importer converts a scripted-module object graph into an IR
// module.
//
// One Importer serves exactly one import pass. Its dedup tables (the type
// registry and the instance table) are mutable state scoped to that pass:
// independent imports need fresh Importer instances, and concurrent
// imports must never share one. A pass either produces a complete,
// printable module or fails with a structured ImportError; there is no
// partial output.
//
// The pass is driven by the instance importer: for the root instance it
// resolves the class through the registry, imports every slot value
// (recursing into submodules), and imports every method body. The
// instance table registers a placeholder value before recursing into
// slots, so a slot that refers back to an instance already on the path
// resolves to the placeholder instead of recursing forever.
package importer

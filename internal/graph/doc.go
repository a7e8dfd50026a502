// Package graph defines the runtime object-graph model handed to the
// importer by the tracing front end.
//
// This package contains type definitions only. The importer, loader, and
// annotator all import graph; graph imports nothing internal. Identity of
// classes, methods, and objects is pointer identity: two slots holding the
// same *Object are the same instance, and the importer relies on that to
// deduplicate shared submodules and to terminate on cyclic graphs.
//
// Tensor payloads reference backing storage owned by the producing object
// graph. The storage is borrowed for the duration of one import pass and
// must not be retained past it.
package graph

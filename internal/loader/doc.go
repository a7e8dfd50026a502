// Package loader deserializes a traced object-graph document (CUE) into
// the in-memory graph the importer consumes.
//
// The document names every class, function, and object with an ID and
// references them by ID, which lets it express shared submodules and
// cyclic instance graphs: the loader builds exactly one record per ID, so
// two slots referencing the same object ID end up holding the same
// pointer. Loading is two-phase for the same reason the importer's
// instance table is: all record shells are allocated first, then slots,
// bodies, and references are filled in, so back-references resolve.
package loader

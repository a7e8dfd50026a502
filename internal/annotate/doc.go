// Package annotate attaches export annotations to classes in a source
// object graph before import.
//
// Annotations are keyed by class descriptor identity and stored parallel
// to the class's slot and method lists. By default everything is exported;
// ExportNone flips the whole reachable class tree to unexported, after
// which ExportPath re-exports individual slots or methods by attribute
// path from the root class. The importer prunes unexported methods from
// class declarations and skips importing their bodies.
package annotate

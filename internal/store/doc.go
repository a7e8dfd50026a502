// Package store provides a SQLite-backed artifact store for imported IR
// modules.
//
// Modules are content-addressed: the key is the domain-separated SHA-256
// of the printed text (ir.ModuleHash), so storing the result of importing
// the same graph twice is a no-op by construction. Each store operation
// also records an import-pass provenance row (pass token, source
// document, module hash) so a stored module can be traced back to the
// imports that produced it.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: passes reference stored modules
package store

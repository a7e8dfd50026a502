// Package ir provides the intermediate representation built by the
// importer and consumed by the printer and the artifact store.
//
// This package contains type definitions and identity helpers only. All
// other internal packages import ir; ir imports nothing internal. This
// keeps IR the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Instructions are a closed tagged variant dispatched by switch,
//     never an interface hierarchy. The instruction set is fixed.
//   - All emission-ordered collections are slices. Output ordering is
//     insertion order throughout; no map iteration may influence it.
//   - Tensor constants borrow their backing storage from the source
//     object graph for the duration of the import pass. The IR does not
//     own a copy; see TensorPayload.
package ir

// Package harness provides a conformance testing framework for the
// tracelift importer.
//
// Scenarios are YAML files that name a graph document, optional export
// annotations, and a set of assertions over the printed IR. The harness
// runs a full import pass (loader, importer, printer) for each scenario,
// so a scenario exercises the same path the CLI does.
//
// Every scenario is imported twice. The two printed texts are compared
// so determinism regressions fail every scenario, not just the ones
// with an explicit "deterministic" assertion.
//
// Golden comparison (RunWithGolden) treats the printed IR text itself as
// the golden artifact:
//
//	go test ./internal/harness -update
//
// regenerates the files under testdata/golden.
package harness

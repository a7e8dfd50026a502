package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tracelift/tracelift/internal/annotate"
	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/importer"
	"github.com/tracelift/tracelift/internal/ir"
	"github.com/tracelift/tracelift/internal/loader"
	"github.com/tracelift/tracelift/internal/printer"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load the graph document
// 2. Apply export annotations, if configured
// 3. Run one import pass and print the module
// 4. Run a second pass to cross-check determinism
// 5. Evaluate assertions (or match the expected failure)
//
// Infrastructure failures (unreadable files, bad annotation paths)
// return an error. Import failures are part of the scenario outcome and
// land in the result.
func Run(scenario *Scenario) (*Result, error) {
	result := NewResult()

	text, mod, runErr := runPass(scenario)
	if runErr != nil {
		result.ErrorCode = errorCode(runErr)
		result.ErrorMessage = runErr.Error()
		matchExpectedFailure(scenario, runErr, result)
		return result, nil
	}
	if scenario.Expect != nil {
		result.AddError(fmt.Sprintf("expected failure %q, but the pass succeeded", scenario.Expect.Error))
		return result, nil
	}

	result.IRText = text
	result.Hash = ir.ModuleHash([]byte(text))
	result.Classes = len(mod.Classes)
	result.Funcs = len(mod.Funcs)
	if len(mod.Classes) > 0 {
		result.RootClass = mod.Classes[0].Name
	}

	// Second pass over a freshly loaded document. Catches any hidden
	// dependence on map iteration order or pointer identity.
	second, _, err := runPass(scenario)
	if err != nil {
		return nil, fmt.Errorf("second pass failed where the first succeeded: %w", err)
	}
	result.Deterministic = second == text
	if !result.Deterministic {
		result.AddError("two passes over the same document printed different text")
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// runPass loads the document and runs one complete import pass.
func runPass(scenario *Scenario) (string, *ir.Module, error) {
	prog, err := loader.Load(scenario.Graph)
	if err != nil {
		return "", nil, err
	}

	opts, err := importOptions(scenario, prog)
	if err != nil {
		return "", nil, err
	}

	mod, err := importer.Import(prog.Root, opts...)
	if err != nil {
		return "", nil, err
	}
	return printer.Print(mod), mod, nil
}

func importOptions(scenario *Scenario, prog *graph.Program) ([]importer.Option, error) {
	if scenario.Annotations == "" {
		return nil, nil
	}
	cfg, err := annotate.LoadConfig(scenario.Annotations)
	if err != nil {
		return nil, err
	}
	ann := annotate.New()
	if err := cfg.Apply(ann, prog.Root.Class); err != nil {
		return nil, err
	}
	return []importer.Option{importer.WithAnnotations(ann)}, nil
}

// matchExpectedFailure checks a pass failure against the scenario's
// expect clause. An unexpected failure fails the scenario.
func matchExpectedFailure(scenario *Scenario, runErr error, result *Result) {
	if scenario.Expect == nil {
		result.AddError(fmt.Sprintf("pass failed: %v", runErr))
		return
	}
	if result.ErrorCode != scenario.Expect.Error {
		result.AddError(fmt.Sprintf("expected error code %q, got %q (%v)",
			scenario.Expect.Error, result.ErrorCode, runErr))
		return
	}
	if scenario.Expect.Message != "" && !strings.Contains(runErr.Error(), scenario.Expect.Message) {
		result.AddError(fmt.Sprintf("error %q does not contain %q",
			runErr.Error(), scenario.Expect.Message))
	}
}

// errorCode extracts the structured code from loader and importer
// failures. Unstructured errors report an empty code.
func errorCode(err error) string {
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var impErr *importer.ImportError
	if errors.As(err, &impErr) {
		return string(impErr.Code)
	}
	return ""
}

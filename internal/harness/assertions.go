package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the printed IR so failures are debuggable from the message
// alone.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	IRText   string // Printed module text for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.IRText != "" {
		fmt.Fprintf(&buf, "\nPrinted IR:\n%s", e.IRText)
	}

	return buf.String()
}

// assertIRContains checks that the fragment appears in the printed IR.
func assertIRContains(result *Result, assertion Assertion) error {
	if strings.Contains(result.IRText, assertion.Fragment) {
		return nil
	}
	return &AssertionError{
		Type:     AssertIRContains,
		Expected: fmt.Sprintf("IR contains %q", assertion.Fragment),
		Actual:   "fragment not found",
		IRText:   result.IRText,
	}
}

// assertIROrder checks that the fragments appear in order. Fragments need
// not be adjacent; each match starts after the end of the previous one.
func assertIROrder(result *Result, assertion Assertion) error {
	offset := 0
	for i, fragment := range assertion.Fragments {
		idx := strings.Index(result.IRText[offset:], fragment)
		if idx < 0 {
			return &AssertionError{
				Type:     AssertIROrder,
				Expected: fmt.Sprintf("fragments in order: %q", assertion.Fragments),
				Actual:   fmt.Sprintf("fragment %d (%q) not found after offset %d", i, fragment, offset),
				IRText:   result.IRText,
			}
		}
		offset += idx + len(fragment)
	}
	return nil
}

// assertCount checks a declaration count.
func assertCount(assertionType string, actual, expected int, result *Result) error {
	if actual == expected {
		return nil
	}
	return &AssertionError{
		Type:     assertionType,
		Expected: fmt.Sprintf("%d declarations", expected),
		Actual:   fmt.Sprintf("%d declarations", actual),
		IRText:   result.IRText,
	}
}

// assertRootClass checks the qualified name of the root instance's class.
func assertRootClass(result *Result, assertion Assertion) error {
	if result.RootClass == assertion.Name {
		return nil
	}
	return &AssertionError{
		Type:     AssertRootClass,
		Expected: fmt.Sprintf("root class %q", assertion.Name),
		Actual:   fmt.Sprintf("root class %q", result.RootClass),
		IRText:   result.IRText,
	}
}

// assertDeterministic checks the cross-pass comparison the harness
// already performed.
func assertDeterministic(result *Result) error {
	if result.Deterministic {
		return nil
	}
	return &AssertionError{
		Type:     AssertDeterministic,
		Expected: "two passes print byte-identical text",
		Actual:   "passes diverged",
		IRText:   result.IRText,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertIRContains:
			err = assertIRContains(result, assertion)
		case AssertIROrder:
			err = assertIROrder(result, assertion)
		case AssertClassCount:
			err = assertCount(AssertClassCount, result.Classes, assertion.Count, result)
		case AssertFuncCount:
			err = assertCount(AssertFuncCount, result.Funcs, assertion.Count, result)
		case AssertRootClass:
			err = assertRootClass(result, assertion)
		case AssertDeterministic:
			err = assertDeterministic(result)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

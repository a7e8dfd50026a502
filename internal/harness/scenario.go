package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios run one import pass over a graph document and assert on the
// printed IR, or on the structured error the pass fails with.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for RunWithGolden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Graph is the path to the CUE graph document to import.
	// Relative paths resolve against the scenario file location.
	Graph string `yaml:"graph"`

	// Annotations is an optional path to a YAML export annotation config
	// applied to the root class before the pass.
	Annotations string `yaml:"annotations,omitempty"`

	// Expect, when set, declares that the pass must fail.
	// A scenario with Expect needs no assertions.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate the printed IR of a successful pass.
	// Supported types: ir_contains, ir_order, class_count, func_count,
	// root_class, deterministic.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause declares an expected pass failure.
type ExpectClause struct {
	// Error is the expected error code (e.g. "UNKNOWN_METHOD",
	// "BAD_REFERENCE").
	Error string `yaml:"error"`

	// Message is an optional substring the error text must contain.
	Message string `yaml:"message,omitempty"`
}

// Assertion validates the printed IR of a successful pass.
type Assertion struct {
	// Type specifies the assertion type:
	// - "ir_contains": Fragment appears in the printed IR
	// - "ir_order": Fragments appear in order (not necessarily adjacent)
	// - "class_count": Module declares exactly Count classes
	// - "func_count": Module declares exactly Count functions
	// - "root_class": Root instance's class carries this qualified name
	// - "deterministic": Two passes over the document print identically
	Type string `yaml:"type"`

	// Fragment is the expected IR text fragment (used by ir_contains).
	Fragment string `yaml:"fragment,omitempty"`

	// Fragments are the expected fragments in order (used by ir_order).
	Fragments []string `yaml:"fragments,omitempty"`

	// Count is the expected declaration count (class_count, func_count).
	Count int `yaml:"count,omitempty"`

	// Name is the expected qualified class name (used by root_class).
	Name string `yaml:"name,omitempty"`
}

// Assertion type constants.
const (
	AssertIRContains    = "ir_contains"
	AssertIROrder       = "ir_order"
	AssertClassCount    = "class_count"
	AssertFuncCount     = "func_count"
	AssertRootClass     = "root_class"
	AssertDeterministic = "deterministic"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving graph and annotation paths relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve referenced paths BEFORE validation so existence checks
	// see the resolved locations.
	if scenario.Graph != "" && !filepath.IsAbs(scenario.Graph) && basePath != "" {
		scenario.Graph = filepath.Join(basePath, scenario.Graph)
	}
	if scenario.Annotations != "" && !filepath.IsAbs(scenario.Annotations) && basePath != "" {
		scenario.Annotations = filepath.Join(basePath, scenario.Annotations)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Graph == "" {
		return fmt.Errorf("graph is required")
	}
	if _, err := os.Stat(s.Graph); os.IsNotExist(err) {
		return fmt.Errorf("graph document not found: %s", s.Graph)
	}

	if s.Annotations != "" {
		if _, err := os.Stat(s.Annotations); os.IsNotExist(err) {
			return fmt.Errorf("annotation config not found: %s", s.Annotations)
		}
	}

	if s.Expect != nil {
		if s.Expect.Error == "" {
			return fmt.Errorf("expect: error code is required")
		}
		// A failing pass produces no IR to assert on.
		if len(s.Assertions) != 0 {
			return fmt.Errorf("expect and assertions are mutually exclusive")
		}
		return nil
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertIRContains:
		if a.Fragment == "" {
			return fmt.Errorf("assertions[%d]: fragment is required for ir_contains", index)
		}
	case AssertIROrder:
		if len(a.Fragments) < 2 {
			return fmt.Errorf("assertions[%d]: at least two fragments are required for ir_order", index)
		}
	case AssertClassCount, AssertFuncCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertRootClass:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for root_class", index)
		}
	case AssertDeterministic:
		// No fields.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: an expected outcome
	// (successful import or the declared failure) and no assertion
	// errors.
	Pass bool `json:"pass"`

	// IRText is the printed module text of a successful pass.
	IRText string `json:"ir_text,omitempty"`

	// Hash is the content hash of IRText.
	Hash string `json:"hash,omitempty"`

	// RootClass is the qualified name of the root instance's class.
	RootClass string `json:"root_class,omitempty"`

	// Classes and Funcs count the module's declarations.
	Classes int `json:"classes"`
	Funcs   int `json:"funcs"`

	// Deterministic reports whether a second pass over the same
	// document printed byte-identical text.
	Deterministic bool `json:"deterministic"`

	// ErrorCode and ErrorMessage describe the pass failure, if any.
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

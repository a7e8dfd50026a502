package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracelift/tracelift/internal/loader"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the JSON payload for a successful validation.
type ValidateResult struct {
	Valid     bool   `json:"valid"`
	RootClass string `json:"root_class"`
	Classes   int    `json:"classes"`
	Functions int    `json:"functions"`
	Objects   int    `json:"objects"`
}

func (r ValidateResult) String() string {
	return fmt.Sprintf("valid: root class %q (%d classes, %d functions, %d objects)",
		r.RootClass, r.Classes, r.Functions, r.Objects)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <graph.cue>",
		Short: "Validate a traced object graph document",
		Long: `Validate loads a graph document and checks that every reference
resolves: slot values match declared slot types, instruction operands
name values that exist, and the root object is present. It does not run
an import pass.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, graphPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	prog, err := loader.Load(graphPath)
	if err != nil {
		code := "VALIDATION_ERROR"
		var loadErr *loader.LoadError
		if errors.As(err, &loadErr) {
			code = loadErr.Code
		}
		formatter.Error(code, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	rootClass := prog.Root.Class.Name
	formatter.VerboseLog("Graph valid: root class %q", rootClass)

	return formatter.Success(ValidateResult{
		Valid:     true,
		RootClass: rootClass,
		Classes:   len(prog.Classes),
		Functions: len(prog.Functions),
		Objects:   len(prog.Objects),
	})
}

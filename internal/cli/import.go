package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracelift/tracelift/internal/annotate"
	"github.com/tracelift/tracelift/internal/importer"
	"github.com/tracelift/tracelift/internal/ir"
	"github.com/tracelift/tracelift/internal/loader"
	"github.com/tracelift/tracelift/internal/printer"
	"github.com/tracelift/tracelift/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Output      string // output file path
	Annotations string // annotation config path
	StorePath   string // artifact store path
}

// ImportResult is the JSON payload for a successful import.
type ImportResult struct {
	Hash      string `json:"hash"`
	RootClass string `json:"root_class"`
	Classes   int    `json:"classes"`
	Functions int    `json:"functions"`
	IRText    string `json:"ir_text,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <graph.cue>",
		Short: "Import a traced object graph into textual IR",
		Long: `Import loads a traced module object graph document, runs one import
pass over it, and prints the resulting IR module.

The pass either produces a complete module or fails with a structured
error; no partial IR is ever emitted. Importing the same document twice
produces byte-identical output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Annotations, "annotations", "", "YAML export annotations")
	cmd.Flags().StringVar(&opts.StorePath, "store", "", "store the module in this artifact database")

	return cmd
}

func runImport(opts *ImportOptions, graphPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	prog, err := loader.Load(graphPath)
	if err != nil {
		return outputImportError(formatter, err)
	}
	formatter.VerboseLog("Loaded graph: %d classes, %d functions, %d objects",
		len(prog.Classes), len(prog.Functions), len(prog.Objects))

	var importOpts []importer.Option
	if opts.Annotations != "" {
		cfg, err := annotate.LoadConfig(opts.Annotations)
		if err != nil {
			return outputImportError(formatter, err)
		}
		ann := annotate.New()
		if err := cfg.Apply(ann, prog.Root.Class); err != nil {
			return outputImportError(formatter, err)
		}
		importOpts = append(importOpts, importer.WithAnnotations(ann))
	}

	mod, err := importer.Import(prog.Root, importOpts...)
	if err != nil {
		return outputImportError(formatter, err)
	}

	text := printer.Print(mod)
	hash := ir.ModuleHash([]byte(text))
	rootClass := ""
	if len(mod.Classes) > 0 {
		rootClass = mod.Classes[0].Name
	}
	formatter.VerboseLog("Imported module %s (%d classes, %d functions)",
		hash, len(mod.Classes), len(mod.Funcs))

	if opts.StorePath != "" {
		if err := storeModule(opts, graphPath, hash, rootClass, text); err != nil {
			return WrapExitError(ExitCommandError, "storing module", err)
		}
		formatter.VerboseLog("Stored module in %s", opts.StorePath)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(text), 0644); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
	}

	if opts.Format == "json" {
		result := ImportResult{
			Hash:      hash,
			RootClass: rootClass,
			Classes:   len(mod.Classes),
			Functions: len(mod.Funcs),
		}
		if opts.Output == "" {
			result.IRText = text
		}
		return formatter.Success(result)
	}

	if opts.Output == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}
	return nil
}

func storeModule(opts *ImportOptions, source, hash, rootClass, text string) error {
	st, err := store.Open(opts.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.WriteModule(ctx, store.StoredModule{
		Hash:      hash,
		RootClass: rootClass,
		IRText:    text,
	}); err != nil {
		return err
	}
	return st.WritePass(ctx, store.ImportPass{
		ID:         store.NewPassToken(),
		ModuleHash: hash,
		Source:     source,
	})
}

// outputImportError formats loader/import failures and maps them onto
// exit code 1 (bad input graph rather than bad command usage).
func outputImportError(formatter *OutputFormatter, err error) error {
	code := "IMPORT_ERROR"

	var loadErr *loader.LoadError
	var impErr *importer.ImportError
	switch {
	case errors.As(err, &loadErr):
		code = loadErr.Code
	case errors.As(err, &impErr):
		code = string(impErr.Code)
	}

	formatter.Error(code, err.Error(), nil)
	return NewExitError(ExitFailure, err.Error())
}

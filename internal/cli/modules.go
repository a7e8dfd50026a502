package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracelift/tracelift/internal/store"
)

// ModulesOptions holds flags for the modules command.
type ModulesOptions struct {
	*RootOptions
	StorePath string
	Hash      string // show a single module's IR text
	Passes    bool   // list import passes for --hash
}

// ModuleSummary is one row of the modules listing.
type ModuleSummary struct {
	Hash      string `json:"hash"`
	RootClass string `json:"root_class"`
}

// ModulesResult is the JSON payload for the modules command.
type ModulesResult struct {
	Modules []ModuleSummary    `json:"modules,omitempty"`
	IRText  string             `json:"ir_text,omitempty"`
	Passes  []store.ImportPass `json:"passes,omitempty"`
}

// NewModulesCommand creates the modules command.
func NewModulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List imported modules in an artifact store",
		Long: `Modules lists the IR modules recorded in an artifact store, ordered
by content hash. With --hash it prints one module's IR text; with
--hash and --passes it lists the import passes that produced it.`,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModules(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.StorePath, "store", "", "artifact store path")
	cmd.Flags().StringVar(&opts.Hash, "hash", "", "show the module with this hash")
	cmd.Flags().BoolVar(&opts.Passes, "passes", false, "list import passes (requires --hash)")
	cmd.MarkFlagRequired("store")

	return cmd
}

func runModules(opts *ModulesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Passes && opts.Hash == "" {
		return NewExitError(ExitCommandError, "--passes requires --hash")
	}

	st, err := store.Open(opts.StorePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening store", err)
	}
	defer st.Close()

	ctx := context.Background()

	if opts.Hash != "" {
		return showModule(ctx, st, opts, formatter, cmd)
	}

	mods, err := st.ListModules(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "listing modules", err)
	}

	if opts.Format == "json" {
		result := ModulesResult{Modules: make([]ModuleSummary, 0, len(mods))}
		for _, m := range mods {
			result.Modules = append(result.Modules, ModuleSummary{
				Hash:      m.Hash,
				RootClass: m.RootClass,
			})
		}
		return formatter.Success(result)
	}

	for _, m := range mods {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", m.Hash, m.RootClass)
	}
	return nil
}

func showModule(ctx context.Context, st *store.Store, opts *ModulesOptions, formatter *OutputFormatter, cmd *cobra.Command) error {
	if opts.Passes {
		passes, err := st.ListPasses(ctx, opts.Hash)
		if err != nil {
			return WrapExitError(ExitCommandError, "listing passes", err)
		}
		if opts.Format == "json" {
			return formatter.Success(ModulesResult{Passes: passes})
		}
		for _, p := range passes {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", p.ID, p.Source)
		}
		return nil
	}

	mod, err := st.GetModule(ctx, opts.Hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			formatter.Error("NOT_FOUND", fmt.Sprintf("no module with hash %q", opts.Hash), nil)
			return NewExitError(ExitFailure, "module not found")
		}
		return WrapExitError(ExitCommandError, "reading module", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ModulesResult{
			Modules: []ModuleSummary{{Hash: mod.Hash, RootClass: mod.RootClass}},
			IRText:  mod.IRText,
		})
	}

	text := mod.IRText
	fmt.Fprint(cmd.OutOrStdout(), text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

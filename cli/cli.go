// Package cli provides the command-line interface for the dazzle
// front-end compiler.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dazzle-lang/dazzle/compile"
	"github.com/dazzle-lang/dazzle/diagnostics"
	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/pkg/constants"
	dazzleerrors "github.com/dazzle-lang/dazzle/pkg/errors"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the root cobra command. The core ships exactly
// one command, `compile`: project scaffolding, database consoles, and
// the rest of a generator's command suite live downstream of this
// front end, not here.
func NewRootCommand(version, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dazzle",
		Short:        "dazzle - the DAZZLE DSL front-end compiler",
		Long:         `dazzle lexes, parses, links, and validates a DAZZLE project, emitting diagnostics or a linked AppSpec.`,
		Version:      fmt.Sprintf("%s (built: %s)", version, date),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCompileCommand())

	return rootCmd
}

func newCompileCommand() *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "compile [project-dir]",
		Short: "Compile a DAZZLE project and print its diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			printBanner()

			res := compile.Compile(root, compile.Options{})

			out, err := renderDiagnostics(res.Diagnostics, format)
			if err != nil {
				return fmt.Errorf("rendering diagnostics: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if res.Spec != nil && outPath != "" {
				if err := writeAppSpec(outPath, res.Spec); err != nil {
					return err
				}
			}

			if errs, _ := res.Diagnostics.Counts(); errs > 0 {
				cmd.SilenceErrors = true
				return fmt.Errorf("%d error(s)", errs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "diagnostic output format: text, json, or yaml")
	cmd.Flags().StringVar(&outPath, "out", "", "write the linked AppSpec as canonical JSON to this path")

	return cmd
}

// writeAppSpec serializes spec to canonical JSON and writes it to
// path with the public (world-readable) permission — compiled output
// is meant to be read by downstream generators, not kept private like
// a credential.
func writeAppSpec(path string, spec *ir.AppSpec) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return dazzleerrors.NewSpecificFileOperationError(path, "marshal", err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissionPublic); err != nil {
		return dazzleerrors.NewSpecificFileOperationError(path, "write", err)
	}
	return nil
}

func renderDiagnostics(diags ir.Diagnostics, format string) (string, error) {
	switch format {
	case "text", "":
		return diagnostics.FormatText(diags), nil
	case "json":
		out, err := diagnostics.FormatJSON(diags)
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case "yaml":
		out, err := diagnostics.FormatYAML(diags)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown --format %q: want text, json, or yaml", format)
	}
}

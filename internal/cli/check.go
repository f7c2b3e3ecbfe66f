package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limnlang/limn/internal/convert"
	"github.com/limnlang/limn/internal/ir"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// CheckResult is the accept/reject verdict for one document.
type CheckResult struct {
	Path     string `json:"path"`
	Accepted bool   `json:"accepted"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file.json|dir>",
		Short: "Check parse trees against the supported subset",
		Long: `Check whether parse-tree documents stay within the supported JavaScript
subset, without emitting IR. Exit code 1 signals at least one rejection.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	files, err := FindDocuments(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	converter := convert.New(ir.NewNodeBuilder())

	results := make([]CheckResult, 0, len(files))
	rejected := 0
	for _, file := range files {
		doc, err := LoadDocument(file)
		if err != nil {
			return outputLoadError(formatter, err)
		}

		_, convErr := converter.Convert(doc.Tree)
		if convErr != nil && !errors.Is(convErr, convert.ErrUnsupported) {
			return outputError(formatter, ErrCodeGeneric, convErr.Error())
		}
		accepted := convErr == nil
		if !accepted {
			rejected++
		}
		results = append(results, CheckResult{Path: doc.Path, Accepted: accepted})
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			mark := "✓"
			if !result.Accepted {
				mark = "✗"
			}
			fmt.Fprintf(formatter.Writer, "%s %s\n", mark, result.Path)
		}
		fmt.Fprintf(formatter.Writer, "%d document(s), %d rejected\n", len(results), rejected)
	}

	if rejected > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d document(s) rejected", rejected))
	}
	return nil
}

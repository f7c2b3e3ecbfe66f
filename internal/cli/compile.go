package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/limnlang/limn/internal/convert"
	"github.com/limnlang/limn/internal/ir"
	"github.com/limnlang/limn/internal/registry"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output   string // output file path (single document only)
	Registry string // registry database path
}

// CompiledDocument is one successfully compiled document.
type CompiledDocument struct {
	Path string          `json:"path"`
	IR   json.RawMessage `json:"ir"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <file.json|dir>",
		Short: "Compile parse trees to template IR",
		Long: `Compile ESTree JSON parse trees to builder-neutral template IR.

Each document is validated, decoded, and converted. A document using any
construct outside the supported subset is rejected as a whole.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Errors get our own formatting
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (single document only)")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "artifact registry database path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
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
	if opts.Output != "" && len(files) > 1 {
		return outputError(formatter, ErrCodeGeneric, "--output requires a single document")
	}
	formatter.VerboseLog("Found %d document(s) in %s", len(files), path)

	var reg *registry.Registry
	if opts.Registry != "" {
		reg, err = registry.Open(opts.Registry)
		if err != nil {
			return outputError(formatter, ErrCodeRegistry, err.Error())
		}
		defer reg.Close()
	}

	converter := convert.New(ir.NewNodeBuilder())

	var compiled []CompiledDocument
	var roots []ir.Node
	for _, file := range files {
		doc, err := LoadDocument(file)
		if err != nil {
			return outputLoadError(formatter, err)
		}
		formatter.VerboseLog("Compiling %s", doc.Path)

		root, err := compileDocument(converter, doc)
		if errors.Is(err, convert.ErrUnsupported) {
			_ = formatter.Error(ErrCodeUnsupported, fmt.Sprintf("%s: unsupported construct", doc.Path), nil)
			return NewExitError(ExitFailure, fmt.Sprintf("%s: unsupported construct", doc.Path))
		}
		if err != nil {
			return outputError(formatter, ErrCodeGeneric, err.Error())
		}

		encoded, err := ir.Encode(root)
		if err != nil {
			return outputError(formatter, ErrCodeGeneric, err.Error())
		}
		if reg != nil {
			if _, err := reg.Put(cmd.Context(), doc.Source, encoded); err != nil {
				return outputError(formatter, ErrCodeRegistry, err.Error())
			}
		}
		compiled = append(compiled, CompiledDocument{Path: doc.Path, IR: encoded})
		roots = append(roots, root)
	}

	if opts.Output != "" {
		pretty, err := ir.EncodeIndent(roots[0])
		if err != nil {
			return outputError(formatter, ErrCodeGeneric, err.Error())
		}
		if err := os.WriteFile(opts.Output, append(pretty, '\n'), 0o644); err != nil {
			return outputError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	return outputCompileSuccess(formatter, compiled, opts.Output)
}

// compileDocument converts one document to a single IR tree. A document whose
// program converts to a statement sequence is wrapped in a container.
func compileDocument(converter *convert.Converter, doc *Document) (ir.Node, error) {
	nodes, err := converter.Convert(doc.Tree)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	container := ir.NewNodeBuilder().Container()
	for _, n := range nodes {
		container.Append(n)
	}
	return container, nil
}

func outputCompileSuccess(formatter *OutputFormatter, compiled []CompiledDocument, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(compiled)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d document(s)\n", len(compiled))
	for _, doc := range compiled {
		fmt.Fprintf(formatter.Writer, "  %s\n", doc.Path)
	}
	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote IR to %s\n", outputFile)
	}
	return nil
}

func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return outputError(formatter, loadErr.Code, loadErr.Message)
	}
	return outputError(formatter, ErrCodeGeneric, err.Error())
}

func outputError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

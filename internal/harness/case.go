// Package harness runs YAML-defined conformance cases through the converter
// and compares accepted results against golden files.
//
// A case names a source parse tree (inline ESTree JSON or a file reference)
// and whether the converter must accept or reject it. Accepted cases are
// additionally pinned by a golden file holding the canonical IR encoding.
package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/limnlang/limn/internal/convert"
	"github.com/limnlang/limn/internal/estree"
	"github.com/limnlang/limn/internal/ir"
)

// Case defines one conformance case.
type Case struct {
	// Name uniquely identifies this case and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this case pins down.
	Description string `yaml:"description,omitempty"`

	// Source is the ESTree JSON document, inline.
	Source string `yaml:"source,omitempty"`

	// SourceFile is a path to the document, relative to the case file.
	SourceFile string `yaml:"source_file,omitempty"`

	// Reject marks cases the converter must reject as a whole.
	Reject bool `yaml:"reject,omitempty"`

	dir string // directory of the case file, for SourceFile resolution
}

// Result is the outcome of running a case.
type Result struct {
	Nodes    []ir.Node
	Rejected bool
}

// LoadCase reads a single case file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case: %w", err)
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing case %s: %w", path, err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("case %s: name is required", path)
	}
	if c.Source == "" && c.SourceFile == "" {
		return nil, fmt.Errorf("case %s: source or source_file is required", path)
	}
	c.dir = filepath.Dir(path)
	return &c, nil
}

// LoadCases reads every *.yaml case file in a directory, sorted by filename
// for deterministic test ordering.
func LoadCases(dir string) ([]*Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading case directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	cases := make([]*Case, 0, len(paths))
	for _, path := range paths {
		c, err := LoadCase(path)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// sourceBytes resolves the case's document bytes.
func (c *Case) sourceBytes() ([]byte, error) {
	if c.Source != "" {
		return []byte(c.Source), nil
	}
	data, err := os.ReadFile(filepath.Join(c.dir, c.SourceFile))
	if err != nil {
		return nil, fmt.Errorf("case %s: reading source file: %w", c.Name, err)
	}
	return data, nil
}

// Run decodes the case's document and converts it.
//
// A rejection is a regular outcome, reported via Result.Rejected; only
// decode failures and unexpected converter errors are returned as errors.
func Run(c *Case) (*Result, error) {
	data, err := c.sourceBytes()
	if err != nil {
		return nil, err
	}
	tree, err := estree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", c.Name, err)
	}

	converter := convert.New(ir.NewNodeBuilder())
	nodes, err := converter.Convert(tree)
	if errors.Is(err, convert.ErrUnsupported) {
		return &Result{Rejected: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", c.Name, err)
	}
	return &Result{Nodes: nodes}, nil
}

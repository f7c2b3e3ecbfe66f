package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/limnlang/limn/internal/estree"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeNoDocuments   = "E003" // No parse-tree documents found
	ErrCodeDecodeFailed  = "E004" // Document decode failed
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeInvalidSchema = "E006" // Document failed schema validation
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeRegistry      = "E008" // Registry error
	ErrCodeUnsupported   = "E201" // Unsupported construct in the source tree
)

// LoadError describes a failure to load a parse-tree document.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Document is one loaded parse-tree document.
type Document struct {
	Path   string
	Source []byte
	Tree   *estree.Node
}

// FindDocuments resolves path to a list of parse-tree document files.
// A file path returns itself; a directory is walked for *.json files.
func FindDocuments(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "path not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	walkErr := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".json" {
			files = append(files, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Path: path, Message: walkErr.Error()}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoDocuments, Path: path, Message: "no parse-tree documents (*.json) found"}
	}
	return files, nil
}

// LoadDocument reads, validates, and decodes a single document.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}
	if err := estree.Validate(data); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidSchema, Path: path, Message: err.Error()}
	}
	tree, err := estree.Decode(data)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error()}
	}
	return &Document{Path: path, Source: data, Tree: tree}, nil
}

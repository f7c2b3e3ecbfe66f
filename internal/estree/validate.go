package estree

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

// ValidationError reports a document that failed schema validation.
type ValidationError struct {
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Validate checks that data is a structurally well-formed parse-tree
// document: valid JSON whose root is a Program with a body of tagged nodes.
//
// Validation does not decide subset membership. A document full of
// unsupported node kinds validates cleanly and is rejected later by the
// converter.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling parse-tree schema: %w", err)
	}
	program := schema.LookupPath(cue.ParsePath("#Program"))
	if err := program.Err(); err != nil {
		return fmt.Errorf("resolving #Program: %w", err)
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid JSON document: %v", err)}
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return formatCUEError(err)
	}

	if err := program.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &ValidationError{Message: firstErr.Error(), Pos: positions[0]}
	}
	return &ValidationError{Message: firstErr.Error()}
}

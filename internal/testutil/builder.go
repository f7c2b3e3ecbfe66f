// Package testutil provides test instrumentation shared across packages.
package testutil

import (
	"fmt"

	"github.com/limnlang/limn/internal/ir"
)

// RecordingBuilder wraps the standard Builder and records the order of
// construction calls. Tests use it to observe converter behavior that the
// resulting IR alone cannot show, such as short-circuiting: once a sibling
// rejects, no construction call for a later sibling may appear.
type RecordingBuilder struct {
	ir.Builder

	// Calls holds one entry per construction call, in call order.
	// Entries are "op" or "op:detail" strings, e.g. "identifier:a".
	Calls []string
}

// NewRecordingBuilder creates a RecordingBuilder around the standard Builder.
func NewRecordingBuilder() *RecordingBuilder {
	return &RecordingBuilder{Builder: ir.NewNodeBuilder()}
}

func (r *RecordingBuilder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *RecordingBuilder) Ident(name string) ir.Node {
	r.record("identifier:%s", name)
	return r.Builder.Ident(name)
}

func (r *RecordingBuilder) Literal(value any) ir.Node {
	r.record("literal:%v", value)
	return r.Builder.Literal(value)
}

func (r *RecordingBuilder) Array(elements []ir.Node) ir.Node {
	r.record("array")
	return r.Builder.Array(elements)
}

func (r *RecordingBuilder) Object(properties []ir.Node) ir.Node {
	r.record("object")
	return r.Builder.Object(properties)
}

func (r *RecordingBuilder) Property(key, value ir.Node, computed bool) ir.Node {
	r.record("property")
	return r.Builder.Property(key, value, computed)
}

func (r *RecordingBuilder) Binary(operator string, left, right ir.Node) ir.Node {
	r.record("binary:%s", operator)
	return r.Builder.Binary(operator, left, right)
}

func (r *RecordingBuilder) Call(callee ir.Node, arguments []ir.Node) ir.Node {
	r.record("call")
	return r.Builder.Call(callee, arguments)
}

func (r *RecordingBuilder) Template(segments []string, expressions []ir.Node) ir.Node {
	r.record("template")
	return r.Builder.Template(segments, expressions)
}

func (r *RecordingBuilder) Container() *ir.Container {
	r.record("container")
	return r.Builder.Container()
}

func (r *RecordingBuilder) If(test ir.Node, body []ir.Node) ir.Node {
	r.record("if")
	return r.Builder.If(test, body)
}

func (r *RecordingBuilder) ElseIf(test ir.Node, body []ir.Node) ir.Node {
	r.record("elseif")
	return r.Builder.ElseIf(test, body)
}

func (r *RecordingBuilder) Else(body []ir.Node) ir.Node {
	r.record("else")
	return r.Builder.Else(body)
}

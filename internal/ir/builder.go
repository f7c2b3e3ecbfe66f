package ir

// Builder is the capability object through which IR nodes are constructed.
// Each method takes already-converted children and flags and returns an
// opaque Node. Converters hold a Builder and never allocate nodes directly,
// which keeps the node representation swappable for testing and for
// alternative backends.
//
// Implementations must be reentrant: the converter may be run concurrently
// over independent trees with a shared Builder.
type Builder interface {
	Array(elements []Node) Node
	Assignment(operator string, left, right Node) Node
	Binary(operator string, left, right Node) Node
	Logical(operator string, left, right Node) Node
	Call(callee Node, arguments []Node) Node
	New(callee Node, arguments []Node) Node
	Conditional(test, consequent, alternate Node) Node
	Function(name Node, params, body []Node) Node
	Ident(name string) Node
	Literal(value any) Node
	Template(segments []string, expressions []Node) Node
	Member(object, property Node, computed bool) Node
	Container() *Container
	Object(properties []Node) Node
	Property(key, value Node, computed bool) Node
	Return(argument Node) Node
	This() Node
	Unary(operator string, operand Node, prefix bool) Node
	Update(operator string, operand Node, prefix bool) Node
	Declarator(id, init Node) Node
	Vars(kind string, declarations []Node) Node
	If(test Node, body []Node) Node
	ElseIf(test Node, body []Node) Node
	Else(body []Node) Node
	For(init, test, update Node, body []Node) Node
	While(test Node, body []Node) Node

	// Nonstandard returns a copy of a template node with its nonstandard
	// flag set. Non-template nodes are returned unchanged. The input node is
	// never mutated.
	Nonstandard(n Node) Node

	// IdentName reports whether n is an identifier node and, if so, its name.
	IdentName(n Node) (string, bool)
}

// NodeBuilder is the standard Builder producing the node types of this
// package. The zero value is ready to use.
type NodeBuilder struct{}

// NewNodeBuilder returns the standard Builder.
func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{}
}

var _ Builder = (*NodeBuilder)(nil)

func (*NodeBuilder) Array(elements []Node) Node {
	return &Array{Elements: elements}
}

func (*NodeBuilder) Assignment(operator string, left, right Node) Node {
	return &Assignment{Operator: operator, Left: left, Right: right}
}

func (*NodeBuilder) Binary(operator string, left, right Node) Node {
	return &Binary{Operator: operator, Left: left, Right: right}
}

func (*NodeBuilder) Logical(operator string, left, right Node) Node {
	return &Logical{Operator: operator, Left: left, Right: right}
}

func (*NodeBuilder) Call(callee Node, arguments []Node) Node {
	return &Call{Callee: callee, Arguments: arguments}
}

func (*NodeBuilder) New(callee Node, arguments []Node) Node {
	return &New{Callee: callee, Arguments: arguments}
}

func (*NodeBuilder) Conditional(test, consequent, alternate Node) Node {
	return &Conditional{Test: test, Consequent: consequent, Alternate: alternate}
}

func (*NodeBuilder) Function(name Node, params, body []Node) Node {
	return &Function{Name: name, Params: params, Body: body}
}

func (*NodeBuilder) Ident(name string) Node {
	return &Ident{Name: name}
}

func (*NodeBuilder) Literal(value any) Node {
	return &Literal{Value: value}
}

func (*NodeBuilder) Template(segments []string, expressions []Node) Node {
	return &Template{Segments: segments, Expressions: expressions}
}

func (*NodeBuilder) Member(object, property Node, computed bool) Node {
	return &Member{Object: object, Property: property, Computed: computed}
}

func (*NodeBuilder) Container() *Container {
	return &Container{}
}

func (*NodeBuilder) Object(properties []Node) Node {
	return &Object{Properties: properties}
}

func (*NodeBuilder) Property(key, value Node, computed bool) Node {
	return &Property{Key: key, Value: value, Computed: computed}
}

func (*NodeBuilder) Return(argument Node) Node {
	return &Return{Argument: argument}
}

func (*NodeBuilder) This() Node {
	return &This{}
}

func (*NodeBuilder) Unary(operator string, operand Node, prefix bool) Node {
	return &Unary{Operator: operator, Operand: operand, Prefix: prefix}
}

func (*NodeBuilder) Update(operator string, operand Node, prefix bool) Node {
	return &Update{Operator: operator, Operand: operand, Prefix: prefix}
}

func (*NodeBuilder) Declarator(id, init Node) Node {
	return &Declarator{ID: id, Init: init}
}

func (*NodeBuilder) Vars(kind string, declarations []Node) Node {
	return &Vars{Kind: kind, Declarations: declarations}
}

func (*NodeBuilder) If(test Node, body []Node) Node {
	return &If{Test: test, Body: body}
}

func (*NodeBuilder) ElseIf(test Node, body []Node) Node {
	return &ElseIf{Test: test, Body: body}
}

func (*NodeBuilder) Else(body []Node) Node {
	return &Else{Body: body}
}

func (*NodeBuilder) For(init, test, update Node, body []Node) Node {
	return &For{Init: init, Test: test, Update: update, Body: body}
}

func (*NodeBuilder) While(test Node, body []Node) Node {
	return &While{Test: test, Body: body}
}

func (*NodeBuilder) Nonstandard(n Node) Node {
	tmpl, ok := n.(*Template)
	if !ok {
		return n
	}
	marked := *tmpl
	marked.Nonstandard = true
	return &marked
}

func (*NodeBuilder) IdentName(n Node) (string, bool) {
	id, ok := n.(*Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

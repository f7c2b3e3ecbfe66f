package ir

// Node is the sealed interface implemented by every IR node.
//
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in backend code generators. Consumers that only
// need to route nodes onward can treat them as opaque values.
type Node interface {
	irNode() // Marker method - seals interface to this package
}

// RegExp is the value carried by a regular-expression literal.
//
// The IR is builder-neutral, so the pattern and flags are kept verbatim from
// the source rather than compiled into a host regexp engine (which could not
// represent every source pattern).
type RegExp struct {
	Pattern string
	Flags   string
}

// Ident is an identifier reference.
type Ident struct {
	Name string
}

func (*Ident) irNode() {}

// Literal is a literal value: string, number, boolean, null, or RegExp.
type Literal struct {
	Value any
}

func (*Literal) irNode() {}

// Array is an array literal over converted elements.
type Array struct {
	Elements []Node
}

func (*Array) irNode() {}

// Assignment carries the source operator token verbatim ("=", "+=", ...).
type Assignment struct {
	Operator string
	Left     Node
	Right    Node
}

func (*Assignment) irNode() {}

// Binary is an arithmetic or comparison expression.
type Binary struct {
	Operator string
	Left     Node
	Right    Node
}

func (*Binary) irNode() {}

// Logical is the short-circuiting counterpart of Binary ("&&", "||").
// It is a distinct kind so code generators can preserve evaluation order.
type Logical struct {
	Operator string
	Left     Node
	Right    Node
}

func (*Logical) irNode() {}

// Call is a function call.
type Call struct {
	Callee    Node
	Arguments []Node
}

func (*Call) irNode() {}

// New is a constructor call.
type New struct {
	Callee    Node
	Arguments []Node
}

func (*New) irNode() {}

// Conditional is a ternary expression.
type Conditional struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

func (*Conditional) irNode() {}

// Function is a function declaration or expression.
// Name is nil for anonymous functions.
type Function struct {
	Name   Node
	Params []Node
	Body   []Node
}

func (*Function) irNode() {}

// Template is a template literal. Segments holds the cooked string parts in
// source order; Expressions holds the converted interpolations between them.
// Nonstandard marks templates that came through the $nonstandard tag.
type Template struct {
	Segments    []string
	Expressions []Node
	Nonstandard bool
}

func (*Template) irNode() {}

// Member is a property access. Computed distinguishes a[b] from a.b.
type Member struct {
	Object   Node
	Property Node
	Computed bool
}

func (*Member) irNode() {}

// Object is an object literal over converted properties.
type Object struct {
	Properties []Node
}

func (*Object) irNode() {}

// Property is a single key/value entry of an object literal.
type Property struct {
	Key      Node
	Value    Node
	Computed bool
}

func (*Property) irNode() {}

// Return is a return statement. Argument is nil for a bare "return;".
type Return struct {
	Argument Node
}

func (*Return) irNode() {}

// This is a reference to the receiver object.
type This struct{}

func (*This) irNode() {}

// Unary is a unary operator application.
type Unary struct {
	Operator string
	Operand  Node
	Prefix   bool
}

func (*Unary) irNode() {}

// Update is an increment or decrement ("++", "--").
type Update struct {
	Operator string
	Operand  Node
	Prefix   bool
}

func (*Update) irNode() {}

// Declarator binds a name, optionally with an initializer.
// Init is nil when the source had no initializer.
type Declarator struct {
	ID   Node
	Init Node
}

func (*Declarator) irNode() {}

// Vars is a variable declaration tagged with its keyword (var/let/const).
type Vars struct {
	Kind         string
	Declarations []Node
}

func (*Vars) irNode() {}

// If is the primary clause of a conditional statement.
type If struct {
	Test Node
	Body []Node
}

func (*If) irNode() {}

// ElseIf is a chained "else if" clause. It only appears inside a Container
// alongside the If node it follows.
type ElseIf struct {
	Test Node
	Body []Node
}

func (*ElseIf) irNode() {}

// Else is a terminal "else" clause.
type Else struct {
	Body []Node
}

func (*Else) irNode() {}

// For is a classic three-clause loop. Any of Init, Test, Update may be nil.
type For struct {
	Init   Node
	Test   Node
	Update Node
	Body   []Node
}

func (*For) irNode() {}

// While is a while loop.
type While struct {
	Test Node
	Body []Node
}

func (*While) irNode() {}

// Container holds an ordered, appendable sequence of children. It groups
// sibling statements of a multi-statement program and if/else-if/else chains.
type Container struct {
	Children []Node
}

func (*Container) irNode() {}

// Append adds a child to the container, preserving insertion order.
func (c *Container) Append(n Node) {
	c.Children = append(c.Children, n)
}

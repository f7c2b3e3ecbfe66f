// Package convert turns parse trees of a restricted JavaScript subset into
// builder-neutral IR.
//
// The converter is a pure, stateless, exhaustive dispatch over node kinds
// with a closed-world default: any kind outside the supported set rejects.
// Rejection is the only failure mode; it carries no position or reason and
// propagates unchanged, so a composite node never yields partial IR.
package convert

import (
	"errors"

	"github.com/limnlang/limn/internal/estree"
	"github.com/limnlang/limn/internal/ir"
)

// ErrUnsupported is the single rejection sentinel. A subtree that uses any
// construct outside the supported subset converts to this error and nothing
// else; callers wanting finer-grained diagnostics must re-locate the
// offending construct in the original tree themselves.
var ErrUnsupported = errors.New("unsupported construct")

// DefaultMaxDepth bounds recursion over the input tree. Template programs
// nest shallowly; anything deeper is adversarial input that would otherwise
// exhaust the stack.
const DefaultMaxDepth = 512

// TagNonstandard is the only tag accepted on tagged template expressions.
const TagNonstandard = "$nonstandard"

// Converter maps parse-tree nodes to IR through an injected Builder.
//
// A Converter holds no state across calls and is safe for concurrent use
// provided the Builder is reentrant.
type Converter struct {
	builder  ir.Builder
	maxDepth int
}

// Option configures a Converter.
type Option func(*Converter)

// WithMaxDepth overrides the recursion depth bound.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		c.maxDepth = depth
	}
}

// New creates a Converter around the given Builder.
func New(builder ir.Builder, opts ...Option) *Converter {
	c := &Converter{builder: builder, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert converts a single parse-tree node.
//
// Every supported kind yields exactly one IR node except block statements,
// which yield their converted statement list unwrapped; callers are
// responsible for any block semantics. A nil node, an unsupported kind, or a
// rejecting child all yield ErrUnsupported.
func (c *Converter) Convert(n *estree.Node) ([]ir.Node, error) {
	return c.convert(n, 0)
}

// ConvertList converts sibling nodes left to right, stopping at the first
// rejection. Each sibling must convert to exactly one IR node.
func (c *Converter) ConvertList(nodes []*estree.Node) ([]ir.Node, error) {
	return c.each(nodes, 0)
}

func (c *Converter) convert(n *estree.Node, depth int) ([]ir.Node, error) {
	if n == nil || depth > c.maxDepth {
		return nil, ErrUnsupported
	}

	switch n.Type {
	case estree.TypeArrayExpression:
		elements, err := c.each(n.Elements, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Array(elements)), nil

	case estree.TypeAssignmentExpression:
		left, err := c.single(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := c.single(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Assignment(n.Operator, left, right)), nil

	case estree.TypeBinaryExpression:
		left, err := c.single(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := c.single(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Binary(n.Operator, left, right)), nil

	case estree.TypeLogicalExpression:
		left, err := c.single(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := c.single(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Logical(n.Operator, left, right)), nil

	case estree.TypeBlockStatement:
		// Blocks convert to their statement list, unwrapped.
		return c.statements(n.Body, depth+1)

	case estree.TypeCallExpression:
		callee, err := c.single(n.Callee, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := c.each(n.Arguments, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Call(callee, args)), nil

	case estree.TypeNewExpression:
		callee, err := c.single(n.Callee, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := c.each(n.Arguments, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.New(callee, args)), nil

	case estree.TypeConditionalExpression:
		test, err := c.single(n.Test, depth+1)
		if err != nil {
			return nil, err
		}
		consequent, err := c.single(n.Consequent, depth+1)
		if err != nil {
			return nil, err
		}
		alternate, err := c.single(n.Alternate, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Conditional(test, consequent, alternate)), nil

	case estree.TypeExpressionStatement:
		// Transparent: the statement is its expression.
		return c.convert(n.Expression, depth+1)

	case estree.TypeFunctionDeclaration, estree.TypeFunctionExpression:
		var name ir.Node
		if n.ID != nil {
			var err error
			name, err = c.single(n.ID, depth+1)
			if err != nil {
				return nil, err
			}
		}
		params, err := c.each(n.Params, depth+1)
		if err != nil {
			return nil, err
		}
		body, err := c.convert(bodyNode(n), depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Function(name, params, body)), nil

	case estree.TypeIdentifier:
		return one(c.builder.Ident(n.Name)), nil

	case estree.TypeLiteral:
		if n.Regex != nil {
			return one(c.builder.Literal(ir.RegExp{Pattern: n.Regex.Pattern, Flags: n.Regex.Flags})), nil
		}
		return one(c.builder.Literal(n.Value)), nil

	case estree.TypeTaggedTemplateExpression:
		if n.Tag == nil || n.Tag.Type != estree.TypeIdentifier || n.Tag.Name != TagNonstandard {
			return nil, ErrUnsupported
		}
		tmpl, err := c.single(n.Quasi, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Nonstandard(tmpl)), nil

	case estree.TypeTemplateLiteral:
		segments := make([]string, len(n.Quasis))
		for i, quasi := range n.Quasis {
			if quasi != nil && quasi.ValueNode != nil {
				segments[i] = quasi.ValueNode.Cooked
			}
		}
		expressions, err := c.each(n.Expressions, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Template(segments, expressions)), nil

	case estree.TypeMemberExpression:
		object, err := c.single(n.Object, depth+1)
		if err != nil {
			return nil, err
		}
		property, err := c.single(n.Property, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Member(object, property, n.Computed)), nil

	case estree.TypeProgram:
		if len(n.Body) == 1 {
			// Single-statement programs elide the container.
			return c.convert(n.Body[0], depth+1)
		}
		container := c.builder.Container()
		for _, stmt := range n.Body {
			converted, err := c.convert(stmt, depth+1)
			if err != nil {
				return nil, err
			}
			for _, child := range converted {
				container.Append(child)
			}
		}
		return one(container), nil

	case estree.TypeObjectExpression:
		properties, err := c.each(n.Properties, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Object(properties)), nil

	case estree.TypeProperty:
		if n.Kind == estree.PropertyKindGet || n.Kind == estree.PropertyKindSet {
			return nil, ErrUnsupported
		}
		key, err := c.single(n.Key, depth+1)
		if err != nil {
			return nil, err
		}
		// Normalize non-computed identifier keys to string literals so that
		// {a: 1} and {"a": 1} share one key representation.
		if !n.Computed {
			if name, ok := c.builder.IdentName(key); ok {
				key = c.builder.Literal(name)
			}
		}
		value, err := c.single(n.ValueNode, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Property(key, value, n.Computed)), nil

	case estree.TypeReturnStatement:
		if n.Argument == nil {
			return one(c.builder.Return(nil)), nil
		}
		argument, err := c.single(n.Argument, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Return(argument)), nil

	case estree.TypeThisExpression:
		return one(c.builder.This()), nil

	case estree.TypeUnaryExpression:
		operand, err := c.single(n.Argument, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Unary(n.Operator, operand, n.Prefix)), nil

	case estree.TypeUpdateExpression:
		operand, err := c.single(n.Argument, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Update(n.Operator, operand, n.Prefix)), nil

	case estree.TypeVariableDeclarator:
		id, err := c.single(n.ID, depth+1)
		if err != nil {
			return nil, err
		}
		var init ir.Node
		if n.Init != nil {
			init, err = c.single(n.Init, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return one(c.builder.Declarator(id, init)), nil

	case estree.TypeVariableDeclaration:
		declarations, err := c.each(n.Declarations, depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.Vars(n.Kind, declarations)), nil

	case estree.TypeIfStatement:
		return c.convertIf(n, depth)

	case estree.TypeForStatement:
		init, err := c.optional(n.Init, depth+1)
		if err != nil {
			return nil, err
		}
		test, err := c.optional(n.Test, depth+1)
		if err != nil {
			return nil, err
		}
		update, err := c.optional(n.Update, depth+1)
		if err != nil {
			return nil, err
		}
		body, err := c.convert(bodyNode(n), depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.For(init, test, update, body)), nil

	case estree.TypeWhileStatement:
		test, err := c.single(n.Test, depth+1)
		if err != nil {
			return nil, err
		}
		body, err := c.convert(bodyNode(n), depth+1)
		if err != nil {
			return nil, err
		}
		return one(c.builder.While(test, body)), nil

	default:
		return nil, ErrUnsupported
	}
}

// convertIf reconstructs an if/else-if/else chain.
//
// A lone if converts to a single If node. As soon as there is an alternate,
// the whole statement becomes a container: the If node first, then one
// ElseIf node per chained "else if", then an Else node for a terminal else.
func (c *Converter) convertIf(n *estree.Node, depth int) ([]ir.Node, error) {
	test, err := c.single(n.Test, depth+1)
	if err != nil {
		return nil, err
	}
	body, err := c.convert(n.Consequent, depth+1)
	if err != nil {
		return nil, err
	}
	ifNode := c.builder.If(test, body)

	if n.Alternate == nil {
		return one(ifNode), nil
	}

	container := c.builder.Container()
	container.Append(ifNode)

	alternate := n.Alternate
	for alternate != nil {
		if alternate.Type == estree.TypeIfStatement {
			chainTest, err := c.single(alternate.Test, depth+1)
			if err != nil {
				return nil, err
			}
			chainBody, err := c.convert(alternate.Consequent, depth+1)
			if err != nil {
				return nil, err
			}
			container.Append(c.builder.ElseIf(chainTest, chainBody))
			alternate = alternate.Alternate
			continue
		}

		elseBody, err := c.convert(alternate, depth+1)
		if err != nil {
			return nil, err
		}
		container.Append(c.builder.Else(elseBody))
		alternate = nil
	}

	return one(container), nil
}

// one wraps a node in the single-element sequence the dispatch returns.
func one(n ir.Node) []ir.Node {
	return []ir.Node{n}
}

// single converts a node that must yield exactly one IR node.
func (c *Converter) single(n *estree.Node, depth int) (ir.Node, error) {
	converted, err := c.convert(n, depth)
	if err != nil {
		return nil, err
	}
	if len(converted) != 1 {
		return nil, ErrUnsupported
	}
	return converted[0], nil
}

// optional converts a node that may be absent; absence is preserved as nil.
func (c *Converter) optional(n *estree.Node, depth int) (ir.Node, error) {
	if n == nil {
		return nil, nil
	}
	return c.single(n, depth)
}

// each converts siblings left to right, one IR node per sibling,
// short-circuiting at the first rejection.
func (c *Converter) each(nodes []*estree.Node, depth int) ([]ir.Node, error) {
	converted := make([]ir.Node, 0, len(nodes))
	for _, n := range nodes {
		node, err := c.single(n, depth)
		if err != nil {
			return nil, err
		}
		converted = append(converted, node)
	}
	return converted, nil
}

// statements converts a statement list, splicing nested sequences so that
// blocks flatten into their surroundings.
func (c *Converter) statements(nodes []*estree.Node, depth int) ([]ir.Node, error) {
	var converted []ir.Node
	for _, n := range nodes {
		seq, err := c.convert(n, depth)
		if err != nil {
			return nil, err
		}
		converted = append(converted, seq...)
	}
	return converted, nil
}

// bodyNode returns the normalized single-statement body of loops and
// functions. The decoder stores those bodies as one-element lists.
func bodyNode(n *estree.Node) *estree.Node {
	if len(n.Body) == 1 {
		return n.Body[0]
	}
	return nil
}

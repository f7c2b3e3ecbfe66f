package estree

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node type tags for the kinds the converter understands. Documents may
// contain other tags; those decode fine and are rejected during conversion.
const (
	TypeProgram                  = "Program"
	TypeExpressionStatement      = "ExpressionStatement"
	TypeBlockStatement           = "BlockStatement"
	TypeArrayExpression          = "ArrayExpression"
	TypeAssignmentExpression     = "AssignmentExpression"
	TypeBinaryExpression         = "BinaryExpression"
	TypeLogicalExpression        = "LogicalExpression"
	TypeCallExpression           = "CallExpression"
	TypeNewExpression            = "NewExpression"
	TypeConditionalExpression    = "ConditionalExpression"
	TypeFunctionDeclaration      = "FunctionDeclaration"
	TypeFunctionExpression       = "FunctionExpression"
	TypeIdentifier               = "Identifier"
	TypeLiteral                  = "Literal"
	TypeTaggedTemplateExpression = "TaggedTemplateExpression"
	TypeTemplateLiteral          = "TemplateLiteral"
	TypeTemplateElement          = "TemplateElement"
	TypeMemberExpression         = "MemberExpression"
	TypeObjectExpression         = "ObjectExpression"
	TypeProperty                 = "Property"
	TypeReturnStatement          = "ReturnStatement"
	TypeThisExpression           = "ThisExpression"
	TypeUnaryExpression          = "UnaryExpression"
	TypeUpdateExpression         = "UpdateExpression"
	TypeVariableDeclaration      = "VariableDeclaration"
	TypeVariableDeclarator       = "VariableDeclarator"
	TypeIfStatement              = "IfStatement"
	TypeForStatement             = "ForStatement"
	TypeWhileStatement           = "WhileStatement"
)

// Property kinds. Accessor properties are never supported downstream.
const (
	PropertyKindInit = "init"
	PropertyKindGet  = "get"
	PropertyKindSet  = "set"
)

// RegexLit carries the source pattern and flags of a regex literal.
type RegexLit struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// Node is a single parse-tree node: a tag plus the superset of kind-specific
// children used by the supported grammar. Fields not applicable to a node's
// kind are zero.
type Node struct {
	Type string

	// Identifier
	Name string

	// Literal. Value holds primitive literal values; ValueNode holds
	// object-shaped "value" children (a Property's value expression, a
	// TemplateElement's {raw, cooked} pair).
	Value     any
	ValueNode *Node
	Raw       string
	Cooked    string
	Regex     *RegexLit

	// Operators and shape flags
	Operator string
	Prefix   bool
	Computed bool
	Kind     string // property kind (init/get/set) or declaration keyword

	// Expression children
	Left      *Node
	Right     *Node
	Argument  *Node
	Callee    *Node
	Arguments []*Node
	Test      *Node
	Alternate *Node
	Object    *Node
	Property  *Node
	Elements  []*Node
	Key       *Node

	// Statement children. Body is normalized to a list: kinds whose source
	// "body" is a single node decode as a one-element list.
	Body       []*Node
	Consequent *Node
	Expression *Node
	Properties []*Node

	// Functions and declarations
	ID           *Node
	Params       []*Node
	Init         *Node
	Update       *Node
	Declarations []*Node

	// Templates
	Tag         *Node
	Quasi       *Node
	Quasis      []*Node
	Expressions []*Node
}

// nodeJSON mirrors Node for decoding. Fields whose JSON shape varies across
// node kinds are captured raw and normalized afterwards.
type nodeJSON struct {
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	Value        json.RawMessage `json:"value"`
	Raw          string          `json:"raw"`
	Cooked       string          `json:"cooked"`
	Regex        *RegexLit       `json:"regex"`
	Operator     string          `json:"operator"`
	Prefix       bool            `json:"prefix"`
	Computed     bool            `json:"computed"`
	Kind         string          `json:"kind"`
	Left         *Node           `json:"left"`
	Right        *Node           `json:"right"`
	Argument     *Node           `json:"argument"`
	Callee       *Node           `json:"callee"`
	Arguments    []*Node         `json:"arguments"`
	Test         *Node           `json:"test"`
	Alternate    *Node           `json:"alternate"`
	Object       *Node           `json:"object"`
	Property     *Node           `json:"property"`
	Elements     []*Node         `json:"elements"`
	Key          *Node           `json:"key"`
	Body         json.RawMessage `json:"body"`
	Consequent   json.RawMessage `json:"consequent"`
	Expression   json.RawMessage `json:"expression"`
	Properties   []*Node         `json:"properties"`
	ID           *Node           `json:"id"`
	Params       []*Node         `json:"params"`
	Init         *Node           `json:"init"`
	Update       *Node           `json:"update"`
	Declarations []*Node         `json:"declarations"`
	Tag          *Node           `json:"tag"`
	Quasi        *Node           `json:"quasi"`
	Quasis       []*Node         `json:"quasis"`
	Expressions  []*Node         `json:"expressions"`
}

// UnmarshalJSON decodes a node, normalizing the shape-varying fields.
func (n *Node) UnmarshalJSON(data []byte) error {
	var aux nodeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*n = Node{
		Type:         aux.Type,
		Name:         aux.Name,
		Raw:          aux.Raw,
		Cooked:       aux.Cooked,
		Regex:        aux.Regex,
		Operator:     aux.Operator,
		Prefix:       aux.Prefix,
		Computed:     aux.Computed,
		Kind:         aux.Kind,
		Left:         aux.Left,
		Right:        aux.Right,
		Argument:     aux.Argument,
		Callee:       aux.Callee,
		Arguments:    aux.Arguments,
		Test:         aux.Test,
		Alternate:    aux.Alternate,
		Object:       aux.Object,
		Property:     aux.Property,
		Elements:     aux.Elements,
		Key:          aux.Key,
		Properties:   aux.Properties,
		ID:           aux.ID,
		Params:       aux.Params,
		Init:         aux.Init,
		Update:       aux.Update,
		Declarations: aux.Declarations,
		Tag:          aux.Tag,
		Quasi:        aux.Quasi,
		Quasis:       aux.Quasis,
		Expressions:  aux.Expressions,
	}

	// "value" is a primitive on Literal, a node on Property, and a
	// {raw, cooked} pair on TemplateElement.
	if len(aux.Value) > 0 {
		if child := tryNode(aux.Value); child != nil {
			n.ValueNode = child
		} else {
			var prim any
			if err := json.Unmarshal(aux.Value, &prim); err != nil {
				return fmt.Errorf("node %q: decoding value: %w", aux.Type, err)
			}
			n.Value = prim
		}
	}

	// "body" is a list on Program and BlockStatement, a single node on
	// functions and loops. Normalize to a list.
	if len(aux.Body) > 0 {
		if list, ok := tryNodeList(aux.Body); ok {
			n.Body = list
		} else if child := tryNode(aux.Body); child != nil {
			n.Body = []*Node{child}
		}
	}

	// "consequent" is a node on IfStatement and ConditionalExpression but a
	// list on SwitchCase. Lists are dropped; switch statements are not part
	// of the supported subset and reject on their tag.
	if len(aux.Consequent) > 0 {
		n.Consequent = tryNode(aux.Consequent)
	}

	// "expression" is a node on ExpressionStatement but a bare boolean on
	// arrow functions. Non-node values are dropped.
	if len(aux.Expression) > 0 {
		n.Expression = tryNode(aux.Expression)
	}

	return nil
}

// tryNode decodes raw as a node, returning nil if it is not a JSON object.
func tryNode(raw json.RawMessage) *Node {
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var n Node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}

// tryNodeList decodes raw as a node list, reporting whether raw was an array.
func tryNodeList(raw json.RawMessage) ([]*Node, bool) {
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var list []*Node
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// Decode parses a single ESTree JSON document.
func Decode(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decoding parse tree: %w", err)
	}
	return &n, nil
}

// DecodeFile reads and parses an ESTree JSON document from disk.
func DecodeFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parse tree: %w", err)
	}
	return Decode(data)
}

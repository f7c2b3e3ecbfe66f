package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Kind tags used by the JSON encoding, one per node type.
const (
	KindArray       = "array"
	KindAssignment  = "assignment"
	KindBinary      = "binary"
	KindLogical     = "logical"
	KindCall        = "call"
	KindNew         = "new"
	KindConditional = "conditional"
	KindFunction    = "function"
	KindIdent       = "identifier"
	KindLiteral     = "literal"
	KindTemplate    = "template"
	KindMember      = "member"
	KindContainer   = "container"
	KindObject      = "object"
	KindProperty    = "property"
	KindReturn      = "return"
	KindThis        = "this"
	KindUnary       = "unary"
	KindUpdate      = "update"
	KindDeclarator  = "declarator"
	KindVars        = "vars"
	KindIf          = "if"
	KindElseIf      = "elseif"
	KindElse        = "else"
	KindFor         = "for"
	KindWhile       = "while"
)

// Encode produces the deterministic JSON form of an IR node.
//
// The encoding is canonical so that the same IR always yields the same bytes:
// object keys are sorted, strings are NFC normalized at the serialization
// boundary, HTML characters are not escaped, and numbers never use exponent
// notation. Golden files and registry payloads rely on this stability.
func Encode(n Node) ([]byte, error) {
	v, err := nodeValue(n)
	if err != nil {
		return nil, err
	}
	return marshalCanonical(v)
}

// EncodeIndent produces the canonical encoding re-indented for humans.
func EncodeIndent(n Node) ([]byte, error) {
	data, err := Encode(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// nodeValue lowers a node to plain JSON-encodable values. Nil nodes lower to
// nil so that absent children stay visible as explicit nulls.
func nodeValue(n Node) (any, error) {
	if n == nil {
		return nil, nil
	}

	switch node := n.(type) {
	case *Ident:
		return map[string]any{"kind": KindIdent, "name": node.Name}, nil
	case *Literal:
		return map[string]any{"kind": KindLiteral, "value": node.Value}, nil
	case *Array:
		elems, err := listValue(node.Elements)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindArray, "elements": elems}, nil
	case *Assignment:
		return operatorValue(KindAssignment, node.Operator, node.Left, node.Right)
	case *Binary:
		return operatorValue(KindBinary, node.Operator, node.Left, node.Right)
	case *Logical:
		return operatorValue(KindLogical, node.Operator, node.Left, node.Right)
	case *Call:
		return calleeValue(KindCall, node.Callee, node.Arguments)
	case *New:
		return calleeValue(KindNew, node.Callee, node.Arguments)
	case *Conditional:
		test, err := nodeValue(node.Test)
		if err != nil {
			return nil, err
		}
		cons, err := nodeValue(node.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := nodeValue(node.Alternate)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindConditional, "test": test, "consequent": cons, "alternate": alt}, nil
	case *Function:
		name, err := nodeValue(node.Name)
		if err != nil {
			return nil, err
		}
		params, err := listValue(node.Params)
		if err != nil {
			return nil, err
		}
		body, err := listValue(node.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindFunction, "name": name, "params": params, "body": body}, nil
	case *Template:
		exprs, err := listValue(node.Expressions)
		if err != nil {
			return nil, err
		}
		segments := make([]any, len(node.Segments))
		for i, s := range node.Segments {
			segments[i] = s
		}
		return map[string]any{
			"kind":        KindTemplate,
			"segments":    segments,
			"expressions": exprs,
			"nonstandard": node.Nonstandard,
		}, nil
	case *Member:
		obj, err := nodeValue(node.Object)
		if err != nil {
			return nil, err
		}
		prop, err := nodeValue(node.Property)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindMember, "object": obj, "property": prop, "computed": node.Computed}, nil
	case *Object:
		props, err := listValue(node.Properties)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindObject, "properties": props}, nil
	case *Property:
		key, err := nodeValue(node.Key)
		if err != nil {
			return nil, err
		}
		value, err := nodeValue(node.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindProperty, "key": key, "value": value, "computed": node.Computed}, nil
	case *Return:
		arg, err := nodeValue(node.Argument)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindReturn, "argument": arg}, nil
	case *This:
		return map[string]any{"kind": KindThis}, nil
	case *Unary:
		return operandValue(KindUnary, node.Operator, node.Operand, node.Prefix)
	case *Update:
		return operandValue(KindUpdate, node.Operator, node.Operand, node.Prefix)
	case *Declarator:
		id, err := nodeValue(node.ID)
		if err != nil {
			return nil, err
		}
		init, err := nodeValue(node.Init)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindDeclarator, "id": id, "init": init}, nil
	case *Vars:
		decls, err := listValue(node.Declarations)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindVars, "declaration": node.Kind, "declarations": decls}, nil
	case *If:
		return clauseValue(KindIf, node.Test, node.Body)
	case *ElseIf:
		return clauseValue(KindElseIf, node.Test, node.Body)
	case *Else:
		body, err := listValue(node.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindElse, "body": body}, nil
	case *For:
		init, err := nodeValue(node.Init)
		if err != nil {
			return nil, err
		}
		test, err := nodeValue(node.Test)
		if err != nil {
			return nil, err
		}
		update, err := nodeValue(node.Update)
		if err != nil {
			return nil, err
		}
		body, err := listValue(node.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindFor, "init": init, "test": test, "update": update, "body": body}, nil
	case *While:
		return clauseValue(KindWhile, node.Test, node.Body)
	case *Container:
		children, err := listValue(node.Children)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindContainer, "children": children}, nil
	default:
		return nil, fmt.Errorf("unknown IR node type %T", n)
	}
}

func listValue(nodes []Node) ([]any, error) {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		v, err := nodeValue(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func operatorValue(kind, operator string, left, right Node) (any, error) {
	l, err := nodeValue(left)
	if err != nil {
		return nil, err
	}
	r, err := nodeValue(right)
	if err != nil {
		return nil, err
	}
	return map[string]any{"kind": kind, "operator": operator, "left": l, "right": r}, nil
}

func calleeValue(kind string, callee Node, arguments []Node) (any, error) {
	c, err := nodeValue(callee)
	if err != nil {
		return nil, err
	}
	args, err := listValue(arguments)
	if err != nil {
		return nil, err
	}
	return map[string]any{"kind": kind, "callee": c, "arguments": args}, nil
}

func operandValue(kind, operator string, operand Node, prefix bool) (any, error) {
	op, err := nodeValue(operand)
	if err != nil {
		return nil, err
	}
	return map[string]any{"kind": kind, "operator": operator, "operand": op, "prefix": prefix}, nil
}

func clauseValue(kind string, test Node, body []Node) (any, error) {
	t, err := nodeValue(test)
	if err != nil {
		return nil, err
	}
	b, err := listValue(body)
	if err != nil {
		return nil, err
	}
	return map[string]any{"kind": kind, "test": t, "body": b}, nil
}

// marshalCanonical serializes lowered values with sorted keys and stable
// string/number formatting.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case string:
		return marshalCanonicalString(val)
	case float64:
		// 'f' formatting keeps numbers exponent-free so goldens stay readable.
		return []byte(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case int:
		return []byte(strconv.Itoa(val)), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case RegExp:
		return marshalCanonical(map[string]any{
			"regexp":  true,
			"pattern": val.Pattern,
			"flags":   val.Flags,
		})
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported value in IR encoding: %T", v)
	}
}

// marshalCanonicalString NFC-normalizes at the serialization boundary and
// leaves <, >, and & unescaped.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

package convert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limnlang/limn/internal/estree"
	"github.com/limnlang/limn/internal/ir"
	"github.com/limnlang/limn/internal/testutil"
)

// mustDecode parses an ESTree JSON document and fails the test on error.
func mustDecode(t *testing.T, source string) *estree.Node {
	t.Helper()
	tree, err := estree.Decode([]byte(source))
	require.NoError(t, err)
	return tree
}

// convertOne converts a document that must yield exactly one IR node.
func convertOne(t *testing.T, source string) ir.Node {
	t.Helper()
	converter := New(ir.NewNodeBuilder())
	nodes, err := converter.Convert(mustDecode(t, source))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	return nodes[0]
}

// mustReject asserts that the document rejects as a whole.
func mustReject(t *testing.T, source string) {
	t.Helper()
	converter := New(ir.NewNodeBuilder())
	nodes, err := converter.Convert(mustDecode(t, source))
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Nil(t, nodes)
}

// exprProgram wraps an expression JSON fragment in a one-statement program.
func exprProgram(expr string) string {
	return `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` + expr + `}]}`
}

func ident(name string) string {
	return fmt.Sprintf(`{"type":"Identifier","name":%q}`, name)
}

func numberLit(raw string) string {
	return fmt.Sprintf(`{"type":"Literal","value":%s,"raw":%q}`, raw, raw)
}

func TestConvert_NilNode(t *testing.T) {
	converter := New(ir.NewNodeBuilder())
	_, err := converter.Convert(nil)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestConvert_UnknownKindRejects(t *testing.T) {
	mustReject(t, `{"type":"Program","body":[{"type":"DebuggerStatement"}]}`)
	mustReject(t, `{"type":"Program","body":[{"type":"ThrowStatement","argument":{"type":"Identifier","name":"e"}}]}`)
	mustReject(t, exprProgram(`{"type":"ArrowFunctionExpression","params":[],"body":`+ident("x")+`,"expression":true}`))
}

func TestConvert_Identifier(t *testing.T) {
	node := convertOne(t, exprProgram(ident("a")))
	assert.Equal(t, &ir.Ident{Name: "a"}, node)
}

func TestConvert_This(t *testing.T) {
	node := convertOne(t, exprProgram(`{"type":"ThisExpression"}`))
	assert.Equal(t, &ir.This{}, node)
}

func TestConvert_BinaryExpression(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"BinaryExpression","operator":"+","left":`+ident("a")+`,"right":`+ident("b")+`}`))

	require.IsType(t, &ir.Binary{}, node)
	binary := node.(*ir.Binary)
	assert.Equal(t, "+", binary.Operator)
	assert.Equal(t, &ir.Ident{Name: "a"}, binary.Left)
	assert.Equal(t, &ir.Ident{Name: "b"}, binary.Right)
}

func TestConvert_LogicalExpressionIsDistinctKind(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"LogicalExpression","operator":"&&","left":`+ident("a")+`,"right":`+ident("b")+`}`))

	require.IsType(t, &ir.Logical{}, node)
	assert.Equal(t, "&&", node.(*ir.Logical).Operator)
}

func TestConvert_AssignmentPreservesOperator(t *testing.T) {
	for _, op := range []string{"=", "+=", "-=", "*="} {
		node := convertOne(t, exprProgram(
			`{"type":"AssignmentExpression","operator":"`+op+`","left":`+ident("a")+`,"right":`+numberLit("1")+`}`))
		require.IsType(t, &ir.Assignment{}, node)
		assert.Equal(t, op, node.(*ir.Assignment).Operator)
	}
}

func TestConvert_AssignmentRejectingOperandPoisons(t *testing.T) {
	mustReject(t, exprProgram(
		`{"type":"AssignmentExpression","operator":"=","left":`+ident("a")+`,"right":{"type":"YieldExpression","argument":null}}`))
}

func TestConvert_ArrayLiteral(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"ArrayExpression","elements":[`+numberLit("1")+`,`+ident("x")+`]}`))

	require.IsType(t, &ir.Array{}, node)
	arr := node.(*ir.Array)
	require.Len(t, arr.Elements, 2)
	assert.Equal(t, &ir.Literal{Value: float64(1)}, arr.Elements[0])
	assert.Equal(t, &ir.Ident{Name: "x"}, arr.Elements[1])
}

func TestConvert_ArrayHoleRejects(t *testing.T) {
	// Elisions arrive as null elements.
	mustReject(t, exprProgram(`{"type":"ArrayExpression","elements":[`+numberLit("1")+`,null]}`))
}

func TestConvert_ArrayShortCircuitsOnFirstRejection(t *testing.T) {
	recorder := testutil.NewRecordingBuilder()
	converter := New(recorder)

	tree := mustDecode(t, exprProgram(
		`{"type":"ArrayExpression","elements":[`+ident("a")+`,{"type":"YieldExpression"},`+ident("z")+`]}`))
	_, err := converter.Convert(tree)
	require.ErrorIs(t, err, ErrUnsupported)

	// The element after the rejecting one is never converted.
	assert.Contains(t, recorder.Calls, "identifier:a")
	assert.NotContains(t, recorder.Calls, "identifier:z")
	assert.NotContains(t, recorder.Calls, "array")
}

func TestConvertList_ShortCircuits(t *testing.T) {
	recorder := testutil.NewRecordingBuilder()
	converter := New(recorder)

	nodes := []*estree.Node{
		mustDecode(t, ident("a")),
		mustDecode(t, `{"type":"YieldExpression"}`),
		mustDecode(t, ident("z")),
	}
	_, err := converter.ConvertList(nodes)
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, []string{"identifier:a"}, recorder.Calls)
}

func TestConvert_CallExpression(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"CallExpression","callee":`+ident("f")+`,"arguments":[`+ident("x")+`,`+numberLit("2")+`]}`))

	require.IsType(t, &ir.Call{}, node)
	call := node.(*ir.Call)
	assert.Equal(t, &ir.Ident{Name: "f"}, call.Callee)
	require.Len(t, call.Arguments, 2)
}

func TestConvert_NewExpressionIsDistinctKind(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"NewExpression","callee":`+ident("F")+`,"arguments":[]}`))
	require.IsType(t, &ir.New{}, node)
}

func TestConvert_ConditionalExpression(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"ConditionalExpression","test":`+ident("c")+`,"consequent":`+ident("a")+`,"alternate":`+ident("b")+`}`))

	require.IsType(t, &ir.Conditional{}, node)
	cond := node.(*ir.Conditional)
	assert.Equal(t, &ir.Ident{Name: "c"}, cond.Test)
	assert.Equal(t, &ir.Ident{Name: "a"}, cond.Consequent)
	assert.Equal(t, &ir.Ident{Name: "b"}, cond.Alternate)
}

func TestConvert_MemberExpressionComputedFlag(t *testing.T) {
	dot := convertOne(t, exprProgram(
		`{"type":"MemberExpression","object":`+ident("a")+`,"property":`+ident("b")+`,"computed":false}`))
	require.IsType(t, &ir.Member{}, dot)
	assert.False(t, dot.(*ir.Member).Computed)

	bracket := convertOne(t, exprProgram(
		`{"type":"MemberExpression","object":`+ident("a")+`,"property":{"type":"Literal","value":"b","raw":"\"b\""},"computed":true}`))
	require.IsType(t, &ir.Member{}, bracket)
	assert.True(t, bracket.(*ir.Member).Computed)
}

func TestConvert_UnaryExpression(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"UnaryExpression","operator":"!","prefix":true,"argument":`+ident("a")+`}`))

	require.IsType(t, &ir.Unary{}, node)
	unary := node.(*ir.Unary)
	assert.Equal(t, "!", unary.Operator)
	assert.True(t, unary.Prefix)
	assert.Equal(t, &ir.Ident{Name: "a"}, unary.Operand)
}

func TestConvert_UpdateExpressionPrefixAndPostfix(t *testing.T) {
	prefix := convertOne(t, exprProgram(
		`{"type":"UpdateExpression","operator":"++","prefix":true,"argument":`+ident("i")+`}`))
	require.IsType(t, &ir.Update{}, prefix)
	assert.True(t, prefix.(*ir.Update).Prefix)

	postfix := convertOne(t, exprProgram(
		`{"type":"UpdateExpression","operator":"--","prefix":false,"argument":`+ident("i")+`}`))
	require.IsType(t, &ir.Update{}, postfix)
	assert.False(t, postfix.(*ir.Update).Prefix)
	assert.Equal(t, "--", postfix.(*ir.Update).Operator)
}

func TestConvert_Literals(t *testing.T) {
	assert.Equal(t, &ir.Literal{Value: "hi"},
		convertOne(t, exprProgram(`{"type":"Literal","value":"hi","raw":"\"hi\""}`)))
	assert.Equal(t, &ir.Literal{Value: float64(42)},
		convertOne(t, exprProgram(numberLit("42"))))
	assert.Equal(t, &ir.Literal{Value: true},
		convertOne(t, exprProgram(`{"type":"Literal","value":true,"raw":"true"}`)))
	assert.Equal(t, &ir.Literal{Value: nil},
		convertOne(t, exprProgram(`{"type":"Literal","value":null,"raw":"null"}`)))
}

func TestConvert_RegexLiteral(t *testing.T) {
	node := convertOne(t, exprProgram(
		`{"type":"Literal","raw":"/ab+c/gi","regex":{"pattern":"ab+c","flags":"gi"}}`))

	require.IsType(t, &ir.Literal{}, node)
	value, ok := node.(*ir.Literal).Value.(ir.RegExp)
	require.True(t, ok, "literal value must be a regular expression")
	assert.Equal(t, "ab+c", value.Pattern)
	assert.Equal(t, "gi", value.Flags)
}

func TestConvert_TemplateLiteral(t *testing.T) {
	node := convertOne(t, exprProgram(`{
		"type": "TemplateLiteral",
		"quasis": [
			{"type":"TemplateElement","value":{"raw":"a ","cooked":"a "},"tail":false},
			{"type":"TemplateElement","value":{"raw":" z","cooked":" z"},"tail":true}
		],
		"expressions": [`+ident("x")+`]
	}`))

	require.IsType(t, &ir.Template{}, node)
	tmpl := node.(*ir.Template)
	assert.Equal(t, []string{"a ", " z"}, tmpl.Segments)
	require.Len(t, tmpl.Expressions, 1)
	assert.False(t, tmpl.Nonstandard)
}

func TestConvert_TemplateRejectingInterpolationPoisons(t *testing.T) {
	mustReject(t, exprProgram(`{
		"type": "TemplateLiteral",
		"quasis": [
			{"type":"TemplateElement","value":{"raw":"a","cooked":"a"},"tail":false},
			{"type":"TemplateElement","value":{"raw":"","cooked":""},"tail":true}
		],
		"expressions": [{"type":"AwaitExpression","argument":`+ident("p")+`}]
	}`))
}

func taggedTemplate(tagName string) string {
	return `{
		"type": "TaggedTemplateExpression",
		"tag": {"type":"Identifier","name":"` + tagName + `"},
		"quasi": {
			"type": "TemplateLiteral",
			"quasis": [{"type":"TemplateElement","value":{"raw":"x","cooked":"x"},"tail":true}],
			"expressions": []
		}
	}`
}

func TestConvert_NonstandardTaggedTemplate(t *testing.T) {
	node := convertOne(t, exprProgram(taggedTemplate("$nonstandard")))

	require.IsType(t, &ir.Template{}, node)
	tmpl := node.(*ir.Template)
	assert.True(t, tmpl.Nonstandard)
	assert.Equal(t, []string{"x"}, tmpl.Segments)
}

func TestConvert_NonstandardTemplateRejectingInterpolationPoisons(t *testing.T) {
	// The accepted tag does not rescue a rejecting interpolation.
	mustReject(t, exprProgram(`{
		"type": "TaggedTemplateExpression",
		"tag": {"type":"Identifier","name":"$nonstandard"},
		"quasi": {
			"type": "TemplateLiteral",
			"quasis": [
				{"type":"TemplateElement","value":{"raw":"a","cooked":"a"},"tail":false},
				{"type":"TemplateElement","value":{"raw":"","cooked":""},"tail":true}
			],
			"expressions": [{"type":"AwaitExpression","argument":`+ident("p")+`}]
		}
	}`))
}

func TestConvert_OtherTagRejects(t *testing.T) {
	mustReject(t, exprProgram(taggedTemplate("html")))
	mustReject(t, exprProgram(taggedTemplate("nonstandard")))

	// A non-identifier tag rejects too.
	mustReject(t, exprProgram(`{
		"type": "TaggedTemplateExpression",
		"tag": {"type":"MemberExpression","object":`+ident("a")+`,"property":`+ident("b")+`,"computed":false},
		"quasi": {
			"type": "TemplateLiteral",
			"quasis": [{"type":"TemplateElement","value":{"raw":"x","cooked":"x"},"tail":true}],
			"expressions": []
		}
	}`))
}

func objectProgram(props ...string) string {
	return exprProgram(`{"type":"ObjectExpression","properties":[` + strings.Join(props, ",") + `]}`)
}

func initProperty(key, value string, computed bool) string {
	return fmt.Sprintf(`{"type":"Property","kind":"init","computed":%t,"key":%s,"value":%s}`, computed, key, value)
}

func TestConvert_ObjectKeyNormalization(t *testing.T) {
	// {a: 1} and {"a": 1} share one key representation.
	identKey := convertOne(t, objectProgram(initProperty(ident("a"), numberLit("1"), false)))
	stringKey := convertOne(t, objectProgram(initProperty(`{"type":"Literal","value":"a","raw":"\"a\""}`, numberLit("1"), false)))

	assert.Equal(t, identKey, stringKey)

	obj := identKey.(*ir.Object)
	require.Len(t, obj.Properties, 1)
	prop := obj.Properties[0].(*ir.Property)
	assert.Equal(t, &ir.Literal{Value: "a"}, prop.Key)
}

func TestConvert_ComputedKeyNotNormalized(t *testing.T) {
	node := convertOne(t, objectProgram(initProperty(ident("a"), numberLit("1"), true)))

	prop := node.(*ir.Object).Properties[0].(*ir.Property)
	assert.Equal(t, &ir.Ident{Name: "a"}, prop.Key)
	assert.True(t, prop.Computed)
}

func TestConvert_AccessorPropertyPoisonsObject(t *testing.T) {
	getter := `{"type":"Property","kind":"get","computed":false,"key":` + ident("a") +
		`,"value":{"type":"FunctionExpression","id":null,"params":[],"body":{"type":"BlockStatement","body":[]}}}`

	// A getter rejects the whole object, valid sibling properties included.
	mustReject(t, objectProgram(initProperty(ident("ok"), numberLit("1"), false), getter))

	setter := strings.Replace(getter, `"get"`, `"set"`, 1)
	mustReject(t, objectProgram(setter))
}

func TestConvert_FunctionDeclaration(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[{
		"type": "FunctionDeclaration",
		"id": {"type":"Identifier","name":"f"},
		"params": [`+ident("a")+`,`+ident("b")+`],
		"body": {"type":"BlockStatement","body":[
			{"type":"ReturnStatement","argument":`+ident("a")+`}
		]}
	}]}`)

	require.IsType(t, &ir.Function{}, node)
	fn := node.(*ir.Function)
	assert.Equal(t, &ir.Ident{Name: "f"}, fn.Name)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
	assert.Equal(t, &ir.Return{Argument: &ir.Ident{Name: "a"}}, fn.Body[0])
}

func TestConvert_AnonymousFunctionExpression(t *testing.T) {
	node := convertOne(t, exprProgram(`{
		"type": "FunctionExpression",
		"id": null,
		"params": [],
		"body": {"type":"BlockStatement","body":[]}
	}`))

	fn := node.(*ir.Function)
	assert.Nil(t, fn.Name)
	assert.Empty(t, fn.Params)
	assert.Empty(t, fn.Body)
}

func TestConvert_ReturnDistinguishesAbsentArgument(t *testing.T) {
	bare := convertOne(t, `{"type":"Program","body":[{"type":"ReturnStatement","argument":null}]}`)
	require.IsType(t, &ir.Return{}, bare)
	assert.Nil(t, bare.(*ir.Return).Argument)

	valued := convertOne(t, `{"type":"Program","body":[{"type":"ReturnStatement","argument":`+ident("x")+`}]}`)
	assert.Equal(t, &ir.Ident{Name: "x"}, valued.(*ir.Return).Argument)
}

func TestConvert_VariableDeclaration(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[{
		"type": "VariableDeclaration",
		"kind": "let",
		"declarations": [
			{"type":"VariableDeclarator","id":`+ident("a")+`,"init":`+numberLit("1")+`},
			{"type":"VariableDeclarator","id":`+ident("b")+`,"init":null}
		]
	}]}`)

	require.IsType(t, &ir.Vars{}, node)
	vars := node.(*ir.Vars)
	assert.Equal(t, "let", vars.Kind)
	require.Len(t, vars.Declarations, 2)

	first := vars.Declarations[0].(*ir.Declarator)
	assert.Equal(t, &ir.Literal{Value: float64(1)}, first.Init)

	// Absent initializer stays absent, distinct from a converted one.
	second := vars.Declarations[1].(*ir.Declarator)
	assert.Equal(t, &ir.Ident{Name: "b"}, second.ID)
	assert.Nil(t, second.Init)
}

func TestConvert_VariableDeclarationRejectingInitPoisons(t *testing.T) {
	mustReject(t, `{"type":"Program","body":[{
		"type": "VariableDeclaration",
		"kind": "var",
		"declarations": [
			{"type":"VariableDeclarator","id":`+ident("a")+`,"init":{"type":"ClassExpression"}}
		]
	}]}`)
}

func TestConvert_BlockUnwrapsToSequence(t *testing.T) {
	converter := New(ir.NewNodeBuilder())
	nodes, err := converter.Convert(mustDecode(t, `{
		"type": "BlockStatement",
		"body": [
			{"type":"ExpressionStatement","expression":`+ident("x")+`},
			{"type":"ExpressionStatement","expression":`+ident("y")+`}
		]
	}`))
	require.NoError(t, err)

	// No block wrapper: the statements come back as a bare sequence.
	require.Len(t, nodes, 2)
	assert.Equal(t, &ir.Ident{Name: "x"}, nodes[0])
	assert.Equal(t, &ir.Ident{Name: "y"}, nodes[1])
}

func TestConvert_WhileStatement(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[{
		"type": "WhileStatement",
		"test": `+ident("cond")+`,
		"body": {"type":"BlockStatement","body":[
			{"type":"ExpressionStatement","expression":`+ident("x")+`}
		]}
	}]}`)

	require.IsType(t, &ir.While{}, node)
	while := node.(*ir.While)
	assert.Equal(t, &ir.Ident{Name: "cond"}, while.Test)
	require.Len(t, while.Body, 1)
}

func TestConvert_ForStatement(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[{
		"type": "ForStatement",
		"init": {"type":"VariableDeclaration","kind":"var","declarations":[
			{"type":"VariableDeclarator","id":`+ident("i")+`,"init":`+numberLit("0")+`}
		]},
		"test": {"type":"BinaryExpression","operator":"<","left":`+ident("i")+`,"right":`+numberLit("10")+`},
		"update": {"type":"UpdateExpression","operator":"++","prefix":false,"argument":`+ident("i")+`},
		"body": {"type":"BlockStatement","body":[]}
	}]}`)

	require.IsType(t, &ir.For{}, node)
	loop := node.(*ir.For)
	require.IsType(t, &ir.Vars{}, loop.Init)
	require.IsType(t, &ir.Binary{}, loop.Test)
	require.IsType(t, &ir.Update{}, loop.Update)
	assert.Empty(t, loop.Body)
}

func TestConvert_ForStatementEmptyClauses(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[{
		"type": "ForStatement",
		"init": null, "test": null, "update": null,
		"body": {"type":"BlockStatement","body":[]}
	}]}`)

	loop := node.(*ir.For)
	assert.Nil(t, loop.Init)
	assert.Nil(t, loop.Test)
	assert.Nil(t, loop.Update)
}

func TestConvert_ForStatementRejectingClausePoisons(t *testing.T) {
	mustReject(t, `{"type":"Program","body":[{
		"type": "ForStatement",
		"init": null,
		"test": {"type":"SequenceExpression","expressions":[]},
		"update": null,
		"body": {"type":"BlockStatement","body":[]}
	}]}`)
}

func TestConvert_LoneIf(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[{
		"type": "IfStatement",
		"test": `+ident("a")+`,
		"consequent": {"type":"BlockStatement","body":[
			{"type":"ExpressionStatement","expression":`+ident("x")+`}
		]},
		"alternate": null
	}]}`)

	// No alternate: a bare If node, no container.
	require.IsType(t, &ir.If{}, node)
	ifNode := node.(*ir.If)
	assert.Equal(t, &ir.Ident{Name: "a"}, ifNode.Test)
	require.Len(t, ifNode.Body, 1)
}

func elseChainProgram() string {
	stmt := func(name string) string {
		return `{"type":"BlockStatement","body":[{"type":"ExpressionStatement","expression":` + ident(name) + `}]}`
	}
	return `{"type":"Program","body":[{
		"type": "IfStatement",
		"test": ` + ident("a") + `,
		"consequent": ` + stmt("x") + `,
		"alternate": {
			"type": "IfStatement",
			"test": ` + ident("b") + `,
			"consequent": ` + stmt("y") + `,
			"alternate": ` + stmt("z") + `
		}
	}]}`
}

func TestConvert_ElseIfChain(t *testing.T) {
	node := convertOne(t, elseChainProgram())

	require.IsType(t, &ir.Container{}, node)
	children := node.(*ir.Container).Children
	require.Len(t, children, 3)

	ifNode := children[0].(*ir.If)
	assert.Equal(t, &ir.Ident{Name: "a"}, ifNode.Test)
	assert.Equal(t, []ir.Node{&ir.Ident{Name: "x"}}, ifNode.Body)

	elseIf := children[1].(*ir.ElseIf)
	assert.Equal(t, &ir.Ident{Name: "b"}, elseIf.Test)
	assert.Equal(t, []ir.Node{&ir.Ident{Name: "y"}}, elseIf.Body)

	elseNode := children[2].(*ir.Else)
	assert.Equal(t, []ir.Node{&ir.Ident{Name: "z"}}, elseNode.Body)
}

func TestConvert_ElseIfChainBuildOrder(t *testing.T) {
	recorder := testutil.NewRecordingBuilder()
	converter := New(recorder)

	_, err := converter.Convert(mustDecode(t, elseChainProgram()))
	require.NoError(t, err)

	// Clause nodes are appended in chain order.
	var clauses []string
	for _, call := range recorder.Calls {
		switch call {
		case "if", "elseif", "else":
			clauses = append(clauses, call)
		}
	}
	assert.Equal(t, []string{"if", "elseif", "else"}, clauses)
}

func TestConvert_ElseChainRejectingClausePoisons(t *testing.T) {
	source := strings.Replace(elseChainProgram(),
		ident("b"), `{"type":"AwaitExpression","argument":null}`, 1)
	mustReject(t, source)
}

func TestConvert_SingleStatementProgramElidesContainer(t *testing.T) {
	node := convertOne(t, exprProgram(ident("a")))
	require.IsType(t, &ir.Ident{}, node)
}

func TestConvert_MultiStatementProgramBuildsContainer(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[
		{"type":"ExpressionStatement","expression":`+ident("a")+`},
		{"type":"ExpressionStatement","expression":`+ident("b")+`}
	]}`)

	require.IsType(t, &ir.Container{}, node)
	children := node.(*ir.Container).Children
	require.Len(t, children, 2)
	assert.Equal(t, &ir.Ident{Name: "a"}, children[0])
	assert.Equal(t, &ir.Ident{Name: "b"}, children[1])
}

func TestConvert_EmptyProgramBuildsEmptyContainer(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[]}`)
	require.IsType(t, &ir.Container{}, node)
	assert.Empty(t, node.(*ir.Container).Children)
}

func TestConvert_ProgramRejectionPoisonsWholeProgram(t *testing.T) {
	recorder := testutil.NewRecordingBuilder()
	converter := New(recorder)

	tree := mustDecode(t, `{"type":"Program","body":[
		{"type":"ExpressionStatement","expression":`+ident("a")+`},
		{"type":"DebuggerStatement"},
		{"type":"ExpressionStatement","expression":`+ident("z")+`}
	]}`)
	nodes, err := converter.Convert(tree)
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Nil(t, nodes, "no partial container may be returned")
	assert.NotContains(t, recorder.Calls, "identifier:z")
}

func TestConvert_NestedBlockSplicesIntoProgramContainer(t *testing.T) {
	node := convertOne(t, `{"type":"Program","body":[
		{"type":"ExpressionStatement","expression":`+ident("a")+`},
		{"type":"BlockStatement","body":[
			{"type":"ExpressionStatement","expression":`+ident("b")+`},
			{"type":"ExpressionStatement","expression":`+ident("c")+`}
		]}
	]}`)

	children := node.(*ir.Container).Children
	require.Len(t, children, 3)
	assert.Equal(t, &ir.Ident{Name: "c"}, children[2])
}

func TestConvert_DepthGuard(t *testing.T) {
	// Build a deeply nested unary expression exceeding a small depth bound.
	expr := ident("x")
	for i := 0; i < 40; i++ {
		expr = `{"type":"UnaryExpression","operator":"!","prefix":true,"argument":` + expr + `}`
	}

	shallow := New(ir.NewNodeBuilder(), WithMaxDepth(10))
	_, err := shallow.Convert(mustDecode(t, exprProgram(expr)))
	require.ErrorIs(t, err, ErrUnsupported)

	deep := New(ir.NewNodeBuilder())
	_, err = deep.Convert(mustDecode(t, exprProgram(expr)))
	require.NoError(t, err)
}

func TestConvert_Reentrant(t *testing.T) {
	converter := New(ir.NewNodeBuilder())
	tree := mustDecode(t, exprProgram(ident("a")))

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := converter.Convert(tree)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}

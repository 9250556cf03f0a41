package lang

import (
	"iter"
	"strconv"
)

// Node is an element of the abstract syntax tree. Nodes are immutable once
// built.
type Node interface {
	Type() NodeType
}

// Block is an ordered sequence of statements.
type Block []Node

// Nodes yields every node of b depth-first, each node before its children.
// Children are visited in source order.
func (b Block) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range b {
			if !walk(n, yield) {
				return
			}
		}
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if n == nil {
		return true
	}

	if !yield(n) {
		return false
	}

	var children []Node

	switch n := n.(type) {
	case *ListLit:
		children = n.Elements
	case *MapLit:
		for _, p := range n.Pairs {
			children = append(children, p.Key, p.Value)
		}
	case *FunctionLit:
		children = n.Body
	case *IfStmt:
		children = append(append([]Node{n.Cond}, n.Then...), n.Else...)
	case *WhileLoop:
		children = append([]Node{n.Cond}, n.Body...)
	case *BinaryExpr:
		children = []Node{n.Left, n.Right}
	case *UnaryExpr:
		children = []Node{n.Operand}
	case *Assignment:
		children = append(append([]Node{}, n.Indexes...), n.Value)
	case *Call:
		children = append([]Node{n.Callee}, n.Args...)
	case *Return:
		children = []Node{n.Value}
	}

	for _, c := range children {
		if !walk(c, yield) {
			return false
		}
	}

	return true
}

// NodeType identifies the variant of a [Node].
type NodeType int

const (
	// TypeInteger is an integer literal.
	TypeInteger NodeType = iota

	// TypeFloat is a floating point literal.
	TypeFloat

	// TypeBoolean is a boolean literal.
	TypeBoolean

	// TypeString is a string literal.
	TypeString

	// TypeList is a list literal.
	TypeList

	// TypeMap is a map literal.
	TypeMap

	// TypeName is a reference to a bound name.
	TypeName

	// TypeFunction is a function literal, named or anonymous.
	TypeFunction

	// TypeIf is a conditional with an optional else block.
	TypeIf

	// TypeWhile is a loop.
	TypeWhile

	// TypeBinary is a binary operation, including indexing.
	TypeBinary

	// TypeUnary is a unary operation.
	TypeUnary

	// TypeAssignment binds a name or writes into a container.
	TypeAssignment

	// TypeCall is a function call.
	TypeCall

	// TypeReturn exits the enclosing function.
	TypeReturn

	// TypeEmpty is the empty statement.
	TypeEmpty
)

// String returns a string representation of the node type.
func (t NodeType) String() string {
	switch t {
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeBoolean:
		return "Boolean"
	case TypeString:
		return "String"
	case TypeList:
		return "List"
	case TypeMap:
		return "Map"
	case TypeName:
		return "Name"
	case TypeFunction:
		return "Function"
	case TypeIf:
		return "If"
	case TypeWhile:
		return "While"
	case TypeBinary:
		return "Binary"
	case TypeUnary:
		return "Unary"
	case TypeAssignment:
		return "Assignment"
	case TypeCall:
		return "Call"
	case TypeReturn:
		return "Return"
	case TypeEmpty:
		return "Empty"
	default:
		return "NodeType(" + strconv.Itoa(int(t)) + ")"
	}
}

// BinaryOp is the operator of a [BinaryExpr].
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpEquals
	OpNotEquals
	OpLess
	OpGreater
	OpLessEquals
	OpGreaterEquals
	OpIndex
)

// String returns the operator's source symbol. Indexing has no infix
// symbol and is rendered as "[]".
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEquals:
		return "<="
	case OpGreaterEquals:
		return ">="
	case OpIndex:
		return "[]"
	default:
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// Name returns the lowercase operator tag used in marshaled output.
func (op BinaryOp) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpEquals:
		return "equals"
	case OpNotEquals:
		return "notequals"
	case OpLess:
		return "less"
	case OpGreater:
		return "greater"
	case OpLessEquals:
		return "lessequals"
	case OpGreaterEquals:
		return "greaterequals"
	case OpIndex:
		return "index"
	default:
		return op.String()
	}
}

// verb names the operation for error messages.
func (op BinaryOp) verb() string {
	switch op {
	case OpAdd:
		return "addition"
	case OpSubtract:
		return "subtraction"
	case OpMultiply:
		return "multiplication"
	case OpDivide:
		return "division"
	case OpIndex:
		return "indexing"
	default:
		return "comparison"
	}
}

// UnaryOp is the operator of a [UnaryExpr].
type UnaryOp int

const (
	OpNegate UnaryOp = iota
)

func (op UnaryOp) String() string {
	if op == OpNegate {
		return "-"
	}

	return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
}

// Name returns the lowercase operator tag used in marshaled output.
func (op UnaryOp) Name() string {
	if op == OpNegate {
		return "negate"
	}

	return op.String()
}

type (
	// IntegerLit is an integer literal.
	IntegerLit struct{ Value int64 }

	// FloatLit is a floating point literal.
	FloatLit struct{ Value float64 }

	// BooleanLit is a boolean literal.
	BooleanLit struct{ Value bool }

	// StringLit is a string literal with its escapes already processed.
	StringLit struct{ Value string }

	// ListLit is a list literal.
	ListLit struct{ Elements []Node }

	// MapLit is a map literal. Pairs keep their source order, which is also
	// their evaluation order.
	MapLit struct{ Pairs []Pair }

	// Pair is one key/value entry of a [MapLit].
	Pair struct{ Key, Value Node }

	// Name is a reference to a bound name.
	Name struct{ Ident string }

	// FunctionLit defines a function. A non-empty Ident also binds the
	// function to that name in the defining environment.
	FunctionLit struct {
		Ident  string
		Params ParameterList
		Body   Block
	}

	// IfStmt is a conditional. Else is nil when there is no else branch.
	IfStmt struct {
		Cond Node
		Then Block
		Else Block
	}

	// WhileLoop repeats Body while Cond is true.
	WhileLoop struct {
		Cond Node
		Body Block
	}

	// BinaryExpr applies Op to Left and Right.
	BinaryExpr struct {
		Op          BinaryOp
		Left, Right Node
	}

	// UnaryExpr applies Op to Operand.
	UnaryExpr struct {
		Op      UnaryOp
		Operand Node
	}

	// Assignment binds Target, or with a non-empty Indexes chain writes into
	// the container bound to Target.
	Assignment struct {
		Target  string
		Indexes []Node
		Value   Node
	}

	// Call invokes Callee with Args.
	Call struct {
		Callee Node
		Args   []Node
	}

	// Return exits the enclosing function with Value.
	Return struct{ Value Node }

	// Empty is a statement consisting of a lone semicolon.
	Empty struct{}
)

func (*IntegerLit) Type() NodeType  { return TypeInteger }
func (*FloatLit) Type() NodeType    { return TypeFloat }
func (*BooleanLit) Type() NodeType  { return TypeBoolean }
func (*StringLit) Type() NodeType   { return TypeString }
func (*ListLit) Type() NodeType     { return TypeList }
func (*MapLit) Type() NodeType      { return TypeMap }
func (*Name) Type() NodeType        { return TypeName }
func (*FunctionLit) Type() NodeType { return TypeFunction }
func (*IfStmt) Type() NodeType      { return TypeIf }
func (*WhileLoop) Type() NodeType   { return TypeWhile }
func (*BinaryExpr) Type() NodeType  { return TypeBinary }
func (*UnaryExpr) Type() NodeType   { return TypeUnary }
func (*Assignment) Type() NodeType  { return TypeAssignment }
func (*Call) Type() NodeType        { return TypeCall }
func (*Return) Type() NodeType      { return TypeReturn }
func (*Empty) Type() NodeType       { return TypeEmpty }

package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the program's syntax tree to native Go maps and slices.
// Every node becomes a map with a "type" key naming its [NodeType].
func (p *Program) ToMap() map[string]any {
	return map[string]any{
		"statements": blockToNative(p.Statements),
	}
}

func blockToNative(b Block) []any {
	out := make([]any, 0, len(b))
	for _, st := range b {
		out = append(out, NodeToNative(st))
	}

	return out
}

func nodesToNative(ns []Node) []any {
	out := make([]any, 0, len(ns))
	for _, n := range ns {
		out = append(out, NodeToNative(n))
	}

	return out
}

// NodeToNative converts a single node to its native Go representation.
func NodeToNative(n Node) map[string]any {
	if n == nil {
		return nil
	}

	m := map[string]any{"type": n.Type().String()}

	switch n := n.(type) {
	case *IntegerLit:
		m["value"] = n.Value

	case *FloatLit:
		m["value"] = n.Value

	case *BooleanLit:
		m["value"] = n.Value

	case *StringLit:
		m["value"] = n.Value

	case *Name:
		m["name"] = n.Ident

	case *ListLit:
		m["elements"] = nodesToNative(n.Elements)

	case *MapLit:
		pairs := make([]any, 0, len(n.Pairs))
		for _, p := range n.Pairs {
			pairs = append(pairs, map[string]any{
				"key":   NodeToNative(p.Key),
				"value": NodeToNative(p.Value),
			})
		}

		m["pairs"] = pairs

	case *FunctionLit:
		if n.Ident != "" {
			m["name"] = n.Ident
		}

		params := make([]any, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, p.String())
		}

		m["parameters"] = params
		m["body"] = blockToNative(n.Body)

	case *IfStmt:
		m["condition"] = NodeToNative(n.Cond)
		m["then"] = blockToNative(n.Then)

		if n.Else != nil {
			m["else"] = blockToNative(n.Else)
		}

	case *WhileLoop:
		m["condition"] = NodeToNative(n.Cond)
		m["body"] = blockToNative(n.Body)

	case *BinaryExpr:
		m["operator"] = n.Op.Name()
		m["left"] = NodeToNative(n.Left)
		m["right"] = NodeToNative(n.Right)

	case *UnaryExpr:
		m["operator"] = n.Op.Name()
		m["operand"] = NodeToNative(n.Operand)

	case *Assignment:
		m["target"] = n.Target

		if len(n.Indexes) > 0 {
			m["indexes"] = nodesToNative(n.Indexes)
		}

		m["value"] = NodeToNative(n.Value)

	case *Call:
		m["callee"] = NodeToNative(n.Callee)
		m["arguments"] = nodesToNative(n.Args)

	case *Return:
		m["value"] = NodeToNative(n.Value)
	}

	return m
}

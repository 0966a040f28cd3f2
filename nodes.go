package bisect

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum or nodeConst.
	num float64
	// name is the constant name of a nodeConst or the variable name of a
	// nodeVar.
	name string
	// fn is the function a nodeCall invokes.
	fn builtin
	// args are the arguments to a nodeCall, in order.
	args []*node

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // num
	nodeVar   // the bound value of x
	nodeConst // num, named

	nodeCall // fn applied to args

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, raise to right
)

var nodeKindNames = [...]string{
	nodeNone:  "None",
	nodeNum:   "Num",
	nodeVar:   "Var",
	nodeConst: "Const",
	nodeCall:  "Call",
	nodeNeg:   "Neg",
	nodeNop:   "Nop",
	nodeAdd:   "Add",
	nodeSub:   "Sub",
	nodeMul:   "Mul",
	nodeDiv:   "Div",
	nodePow:   "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized form of n. Every power is written as a
// call to pow so that the grouping of its operands is explicit.
func (n *node) fmt(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeVar, nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.fn.String())
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNop:
		b.WriteString("(+")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(binopText[n.kind])
		n.right.fmt(b)
		b.WriteByte(')')
	case nodePow:
		b.WriteString("pow(")
		n.left.fmt(b)
		b.WriteString(", ")
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}

var binopText = map[nodeKind]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeDiv: " / ",
}

package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/powerlora/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of a node graph.
type Model struct {
	Nodes []*Node
}

// Node is one instance of a registered node class.
type Node struct {
	Class string
	Name  string
	// Attrs are the node's unevaluated inputs in declaration order.
	Attrs []*Attr
	Range hcl.Range
}

// ID returns the node's address, "node.<class>.<name>".
func (n *Node) ID() string {
	return nodeid.New(n.Class, n.Name).String()
}

// Attr is a single named input expression.
type Attr struct {
	Name string
	Expr hcl.Expression
}

// Arg is a single evaluated, named input value. Values are dynamically
// typed; nodes validate them themselves.
type Arg struct {
	Name  string
	Value cty.Value
}

// Args is an ordered set of evaluated inputs, in the order the host
// delivered them.
type Args []Arg

// Get returns the value of the first argument called name.
func (a Args) Get(name string) (cty.Value, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return cty.NilVal, false
}

// Names returns argument names in order.
func (a Args) Names() []string {
	names := make([]string, 0, len(a))
	for _, arg := range a {
		names = append(names, arg.Name)
	}
	return names
}

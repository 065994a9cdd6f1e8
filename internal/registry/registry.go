package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/powerlora/internal/catalog"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all node packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// NodeFunc evaluates one node instance. It returns one value per declared
// output, in ReturnTypes order.
type NodeFunc func(ctx context.Context, svc catalog.Service, args config.Args) ([]cty.Value, error)

// NodeDefinition describes a node class.
type NodeDefinition struct {
	Class       string
	DisplayName string
	Category    string
	Description string
	Inputs      InputTypes
	ReturnTypes []TypeTag
	ReturnNames []string
	Fn          NodeFunc
}

// OutputIndex returns the position of the output called name.
func (d *NodeDefinition) OutputIndex(name string) (int, bool) {
	for i, n := range d.ReturnNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Registry holds all the registered node definitions for a single
// application instance.
type Registry struct {
	nodes map[string]*NodeDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{nodes: make(map[string]*NodeDefinition)}
}

// Register adds a node definition. It panics on an invalid definition or a
// duplicate class name, both of which are programmer errors.
func (r *Registry) Register(def *NodeDefinition) {
	if err := def.validate(); err != nil {
		panic(err)
	}
	if _, exists := r.nodes[def.Class]; exists {
		panic(fmt.Sprintf("node class '%s' already registered", def.Class))
	}
	slog.Debug("Registering node class.", "class", def.Class)
	r.nodes[def.Class] = def
}

// Lookup returns the definition for class.
func (r *Registry) Lookup(class string) (*NodeDefinition, bool) {
	def, ok := r.nodes[class]
	return def, ok
}

// Classes returns all registered class names, sorted.
func (r *Registry) Classes() []string {
	classes := make([]string, 0, len(r.nodes))
	for class := range r.nodes {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// DisplayNames maps class names to their display names.
func (r *Registry) DisplayNames() map[string]string {
	out := make(map[string]string, len(r.nodes))
	for class, def := range r.nodes {
		out[class] = def.DisplayName
	}
	return out
}

package engine

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/powerlora/internal/catalog"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
	"github.com/specialistvlad/powerlora/internal/dag"
	"github.com/specialistvlad/powerlora/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Engine evaluates graph models against a registry and a catalog.
type Engine struct {
	registry *registry.Registry
	catalog  catalog.Service
}

// New creates an Engine.
func New(r *registry.Registry, svc catalog.Service) *Engine {
	return &Engine{registry: r, catalog: svc}
}

// Result holds one evaluated node's outputs, keyed by output name.
type Result struct {
	Node       *config.Node
	Definition *registry.NodeDefinition
	Outputs    map[string]cty.Value
	// Upstream lists the IDs of the nodes this one read from.
	Upstream []string
}

// plan is a model whose references have been checked.
type plan struct {
	nodes map[string]*config.Node
	defs  map[string]*registry.NodeDefinition
	graph *dag.Graph
	order []string
}

// Run evaluates every node of model, upstream first, and returns the
// results in evaluation order. The first failing node aborts the run.
func (e *Engine) Run(ctx context.Context, model *config.Model) ([]*Result, error) {
	logger := ctxlog.FromContext(ctx)

	p, err := e.plan(model)
	if err != nil {
		return nil, err
	}
	logger.Debug("Evaluation order computed.", "order", p.order)

	results := make([]*Result, 0, len(p.order))
	done := make(map[string]*Result, len(p.order))
	for _, id := range p.order {
		upstream, err := p.graph.Dependencies(id)
		if err != nil {
			return nil, err
		}
		res, err := e.evaluate(ctx, p.nodes[id], p.defs[id], done)
		if err != nil {
			if downstream, _ := p.graph.Dependents(id); len(downstream) > 0 {
				logger.Warn("Dependent nodes will not be evaluated.", "node_id", id, "dependents", downstream)
			}
			return nil, err
		}
		res.Upstream = upstream
		done[id] = res
		results = append(results, res)
	}
	return results, nil
}

// plan resolves classes, checks references and orders the nodes.
func (e *Engine) plan(model *config.Model) (*plan, error) {
	p := &plan{
		nodes: make(map[string]*config.Node, len(model.Nodes)),
		defs:  make(map[string]*registry.NodeDefinition, len(model.Nodes)),
	}
	graph := dag.New()

	for _, n := range model.Nodes {
		def, ok := e.registry.Lookup(n.Class)
		if !ok {
			return nil, fmt.Errorf("%s: unknown node class '%s'", n.Range, n.Class)
		}
		if _, dup := p.nodes[n.ID()]; dup {
			return nil, fmt.Errorf("%s: duplicate node %s", n.Range, n.ID())
		}
		p.nodes[n.ID()] = n
		p.defs[n.ID()] = def
		graph.AddNode(n.ID())
	}

	for _, n := range model.Nodes {
		for _, attr := range n.Attrs {
			for _, traversal := range attr.Expr.Variables() {
				ref, err := parseNodeTraversal(traversal)
				if err != nil {
					return nil, fmt.Errorf("in %s input '%s': %w", n.ID(), attr.Name, err)
				}
				if err := p.checkRef(n, attr, ref); err != nil {
					return nil, err
				}
				if err := graph.AddEdge(ref.ID, n.ID()); err != nil {
					return nil, fmt.Errorf("in %s input '%s': %w", n.ID(), attr.Name, err)
				}
			}
		}
	}

	if err := graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	p.graph, p.order = graph, order
	return p, nil
}

// checkRef verifies that ref names an existing node and output, and that a
// direct reference carries a type the input accepts.
func (p *plan) checkRef(n *config.Node, attr *config.Attr, ref *nodeRef) error {
	depDef, ok := p.defs[ref.ID]
	if !ok {
		return fmt.Errorf("in %s input '%s': reference to undeclared node %s", n.ID(), attr.Name, ref.ID)
	}
	if ref.Output == "" {
		return nil
	}
	idx, ok := depDef.OutputIndex(ref.Output)
	if !ok {
		return fmt.Errorf("in %s input '%s': node %s has no output '%s'", n.ID(), attr.Name, ref.ID, ref.Output)
	}

	if _, diags := hcl.AbsTraversalForExpr(attr.Expr); diags.HasErrors() {
		return nil // composite expression; the node validates the value itself
	}
	spec, ok := p.defs[n.ID()].Inputs.Lookup(attr.Name)
	if ok && !spec.Type.Accepts(depDef.ReturnTypes[idx]) {
		return fmt.Errorf("in %s input '%s': cannot connect %s output '%s' of type %s to input of type %s",
			n.ID(), attr.Name, ref.ID, ref.Output, depDef.ReturnTypes[idx], spec.Type)
	}
	return nil
}

func (e *Engine) evaluate(ctx context.Context, n *config.Node, def *registry.NodeDefinition, done map[string]*Result) (*Result, error) {
	ctx, logger := ctxlog.With(ctx, "node_id", n.ID())
	logger.Debug("Evaluating node.", "class", n.Class)

	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{"node": nodesObject(done)}}
	args := make(config.Args, 0, len(n.Attrs))
	for _, attr := range n.Attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("in %s input '%s': %w", n.ID(), attr.Name, diags)
		}
		args = append(args, config.Arg{Name: attr.Name, Value: val})
	}
	if err := def.ValidateArgs(args); err != nil {
		return nil, fmt.Errorf("%s: %w", n.ID(), err)
	}

	values, err := def.Fn(ctx, e.catalog, args)
	if err != nil {
		return nil, fmt.Errorf("node %s failed: %w", n.ID(), err)
	}
	if len(values) != len(def.ReturnNames) {
		return nil, fmt.Errorf("node %s returned %d values, want %d", n.ID(), len(values), len(def.ReturnNames))
	}

	res := &Result{Node: n, Definition: def, Outputs: make(map[string]cty.Value, len(values))}
	for i, name := range def.ReturnNames {
		res.Outputs[name] = values[i]
	}
	logger.Debug("Node evaluated.")
	return res, nil
}

// nodesObject builds the value of the "node" variable:
// node.<class>.<name>.<output>.
func nodesObject(done map[string]*Result) cty.Value {
	classes := make(map[string]map[string]cty.Value)
	for _, res := range done {
		names, ok := classes[res.Node.Class]
		if !ok {
			names = make(map[string]cty.Value)
			classes[res.Node.Class] = names
		}
		names[res.Node.Name] = cty.ObjectVal(res.Outputs)
	}

	out := make(map[string]cty.Value, len(classes))
	for class, names := range classes {
		out[class] = cty.ObjectVal(names)
	}
	return cty.ObjectVal(out)
}

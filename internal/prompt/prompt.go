// Package prompt reads serialized workflows in the host's API format: a JSON
// object mapping node ids to {"class_type": ..., "inputs": {...}} records.
//
// The document is read through HCL's JSON syntax so that input order and
// source positions survive decoding.
package prompt

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Node is one node of a serialized workflow.
type Node struct {
	ID        string
	ClassType string
	// Inputs are in document order. Links to other nodes appear as
	// ["<id>", <output index>] tuples.
	Inputs config.Args
}

// Workflow is a decoded serialized workflow.
type Workflow struct {
	Nodes []Node
}

// ByClass returns the nodes of the given class in document order.
func (w *Workflow) ByClass(class string) []Node {
	var out []Node
	for _, n := range w.Nodes {
		if n.ClassType == class {
			out = append(out, n)
		}
	}
	return out
}

var nodeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "class_type", Required: true}},
	Blocks:     []hcl.BlockHeaderSchema{{Type: "inputs"}},
}

// ReadFile reads the workflow stored at path.
func ReadFile(ctx context.Context, path string) (*Workflow, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow: %w", err)
	}
	return Read(ctx, path, src)
}

// Read decodes a workflow from src. filename is only used in diagnostics.
// Inputs whose values cannot be evaluated are dropped with a warning.
func Read(ctx context.Context, filename string, src []byte) (*Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	file, diags := hcljson.Parse(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse workflow %s: %w", filename, diags)
	}

	ids, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("workflow %s must be an object of nodes: %w", filename, diags)
	}
	schema := &hcl.BodySchema{}
	for id := range ids {
		schema.Blocks = append(schema.Blocks, hcl.BlockHeaderSchema{Type: id})
	}
	content, diags := file.Body.Content(schema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode workflow %s: %w", filename, diags)
	}

	blocks := content.Blocks
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].DefRange.Start.Byte < blocks[j].DefRange.Start.Byte
	})

	wf := &Workflow{}
	for _, block := range blocks {
		node, err := decodeNode(block)
		if err != nil {
			return nil, err
		}
		for _, skipped := range node.skipped {
			logger.Warn("Skipping unreadable input.", "node", node.ID, "input", skipped)
		}
		wf.Nodes = append(wf.Nodes, node.Node)
	}
	logger.Debug("Read workflow.", "file", filename, "nodes", len(wf.Nodes))
	return wf, nil
}

type decodedNode struct {
	Node
	skipped []string
}

func decodeNode(block *hcl.Block) (decodedNode, error) {
	out := decodedNode{Node: Node{ID: block.Type}}

	content, _, diags := block.Body.PartialContent(nodeSchema)
	if diags.HasErrors() {
		return out, fmt.Errorf("node %s: %w", block.Type, diags)
	}

	class, diags := content.Attributes["class_type"].Expr.Value(nil)
	if diags.HasErrors() {
		return out, fmt.Errorf("node %s: %w", block.Type, diags)
	}
	if class.IsNull() || !class.Type().Equals(cty.String) {
		return out, fmt.Errorf("node %s: class_type must be a string", block.Type)
	}
	out.ClassType = class.AsString()

	for _, inputs := range content.Blocks {
		attrs, diags := inputs.Body.JustAttributes()
		if diags.HasErrors() {
			return out, fmt.Errorf("node %s: inputs: %w", block.Type, diags)
		}
		list := make([]*hcl.Attribute, 0, len(attrs))
		for _, attr := range attrs {
			list = append(list, attr)
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].Range.Start.Byte < list[j].Range.Start.Byte
		})
		for _, attr := range list {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				out.skipped = append(out.skipped, attr.Name)
				continue
			}
			out.Inputs = append(out.Inputs, config.Arg{Name: attr.Name, Value: val})
		}
	}
	return out, nil
}

package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL grid loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode all top-level blocks from any file.
// Anything other than node blocks is rejected by the decoder.
type fileRoot struct {
	Nodes []*nodeBlock `hcl:"node,block"`
}

type nodeBlock struct {
	Class string   `hcl:"class,label"`
	Name  string   `hcl:"name,label"`
	Body  hcl.Body `hcl:",remain"`
}

// Load parses every .hcl file under paths into a single model. Files are
// read in walk order and nodes keep their declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	model := &config.Model{}
	seen := make(map[string]hcl.Range)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Nodes {
			node, err := translateNode(block)
			if err != nil {
				return nil, err
			}
			if prev, dup := seen[node.ID()]; dup {
				return nil, fmt.Errorf("%s: duplicate node %s, first declared at %s", node.Range, node.ID(), prev)
			}
			seen[node.ID()] = node.Range
			model.Nodes = append(model.Nodes, node)
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes))
	return model, nil
}

func translateNode(b *nodeBlock) (*config.Node, error) {
	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("node %q %q: %w", b.Class, b.Name, diags)
	}

	list := sortAttrs(attrs)
	node := &config.Node{
		Class: b.Class,
		Name:  b.Name,
		Attrs: make([]*config.Attr, 0, len(list)),
		Range: b.Body.MissingItemRange(),
	}
	for _, attr := range list {
		node.Attrs = append(node.Attrs, &config.Attr{Name: attr.Name, Expr: attr.Expr})
	}
	return node, nil
}

// sortAttrs returns attrs in source order.
func sortAttrs(attrs hcl.Attributes) []*hcl.Attribute {
	list := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		list = append(list, attr)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Range.Start.Byte < list[j].Range.Start.Byte
	})
	return list
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}

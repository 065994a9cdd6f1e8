package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/powerlora/internal/engine"
	"github.com/specialistvlad/powerlora/internal/prompt"
	"github.com/specialistvlad/powerlora/internal/resolver"
	"github.com/specialistvlad/powerlora/modules/powerlora"
)

// Resolution is the outcome of resolving one identifier.
type Resolution struct {
	Query       string   `json:"query" yaml:"query"`
	Found       string   `json:"found,omitempty" yaml:"found,omitempty"`
	Tier        string   `json:"tier" yaml:"tier"`
	Path        string   `json:"path,omitempty" yaml:"path,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// NodeLoras is the LoRA list produced by, or read from, one node.
type NodeLoras struct {
	Node    string              `json:"node" yaml:"node"`
	Loras   powerlora.List      `json:"loras,omitempty" yaml:"loras,omitempty"`
	Enabled []powerlora.Enabled `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Resolve resolves query against the LoRA catalog.
func (a *App) Resolve(ctx context.Context, query string) (*Resolution, error) {
	ctx = a.context(ctx)
	entries, err := a.catalog.List(ctx, powerlora.CatalogCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", powerlora.CatalogCategory, err)
	}

	lookup := resolver.Lookup(ctx, query, entries)
	res := &Resolution{Query: query, Tier: lookup.Tier.String()}
	if lookup.Tier == resolver.TierNone {
		res.Suggestions = lookup.Suggestions
		return res, nil
	}
	res.Found = lookup.Found

	path, err := a.catalog.FullPath(ctx, powerlora.CatalogCategory, lookup.Found)
	if err != nil {
		a.logger.Debug("Using catalog name as path.", "lora", lookup.Found, "error", err)
		path = lookup.Found
	}
	res.Path = path
	return res, nil
}

// List returns the catalog entries of category.
func (a *App) List(ctx context.Context, category string) ([]string, error) {
	entries, err := a.catalog.List(a.context(ctx), category)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", category, err)
	}
	return entries, nil
}

// Run loads the grid files under paths, evaluates them and returns the LoRA
// list of every node that produced one, in evaluation order. A node whose
// list is empty is reported with no LoRAs.
func (a *App) Run(ctx context.Context, paths ...string) ([]NodeLoras, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.", "paths", paths)

	model, err := a.loader.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}
	if len(model.Nodes) == 0 {
		a.logger.Warn("No nodes found in grid, evaluation not required.")
		return nil, nil
	}

	results, err := engine.New(a.registry, a.catalog).Run(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	var out []NodeLoras
	for _, res := range results {
		for _, name := range res.Definition.ReturnNames {
			list, ok := powerlora.ListFromValue(res.Outputs[name])
			if !ok {
				continue
			}
			out = append(out, NodeLoras{Node: res.Node.ID(), Loras: list})
		}
	}
	a.logger.Info("Evaluation finished.", "nodes", len(results))
	return out, nil
}

// Inspect reads a serialized workflow and reports the enabled LoRAs of each
// loader node without evaluating the workflow.
func (a *App) Inspect(ctx context.Context, path string) ([]NodeLoras, error) {
	ctx = a.context(ctx)

	wf, err := prompt.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	loader := powerlora.NewLoader(a.catalog)
	var out []NodeLoras
	for _, node := range wf.ByClass(powerlora.ClassName) {
		enabled, err := loader.EnabledLoras(ctx, node.Inputs)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.ID, err)
		}
		out = append(out, NodeLoras{Node: node.ID, Enabled: enabled})
	}
	return out, nil
}

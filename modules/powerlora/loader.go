package powerlora

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/powerlora/internal/catalog"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
	"github.com/specialistvlad/powerlora/internal/resolver"
)

// ResolveFunc maps a user identifier onto a catalog entry.
type ResolveFunc func(ctx context.Context, query string, entries []string) (string, bool)

// Loader turns lora_* inputs into a modifier list.
type Loader struct {
	Catalog catalog.Lister
	Paths   catalog.PathResolver
	Resolve ResolveFunc
}

// NewLoader returns a Loader backed by svc and the standard resolver.
func NewLoader(svc catalog.Service) *Loader {
	return &Loader{Catalog: svc, Paths: svc, Resolve: resolver.Resolve}
}

// snapshot lists the catalog at most once per evaluation.
type snapshot struct {
	lister  catalog.Lister
	entries []string
	loaded  bool
}

func (s *snapshot) get(ctx context.Context) ([]string, error) {
	if !s.loaded {
		entries, err := s.lister.List(ctx, CatalogCategory)
		if err != nil {
			return nil, fmt.Errorf("%s: listing %s: %w", NodeName, CatalogCategory, err)
		}
		s.entries, s.loaded = entries, true
	}
	return s.entries, nil
}

// Load returns prev followed by one Modifier per usable spec, in spec order.
// A spec is usable when its name starts with "lora_" (any case), it is a
// record holding on, lora and strength, it is on, names something other than
// "" or "None", has a nonzero strength, and resolves in the catalog.
//
// The result is nil when it would be empty. The only error is a catalog
// listing failure; everything else drops the offending spec.
func (l *Loader) Load(ctx context.Context, prev List, specs config.Args) (List, error) {
	ctx, logger := ctxlog.With(ctx, "node", NodeName)

	result := make(List, 0, len(prev)+len(specs))
	result = append(result, prev...)
	entries := &snapshot{lister: l.Catalog}

	for _, spec := range specs {
		if !strings.HasPrefix(strings.ToUpper(spec.Name), inputPrefix) || !isRecord(spec.Value) {
			continue
		}
		on, okOn := field(spec.Value, "on")
		loraVal, okLora := field(spec.Value, "lora")
		strengthVal, okStrength := field(spec.Value, "strength")
		if !okOn || !okLora || !okStrength {
			continue
		}

		if !truthy(on) {
			logger.Info("Skipping disabled LoRA.", "lora", describe(loraVal))
			continue
		}
		lora, ok := asString(loraVal)
		if !ok || lora == "" || lora == NoneSentinel {
			continue
		}
		strength, ok := asNumber(strengthVal)
		if !ok {
			continue
		}
		if strength == 0 {
			logger.Info("Skipping LoRA with zero strength.", "lora", lora)
			continue
		}

		catalogEntries, err := entries.get(ctx)
		if err != nil {
			return nil, err
		}
		found, ok := l.Resolve(ctx, lora, catalogEntries)
		if !ok {
			continue
		}

		path, err := l.Paths.FullPath(ctx, CatalogCategory, found)
		if err != nil {
			logger.Debug("Using catalog name as path.", "lora", found, "error", err)
			path = found
		}

		m := Modifier{
			Path:        path,
			Strength:    roundStrength(strength),
			Name:        resolver.Name(found),
			Blocks:      map[string]float64{},
			LayerFilter: "",
			LowMemLoad:  flag(spec.Value, "low_mem_load", false),
			MergeLoras:  flag(spec.Value, "merge_loras", true),
		}
		result = append(result, m)
		logger.Info("Added LoRA.", "name", m.Name, "strength", m.Strength)
	}

	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

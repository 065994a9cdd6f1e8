package powerlora

import (
	"context"
	"strings"

	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
)

// EnabledLoras reports the enabled LoRAs of a serialized node's inputs
// without evaluating the node. Unlike Load it keeps the identifier as
// written, leaves the strength unrounded and does not filter zero strengths,
// empty names or the "None" sentinel; those are left to the resolver.
// Only names starting with "lora_" (exact case) are considered.
func (l *Loader) EnabledLoras(ctx context.Context, inputs config.Args) ([]Enabled, error) {
	ctx, _ = ctxlog.With(ctx, "node", NodeName)

	var result []Enabled
	entries := &snapshot{lister: l.Catalog}

	for _, in := range inputs {
		if !strings.HasPrefix(in.Name, "lora_") || !isRecord(in.Value) {
			continue
		}
		on, ok := field(in.Value, "on")
		if !ok || !truthy(on) {
			continue
		}
		loraVal, okLora := field(in.Value, "lora")
		strengthVal, okStrength := field(in.Value, "strength")
		if !okLora || !okStrength {
			continue
		}
		lora, ok := asString(loraVal)
		if !ok {
			continue
		}
		strength, ok := asNumber(strengthVal)
		if !ok {
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
			path = found
		}
		result = append(result, Enabled{Name: lora, Strength: strength, Path: path})
	}
	return result, nil
}

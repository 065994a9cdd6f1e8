package powerlora

import (
	"context"

	"github.com/specialistvlad/powerlora/internal/catalog"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
	"github.com/specialistvlad/powerlora/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition returns the node's registration metadata.
func Definition() *registry.NodeDefinition {
	return &registry.NodeDefinition{
		Class:       ClassName,
		DisplayName: NodeName,
		Category:    Category,
		Description: description,
		Inputs: registry.InputTypes{
			Required: registry.FixedInputs{},
			Optional: registry.FlexibleInputs{
				Type: registry.AnyType,
				Known: registry.FixedInputs{
					PrevInput: {Type: ReturnType, Description: "LoRAs from an upstream loader, emitted first."},
				},
			},
			Hidden: registry.FixedInputs{},
		},
		ReturnTypes: []registry.TypeTag{ReturnType},
		ReturnNames: []string{ReturnName},
		Fn:          OnRun,
	}
}

// OnRun evaluates one loader instance.
func OnRun(ctx context.Context, svc catalog.Service, args config.Args) ([]cty.Value, error) {
	var prev List
	specs := make(config.Args, 0, len(args))
	for _, arg := range args {
		if arg.Name != PrevInput {
			specs = append(specs, arg)
			continue
		}
		l, ok := ListFromValue(arg.Value)
		if !ok {
			if !arg.Value.IsNull() {
				ctxlog.FromContext(ctx).Warn("Ignoring prev_lora of unexpected type.", "node", NodeName, "type", arg.Value.Type().FriendlyName())
			}
			continue
		}
		prev = l
	}

	out, err := NewLoader(svc).Load(ctx, prev, specs)
	if err != nil {
		return nil, err
	}
	return []cty.Value{ListVal(out)}, nil
}

// Register registers the node with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Definition())
}

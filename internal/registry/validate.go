package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/powerlora/internal/config"
)

func (d *NodeDefinition) validate() error {
	var errs []string
	if d.Class == "" {
		errs = append(errs, "class name is empty")
	}
	if d.Fn == nil {
		errs = append(errs, "no node function")
	}
	if len(d.ReturnTypes) != len(d.ReturnNames) {
		errs = append(errs, fmt.Sprintf("%d return types but %d return names", len(d.ReturnTypes), len(d.ReturnNames)))
	}
	seen := make(map[string]struct{}, len(d.ReturnNames))
	for _, name := range d.ReturnNames {
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate return name '%s'", name))
		}
		seen[name] = struct{}{}
	}
	if len(errs) > 0 {
		return fmt.Errorf("node definition '%s' is invalid:\n- %s", d.Class, strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateArgs checks args against the definition's declared inputs: every
// required input must be present and every argument must be accepted.
func (d *NodeDefinition) ValidateArgs(args config.Args) error {
	var errs []string
	for _, name := range d.Inputs.Required.Declared() {
		if _, ok := args.Get(name); !ok {
			errs = append(errs, fmt.Sprintf("missing required input '%s'", name))
		}
	}
	for _, arg := range args {
		if _, ok := d.Inputs.Lookup(arg.Name); !ok {
			errs = append(errs, fmt.Sprintf("unexpected input '%s'", arg.Name))
		}
	}
	if len(errs) > 0 {
		return errors.New(d.Class + ": " + strings.Join(errs, "; "))
	}
	return nil
}

package powerlora

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

const (
	// ClassName is the registered node class.
	ClassName = "WanVideoPowerLoraLoader"
	// NodeName is the display name; it also tags every log record.
	NodeName = "WanVideo Power Lora Loader"
	// Category groups the node in host menus.
	Category = "WanVideoWrapper"
	// CatalogCategory is the catalog the node resolves against.
	CatalogCategory = "loras"
	// ReturnType tags the node's output socket.
	ReturnType = "WANVIDLORA"
	// ReturnName names the node's output socket.
	ReturnName = "lora"
	// PrevInput is the carried-list input.
	PrevInput = "prev_lora"
	// NoneSentinel is the identifier meaning "nothing selected".
	NoneSentinel = "None"

	inputPrefix = "LORA_"
	description = "A powerful LoRA loader with toggle on/off functionality for each LoRA. " +
		"Right-click on a LoRA widget for options to move, toggle, or delete."
)

// Modifier is one resolved LoRA, ready for downstream application.
type Modifier struct {
	Path     string  `json:"path" yaml:"path"`
	Strength float64 `json:"strength" yaml:"strength"`
	Name     string  `json:"name" yaml:"name"`
	// Blocks and LayerFilter are reserved for per-layer overrides and are
	// always empty.
	Blocks      map[string]float64 `json:"blocks" yaml:"blocks"`
	LayerFilter string             `json:"layer_filter" yaml:"layer_filter"`
	LowMemLoad  bool               `json:"low_mem_load" yaml:"low_mem_load"`
	MergeLoras  bool               `json:"merge_loras" yaml:"merge_loras"`
}

// List is an ordered set of modifiers. A nil List means "no modifiers";
// the node never produces an empty non-nil List.
type List []Modifier

// ListType is the opaque cty type carried on WANVIDLORA sockets.
var ListType = cty.Capsule(ReturnType, reflect.TypeOf(List(nil)))

// ListVal wraps l for the graph. A nil l becomes a null value.
func ListVal(l List) cty.Value {
	if l == nil {
		return cty.NullVal(ListType)
	}
	return cty.CapsuleVal(ListType, &l)
}

// ListFromValue unwraps a value produced by ListVal. ok is false for values
// of any other type; a null ListType value yields (nil, true).
func ListFromValue(v cty.Value) (List, bool) {
	if !v.Type().Equals(ListType) || !v.IsKnown() {
		return nil, false
	}
	if v.IsNull() {
		return nil, true
	}
	return *(v.EncapsulatedValue().(*List)), true
}

// Enabled is one entry reported by EnabledLoras.
type Enabled struct {
	Name     string  `json:"name" yaml:"name"`
	Strength float64 `json:"strength" yaml:"strength"`
	Path     string  `json:"path" yaml:"path"`
}

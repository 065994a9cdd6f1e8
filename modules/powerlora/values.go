package powerlora

import (
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// isRecord reports whether v is a known, non-null object or map.
func isRecord(v cty.Value) bool {
	if !v.IsKnown() || v.IsNull() {
		return false
	}
	ty := v.Type()
	return ty.IsObjectType() || ty.IsMapType()
}

// field returns the value stored under name in a record.
func field(rec cty.Value, name string) (cty.Value, bool) {
	ty := rec.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(name) {
			return cty.NilVal, false
		}
		return rec.GetAttr(name), true
	case ty.IsMapType():
		key := cty.StringVal(name)
		if !rec.HasIndex(key).True() {
			return cty.NilVal, false
		}
		return rec.Index(key), true
	}
	return cty.NilVal, false
}

// truthy follows loose truthiness rules: null and unknown are false, numbers
// are true when nonzero, and strings and collections when non-empty.
func truthy(v cty.Value) bool {
	if !v.IsKnown() || v.IsNull() {
		return false
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		return v.AsBigFloat().Sign() != 0
	case ty == cty.String:
		return v.AsString() != ""
	case ty.IsObjectType():
		return len(ty.AttributeTypes()) > 0
	case ty.IsCollectionType() || ty.IsTupleType():
		return v.LengthInt() > 0
	}
	return true
}

// flag reads an optional boolean field, falling back to def when absent.
func flag(rec cty.Value, name string, def bool) bool {
	v, ok := field(rec, name)
	if !ok {
		return def
	}
	return truthy(v)
}

// asString returns v's string value. Only strings qualify.
func asString(v cty.Value) (string, bool) {
	if !v.IsKnown() || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// asNumber converts v to a float64. Numeric strings are accepted.
func asNumber(v cty.Value) (float64, bool) {
	if !v.IsKnown() || v.IsNull() {
		return 0, false
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil || n.IsNull() {
		return 0, false
	}
	f, _ := n.AsBigFloat().Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// describe renders an identifier for log records. Anything but a string is
// "Unknown".
func describe(v cty.Value) string {
	if s, ok := asString(v); ok {
		return s
	}
	return "Unknown"
}

// roundStrength rounds half away from zero to four decimal places.
func roundStrength(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}

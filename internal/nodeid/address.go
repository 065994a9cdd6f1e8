package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// Root is the first segment of every address.
const Root = "node"

// segmentRegex matches a class or instance name: an HCL identifier.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Address is the structured representation of a unique node identifier.
type Address struct {
	Class string
	Name  string
}

// New creates an Address.
func New(class, name string) Address {
	return Address{Class: class, Name: name}
}

// String returns the canonical form, "node.<class>.<name>".
func (a Address) String() string {
	return fmt.Sprintf("%s.%s.%s", Root, a.Class, a.Name)
}

// Parse creates an Address by parsing its canonical string representation.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	segments := strings.Split(rawID, ".")
	if len(segments) != 3 || segments[0] != Root {
		return Address{}, fmt.Errorf("invalid node address %q: expected %s.<class>.<name>", rawID, Root)
	}
	for _, s := range segments[1:] {
		if s == "" {
			return Address{}, fmt.Errorf("invalid node address %q: empty segment", rawID)
		}
		if !segmentRegex.MatchString(s) {
			return Address{}, fmt.Errorf("invalid path segment format: %q", s)
		}
	}
	return New(segments[1], segments[2]), nil
}

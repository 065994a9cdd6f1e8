package engine

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/powerlora/internal/nodeid"
)

// nodeRef is a reference to another node's output.
type nodeRef struct {
	ID     string // e.g. "node.WanVideoPowerLoraLoader.base"
	Output string // empty when the traversal stops at the node
}

// parseNodeTraversal analyzes an HCL traversal to extract a node reference
// of the form `node.<class>.<name>`, optionally followed by `.<output>`.
func parseNodeTraversal(traversal hcl.Traversal) (*nodeRef, error) {
	if traversal.RootName() != nodeid.Root {
		return nil, fmt.Errorf("%s: unsupported reference to %q, only node.<class>.<name>.<output> is available", traversal.SourceRange(), traversal.RootName())
	}
	if len(traversal) < 3 {
		return nil, fmt.Errorf("%s: incomplete node reference, expected node.<class>.<name>.<output>", traversal.SourceRange())
	}

	classAttr, classOk := traversal[1].(hcl.TraverseAttr)
	nameAttr, nameOk := traversal[2].(hcl.TraverseAttr)
	if !classOk || !nameOk {
		return nil, fmt.Errorf("%s: malformed node reference", traversal.SourceRange())
	}

	ref := &nodeRef{ID: nodeid.New(classAttr.Name, nameAttr.Name).String()}
	if len(traversal) > 3 {
		if out, ok := traversal[3].(hcl.TraverseAttr); ok {
			ref.Output = out.Name
		}
	}
	return ref, nil
}

package app

import (
	"github.com/specialistvlad/powerlora/internal/registry"
	"github.com/specialistvlad/powerlora/modules/powerlora"
)

// coreModules is the definitive list of all modules that are compiled into
// the powerlora binary.
var coreModules = []registry.Module{
	&powerlora.Module{},
}

package builtins

import (
	"fmt"

	"github.com/bengalssg/bengal/pkg/directive"
)

// All returns every builtin directive class, grouped by family in the same
// order spec.md §4.3 lists them.
func All() []directive.Class {
	classes := []directive.Class{
		admonitionClass{},
		tabSetClass{},
		tabItemClass{},
		cardsClass{},
		cardClass{},
		stepsClass{},
		stepClass{},
		disclosureClass{},
		tableClass{name: "list-table"},
		tableClass{name: "data-table"},
		codeTabsClass{},
	}
	classes = append(classes, embedClasses()...)
	classes = append(classes, miscClasses()...)
	return classes
}

// Register installs every builtin directive class into reg and asserts
// completeness, panicking (at process startup, before any content is
// parsed) if the registry and the class list disagree.
func Register(reg *directive.Registry) {
	classes := All()
	for _, c := range classes {
		reg.Register(c)
	}
	if err := reg.AssertComplete(classes); err != nil {
		panic(fmt.Sprintf("builtins: %v", err))
	}
}

func init() {
	Register(directive.DefaultRegistry)
}

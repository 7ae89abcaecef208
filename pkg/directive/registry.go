package directive

import (
	"fmt"
	"slices"
	"sync"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
	"github.com/bengalssg/bengal/pkg/highlight"
)

// RenderContext is handed to a Class's Render method: the coerced options,
// the already-parsed child nodes (markdown content between the opener and
// closer, with nested directives already resolved), and a diagnostics sink.
type RenderContext struct {
	Name     string
	Title    string
	Options  ast.OptionsRecord
	Children []*ast.Node
	Location ast.Position
	Diags    *diagnostic.Builder

	// Parents lists the Directive names (outermost first) this directive is
	// nested under, for required_parent checking.
	Parents []string

	// Highlighter is the parser's configured syntax highlighter, passed
	// through so a directive that renders child CodeBlock nodes to HTML
	// itself (admonitions, cards, tabs) doesn't lose highlighting.
	Highlighter highlight.Highlighter
}

// Class is a stateless directive handler. Implementations are process-wide
// singletons; Render must not retain or mutate its RenderContext's Children.
type Class interface {
	// Names returns every alias this class answers to. The first name is
	// canonical (used in generated output, e.g. CSS classes).
	Names() []string

	// Contract returns the structural contract for this class, or nil.
	Contract() *Contract

	// OptionsSchema returns the option coercion schema for this class.
	OptionsSchema() OptionsSchema

	// Render produces the AST subtree (or a single RawHTML escape-hatch
	// node) for one directive instance.
	Render(rc *RenderContext) (*ast.Node, error)
}

// Registry holds every registered directive Class, indexed by every alias it
// declares. Grounded on the teacher's pkg/lint.Registry: an RWMutex-guarded
// map, sorted name listing, and a process-wide default instance populated by
// registration calls at startup.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Class
	owners  map[string]string // name -> "owning" set id, for alias bookkeeping
}

// NewRegistry creates an empty directive registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Class),
		owners: make(map[string]string),
	}
}

// Register adds class under every name it declares. Register panics if a
// name is already claimed by a different class, since that indicates two
// directive classes disagreeing about ownership of a name rather than a
// legitimate shared alias (shared aliases must be declared on ONE class's
// Names() list, e.g. "tab-set" and "tabs" both returned by the same class).
func (r *Registry) Register(class Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := class.Names()
	if len(names) == 0 {
		panic("directive: class registered with no names")
	}
	setID := names[0]
	for _, name := range names {
		if existing, ok := r.byName[name]; ok && existing != class {
			panic(fmt.Sprintf("directive: name %q already claimed by a different class", name))
		}
		r.byName[name] = class
		r.owners[name] = setID
	}
}

// Get looks up the Class registered for name (a directive or alias name).
func (r *Registry) Get(name string) (Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// KnownNames returns every registered name in sorted order — the single
// source of truth for "is this a known directive name."
func (r *Registry) KnownNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// AssertComplete verifies invariant 9 from spec.md §8: every name declared
// by every registered class is present in the registry (trivially true given
// Register's implementation) and no name is claimed by two distinct classes
// except where that class itself lists both as aliases (also enforced at
// Register time). It exists as an explicit, callable self-check so startup
// code can assert it rather than rely on Register's panics alone.
func (r *Registry) AssertComplete(classes []Class) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, class := range classes {
		for _, name := range class.Names() {
			got, ok := r.byName[name]
			if !ok {
				return fmt.Errorf("directive: class name %q not present in registry", name)
			}
			if got != class {
				return fmt.Errorf("directive: class name %q resolves to a different class instance", name)
			}
		}
	}
	return nil
}

// Reset clears the registry. Exists for tests only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]Class)
	r.owners = make(map[string]string)
}

//nolint:gochecknoglobals // process-wide registry populated by builtins.Register at startup
var DefaultRegistry = NewRegistry()

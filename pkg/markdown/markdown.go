// Package markdown defines the Parser contract and engine selection shared by
// the two concrete backends (patitas, gmengine), per spec.md §4.2.
package markdown

import (
	"fmt"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
)

// Engine names the Markdown block/inline engine backing a Parser.
type Engine string

const (
	// EnginePatitas is the default, hand-rolled O(n) engine.
	EnginePatitas Engine = "patitas"
	// EnginePythonMarkdown selects the goldmark-backed engine. The name
	// mirrors the orchestrator-facing config value spec.md §4.2 mandates,
	// not the Go package that implements it.
	EnginePythonMarkdown Engine = "python-markdown"

	// engineMistuneLegacy is a deprecated alias for EnginePatitas.
	engineMistuneLegacy Engine = "mistune"
)

// ConfigError reports an invalid or unsatisfiable Config at parser
// construction time — fatal, per spec.md §7.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("markdown: config error on %s=%q: %s", e.Field, e.Value, e.Message)
}

// Metadata carries front-matter-derived context a parse call may consult
// (currently just the source path, for diagnostic locations and relative
// link resolution in transforms run later in the pipeline).
type Metadata struct {
	SourcePath string
}

// XRefIndex resolves `[[slug]]` cross-reference tokens to URLs. The
// discovery layer that builds one is out of this module's scope (spec.md §1
// Non-goals); we only define the consumer-side contract.
type XRefIndex struct {
	ByID      map[string]string
	ByPath    map[string]string
	BySlug    map[string]string
	ByHeading map[string]string
}

// Resolve looks up ref against, in order, ByID, ByPath, BySlug, ByHeading.
func (x *XRefIndex) Resolve(ref string) (string, bool) {
	if x == nil {
		return "", false
	}
	for _, m := range []map[string]string{x.ByID, x.ByPath, x.BySlug, x.ByHeading} {
		if m == nil {
			continue
		}
		if url, ok := m[ref]; ok {
			return url, true
		}
	}
	return "", false
}

// Config selects and configures a Parser. Tags are yaml, matching the
// teacher's config struct convention, for decoding by an external loader;
// this package never reads files itself.
type Config struct {
	Engine     Engine `yaml:"parser"`
	StyleName  string `yaml:"highlight_style"`
	MaxWorkers int    `yaml:"highlight_max_workers"`
}

// DefaultConfig returns the zero-config default: patitas engine, github
// highlight style.
func DefaultConfig() Config {
	return Config{Engine: EnginePatitas, StyleName: "github"}
}

// Parser is the contract both backends satisfy. A Parser must be safe for
// concurrent use across goroutines: every Parse/ParseToAST call builds fresh
// internal state, mirroring the teacher's per-call FileSnapshot construction.
type Parser interface {
	// Parse renders source directly to an HTML string.
	Parse(source []byte, meta Metadata) (string, error)
	// ParseToAST parses source into an AST plus any non-fatal diagnostics.
	ParseToAST(source []byte, meta Metadata) (*ast.Node, []diagnostic.Diagnostic, error)
	// RenderAST renders an already-parsed tree to HTML. For any (s, m),
	// RenderAST(ParseToAST(s, m)) must equal Parse(s, m) modulo whitespace
	// between adjacent tags.
	RenderAST(n *ast.Node) (string, error)
	// EnableCrossReferences installs an XRefIndex for resolving [[slug]]
	// references in subsequent parses. Passing nil disables resolution.
	EnableCrossReferences(idx *XRefIndex)
}

// Factory constructs a Parser for one engine. Each backend package registers
// itself here at init time so this package never imports patitas/gmengine
// directly (which would make gmengine's goldmark dependency unconditional
// for every caller of markdown.New).
type Factory func(cfg Config) (Parser, error)

var factories = map[Engine]Factory{}

// Register installs fn as the constructor for engine. Called from each
// backend package's init().
func Register(engine Engine, fn Factory) {
	factories[engine] = fn
}

// New constructs a Parser for cfg.Engine, resolving the legacy "mistune"
// alias (with a deprecation diagnostic returned alongside) and rejecting
// unknown engine names as a *ConfigError.
func New(cfg Config) (Parser, []diagnostic.Diagnostic, error) {
	var diags []diagnostic.Diagnostic

	engine := cfg.Engine
	if engine == "" {
		engine = EnginePatitas
	}
	if engine == engineMistuneLegacy {
		diags = append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Message:  `markdown.parser "mistune" is deprecated; aliasing to "patitas"`,
			Source:   "markdown",
		})
		engine = EnginePatitas
	}

	fn, ok := factories[engine]
	if !ok {
		return nil, diags, &ConfigError{
			Field:   "markdown.parser",
			Value:   string(cfg.Engine),
			Message: "unknown engine (want \"patitas\" or \"python-markdown\")",
		}
	}

	cfg.Engine = engine
	p, err := fn(cfg)
	if err != nil {
		return nil, diags, fmt.Errorf("markdown: constructing %q parser: %w", engine, err)
	}
	return p, diags, nil
}

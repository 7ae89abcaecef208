package directive

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
)

// OptionsSchema declares the expected type and default for each named option
// a directive class accepts. compile builds one coercion closure per field,
// with no reflection. Coerce takes the schema by value and each class returns
// a fresh schema from OptionsSchema, so the closures are built on every
// Coerce call; they are not kept across directive instances.
type OptionsSchema struct {
	Fields   map[string]FieldType
	Defaults map[string]any

	once     sync.Once
	coercers map[string]func(string) (any, bool)
}

func (s *OptionsSchema) compile() {
	s.once.Do(func() {
		s.coercers = make(map[string]func(string) (any, bool), len(s.Fields))
		for name, ft := range s.Fields {
			s.coercers[name] = coercerFor(ft)
		}
	})
}

func coercerFor(ft FieldType) func(string) (any, bool) {
	switch ft {
	case FieldBool:
		return coerceBool
	case FieldInt:
		return coerceInt
	case FieldFloat:
		return coerceFloat
	case FieldList:
		return coerceList
	default:
		return coerceString
	}
}

func coerceString(v string) (any, bool) { return v, true }

func coerceBool(v string) (any, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return nil, false
	}
}

func coerceInt(v string) (any, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, false
	}
	return n, true
}

func coerceFloat(v string) (any, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

func coerceList(v string) (any, bool) {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out, true
}

// Coerce applies schema to raw option lines, producing a typed
// ast.OptionsRecord. Unknown keys are dropped with a warning diagnostic;
// values that fail coercion fall back to the field's declared default (or
// nil if none) with a warning diagnostic. loc is used to anchor diagnostics.
func Coerce(source string, raw []OptionLine, schema OptionsSchema, loc ast.Position, diags *diagnostic.Builder) ast.OptionsRecord {
	schema.compile()
	out := make(ast.OptionsRecord, len(raw))
	for _, line := range raw {
		ft, known := schema.Fields[line.Key]
		if !known {
			diags.Warning(source, loc, fmt.Sprintf("unknown directive option %q dropped", line.Key))
			continue
		}
		coerce := schema.coercers[line.Key]
		if coerce == nil {
			coerce = coercerFor(ft)
		}
		val, ok := coerce(line.Value)
		if !ok {
			diags.Warning(source, loc, fmt.Sprintf("invalid value %q for option %q, using default", line.Value, line.Key))
			if def, hasDef := schema.Defaults[line.Key]; hasDef {
				out[line.Key] = def
			}
			continue
		}
		out[line.Key] = val
	}
	for key, def := range schema.Defaults {
		if _, set := out[key]; !set {
			out[key] = def
		}
	}
	return out
}

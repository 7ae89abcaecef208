// Package directive implements the fenced directive extension layered on top
// of package ast: fence scanning and nested-fence validation (§4.3), the
// directive registry and option coercion, and contract validation. Built-in
// directive handlers live in the builtins subpackage.
package directive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/diagnostic"
)

var (
	openerRe      = regexp.MustCompile(`^(\s*)(:{3,})\{([A-Za-z][\w-]*)\}(?:[ \t]+(.*))?[ \t]*$`)
	namedCloserRe = regexp.MustCompile(`^(\s*)(:{3,})\{/([A-Za-z][\w-]*)\}[ \t]*$`)
	bareCloserRe  = regexp.MustCompile(`^(\s*)(:{3,})[ \t]*$`)
	optionRe      = regexp.MustCompile(`^:([A-Za-z0-9_-]+): ?(.*)$`)
	codeFenceRe   = regexp.MustCompile("^(\\s*)(`{3,}|~{3,})(.*)$")
)

// OptionLine is a single raw `:key: value` line captured between a directive
// opener and its first non-option line.
type OptionLine struct {
	Key   string
	Value string
}

// Segment is one piece of a Block's body: either a run of plain markdown
// source lines, or a nested directive Block.
type Segment struct {
	Text  string
	Block *Block
}

// Block is one fenced directive, as found by the fence scanner, before
// option coercion or handler dispatch.
type Block struct {
	Name     string
	Title    string
	Options  []OptionLine
	Segments []Segment
	Line     int // 1-based source line of the opener
}

// Document is the top-level scan result: a synthetic Block (Name == "")
// whose Segments are the document's top-level content, with nested
// directives inlined as Segment.Block entries.
type Document struct {
	Root *Block
}

// ScanFences splits raw Markdown source into a Document tree of plain-text
// segments and directive blocks, validating fence nesting as it goes.
// Fences inside fenced code blocks are never recognized, per spec.
func ScanFences(source string) (*Document, []diagnostic.Diagnostic) {
	lines := strings.Split(source, "\n")

	var diags diagnostic.Builder
	root := &Block{}
	stack := []*Block{root}
	var colons []int
	var indents []int
	var lineNos []int

	var textBuf []string
	collectingOptions := false

	inCode := false
	var codeFenceChar byte
	var codeFenceLen int

	flush := func() {
		if len(textBuf) == 0 {
			return
		}
		text := strings.Join(textBuf, "\n")
		textBuf = nil
		if strings.TrimSpace(text) == "" {
			return
		}
		top := stack[len(stack)-1]
		top.Segments = append(top.Segments, Segment{Text: text})
	}

	pop := func() *Block {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		colons = colons[:len(colons)-1]
		indents = indents[:len(indents)-1]
		lineNos = lineNos[:len(lineNos)-1]
		parent := stack[len(stack)-1]
		parent.Segments = append(parent.Segments, Segment{Block: top})
		return top
	}

	for i, line := range lines {
		lineNo := i + 1

		if inCode {
			textBuf = append(textBuf, line)
			trimmed := strings.TrimSpace(line)
			if len(trimmed) >= codeFenceLen && allRune(trimmed, rune(codeFenceChar)) {
				inCode = false
			}
			continue
		}

		if m := codeFenceRe.FindStringSubmatch(line); m != nil {
			textBuf = append(textBuf, line)
			fence := m[2]
			inCode = true
			codeFenceChar = fence[0]
			codeFenceLen = len(fence)
			continue
		}

		if collectingOptions {
			if m := optionRe.FindStringSubmatch(line); m != nil {
				top := stack[len(stack)-1]
				top.Options = append(top.Options, OptionLine{Key: m[1], Value: strings.TrimSpace(m[2])})
				continue
			}
			collectingOptions = false
		}

		if m := namedCloserRe.FindStringSubmatch(line); m != nil {
			flush()
			name := m[3]
			depth := -1
			for d := len(stack) - 1; d >= 1; d-- {
				if stack[d].Name == name {
					depth = d
					break
				}
			}
			if depth == -1 {
				diags.Error("fence", ast.Position{Line: lineNo}, fmt.Sprintf("named closer ':::{/%s}' does not match any open directive", name))
				continue
			}
			if depth < len(stack)-1 {
				var unclosed []string
				for d := len(stack) - 1; d > depth; d-- {
					unclosed = append(unclosed, stack[d].Name)
				}
				diags.Error("fence", ast.Position{Line: lineNo},
					fmt.Sprintf("named closer ':::{/%s}' leaves inner directive(s) unclosed: %s", name, strings.Join(unclosed, ", ")))
			}
			for len(stack)-1 >= depth {
				pop()
			}
			continue
		}

		if m := openerRe.FindStringSubmatch(line); m != nil {
			flush()
			indent := len(m[1])
			n := len(m[2])
			name := m[3]
			title := strings.TrimSpace(m[4])
			blk := &Block{Name: name, Title: title, Line: lineNo}
			stack = append(stack, blk)
			colons = append(colons, n)
			indents = append(indents, indent)
			lineNos = append(lineNos, lineNo)
			collectingOptions = true
			continue
		}

		if m := bareCloserRe.FindStringSubmatch(line); m != nil {
			flush()
			n := len(m[2])
			if len(stack) <= 1 {
				diags.Error("fence", ast.Position{Line: lineNo}, "stray directive closer with no open directive")
				continue
			}
			top := stack[len(stack)-1]
			openN := colons[len(colons)-1]
			if n < openN {
				diags.Error("fence", ast.Position{Line: lineNo},
					fmt.Sprintf("closer for directive %q is too short (opened with %d colons, closed with %d)", top.Name, openN, n))
				continue
			}
			pop()
			continue
		}

		textBuf = append(textBuf, line)
	}

	flush()

	for len(stack) > 1 {
		top := stack[len(stack)-1]
		diags.Error("fence", ast.Position{Line: lineNos[len(lineNos)-1]},
			fmt.Sprintf("unclosed directive %q (opened at line %d)", top.Name, top.Line))
		pop()
	}

	return &Document{Root: root}, diags.Items()
}

func allRune(s string, r rune) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != r {
			return false
		}
	}
	return true
}

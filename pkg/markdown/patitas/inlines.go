package patitas

import (
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
)

// appendInline expands a single line of raw text into inline children of
// parent (used for heading/table-cell content, which never spans lines).
func appendInline(parent *ast.Node, text string, pos ast.Position) {
	for _, n := range parseInline(text, pos) {
		parent.AppendChild(n)
	}
}

// appendParagraphInline joins a paragraph's source lines with Soft/HardBreak
// nodes between them (a hard break is a line ending in >=2 spaces or a
// trailing backslash) before running the inline scanner.
func appendParagraphInline(parent *ast.Node, lines []string, pos ast.Position) {
	for i, line := range lines {
		hard := strings.HasSuffix(line, "  ") || strings.HasSuffix(line, "\\")
		trimmed := strings.TrimRight(line, " ")
		trimmed = strings.TrimSuffix(trimmed, "\\")
		for _, n := range parseInline(trimmed, pos) {
			parent.AppendChild(n)
		}
		if i < len(lines)-1 {
			if hard {
				parent.AppendChild(ast.NewHardBreak(pos))
			} else {
				parent.AppendChild(ast.NewSoftBreak(pos))
			}
		}
	}
}

// parseInline is a single forward scan over text (byte-indexed, no
// backtracking) producing a flat run of inline nodes with emphasis/strong
// delimiters resolved by a simple stack-based matching pass once the flat
// run of text/delimiter tokens is built.
func parseInline(text string, pos ast.Position) []*ast.Node {
	toks := tokenizeInline(text)
	return resolveDelimiters(toks, pos)
}

type tokKind int

const (
	tokText tokKind = iota
	tokCodeSpan
	tokLink
	tokImage
	tokFootnoteRef
	tokDelim
	tokStrikeDelim
)

type inlineTok struct {
	kind   tokKind
	text   string // plain text, code content, or delimiter run
	url    string
	title  string
	alt    string
	fnID   string
	canOpen, canClose bool
}

// tokenizeInline walks text once, splitting it into literal-text runs and
// special tokens (code spans, links, images, footnote refs, emphasis
// delimiter runs). Delimiter runs are resolved into Emphasis/Strong nodes by
// resolveDelimiters afterward.
func tokenizeInline(text string) []inlineTok {
	var toks []inlineTok
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, inlineTok{kind: tokText, text: buf.String()})
			buf.Reset()
		}
	}

	runes := []rune(text)
	n := len(runes)
	for i := 0; i < n; i++ {
		c := runes[i]

		if c == '\\' && i+1 < n && isASCIIPunct(runes[i+1]) {
			buf.WriteRune(runes[i+1])
			i++
			continue
		}

		if c == '`' {
			j := i
			for j < n && runes[j] == '`' {
				j++
			}
			tickLen := j - i
			closeIdx := findClosingTicks(runes, j, tickLen)
			if closeIdx == -1 {
				buf.WriteString(string(runes[i:j]))
				i = j - 1
				continue
			}
			flush()
			content := strings.TrimSpace(string(runes[j:closeIdx]))
			toks = append(toks, inlineTok{kind: tokCodeSpan, text: content})
			i = closeIdx + tickLen - 1
			continue
		}

		if c == '[' {
			if fn, rest, ok := tryFootnoteRef(runes, i); ok {
				flush()
				toks = append(toks, inlineTok{kind: tokFootnoteRef, fnID: fn})
				i = rest - 1
				continue
			}
			if label, url, title, rest, ok := tryLinkOrImage(runes, i, false); ok {
				flush()
				toks = append(toks, inlineTok{kind: tokLink, text: label, url: url, title: title})
				i = rest - 1
				continue
			}
		}

		if c == '!' && i+1 < n && runes[i+1] == '[' {
			if label, url, title, rest, ok := tryLinkOrImage(runes, i+1, true); ok {
				flush()
				toks = append(toks, inlineTok{kind: tokImage, alt: label, url: url, title: title})
				i = rest - 1
				continue
			}
		}

		if c == '~' && i+1 < n && runes[i+1] == '~' {
			flush()
			before := ' '
			if i > 0 {
				before = runes[i-1]
			}
			after := rune(0)
			if i+2 < n {
				after = runes[i+2]
			}
			toks = append(toks, inlineTok{
				kind:    tokStrikeDelim,
				text:    "~~",
				canOpen: !isSpace(after), canClose: !isSpace(before),
			})
			i++
			continue
		}

		if c == '*' || c == '_' {
			j := i
			for j < n && runes[j] == c {
				j++
			}
			run := string(runes[i:j])
			before := ' '
			if i > 0 {
				before = runes[i-1]
			}
			after := rune(0)
			if j < n {
				after = runes[j]
			}
			leftFlank := !isSpace(after) && !(isPunct(after) && !isSpace(before) && !isPunct(before))
			rightFlank := !isSpace(before) && !(isPunct(before) && !isSpace(after) && !isPunct(after))
			flush()
			toks = append(toks, inlineTok{kind: tokDelim, text: run, canOpen: leftFlank, canClose: rightFlank})
			i = j - 1
			continue
		}

		buf.WriteRune(c)
	}
	flush()
	return toks
}

func isSpace(r rune) bool { return r == 0 || r == ' ' || r == '\t' || r == '\n' }
func isPunct(r rune) bool {
	return strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r)
}
func isASCIIPunct(r rune) bool { return isPunct(r) }

func findClosingTicks(runes []rune, start, tickLen int) int {
	n := len(runes)
	for i := start; i < n; i++ {
		if runes[i] == '`' {
			j := i
			for j < n && runes[j] == '`' {
				j++
			}
			if j-i == tickLen {
				return i
			}
			i = j - 1
		}
	}
	return -1
}

func tryFootnoteRef(runes []rune, start int) (id string, rest int, ok bool) {
	n := len(runes)
	if start+1 >= n || runes[start+1] != '^' {
		return "", 0, false
	}
	i := start + 2
	var sb strings.Builder
	for i < n && runes[i] != ']' {
		sb.WriteRune(runes[i])
		i++
	}
	if i >= n || sb.Len() == 0 {
		return "", 0, false
	}
	return sb.String(), i + 1, true
}

// tryLinkOrImage parses `[label](url "title")` starting at the '[' index.
// For images, start points at the '[' following the '!'.
func tryLinkOrImage(runes []rune, start int, _ bool) (label, url, title string, rest int, ok bool) {
	n := len(runes)
	i := start + 1
	depth := 1
	labelStart := i
	for i < n && depth > 0 {
		switch runes[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				goto labelDone
			}
		}
		i++
	}
labelDone:
	if depth != 0 {
		return "", "", "", 0, false
	}
	label = string(runes[labelStart:i])
	i++ // skip ']'
	if i >= n || runes[i] != '(' {
		return "", "", "", 0, false
	}
	i++
	urlStart := i
	for i < n && runes[i] != ')' && runes[i] != ' ' {
		i++
	}
	url = string(runes[urlStart:i])
	if i < n && runes[i] == ' ' {
		for i < n && runes[i] == ' ' {
			i++
		}
		if i < n && (runes[i] == '"' || runes[i] == '\'') {
			quote := runes[i]
			i++
			titleStart := i
			for i < n && runes[i] != quote {
				i++
			}
			title = string(runes[titleStart:i])
			i++
		}
		for i < n && runes[i] == ' ' {
			i++
		}
	}
	if i >= n || runes[i] != ')' {
		return "", "", "", 0, false
	}
	return label, url, title, i + 1, true
}

// resolveDelimiters turns the flat token stream into inline AST nodes,
// matching emphasis/strong/strikethrough delimiter runs with a simple
// nearest-match stack (sufficient for the common, non-pathological cases;
// CommonMark's full delimiter-stack algorithm is not implemented).
func resolveDelimiters(toks []inlineTok, pos ast.Position) []*ast.Node {
	type frame struct {
		idx  int
		ch   rune
		n    int
		kind tokKind
	}
	var stack []frame
	nodes := make([]*ast.Node, len(toks))
	used := make([]bool, len(toks))

	for i, t := range toks {
		switch t.kind {
		case tokText:
			nodes[i] = ast.NewText(t.text, pos)
		case tokCodeSpan:
			nodes[i] = ast.NewCodeSpan(t.text, pos)
		case tokFootnoteRef:
			nodes[i] = ast.NewFootnoteRef(t.fnID, pos)
		case tokLink:
			link := ast.NewLink(t.url, t.title, pos)
			for _, c := range parseInline(t.text, pos) {
				link.AppendChild(c)
			}
			nodes[i] = link
		case tokImage:
			nodes[i] = ast.NewImage(t.url, t.alt, t.title, pos)
		case tokStrikeDelim:
			if t.canClose {
				for j := len(stack) - 1; j >= 0; j-- {
					if stack[j].kind == tokStrikeDelim && !used[stack[j].idx] {
						jj := j
						matchRun(nodes, used, stack[jj].idx, i, func() *ast.Node { return ast.NewStrikethrough(pos) })
						stack = stack[:j]
						goto nextStrike
					}
				}
			}
			if t.canOpen {
				stack = append(stack, frame{idx: i, kind: tokStrikeDelim})
			}
		nextStrike:
		case tokDelim:
			ch := rune(t.text[0])
			runLen := len(t.text)
			if t.canClose {
				for j := len(stack) - 1; j >= 0; j-- {
					if stack[j].kind == tokDelim && stack[j].ch == ch && !used[stack[j].idx] {
						strong := runLen >= 2 && stack[j].n >= 2
						matchRun(nodes, used, stack[j].idx, i, func() *ast.Node {
							if strong {
								return ast.NewStrong(pos)
							}
							return ast.NewEmphasis(pos)
						})
						stack = stack[:j]
						goto nextDelim
					}
				}
			}
			if t.canOpen {
				stack = append(stack, frame{idx: i, ch: ch, n: runLen, kind: tokDelim})
			}
		nextDelim:
		}
	}

	var out []*ast.Node
	for i, t := range toks {
		if used[i] {
			continue
		}
		if t.kind == tokDelim || t.kind == tokStrikeDelim {
			out = append(out, ast.NewText(t.text, pos))
			continue
		}
		if nodes[i] != nil {
			out = append(out, nodes[i])
		}
	}
	return out
}

// matchRun wraps every already-resolved node between open and close
// (exclusive of the delimiter tokens themselves) into a new container built
// by newContainer, and marks the delimiter tokens at open/close consumed.
func matchRun(nodes []*ast.Node, used []bool, open, closeIdx int, newContainer func() *ast.Node) {
	container := newContainer()
	for k := open + 1; k < closeIdx; k++ {
		if used[k] || nodes[k] == nil {
			continue
		}
		container.AppendChild(nodes[k])
		used[k] = true
	}
	nodes[open] = container
	used[closeIdx] = true
}

package patitas

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bengalssg/bengal/pkg/ast"
)

var (
	atxRe         = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*#*[ \t]*$`)
	thematicRe    = regexp.MustCompile(`^ {0,3}((?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	fenceOpenRe   = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})[ \t]*(.*)$")
	blockquoteRe  = regexp.MustCompile(`^ {0,3}> ?(.*)$`)
	bulletRe      = regexp.MustCompile(`^( {0,3})([-*+])[ \t]+(.*)$`)
	orderedRe     = regexp.MustCompile(`^( {0,3})(\d{1,9})[.)][ \t]+(.*)$`)
	footnoteDefRe = regexp.MustCompile(`^\[\^([^\]]+)\]:[ \t]*(.*)$`)
	taskRe        = regexp.MustCompile(`^\[([ xX])\][ \t]+(.*)$`)
	tableSepRe    = regexp.MustCompile(`^[ \t]*:?-+:?[ \t]*(\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)
	blankRe       = regexp.MustCompile(`^[ \t]*$`)
)

// blockParse is the block-phase entry point handed to package directive as a
// directive.ParseFunc: it scans source (already stripped of directive fences
// by directive.ScanFences) into top-level block nodes. A single forward pass
// over lines, no backtracking — each line is classified once and consumed by
// exactly one block handler.
func blockParse(source string) []*ast.Node {
	lines := strings.Split(source, "\n")
	nodes, _ := parseBlocks(lines, 0)
	return nodes
}

// parseBlocks consumes lines[0:] and returns the block nodes found plus the
// number of lines consumed (always len(lines) at the top level; the partial
// count matters for recursive callers like blockquote/list-item parsing).
func parseBlocks(lines []string, lineOffset int) ([]*ast.Node, int) {
	var out []*ast.Node
	i := 0
	for i < len(lines) {
		line := lines[i]

		if blankRe.MatchString(line) {
			i++
			continue
		}

		if m := fenceOpenRe.FindStringSubmatch(line); m != nil {
			node, consumed := parseFencedCode(lines[i:], lineOffset+i, m)
			out = append(out, node)
			i += consumed
			continue
		}

		if m := atxRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			pos := ast.Position{Line: lineOffset + i + 1, Column: 1}
			h := ast.NewHeading(level, pos)
			appendInline(h, m[2], pos)
			out = append(out, h)
			i++
			continue
		}

		if thematicRe.MatchString(line) && !bulletRe.MatchString(line) {
			out = append(out, ast.NewThematicBreak(ast.Position{Line: lineOffset + i + 1, Column: 1}))
			i++
			continue
		}

		if blockquoteRe.MatchString(line) {
			node, consumed := parseBlockquote(lines[i:], lineOffset+i)
			out = append(out, node)
			i += consumed
			continue
		}

		if m := footnoteDefRe.FindStringSubmatch(line); m != nil {
			node, consumed := parseFootnoteDef(lines[i:], lineOffset+i, m)
			out = append(out, node)
			i += consumed
			continue
		}

		if bulletRe.MatchString(line) || orderedRe.MatchString(line) {
			node, consumed := parseList(lines[i:], lineOffset+i)
			out = append(out, node)
			i += consumed
			continue
		}

		if isTableStart(lines, i) {
			node, consumed := parseTable(lines[i:], lineOffset+i)
			out = append(out, node)
			i += consumed
			continue
		}

		node, consumed := parseParagraph(lines[i:], lineOffset+i)
		out = append(out, node)
		i += consumed
	}
	return out, i
}

func parseFencedCode(lines []string, lineOffset int, opener []string) (*ast.Node, int) {
	fence := opener[2]
	fenceChar := fence[0]
	fenceLen := len(fence)
	info := strings.TrimSpace(opener[3])

	var body []string
	i := 1
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if len(trimmed) >= fenceLen && isAllByte(trimmed, fenceChar) {
			i++
			break
		}
		body = append(body, lines[i])
	}
	raw := strings.Join(body, "\n")
	pos := ast.Position{Line: lineOffset + 1, Column: 1}
	return ast.NewCodeBlock(info, raw, pos), i
}

func isAllByte(s string, c byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return true
}

func parseBlockquote(lines []string, lineOffset int) (*ast.Node, int) {
	var inner []string
	i := 0
	for i < len(lines) {
		if m := blockquoteRe.FindStringSubmatch(lines[i]); m != nil {
			inner = append(inner, m[1])
			i++
			continue
		}
		if blankRe.MatchString(lines[i]) {
			break
		}
		// Lazy continuation: a non-blank, non-marker line directly
		// following a quoted line belongs to the same blockquote.
		inner = append(inner, lines[i])
		i++
	}
	pos := ast.Position{Line: lineOffset + 1, Column: 1}
	bq := ast.NewBlockquote(pos)
	children, _ := parseBlocks(inner, lineOffset)
	for _, c := range children {
		bq.AppendChild(c)
	}
	return bq, i
}

func parseFootnoteDef(lines []string, lineOffset int, m []string) (*ast.Node, int) {
	id := m[1]
	pos := ast.Position{Line: lineOffset + 1, Column: 1}
	def := ast.NewFootnoteDef(id, pos)

	var body []string
	if strings.TrimSpace(m[2]) != "" {
		body = append(body, m[2])
	}
	i := 1
	for ; i < len(lines); i++ {
		if blankRe.MatchString(lines[i]) {
			break
		}
		if !strings.HasPrefix(lines[i], " ") && !strings.HasPrefix(lines[i], "\t") {
			break
		}
		body = append(body, strings.TrimPrefix(strings.TrimPrefix(lines[i], "    "), "\t"))
	}
	children, _ := parseBlocks(body, lineOffset)
	for _, c := range children {
		def.AppendChild(c)
	}
	return def, i
}

type listMarker struct {
	ordered bool
	start   int
}

func matchMarker(line string) (listMarker, string, bool) {
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return listMarker{ordered: false}, m[3], true
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		return listMarker{ordered: true, start: n}, m[3], true
	}
	return listMarker{}, "", false
}

func parseList(lines []string, lineOffset int) (*ast.Node, int) {
	marker, _, _ := matchMarker(lines[0])
	pos := ast.Position{Line: lineOffset + 1, Column: 1}
	list := ast.NewList(marker.ordered, marker.start, pos)
	if list.Start == 0 {
		list.Start = 1
	}

	i := 0
	loose := false
	for i < len(lines) {
		m, rest, ok := matchMarker(lines[i])
		if !ok {
			break
		}
		itemLineOffset := lineOffset + i
		itemLines := []string{rest}
		i++
		sawBlank := false
		for i < len(lines) {
			if blankRe.MatchString(lines[i]) {
				// A blank line ends the item unless followed by an
				// indented continuation (still part of this item, and
				// marks the list loose).
				if i+1 < len(lines) && (strings.HasPrefix(lines[i+1], " ") || strings.HasPrefix(lines[i+1], "\t")) {
					sawBlank = true
					itemLines = append(itemLines, "")
					i++
					continue
				}
				break
			}
			if _, _, isMarker := matchMarker(lines[i]); isMarker {
				break
			}
			if !strings.HasPrefix(lines[i], " ") && !strings.HasPrefix(lines[i], "\t") && len(itemLines) > 0 {
				itemLines = append(itemLines, lines[i])
				i++
				continue
			}
			itemLines = append(itemLines, strings.TrimPrefix(strings.TrimPrefix(lines[i], "    "), "\t"))
			i++
		}
		if sawBlank {
			loose = true
		}

		var checked *bool
		content := strings.Join(itemLines, "\n")
		if tm := taskRe.FindStringSubmatch(strings.TrimLeft(content, " ")); tm != nil {
			b := tm[1] == "x" || tm[1] == "X"
			checked = &b
			content = tm[2]
			for idx := range itemLines {
				if idx == 0 {
					itemLines[0] = content
				}
			}
		}

		item := ast.NewListItem(checked, ast.Position{Line: itemLineOffset + 1, Column: 1})
		children, _ := parseBlocks(strings.Split(content, "\n"), itemLineOffset)
		for _, c := range children {
			item.AppendChild(c)
		}
		list.AppendChild(item)

		if i < len(lines) && blankRe.MatchString(lines[i]) {
			// Blank line between items: peek ahead for another item.
			j := i
			for j < len(lines) && blankRe.MatchString(lines[j]) {
				j++
			}
			if j < len(lines) {
				if _, _, isMarker := matchMarker(lines[j]); isMarker {
					loose = true
					i = j
					continue
				}
			}
			break
		}
	}
	list.Tight = !loose
	return list, i
}

func isTableStart(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	if !strings.Contains(lines[i], "|") {
		return false
	}
	return tableSepRe.MatchString(lines[i+1]) && strings.Contains(lines[i+1], "-")
}

func parseTable(lines []string, lineOffset int) (*ast.Node, int) {
	headerCells := splitTableRow(lines[0])
	aligns := parseTableAlign(lines[1], len(headerCells))
	pos := ast.Position{Line: lineOffset + 1, Column: 1}
	table := ast.NewTable(aligns, pos)

	header := ast.NewTableRow(pos)
	for _, cell := range headerCells {
		c := ast.NewTableCell(pos)
		appendInline(c, cell, pos)
		header.AppendChild(c)
	}
	table.AppendChild(header)

	i := 2
	for i < len(lines) {
		if blankRe.MatchString(lines[i]) || !strings.Contains(lines[i], "|") {
			break
		}
		rowPos := ast.Position{Line: lineOffset + i + 1, Column: 1}
		row := ast.NewTableRow(rowPos)
		for _, cell := range splitTableRow(lines[i]) {
			c := ast.NewTableCell(rowPos)
			appendInline(c, cell, rowPos)
			row.AppendChild(c)
		}
		table.AppendChild(row)
		i++
	}
	return table, i
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func parseTableAlign(sep string, n int) []ast.Align {
	parts := splitTableRow(sep)
	out := make([]ast.Align, n)
	for i := 0; i < n; i++ {
		if i >= len(parts) {
			out[i] = ast.AlignNone
			continue
		}
		p := strings.TrimSpace(parts[i])
		left := strings.HasPrefix(p, ":")
		right := strings.HasSuffix(p, ":")
		switch {
		case left && right:
			out[i] = ast.AlignCenter
		case right:
			out[i] = ast.AlignRight
		case left:
			out[i] = ast.AlignLeft
		default:
			out[i] = ast.AlignNone
		}
	}
	return out
}

func parseParagraph(lines []string, lineOffset int) (*ast.Node, int) {
	var body []string
	i := 0
	for i < len(lines) {
		if blankRe.MatchString(lines[i]) {
			break
		}
		if i > 0 {
			if atxRe.MatchString(lines[i]) || fenceOpenRe.MatchString(lines[i]) ||
				blockquoteRe.MatchString(lines[i]) || thematicRe.MatchString(lines[i]) {
				break
			}
			if _, _, ok := matchMarker(lines[i]); ok {
				break
			}
		}
		body = append(body, lines[i])
		i++
	}
	pos := ast.Position{Line: lineOffset + 1, Column: 1}
	p := ast.NewParagraph(pos)
	appendParagraphInline(p, body, pos)
	return p, i
}

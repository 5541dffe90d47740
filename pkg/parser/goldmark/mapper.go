package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Node kinds produced by the parser.
const (
	KindDocument      = "document"
	KindHeading       = "heading"
	KindParagraph     = "paragraph"
	KindList          = "list"
	KindListItem      = "list_item"
	KindBlockquote    = "blockquote"
	KindCodeBlock     = "code_block"
	KindThematicBreak = "thematic_break"
	KindHTMLBlock     = "html_block"
	KindTable         = "table"
)

// Property names set on mapped nodes.
const (
	PropLevel    = "level"
	PropMarker   = "marker"
	PropStyle    = "style"
	PropOrdered  = "ordered"
	PropTight    = "tight"
	PropStart    = "start"
	PropInfo     = "info"
	PropFence    = "fence"
	PropIndented = "indented"
)

// mapper converts a goldmark AST into syntax nodes with byte ranges.
type mapper struct {
	content []byte

	// cursor is the end of the last mapped block. Blocks goldmark gives
	// no line segments for are searched for from here.
	cursor int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to a syntax tree root.
func (m *mapper) mapDocument(gmDoc ast.Node) *syntax.Node {
	doc := syntax.NewNode(KindDocument)
	doc.Range = syntax.SourceRange{StartOffset: 0, EndOffset: len(m.content)}
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren maps the block children of a goldmark node.
func (m *mapper) mapChildren(gmParent ast.Node, parent *syntax.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		node := m.mapNode(child)
		if node == nil {
			continue
		}
		// Fresh nodes cannot form a cycle.
		_ = syntax.AppendChild(parent, node)
		if node.Range.IsValid() && node.Range.EndOffset > m.cursor {
			m.cursor = node.Range.EndOffset
		}
	}
}

// mapNode converts a single goldmark block node. It returns nil when the
// node has no recoverable source span.
func (m *mapper) mapNode(gmNode ast.Node) *syntax.Node {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return m.mapHeading(gmn)
	case *ast.Paragraph, *ast.TextBlock:
		return m.mapParagraph(gmNode)
	case *ast.List:
		return m.mapList(gmn)
	case *ast.ListItem:
		return m.mapListItem(gmn)
	case *ast.Blockquote:
		return m.mapBlockquote(gmn)
	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)
	case *ast.CodeBlock:
		return m.mapIndentedCodeBlock(gmn)
	case *ast.ThematicBreak:
		return m.mapThematicBreak()
	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)
	case *east.Table:
		return m.mapOpaque(gmn, KindTable)
	default:
		return m.mapOpaque(gmNode, strings.ToLower(gmNode.Kind().String()))
	}
}

// mapHeading maps ATX and setext headings. The range covers the opening
// marker, any closing sequence and a setext underline.
func (m *mapper) mapHeading(h *ast.Heading) *syntax.Node {
	node := syntax.NewNode(KindHeading)
	node.Props = map[string]string{
		PropLevel:  strconv.Itoa(h.Level),
		PropMarker: strings.Repeat("#", h.Level),
	}

	lines := h.Lines()
	if lines.Len() == 0 {
		start := m.skipPrefix(m.cursor)
		if start >= len(m.content) || m.content[start] != '#' {
			return nil
		}
		node.Props[PropStyle] = "atx"
		node.Props[syntax.PropText] = ""
		node.Range = syntax.SourceRange{StartOffset: start, EndOffset: m.trimEnd(m.lineEnd(start), start)}
		return node
	}

	first := lines.At(0).Start
	node.Props[syntax.PropText] = m.linesText(lines, "\n", true)

	p := first
	for p > 0 && isSpace(m.content[p-1]) {
		p--
	}
	if p > 0 && m.content[p-1] == '#' {
		for p > 0 && m.content[p-1] == '#' {
			p--
		}
		node.Props[PropStyle] = "atx"
		node.Range = syntax.SourceRange{StartOffset: p, EndOffset: m.trimEnd(m.lineEnd(first), p)}
		return node
	}

	node.Props[PropStyle] = "setext"
	start := m.skipSpaces(first)
	end := m.lineEnd(lines.At(lines.Len() - 1).Start)
	if next := m.skipBreak(end); next > end && next < len(m.content) {
		end = m.trimEnd(m.lineEnd(next), next)
	}
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	return node
}

// mapParagraph maps paragraphs and the text blocks of tight lists.
// The text property holds the raw source, inline markup included.
func (m *mapper) mapParagraph(p ast.Node) *syntax.Node {
	lines := p.Lines()
	if lines.Len() == 0 {
		return nil
	}
	start := m.skipSpaces(lines.At(0).Start)
	end := m.trimEnd(lines.At(lines.Len()-1).Stop, start)

	node := syntax.NewNode(KindParagraph)
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	node.Props = map[string]string{syntax.PropText: string(m.content[start:end])}
	return node
}

// mapList maps a list. Its range spans its items.
func (m *mapper) mapList(list *ast.List) *syntax.Node {
	node := syntax.NewNode(KindList)
	node.Props = map[string]string{
		PropOrdered: strconv.FormatBool(list.IsOrdered()),
		PropTight:   strconv.FormatBool(list.IsTight),
		PropMarker:  string(list.Marker),
	}
	if list.IsOrdered() {
		node.Props[PropStart] = strconv.Itoa(list.Start)
	}

	m.mapChildren(list, node)
	if !node.HasChildren() {
		return nil
	}
	node.Range = syntax.SourceRange{
		StartOffset: node.FirstChild.Range.StartOffset,
		EndOffset:   node.LastChild.Range.EndOffset,
	}
	return node
}

// mapListItem maps a list item. Its range starts at the item marker.
func (m *mapper) mapListItem(item *ast.ListItem) *syntax.Node {
	node := syntax.NewNode(KindListItem)
	m.mapChildren(item, node)
	if !node.HasChildren() {
		return nil
	}

	contentStart := node.FirstChild.Range.StartOffset
	start, markerEnd := m.markerBefore(contentStart)
	marker := string(m.content[start:markerEnd])
	if marker == "" {
		if list, ok := item.Parent().(*ast.List); ok {
			marker = string(list.Marker)
		}
	}

	node.Props = map[string]string{PropMarker: marker}
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: node.LastChild.Range.EndOffset}
	return node
}

// mapBlockquote maps a block quote. Its range starts at the first '>'.
func (m *mapper) mapBlockquote(bq *ast.Blockquote) *syntax.Node {
	node := syntax.NewNode(KindBlockquote)
	m.mapChildren(bq, node)

	if !node.HasChildren() {
		start := m.skipSpacesAndBreaks(m.cursor)
		if start >= len(m.content) || m.content[start] != '>' {
			return nil
		}
		node.Range = syntax.SourceRange{StartOffset: start, EndOffset: m.trimEnd(m.lineEnd(start), start)}
		return node
	}

	start := node.FirstChild.Range.StartOffset
	p := start
	for p > 0 && isSpace(m.content[p-1]) {
		p--
	}
	if p > 0 && m.content[p-1] == '>' {
		start = p - 1
	}
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: node.LastChild.Range.EndOffset}
	return node
}

// mapFencedCodeBlock maps a fenced code block including both fences.
func (m *mapper) mapFencedCodeBlock(cb *ast.FencedCodeBlock) *syntax.Node {
	lines := cb.Lines()

	var fenceStart int
	if lines.Len() > 0 {
		openEnd := m.prevLineEnd(m.lineStart(lines.At(0).Start))
		fenceStart = m.findFence(m.lineStart(openEnd), openEnd)
	} else {
		fenceStart = m.skipPrefix(m.cursor)
		if fenceStart < len(m.content) && !isFenceChar(m.content[fenceStart]) {
			fenceStart = -1
		}
	}
	if fenceStart < 0 || fenceStart >= len(m.content) {
		return nil
	}

	fenceChar := m.content[fenceStart]
	fenceLen := 0
	for fenceStart+fenceLen < len(m.content) && m.content[fenceStart+fenceLen] == fenceChar {
		fenceLen++
	}

	after := m.lineEnd(fenceStart)
	if lines.Len() > 0 {
		after = m.lineEnd(lines.At(lines.Len() - 1).Start)
	}
	end := after
	if next := m.skipBreak(after); next > after {
		closing := m.skipLinePrefix(next)
		if m.isClosingFence(closing, fenceChar, fenceLen) {
			end = m.trimEnd(m.lineEnd(closing), closing)
		}
	}

	info := ""
	if cb.Info != nil {
		info = strings.TrimSpace(string(cb.Info.Value(m.content)))
	}

	node := syntax.NewNode(KindCodeBlock)
	node.Range = syntax.SourceRange{StartOffset: fenceStart, EndOffset: end}
	node.Props = map[string]string{
		PropFence:       strings.Repeat(string(fenceChar), fenceLen),
		PropInfo:        info,
		syntax.PropText: m.linesText(lines, "", false),
	}
	return node
}

// mapIndentedCodeBlock maps an indented code block.
func (m *mapper) mapIndentedCodeBlock(cb *ast.CodeBlock) *syntax.Node {
	lines := cb.Lines()
	if lines.Len() == 0 {
		return nil
	}
	start := lines.At(0).Start
	end := m.trimEnd(lines.At(lines.Len()-1).Stop, start)

	node := syntax.NewNode(KindCodeBlock)
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	node.Props = map[string]string{
		PropIndented:    "true",
		PropFence:       "```",
		PropInfo:        "",
		syntax.PropText: m.linesText(lines, "", false),
	}
	return node
}

// mapThematicBreak maps a thematic break. goldmark records no segment
// for it, so it is found by scanning from the cursor.
func (m *mapper) mapThematicBreak() *syntax.Node {
	start := m.skipPrefix(m.cursor)
	if start >= len(m.content) || !strings.ContainsRune("*-_", rune(m.content[start])) {
		return nil
	}
	end := m.trimEnd(m.lineEnd(start), start)

	node := syntax.NewNode(KindThematicBreak)
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	node.Props = map[string]string{syntax.PropText: string(m.content[start:end])}
	return node
}

// mapHTMLBlock maps a raw HTML block, closure line included.
func (m *mapper) mapHTMLBlock(hb *ast.HTMLBlock) *syntax.Node {
	lines := hb.Lines()
	if lines.Len() == 0 {
		return nil
	}
	start := m.skipSpaces(lines.At(0).Start)
	stop := lines.At(lines.Len() - 1).Stop
	if hb.HasClosure() {
		stop = hb.ClosureLine.Stop
	}
	end := m.trimEnd(stop, start)

	node := syntax.NewNode(KindHTMLBlock)
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	node.Props = map[string]string{syntax.PropText: string(m.content[start:end])}
	return node
}

// mapOpaque maps a block with no dedicated mapping as a leaf spanning
// every segment of the node and its descendants.
func (m *mapper) mapOpaque(gmNode ast.Node, kind string) *syntax.Node {
	start, stop := -1, -1
	collectSegments(gmNode, &start, &stop)
	if start < 0 {
		return nil
	}
	start = m.lineStart(start)
	start = m.skipSpaces(start)
	end := m.trimEnd(m.lineEnd(max(stop-1, start)), start)

	node := syntax.NewNode(kind)
	node.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	node.Props = map[string]string{syntax.PropText: string(m.content[start:end])}
	return node
}

// collectSegments widens [start, stop) to cover the line segments of
// block nodes and the text segments of inline nodes under n.
func collectSegments(n ast.Node, start, stop *int) {
	widen := func(s, e int) {
		if *start < 0 || s < *start {
			*start = s
		}
		if e > *stop {
			*stop = e
		}
	}

	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			widen(seg.Start, seg.Stop)
		}
	} else if t, ok := n.(*ast.Text); ok {
		widen(t.Segment.Start, t.Segment.Stop)
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		collectSegments(child, start, stop)
	}
}

// linesText joins the values of a segment list. With trim set each
// line is trimmed of surrounding whitespace; otherwise a single trailing
// line break is dropped.
func (m *mapper) linesText(lines *text.Segments, sep string, trim bool) string {
	parts := make([]string, 0, lines.Len())
	for i := range lines.Len() {
		seg := lines.At(i)
		value := seg.Value(m.content)
		if trim {
			value = bytes.TrimSpace(value)
		}
		parts = append(parts, string(value))
	}
	joined := strings.Join(parts, sep)
	if !trim {
		joined = strings.TrimSuffix(joined, "\n")
		joined = strings.TrimSuffix(joined, "\r")
	}
	return joined
}

// markerBefore locates a list marker ending before contentStart and
// returns its start and end offsets. Both equal contentStart when none
// is found.
func (m *mapper) markerBefore(contentStart int) (int, int) {
	p := contentStart
	for p > 0 && isSpace(m.content[p-1]) {
		p--
	}
	if p == 0 {
		return contentStart, contentStart
	}

	markerEnd := p
	switch c := m.content[p-1]; {
	case c == '-' || c == '*' || c == '+':
		return p - 1, markerEnd
	case c == '.' || c == ')':
		q := p - 1
		for q > 0 && m.content[q-1] >= '0' && m.content[q-1] <= '9' {
			q--
		}
		if q < p-1 {
			return q, markerEnd
		}
	}
	return contentStart, contentStart
}

// isClosingFence reports whether a closing fence of at least n fence
// characters c starts at off and is followed only by whitespace.
func (m *mapper) isClosingFence(off int, c byte, n int) bool {
	count := 0
	p := off
	for p < len(m.content) && m.content[p] == c {
		count++
		p++
	}
	if count < n {
		return false
	}
	end := m.lineEnd(p)
	return len(bytes.TrimSpace(m.content[p:end])) == 0
}

// findFence returns the offset of the first fence character in
// [start, end), or -1.
func (m *mapper) findFence(start, end int) int {
	for i := start; i < end && i < len(m.content); i++ {
		if isFenceChar(m.content[i]) {
			return i
		}
	}
	return -1
}

// lineStart returns the offset of the start of the line holding off.
func (m *mapper) lineStart(off int) int {
	off = min(off, len(m.content))
	for off > 0 && !isBreak(m.content[off-1]) {
		off--
	}
	return off
}

// lineEnd returns the offset of the line break ending the line holding
// off, or the content length.
func (m *mapper) lineEnd(off int) int {
	for off < len(m.content) && !isBreak(m.content[off]) {
		off++
	}
	return off
}

// prevLineEnd returns the content end of the line before the line
// starting at lineStart.
func (m *mapper) prevLineEnd(lineStart int) int {
	p := lineStart
	if p > 0 && m.content[p-1] == '\n' {
		p--
	}
	if p > 0 && m.content[p-1] == '\r' {
		p--
	}
	return p
}

// skipBreak steps over the line break at off, if any.
func (m *mapper) skipBreak(off int) int {
	if off < len(m.content) && m.content[off] == '\r' {
		off++
	}
	if off < len(m.content) && m.content[off] == '\n' {
		off++
	}
	return off
}

// trimEnd moves end back over trailing whitespace, never below floor.
func (m *mapper) trimEnd(end, floor int) int {
	end = min(end, len(m.content))
	for end > floor && (isSpace(m.content[end-1]) || isBreak(m.content[end-1])) {
		end--
	}
	return end
}

// skipSpaces steps over spaces and tabs.
func (m *mapper) skipSpaces(off int) int {
	for off < len(m.content) && isSpace(m.content[off]) {
		off++
	}
	return off
}

// skipSpacesAndBreaks steps over whitespace including line breaks.
func (m *mapper) skipSpacesAndBreaks(off int) int {
	for off < len(m.content) && (isSpace(m.content[off]) || isBreak(m.content[off])) {
		off++
	}
	return off
}

// skipPrefix steps over whitespace and block quote markers.
func (m *mapper) skipPrefix(off int) int {
	for off < len(m.content) {
		c := m.content[off]
		if !isSpace(c) && !isBreak(c) && c != '>' {
			break
		}
		off++
	}
	return off
}

// skipLinePrefix steps over the indentation and quote markers of a single line.
func (m *mapper) skipLinePrefix(off int) int {
	for off < len(m.content) && (isSpace(m.content[off]) || m.content[off] == '>') {
		off++
	}
	return off
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isBreak(c byte) bool { return c == '\n' || c == '\r' }

func isFenceChar(c byte) bool { return c == '`' || c == '~' }

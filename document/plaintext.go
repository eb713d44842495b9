package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlainText strips markdown syntax from paragraph or question text so it
// can be measured and displayed in plain form. Analyzer output sometimes
// carries emphasis and link markup through from the source document.
func PlainText(markdown string) string {
	if markdown == "" {
		return ""
	}

	md := goldmark.New()
	reader := text.NewReader([]byte(markdown))
	doc := md.Parser().Parse(reader)

	var buf strings.Builder
	walkText(doc, reader.Source(), &buf)

	return strings.Join(strings.Fields(buf.String()), " ")
}

// walkText recursively walks the AST and collects text content.
func walkText(node ast.Node, source []byte, buf *strings.Builder) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			buf.WriteByte(' ')
		}
		return
	case *ast.CodeSpan:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return
	case *ast.HTMLBlock, *ast.RawHTML:
		return
	}

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		walkText(c, source, buf)
	}

	// Blocks separate words even when the markup carried no whitespace.
	if node.Type() == ast.TypeBlock {
		buf.WriteByte(' ')
	}
}

package goldmark

import (
	"fmt"
	"strings"

	"github.com/fwojciec/mdmd"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type converter struct {
	source []byte
}

// children converts every child of node, in order.
func (c converter) children(node ast.Node) ([]mdmd.Node, error) {
	var out []mdmd.Node
	i := 0
	for n := node.FirstChild(); n != nil; n = n.NextSibling() {
		converted, err := c.convert(n)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", n.Kind(), i, err)
		}
		out = append(out, converted...)
		i++
	}
	return out, nil
}

// convert maps one goldmark node to zero or more mdmd nodes. Text nodes
// expand into text, escape sequences and line breaks.
func (c converter) convert(node ast.Node) ([]mdmd.Node, error) {
	switch n := node.(type) {
	case *ast.Heading:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.Heading{Level: n.Level, Children: kids})

	case *ast.Paragraph, *ast.TextBlock:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.Paragraph{Children: kids})

	case *ast.Blockquote:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.Quote{Children: kids})

	case *ast.List:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.List{
			Loose:    !n.IsTight,
			Ordered:  n.IsOrdered(),
			Start:    n.Start,
			Children: kids,
		})

	case *ast.ListItem:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.ListItem{Children: kids})

	case *ast.FencedCodeBlock:
		return one(mdmd.CodeBlock{
			Language: string(n.Language(c.source)),
			Content:  c.lines(n.Lines()),
		})

	case *ast.CodeBlock:
		return one(mdmd.CodeBlock{Content: c.lines(n.Lines())})

	case *ast.HTMLBlock:
		// Raw HTML blocks are kept as text so embedded images get rewritten.
		content := c.lines(n.Lines())
		if n.HasClosure() {
			content += string(n.ClosureLine.Value(c.source))
		}
		content = strings.TrimRight(content, "\n")
		return one(mdmd.Paragraph{Children: []mdmd.Node{mdmd.RawText{Content: content}}})

	case *ast.ThematicBreak:
		return one(mdmd.ThematicBreak{})

	case *extast.Table:
		return c.table(n)

	case *extast.TableCell:
		return c.tableCell(n)

	case *ast.Text:
		return c.text(n), nil

	case *ast.String:
		return one(mdmd.RawText{Content: string(n.Value)})

	case *ast.Emphasis:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		if n.Level >= 2 {
			return one(mdmd.Strong{Children: kids})
		}
		return one(mdmd.Emphasis{Children: kids})

	case *ast.CodeSpan:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.InlineCode{Children: kids})

	case *extast.Strikethrough:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.Strikethrough{Children: kids})

	case *ast.Link:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.Link{Target: string(n.Destination), Title: string(n.Title), Children: kids})

	case *ast.Image:
		kids, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return one(mdmd.Image{Src: string(n.Destination), Title: string(n.Title), Children: kids})

	case *ast.AutoLink:
		return one(mdmd.AutoLink{
			URL:   string(n.URL(c.source)),
			Email: n.AutoLinkType == ast.AutoLinkEmail,
		})

	case *ast.RawHTML:
		return one(mdmd.RawText{Content: c.lines(n.Segments)})

	default:
		return nil, fmt.Errorf("goldmark node %s: %w", node.Kind(), mdmd.ErrUnknownNodeKind)
	}
}

func (c converter) table(n *extast.Table) ([]mdmd.Node, error) {
	t := mdmd.Table{Alignments: make([]mdmd.Alignment, len(n.Alignments))}
	for i, a := range n.Alignments {
		t.Alignments[i] = alignment(a)
	}
	i := 0
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		cells, err := c.children(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", r.Kind(), i, err)
		}
		row := mdmd.TableRow{Children: cells}
		switch r.(type) {
		case *extast.TableHeader:
			t.Header = &row
		case *extast.TableRow:
			t.Children = append(t.Children, row)
		default:
			return nil, fmt.Errorf("goldmark table child %s: %w", r.Kind(), mdmd.ErrUnknownNodeKind)
		}
		i++
	}
	return one(t)
}

func (c converter) tableCell(n *extast.TableCell) ([]mdmd.Node, error) {
	kids, err := c.children(n)
	if err != nil {
		return nil, err
	}
	return one(mdmd.TableCell{Children: kids})
}

// text splits a goldmark text segment into raw text and backslash escapes,
// then appends the line break that follows it, if any.
func (c converter) text(n *ast.Text) []mdmd.Node {
	value := n.Segment.Value(c.source)
	var out []mdmd.Node
	if n.IsRaw() {
		out = appendText(out, string(value))
	} else {
		out = splitEscapes(out, value)
	}
	switch {
	case n.HardLineBreak():
		out = append(out, mdmd.LineBreak{})
	case n.SoftLineBreak():
		out = append(out, mdmd.LineBreak{Soft: true})
	}
	return out
}

// splitEscapes turns each backslash followed by ASCII punctuation into an
// EscapeSequence holding the punctuation character.
func splitEscapes(out []mdmd.Node, value []byte) []mdmd.Node {
	start := 0
	for i := 0; i < len(value)-1; i++ {
		if value[i] != '\\' || !isPunct(value[i+1]) {
			continue
		}
		out = appendText(out, string(value[start:i]))
		out = append(out, mdmd.EscapeSequence{Children: []mdmd.Node{mdmd.RawText{Content: string(value[i+1])}}})
		i++
		start = i + 1
	}
	return appendText(out, string(value[start:]))
}

// appendText appends s as raw text, merging with a preceding raw text node.
func appendText(out []mdmd.Node, s string) []mdmd.Node {
	if s == "" {
		return out
	}
	if len(out) > 0 {
		if prev, ok := out[len(out)-1].(mdmd.RawText); ok {
			out[len(out)-1] = mdmd.RawText{Content: prev.Content + s}
			return out
		}
	}
	return append(out, mdmd.RawText{Content: s})
}

func isPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

func (c converter) lines(lines *text.Segments) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func alignment(a extast.Alignment) mdmd.Alignment {
	switch a {
	case extast.AlignLeft:
		return mdmd.AlignLeft
	case extast.AlignCenter:
		return mdmd.AlignCenter
	case extast.AlignRight:
		return mdmd.AlignRight
	default:
		return mdmd.AlignNone
	}
}

func one(n mdmd.Node) ([]mdmd.Node, error) {
	return []mdmd.Node{n}, nil
}

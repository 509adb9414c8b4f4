package mdmd

import (
	"fmt"
	"strings"
)

// Output is a rendered document: the package preamble and the body.
type Output struct {
	Preamble string
	Body     string
}

// String joins the preamble and the body, separated by a blank line when
// both are present.
func (o Output) String() string {
	if o.Preamble == "" {
		return o.Body
	}
	if o.Body == "" {
		return o.Preamble
	}
	return o.Preamble + "\n" + o.Body
}

// Convert renders n with a fresh RenderContext and returns the body along
// with the preamble for every package the body requires.
func Convert(n Node, opts ...Option) (Output, error) {
	c := NewRenderContext(opts...)
	body, err := Render(c, n)
	if err != nil {
		return Output{}, err
	}
	return Output{Preamble: c.Packages.Preamble(), Body: body}, nil
}

// Render renders n and its descendants depth-first into one string,
// registering required packages in c. Errors carry the path of the node
// that failed.
func Render(c *RenderContext, n Node) (string, error) {
	if c.Packages == nil {
		c.Packages = &Packages{}
	}
	if len(c.suppress) == 0 {
		c.suppress = []bool{false}
	}
	if n == nil {
		return "", fmt.Errorf("render: nil node: %w", ErrUnknownNodeKind)
	}
	s, err := c.render(n)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", n.Kind(), err)
	}
	return s, nil
}

func (c *RenderContext) render(node Node) (string, error) {
	switch n := node.(type) {
	case Document:
		return c.renderChildren(n.Children)

	case Heading:
		inner, err := c.renderChildren(n.Children)
		if err != nil {
			return "", err
		}
		level := min(max(n.Level, 1), 10)
		return strings.Repeat("#", level) + " " + inner + "\n", nil

	case Paragraph:
		inner, err := c.renderChildren(n.Children)
		if err != nil {
			return "", err
		}
		if c.Suppressed() {
			return inner, nil
		}
		return inner + "\n", nil

	case Quote:
		inner, err := c.renderChildren(n.Children)
		if err != nil {
			return "", err
		}
		return "\n" + prefixLines(inner, "> ") + "\n\n", nil

	case List:
		c.push(!n.Loose)
		inner, err := c.renderChildren(n.Children)
		c.pop()
		if err != nil {
			return "", err
		}
		return "\n\n" + inner + "\n", nil

	case ListItem:
		inner, err := c.renderChildren(n.Children)
		if err != nil {
			return "", err
		}
		return "- " + inner + "\n", nil

	case Table:
		return c.renderTable(n)

	case TableRow:
		return c.renderRow(n)

	case TableCell:
		return c.renderChildren(n.Children)

	case CodeBlock:
		c.Packages.Register(PackageListings)
		return "\n```" + n.Language + "\n" + c.text(n.Content, false) + "```\n", nil

	case ThematicBreak:
		return "---\n", nil

	case LineBreak:
		if n.Soft {
			return "\n", nil
		}
		return "\\newline\n", nil

	case RawText:
		return c.text(n.Content, true), nil

	case Strong:
		return c.wrap(n.Children, "**", "**")

	case Emphasis:
		return c.wrap(n.Children, "*", "*")

	case InlineCode:
		return c.wrap(n.Children, "``` ", " ```")

	case Strikethrough:
		c.Packages.Register(PackageStrikethrough, "normalem")
		return c.wrap(n.Children, "~~", "~~")

	case Image:
		c.Packages.Register(PackageGraphics)
		return "![](" + n.Src + ")", nil

	case Link:
		c.Packages.Register(PackageHyperlink)
		inner, err := c.renderChildren(n.Children)
		if err != nil {
			return "", err
		}
		return "[" + inner + "](" + n.Target + ")", nil

	case AutoLink:
		// Auto-links are dropped from the output.
		return "", nil

	case Math:
		return c.text(n.Content, false), nil

	case EscapeSequence:
		return c.renderChildren(n.Children)

	default:
		return "", fmt.Errorf("%T: %w", node, ErrUnknownNodeKind)
	}
}

// renderChildren concatenates the renders of children with no separator.
func (c *RenderContext) renderChildren(children []Node) (string, error) {
	var b strings.Builder
	for i, child := range children {
		if child == nil {
			return "", fmt.Errorf("child %d: nil node: %w", i, ErrUnknownNodeKind)
		}
		s, err := c.render(child)
		if err != nil {
			return "", fmt.Errorf("%s[%d]: %w", child.Kind(), i, err)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (c *RenderContext) wrap(children []Node, open, closing string) (string, error) {
	inner, err := c.renderChildren(children)
	if err != nil {
		return "", err
	}
	return open + inner + closing, nil
}

// text rewrites embedded image tags and, if escape is set, escapes
// reserved characters. The rewrite applies in verbatim contexts too.
func (c *RenderContext) text(s string, escape bool) string {
	s = c.images.Rewrite(s)
	if escape {
		return Escape(s)
	}
	return s
}

func (c *RenderContext) renderTable(t Table) (string, error) {
	var head string
	if t.Header != nil {
		var err error
		if head, err = c.renderRow(*t.Header); err != nil {
			return "", fmt.Errorf("header: %w", err)
		}
	}
	body, err := c.renderChildren(t.Children)
	if err != nil {
		return "", err
	}
	align, err := alignRow(t.Alignments)
	if err != nil {
		return "", err
	}
	return "\n" + head + align + "\n" + body + "\n", nil
}

func (c *RenderContext) renderRow(r TableRow) (string, error) {
	cells := make([]string, len(r.Children))
	for i, child := range r.Children {
		if child == nil {
			return "", fmt.Errorf("cell %d: nil node: %w", i, ErrUnknownNodeKind)
		}
		s, err := c.render(child)
		if err != nil {
			return "", fmt.Errorf("%s[%d]: %w", child.Kind(), i, err)
		}
		cells[i] = s
	}
	return "|" + strings.Join(cells, "|") + "|\n", nil
}

// alignRow returns the delimiter row for a table, or "" when every column
// has the default alignment.
func alignRow(aligns []Alignment) (string, error) {
	markers := make([]string, len(aligns))
	aligned := false
	for i, a := range aligns {
		m, err := a.marker()
		if err != nil {
			return "", fmt.Errorf("column %d: %w", i, err)
		}
		markers[i] = m
		if a != AlignNone {
			aligned = true
		}
	}
	if !aligned {
		return "", nil
	}
	return "|" + strings.Join(markers, "|") + "|", nil
}

// prefixLines prepends prefix to every line of s. A trailing newline
// starts a final, empty line, which is prefixed as well.
func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Package goldmark parses markdown with goldmark and converts the result
// into an mdmd document tree. GFM tables and strikethrough are enabled.
package goldmark

import (
	"github.com/fwojciec/mdmd"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Interface compliance check.
var _ mdmd.Parser = Parser{}

// Parser implements mdmd.Parser. The zero value is ready to use.
type Parser struct{}

// Parse parses markdown source into an mdmd.Document.
func (Parser) Parse(source []byte) (mdmd.Node, error) {
	return Parse(source)
}

// Parse parses markdown source into an mdmd.Document. Nodes goldmark
// produces that have no mdmd counterpart fail with mdmd.ErrUnknownNodeKind.
func Parse(source []byte) (mdmd.Node, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))
	c := converter{source: source}
	children, err := c.children(doc)
	if err != nil {
		return nil, err
	}
	return mdmd.Document{Children: children}, nil
}

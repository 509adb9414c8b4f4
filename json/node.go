package json

import (
	"fmt"

	"github.com/fwojciec/mdmd"
)

// nodeDTO is the JSON representation of a Node with a type discriminator.
// Only the fields of the node's kind are set.
type nodeDTO struct {
	Type       string    `json:"type"`
	Level      *int      `json:"level,omitempty"`
	Loose      *bool     `json:"loose,omitempty"`
	Ordered    *bool     `json:"ordered,omitempty"`
	Start      *int      `json:"start,omitempty"`
	Language   *string   `json:"language,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Soft       *bool     `json:"soft,omitempty"`
	Src        *string   `json:"src,omitempty"`
	Target     *string   `json:"target,omitempty"`
	Title      *string   `json:"title,omitempty"`
	URL        *string   `json:"url,omitempty"`
	Email      *bool     `json:"email,omitempty"`
	Alignments []string  `json:"alignments,omitempty"`
	Header     *nodeDTO  `json:"header,omitempty"`
	Children   []nodeDTO `json:"children,omitempty"`
}

func marshalNode(n mdmd.Node) (nodeDTO, error) {
	var dto nodeDTO
	switch v := n.(type) {
	case mdmd.Document:
		dto.Type = "document"
	case mdmd.Heading:
		dto.Type = "heading"
		dto.Level = &v.Level
	case mdmd.Paragraph:
		dto.Type = "paragraph"
	case mdmd.Quote:
		dto.Type = "quote"
	case mdmd.List:
		dto.Type = "list"
		dto.Loose = &v.Loose
		dto.Ordered = &v.Ordered
		dto.Start = &v.Start
	case mdmd.ListItem:
		dto.Type = "list_item"
	case mdmd.Table:
		dto.Type = "table"
		for _, a := range v.Alignments {
			dto.Alignments = append(dto.Alignments, a.String())
		}
		if v.Header != nil {
			header, err := marshalNode(*v.Header)
			if err != nil {
				return nodeDTO{}, fmt.Errorf("header: %w", err)
			}
			dto.Header = &header
		}
	case mdmd.TableRow:
		dto.Type = "table_row"
	case mdmd.TableCell:
		dto.Type = "table_cell"
	case mdmd.CodeBlock:
		dto.Type = "code_block"
		dto.Language = &v.Language
		dto.Content = &v.Content
	case mdmd.ThematicBreak:
		dto.Type = "thematic_break"
	case mdmd.LineBreak:
		dto.Type = "line_break"
		dto.Soft = &v.Soft
	case mdmd.RawText:
		dto.Type = "raw_text"
		dto.Content = &v.Content
	case mdmd.Strong:
		dto.Type = "strong"
	case mdmd.Emphasis:
		dto.Type = "emphasis"
	case mdmd.InlineCode:
		dto.Type = "inline_code"
	case mdmd.Strikethrough:
		dto.Type = "strikethrough"
	case mdmd.Image:
		dto.Type = "image"
		dto.Src = &v.Src
		dto.Title = &v.Title
	case mdmd.Link:
		dto.Type = "link"
		dto.Target = &v.Target
		dto.Title = &v.Title
	case mdmd.AutoLink:
		dto.Type = "auto_link"
		dto.URL = &v.URL
		dto.Email = &v.Email
	case mdmd.Math:
		dto.Type = "math"
		dto.Content = &v.Content
	case mdmd.EscapeSequence:
		dto.Type = "escape_sequence"
	default:
		return nodeDTO{}, fmt.Errorf("node type %T: %w", n, mdmd.ErrUnknownNodeKind)
	}
	children, err := marshalNodes(mdmd.Children(n))
	if err != nil {
		return nodeDTO{}, err
	}
	dto.Children = children
	return dto, nil
}

func marshalNodes(nodes []mdmd.Node) ([]nodeDTO, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	result := make([]nodeDTO, len(nodes))
	for i, n := range nodes {
		dto, err := marshalNode(n)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		result[i] = dto
	}
	return result, nil
}

func unmarshalNode(dto nodeDTO) (mdmd.Node, error) {
	children, err := unmarshalNodes(dto.Children)
	if err != nil {
		return nil, err
	}
	switch dto.Type {
	case "document":
		return mdmd.Document{Children: children}, nil
	case "heading":
		return mdmd.Heading{Level: deref(dto.Level), Children: children}, nil
	case "paragraph":
		return mdmd.Paragraph{Children: children}, nil
	case "quote":
		return mdmd.Quote{Children: children}, nil
	case "list":
		return mdmd.List{
			Loose:    deref(dto.Loose),
			Ordered:  deref(dto.Ordered),
			Start:    deref(dto.Start),
			Children: children,
		}, nil
	case "list_item":
		return mdmd.ListItem{Children: children}, nil
	case "table":
		return unmarshalTable(dto, children)
	case "table_row":
		return mdmd.TableRow{Children: children}, nil
	case "table_cell":
		return mdmd.TableCell{Children: children}, nil
	case "code_block":
		return mdmd.CodeBlock{Language: deref(dto.Language), Content: deref(dto.Content)}, nil
	case "thematic_break":
		return mdmd.ThematicBreak{}, nil
	case "line_break":
		return mdmd.LineBreak{Soft: deref(dto.Soft)}, nil
	case "raw_text":
		return mdmd.RawText{Content: deref(dto.Content)}, nil
	case "strong":
		return mdmd.Strong{Children: children}, nil
	case "emphasis":
		return mdmd.Emphasis{Children: children}, nil
	case "inline_code":
		return mdmd.InlineCode{Children: children}, nil
	case "strikethrough":
		return mdmd.Strikethrough{Children: children}, nil
	case "image":
		return mdmd.Image{Src: deref(dto.Src), Title: deref(dto.Title), Children: children}, nil
	case "link":
		return mdmd.Link{Target: deref(dto.Target), Title: deref(dto.Title), Children: children}, nil
	case "auto_link":
		return mdmd.AutoLink{URL: deref(dto.URL), Email: deref(dto.Email)}, nil
	case "math":
		return mdmd.Math{Content: deref(dto.Content)}, nil
	case "escape_sequence":
		return mdmd.EscapeSequence{Children: children}, nil
	default:
		return nil, fmt.Errorf("node type %q: %w", dto.Type, mdmd.ErrUnknownNodeKind)
	}
}

func unmarshalTable(dto nodeDTO, children []mdmd.Node) (mdmd.Node, error) {
	t := mdmd.Table{Children: children}
	for i, s := range dto.Alignments {
		a, err := mdmd.ParseAlignment(s)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		t.Alignments = append(t.Alignments, a)
	}
	if dto.Header != nil {
		n, err := unmarshalNode(*dto.Header)
		if err != nil {
			return nil, fmt.Errorf("header: %w", err)
		}
		row, ok := n.(mdmd.TableRow)
		if !ok {
			return nil, fmt.Errorf("header: node type %q is not a table row: %w", dto.Header.Type, mdmd.ErrUnknownNodeKind)
		}
		t.Header = &row
	}
	return t, nil
}

func unmarshalNodes(dtos []nodeDTO) ([]mdmd.Node, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	result := make([]mdmd.Node, len(dtos))
	for i, dto := range dtos {
		n, err := unmarshalNode(dto)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		result[i] = n
	}
	return result, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

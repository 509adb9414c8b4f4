package mdmd

// Node is a sealed interface representing an element of a parsed document.
// The unexported marker method prevents external implementations, so the
// set of kinds below is closed. Kind() names the variant for diagnostics.
type Node interface {
	isNode()
	Kind() string
}

// Document is the root of a parsed document.
type Document struct {
	Children []Node
}

func (Document) isNode() {}

// Kind returns "Document".
func (Document) Kind() string { return "Document" }

// Heading is an ATX or setext heading. Level is 1-based.
type Heading struct {
	Level    int
	Children []Node
}

func (Heading) isNode() {}

// Kind returns "Heading".
func (Heading) Kind() string { return "Heading" }

// Paragraph is a block of inline content.
type Paragraph struct {
	Children []Node
}

func (Paragraph) isNode() {}

// Kind returns "Paragraph".
func (Paragraph) Kind() string { return "Paragraph" }

// Quote is a block quote.
type Quote struct {
	Children []Node
}

func (Quote) isNode() {}

// Kind returns "Quote".
func (Quote) Kind() string { return "Quote" }

// List is an ordered or unordered list. Loose lists separate their items
// with blank lines; tight lists do not. Start is the first number of an
// ordered list and is ignored for unordered ones.
type List struct {
	Loose    bool
	Ordered  bool
	Start    int
	Children []Node
}

func (List) isNode() {}

// Kind returns "List".
func (List) Kind() string { return "List" }

// ListItem is a single item of a List.
type ListItem struct {
	Children []Node
}

func (ListItem) isNode() {}

// Kind returns "ListItem".
func (ListItem) Kind() string { return "ListItem" }

// Table is a GFM table. Header is optional. Children are the body rows.
// Alignments holds one entry per column.
type Table struct {
	Header     *TableRow
	Alignments []Alignment
	Children   []Node
}

func (Table) isNode() {}

// Kind returns "Table".
func (Table) Kind() string { return "Table" }

// TableRow is a row of table cells.
type TableRow struct {
	Children []Node
}

func (TableRow) isNode() {}

// Kind returns "TableRow".
func (TableRow) Kind() string { return "TableRow" }

// TableCell is a single cell of a TableRow.
type TableCell struct {
	Children []Node
}

func (TableCell) isNode() {}

// Kind returns "TableCell".
func (TableCell) Kind() string { return "TableCell" }

// CodeBlock is a fenced or indented code block. Content is kept verbatim,
// including its trailing newline.
type CodeBlock struct {
	Language string
	Content  string
}

func (CodeBlock) isNode() {}

// Kind returns "CodeBlock".
func (CodeBlock) Kind() string { return "CodeBlock" }

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

func (ThematicBreak) isNode() {}

// Kind returns "ThematicBreak".
func (ThematicBreak) Kind() string { return "ThematicBreak" }

// LineBreak is a soft or hard line break inside inline content.
type LineBreak struct {
	Soft bool
}

func (LineBreak) isNode() {}

// Kind returns "LineBreak".
func (LineBreak) Kind() string { return "LineBreak" }

// RawText is a leaf of literal text. Content may contain embedded HTML
// image markup, which is rewritten during rendering.
type RawText struct {
	Content string
}

func (RawText) isNode() {}

// Kind returns "RawText".
func (RawText) Kind() string { return "RawText" }

// Strong is strongly emphasized inline content.
type Strong struct {
	Children []Node
}

func (Strong) isNode() {}

// Kind returns "Strong".
func (Strong) Kind() string { return "Strong" }

// Emphasis is emphasized inline content.
type Emphasis struct {
	Children []Node
}

func (Emphasis) isNode() {}

// Kind returns "Emphasis".
func (Emphasis) Kind() string { return "Emphasis" }

// InlineCode is a code span.
type InlineCode struct {
	Children []Node
}

func (InlineCode) isNode() {}

// Kind returns "InlineCode".
func (InlineCode) Kind() string { return "InlineCode" }

// Strikethrough is struck-out inline content.
type Strikethrough struct {
	Children []Node
}

func (Strikethrough) isNode() {}

// Kind returns "Strikethrough".
func (Strikethrough) Kind() string { return "Strikethrough" }

// Image is an inline image. Children hold the alt text.
type Image struct {
	Src      string
	Title    string
	Children []Node
}

func (Image) isNode() {}

// Kind returns "Image".
func (Image) Kind() string { return "Image" }

// Link is an inline link.
type Link struct {
	Target   string
	Title    string
	Children []Node
}

func (Link) isNode() {}

// Kind returns "Link".
func (Link) Kind() string { return "Link" }

// AutoLink is a bare URL or email address in angle brackets.
type AutoLink struct {
	URL   string
	Email bool
}

func (AutoLink) isNode() {}

// Kind returns "AutoLink".
func (AutoLink) Kind() string { return "AutoLink" }

// Math is a math span. Content includes its delimiters.
type Math struct {
	Content string
}

func (Math) isNode() {}

// Kind returns "Math".
func (Math) Kind() string { return "Math" }

// EscapeSequence is a backslash escape. Children hold the escaped text.
type EscapeSequence struct {
	Children []Node
}

func (EscapeSequence) isNode() {}

// Kind returns "EscapeSequence".
func (EscapeSequence) Kind() string { return "EscapeSequence" }

// Children returns the child nodes of n, or nil for leaf kinds.
// A Table's header row is not included.
func Children(n Node) []Node {
	switch n := n.(type) {
	case Document:
		return n.Children
	case Heading:
		return n.Children
	case Paragraph:
		return n.Children
	case Quote:
		return n.Children
	case List:
		return n.Children
	case ListItem:
		return n.Children
	case Table:
		return n.Children
	case TableRow:
		return n.Children
	case TableCell:
		return n.Children
	case Strong:
		return n.Children
	case Emphasis:
		return n.Children
	case InlineCode:
		return n.Children
	case Strikethrough:
		return n.Children
	case Image:
		return n.Children
	case Link:
		return n.Children
	case EscapeSequence:
		return n.Children
	default:
		return nil
	}
}

// Interface compliance checks.
var (
	_ Node = Document{}
	_ Node = Heading{}
	_ Node = Paragraph{}
	_ Node = Quote{}
	_ Node = List{}
	_ Node = ListItem{}
	_ Node = Table{}
	_ Node = TableRow{}
	_ Node = TableCell{}
	_ Node = CodeBlock{}
	_ Node = ThematicBreak{}
	_ Node = LineBreak{}
	_ Node = RawText{}
	_ Node = Strong{}
	_ Node = Emphasis{}
	_ Node = InlineCode{}
	_ Node = Strikethrough{}
	_ Node = Image{}
	_ Node = Link{}
	_ Node = AutoLink{}
	_ Node = Math{}
	_ Node = EscapeSequence{}
)

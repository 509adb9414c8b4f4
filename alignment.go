package mdmd

import "fmt"

// Alignment is the horizontal alignment of a table column.
type Alignment int

// Alignment values. AlignNone is the zero value.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the lowercase name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignNone:
		return "none"
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment converts a name produced by String back to an Alignment.
// The empty string parses as AlignNone.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "none":
		return AlignNone, nil
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignNone, fmt.Errorf("%q: %w", s, ErrInvalidAlignment)
	}
}

// marker returns the delimiter-row cell for a column.
func (a Alignment) marker() (string, error) {
	switch a {
	case AlignNone, AlignLeft:
		return ":-----", nil
	case AlignCenter:
		return ":----:", nil
	case AlignRight:
		return "-----:", nil
	default:
		return "", fmt.Errorf("%d: %w", int(a), ErrInvalidAlignment)
	}
}

package mdmd

// Parser builds a document tree from source bytes.
type Parser interface {
	Parse(source []byte) (Node, error)
}

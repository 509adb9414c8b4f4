package mdmd

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrUnknownNodeKind indicates a node the renderer or a parser adapter
	// does not recognize, usually a version mismatch with the parser.
	ErrUnknownNodeKind = errors.New("unknown node kind")

	// ErrInvalidAlignment indicates an unrecognized table column alignment.
	ErrInvalidAlignment = errors.New("invalid alignment")

	// ErrUnsupportedVersion indicates a serialized tree with a wire format
	// version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Package json reads and writes mdmd document trees in a versioned JSON
// wire format, so trees built by any external parser can be rendered.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/mdmd"
)

// Version is the wire format version written by Marshal.
const Version = 1

// Interface compliance check.
var _ mdmd.Parser = Parser{}

// envelope is the v1 wire format for a persisted tree.
type envelope struct {
	Version int     `json:"version"`
	Root    nodeDTO `json:"root"`
}

// Marshal serializes a tree to JSON in v1 envelope format.
func Marshal(n mdmd.Node) ([]byte, error) {
	root, err := marshalNode(n)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope{Version: Version, Root: root}, "", "  ")
}

// Unmarshal deserializes a tree from JSON in v1 envelope format.
func Unmarshal(data []byte) (mdmd.Node, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("envelope version %d: %w", env.Version, mdmd.ErrUnsupportedVersion)
	}
	return unmarshalNode(env.Root)
}

// Parser implements mdmd.Parser for the JSON wire format.
type Parser struct{}

// Parse deserializes a tree from source.
func (Parser) Parse(source []byte) (mdmd.Node, error) {
	return Unmarshal(source)
}

// Save writes a tree to a JSON file, creating parent directories as needed.
func Save(path string, n mdmd.Node) error {
	data, err := Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a tree from a JSON file.
func Load(path string) (mdmd.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Unmarshal(data)
}

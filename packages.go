package mdmd

import (
	"slices"
	"strings"
)

// Package names registered by the renderer.
const (
	PackageListings      = "listings"
	PackageStrikethrough = "ulem"
	PackageGraphics      = "graphicx"
	PackageHyperlink     = "hyperref"
)

// Packages is an insertion-ordered registry of package requirements
// collected while rendering. The zero value is ready to use.
type Packages struct {
	names   []string
	options map[string][]string
}

// Register records that the document requires package name with the given
// options. Registering a name again replaces its options but keeps its
// first position.
func (p *Packages) Register(name string, options ...string) {
	if p.options == nil {
		p.options = make(map[string][]string)
	}
	if _, ok := p.options[name]; !ok {
		p.names = append(p.names, name)
	}
	p.options[name] = slices.Clone(options)
}

// Names returns the registered package names in insertion order.
func (p *Packages) Names() []string {
	return slices.Clone(p.names)
}

// Options returns the options registered for name.
func (p *Packages) Options(name string) ([]string, bool) {
	opts, ok := p.options[name]
	return slices.Clone(opts), ok
}

// Len returns the number of registered packages.
func (p *Packages) Len() int {
	return len(p.names)
}

// Preamble returns one \usepackage line per registered package, in
// insertion order. Options, when present, are comma-joined in brackets.
func (p *Packages) Preamble() string {
	var b strings.Builder
	for _, name := range p.names {
		b.WriteString(`\usepackage`)
		if opts := p.options[name]; len(opts) > 0 {
			b.WriteByte('[')
			b.WriteString(strings.Join(opts, ","))
			b.WriteByte(']')
		}
		b.WriteByte('{')
		b.WriteString(name)
		b.WriteString("}\n")
	}
	return b.String()
}

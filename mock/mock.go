// Package mock provides test doubles for mdmd interfaces using function fields.
package mock

import "github.com/fwojciec/mdmd"

// Interface compliance check.
var _ mdmd.Parser = (*Parser)(nil)

// Parser is a test double for mdmd.Parser.
// Set ParseFn before calling Parse.
type Parser struct {
	ParseFn func(source []byte) (mdmd.Node, error)
}

// Parse delegates to ParseFn.
func (p *Parser) Parse(source []byte) (mdmd.Node, error) {
	return p.ParseFn(source)
}

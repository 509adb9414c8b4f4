package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mdmd"
	"github.com/fwojciec/mdmd/goldmark"
	mdmdjson "github.com/fwojciec/mdmd/json"
)

// parserFor selects the parser for an input. In auto mode, files ending
// in .json are read as serialized trees and everything else as markdown.
func parserFor(format, path string) (mdmd.Parser, error) {
	switch format {
	case "markdown", "md":
		return goldmark.Parser{}, nil
	case "json":
		return mdmdjson.Parser{}, nil
	case "auto", "":
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return mdmdjson.Parser{}, nil
		}
		return goldmark.Parser{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

func convertFile(ctx context.Context, path, format string, opts []mdmd.Option) (mdmd.Output, error) {
	p, err := parserFor(format, path)
	if err != nil {
		return mdmd.Output{}, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return mdmd.Output{}, fmt.Errorf("read %s: %w", path, err)
	}
	return convert(ctx, path, src, p, opts)
}

// convert parses src and renders it with a fresh context.
func convert(ctx context.Context, name string, src []byte, p mdmd.Parser, opts []mdmd.Option) (mdmd.Output, error) {
	logger := loggerFromContext(ctx)
	doc, err := p.Parse(src)
	if err != nil {
		return mdmd.Output{}, fmt.Errorf("parse %s: %w", name, err)
	}
	out, err := mdmd.Convert(doc, opts...)
	if err != nil {
		return mdmd.Output{}, fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("Rendered document", "input", name, "bytes", len(out.Body))
	return out, nil
}

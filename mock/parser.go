package mock

import (
	"context"
	"io"

	"github.com/apidex/apidex"
)

var _ apidex.Parser = (*Parser)(nil)

// Parser is a mock implementation of apidex.Parser.
type Parser struct {
	ParseFn     func(ctx context.Context, r io.Reader) (*apidex.ParseResult, error)
	ParseFileFn func(ctx context.Context, path string) (*apidex.ParseResult, error)
}

func (p *Parser) Parse(ctx context.Context, r io.Reader) (*apidex.ParseResult, error) {
	return p.ParseFn(ctx, r)
}

func (p *Parser) ParseFile(ctx context.Context, path string) (*apidex.ParseResult, error) {
	return p.ParseFileFn(ctx, path)
}

package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/apidex/apidex"
)

// Ensure LoggingParser implements apidex.Parser.
var _ apidex.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with per-file logging.
type LoggingParser struct {
	next   apidex.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next apidex.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(ctx context.Context, r io.Reader) (res *apidex.ParseResult, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"members", memberCount(res),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(ctx, r)
}

// ParseFile delegates to the wrapped parser and logs the file path.
func (p *LoggingParser) ParseFile(ctx context.Context, path string) (res *apidex.ParseResult, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse file",
			"path", path,
			"members", memberCount(res),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseFile(ctx, path)
}

func memberCount(res *apidex.ParseResult) int {
	if res == nil {
		return 0
	}
	return len(res.Members)
}

package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/config"
	"github.com/usestring/harscope/internal/logging"
	"github.com/usestring/harscope/internal/mcp"
	"github.com/usestring/harscope/internal/mcp/tools"
	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/textquery"
)

// Server is the harscope MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin har_* tools over a loaded
// archive.
//
// The archive parameter is required and is treated as read-only.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(archive *har.Archive, opts ...Option) (*Server, error) {
	if archive == nil {
		return nil, fmt.Errorf("archive is required")
	}

	// Build configuration from options
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Load()
	}

	// Setup logging
	logCleanup := func() error { return nil }
	if !cfg.skipLoggingSetup {
		logCfg := logging.FromConfig(cfg.config)
		if cfg.logLevel != "" {
			logCfg.Level = cfg.logLevel
		}
		if cfg.logFile != "" {
			logCfg.FilePath = cfg.logFile
		}
		var err error
		logCleanup, err = logging.Setup(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to setup logging: %w", err)
		}
	}

	// Create infrastructure
	patterns, err := cache.NewPatternCache(cfg.config.PatternCacheSize)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}
	extractor, err := extract.New(cfg.config.Extractor, patterns)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}
	pairs := extract.NewRegexExtractor(patterns)
	textQueryEngine := textquery.NewEngine(patterns)

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Archive:   archive,
		Config:    cfg.config,
		Patterns:  patterns,
		Extractor: extractor,
		Pairs:     pairs,
		TextQuery: textQueryEngine,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Archive:   archive,
		Config:    cfg.config,
		Patterns:  patterns,
		Extractor: extractor,
		Pairs:     pairs,
		TextQuery: textQueryEngine,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if cfg.version != "" {
		internalOpts = append(internalOpts, mcp.WithVersion(cfg.version))
	}
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	// Create internal server
	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP SDK server, for in-process transports
// and tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}

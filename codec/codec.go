// Package codec reads JSON and YAML documents into value trees and writes
// them back, preserving object key order in both directions.
//
// The normalization passes operate on in-memory trees only; codec is the
// collaborator that turns bytes into a tree and back.
//
// # Quick Start
//
//	result, err := codec.ParseWithOptions(codec.WithFilePath("feed.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := codec.MarshalJSONIndent(result.Value, "", "  ")
//
// # Limits
//
// Trees are processed recursively, so deeply nested input could exhaust the
// stack in later passes. The parser rejects documents nested deeper than
// MaxDepth (DefaultMaxDepth unless configured) with a
// *normerrors.ResourceLimitError, and inputs larger than MaxInputSize.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/normjson/internal/options"
	"github.com/erraggy/normjson/normerrors"
	"github.com/erraggy/normjson/value"
)

const (
	// DefaultMaxDepth is the default maximum nesting depth of arrays and objects.
	DefaultMaxDepth = 1000
	// DefaultMaxInputSize is the default maximum input size in bytes (100 MiB).
	DefaultMaxInputSize int64 = 100 << 20
)

// ParseResult contains a decoded document and information about its source
type ParseResult struct {
	// Value is the root of the decoded tree
	Value *value.Value
	// SourcePath is the path the document was read from, or a caller supplied name
	SourcePath string
	// SourceFormat is the format the document was decoded from
	SourceFormat SourceFormat
	// SourceSize is the size of the input in bytes, before decompression
	SourceSize int64
	// Compression reports whether the input was gzip or zstd compressed
	Compression Compression
	// LoadTime is the time spent reading and decoding
	LoadTime time.Duration
	// Stats describes the decoded tree
	Stats value.TreeStats
}

// Parser decodes documents into value trees
type Parser struct {
	// Format forces the input format. SourceFormatUnknown (the zero value
	// returned by New) detects it from the file extension or the content.
	Format SourceFormat
	// MaxDepth is the maximum nesting depth of arrays and objects.
	// Zero means DefaultMaxDepth; negative disables the check.
	MaxDepth int
	// MaxInputSize is the maximum accepted input size in bytes.
	// Zero means DefaultMaxInputSize; negative disables the check.
	MaxInputSize int64
	// Logger receives debug output. Nil means no logging.
	Logger Logger
}

// New creates a new Parser with default settings
func New() *Parser {
	return &Parser{Format: SourceFormatUnknown}
}

func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

func (p *Parser) maxDepth() int {
	switch {
	case p.MaxDepth == 0:
		return DefaultMaxDepth
	case p.MaxDepth < 0:
		return 0
	default:
		return p.MaxDepth
	}
}

func (p *Parser) maxInputSize() int64 {
	switch {
	case p.MaxInputSize == 0:
		return DefaultMaxInputSize
	case p.MaxInputSize < 0:
		return 0
	default:
		return p.MaxInputSize
	}
}

// Parse reads and decodes the file at path
func (p *Parser) Parse(path string) (*ParseResult, error) {
	if limit := p.maxInputSize(); limit > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("codec: %w", err)
		}
		if info.Size() > limit {
			return nil, inputTooLarge(limit, info.Size())
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	format := p.Format
	if format == SourceFormatUnknown {
		format = detectFormatFromPath(path)
	}
	return p.decode(data, path, format)
}

// ParseReader reads and decodes a document from r
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	limit := p.maxInputSize()
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: reading input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, inputTooLarge(limit, 0)
	}
	return p.decode(data, "", p.Format)
}

// ParseBytes decodes a document held in memory
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if limit := p.maxInputSize(); limit > 0 && int64(len(data)) > limit {
		return nil, inputTooLarge(limit, int64(len(data)))
	}
	return p.decode(data, "", p.Format)
}

func inputTooLarge(limit, actual int64) error {
	return &normerrors.ResourceLimitError{
		ResourceType: "input_size",
		Limit:        limit,
		Actual:       actual,
		Message:      "input exceeds maximum size",
	}
}

func (p *Parser) decode(data []byte, path string, format SourceFormat) (*ParseResult, error) {
	start := time.Now()

	sourceSize := int64(len(data))
	data, compression, err := decompress(data, p.maxInputSize())
	if err != nil {
		var pe *normerrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, fmt.Errorf("codec: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &normerrors.ParseError{Path: path, Message: "empty document"}
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	var root *value.Value
	switch format {
	case SourceFormatJSON:
		root, err = decodeJSON(data, p.maxDepth())
	case SourceFormatYAML:
		root, err = decodeYAML(data, p.maxDepth())
	default:
		return nil, &normerrors.ConfigError{Option: "format", Value: format, Message: "unsupported source format"}
	}
	if err != nil {
		var pe *normerrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, fmt.Errorf("codec: %w", err)
	}

	result := &ParseResult{
		Value:        root,
		SourcePath:   path,
		SourceFormat: format,
		SourceSize:   sourceSize,
		Compression:  compression,
		LoadTime:     time.Since(start),
		Stats:        value.Stats(root),
	}
	p.log().Debug("decoded document",
		"path", path,
		"format", string(format),
		"size", result.SourceSize,
		"compression", string(compression),
		"nodes", result.Stats.Nodes,
		"depth", result.Stats.Depth,
	)
	return result, nil
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	format       SourceFormat
	maxDepth     int
	maxInputSize int64
	logger       Logger
	sourceName   *string
}

// ParseWithOptions decodes a document using functional options.
//
// Example:
//
//	result, err := codec.ParseWithOptions(
//	    codec.WithBytes(data),
//	    codec.WithFormat(codec.SourceFormatJSON),
//	    codec.WithMaxDepth(64),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("codec: invalid options: %w", err)
	}

	p := &Parser{
		Format:       cfg.format,
		MaxDepth:     cfg.maxDepth,
		MaxInputSize: cfg.maxInputSize,
		Logger:       cfg.logger,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{format: SourceFormatUnknown}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"WithFilePath, WithReader, or WithBytes",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file to read
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		if path == "" {
			return &normerrors.ConfigError{Option: "WithFilePath", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies a reader to decode from
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &normerrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies in-memory content to decode
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithFormat forces the source format instead of detecting it
func WithFormat(format SourceFormat) Option {
	return func(cfg *parseConfig) error {
		switch format {
		case SourceFormatUnknown, SourceFormatJSON, SourceFormatYAML:
			cfg.format = format
			return nil
		default:
			return &normerrors.ConfigError{Option: "WithFormat", Value: format, Message: "unsupported format"}
		}
	}
}

// WithMaxDepth sets the maximum nesting depth (0 uses DefaultMaxDepth, negative disables)
func WithMaxDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		cfg.maxDepth = depth
		return nil
	}
}

// WithMaxInputSize sets the maximum input size in bytes (0 uses DefaultMaxInputSize, negative disables)
func WithMaxInputSize(size int64) Option {
	return func(cfg *parseConfig) error {
		cfg.maxInputSize = size
		return nil
	}
}

// WithLogger sets the logger for debug output
func WithLogger(logger Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithSourceName overrides SourcePath in the result
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// ParseString decodes a JSON or YAML document held in a string.
func ParseString(s string) (*value.Value, error) {
	result, err := New().ParseBytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Marshal encodes v in the given format. JSON output is indented with two
// spaces; SourceFormatUnknown encodes JSON.
func Marshal(v *value.Value, format SourceFormat) ([]byte, error) {
	if format == SourceFormatYAML {
		return MarshalYAML(v)
	}
	return MarshalJSONIndent(v, "", "  ")
}

package normalizer

import (
	"fmt"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/internal/options"
	"github.com/erraggy/normjson/normerrors"
	"github.com/erraggy/normjson/value"
)

// Option is a function that configures a normalize operation
type Option func(*normalizeConfig) error

// normalizeConfig holds configuration for a normalize operation
type normalizeConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte
	value    *value.Value

	steps      []Step
	exact      bool
	format     codec.SourceFormat
	maxDepth   int
	logger     codec.Logger
	sourceName string
}

// NormalizeWithOptions normalizes a document using functional options.
//
// Example:
//
//	result, err := normalizer.NormalizeWithOptions(
//	    normalizer.WithBytes(data),
//	    normalizer.WithSteps(normalizer.StepMergeSimilar),
//	)
func NormalizeWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("normalizer: invalid options: %w", err)
	}

	n := &Normalizer{
		Steps:    cfg.steps,
		Relation: equivalence.CaseFolded,
		Format:   cfg.format,
		MaxDepth: cfg.maxDepth,
		Logger:   cfg.logger,
	}
	if cfg.exact {
		n.Relation = equivalence.Exact
	}

	if cfg.value != nil {
		result, err := n.Normalize(cfg.value)
		if err != nil {
			return nil, err
		}
		result.SourcePath = cfg.sourceName
		return result, nil
	}

	var parsed *codec.ParseResult
	if cfg.filePath != nil {
		parsed, err = n.parser().Parse(*cfg.filePath)
	} else {
		parsed, err = n.parser().ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, fmt.Errorf("normalizer: failed to parse document: %w", err)
	}
	if cfg.sourceName != "" {
		parsed.SourcePath = cfg.sourceName
	}
	return n.NormalizeParsed(parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*normalizeConfig, error) {
	cfg := &normalizeConfig{
		steps:  DefaultSteps(),
		format: codec.SourceFormatUnknown,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"WithFilePath, WithBytes, or WithValue",
		cfg.filePath != nil, cfg.bytes != nil, cfg.value != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a document file to normalize
func WithFilePath(path string) Option {
	return func(cfg *normalizeConfig) error {
		if path == "" {
			return &normerrors.ConfigError{Option: "WithFilePath", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies in-memory document content to normalize
func WithBytes(data []byte) Option {
	return func(cfg *normalizeConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithValue specifies an already decoded tree to normalize in place
func WithValue(v *value.Value) Option {
	return func(cfg *normalizeConfig) error {
		if v == nil {
			return &normerrors.ConfigError{Option: "WithValue", Message: "value cannot be nil"}
		}
		cfg.value = v
		return nil
	}
}

// WithSteps sets the steps to run, in order
func WithSteps(steps ...Step) Option {
	return func(cfg *normalizeConfig) error {
		if len(steps) == 0 {
			return &normerrors.ConfigError{Option: "WithSteps", Message: "at least one step is required"}
		}
		for _, s := range steps {
			if !s.Valid() {
				return &normerrors.ConfigError{Option: "WithSteps", Value: string(s), Message: "unknown step"}
			}
		}
		cfg.steps = steps
		return nil
	}
}

// WithExactDedupe makes the dedupe step use exact equality instead of
// case-insensitive content equality
func WithExactDedupe(exact bool) Option {
	return func(cfg *normalizeConfig) error {
		cfg.exact = exact
		return nil
	}
}

// WithFormat forces the input format instead of detecting it
func WithFormat(format codec.SourceFormat) Option {
	return func(cfg *normalizeConfig) error {
		cfg.format = format
		return nil
	}
}

// WithMaxDepth sets the maximum nesting depth accepted when decoding
func WithMaxDepth(depth int) Option {
	return func(cfg *normalizeConfig) error {
		cfg.maxDepth = depth
		return nil
	}
}

// WithLogger sets the logger for debug output
func WithLogger(logger codec.Logger) Option {
	return func(cfg *normalizeConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithSourceName overrides SourcePath in the result
func WithSourceName(name string) Option {
	return func(cfg *normalizeConfig) error {
		cfg.sourceName = name
		return nil
	}
}

package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/internal/fileutil"
	"github.com/erraggy/normjson/internal/pathutil"
	"github.com/erraggy/normjson/merger"
	"github.com/erraggy/normjson/normalizer"
	"github.com/erraggy/normjson/value"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// outputOptions controls how a resulting document is returned.
type outputOptions struct {
	Format string
	Path   string
}

type stepOutput struct {
	Step    string `json:"step"`
	Removed int    `json:"removed"`
}

type documentOutput struct {
	Steps         []stepOutput    `json:"steps,omitempty"`
	Removed       int             `json:"removed"`
	RootRemovable bool            `json:"root_removable,omitempty"`
	Before        value.TreeStats `json:"before"`
	After         value.TreeStats `json:"after"`
	Format        string          `json:"format"`
	WrittenTo     string          `json:"written_to,omitempty"`
	Document      string          `json:"document,omitempty"`
}

type pruneInput struct {
	Document     documentInput `json:"document" jsonschema:"The document to prune"`
	Empty        bool          `json:"empty,omitempty" jsonschema:"Also remove empty arrays and objects"`
	OutputFormat string        `json:"output_format,omitempty" jsonschema:"Output format: json or yaml (default: the input format)"`
	Output       string        `json:"output,omitempty"        jsonschema:"File path to write the resulting document. When set the document is not returned inline."`
}

type dedupeInput struct {
	Document     documentInput `json:"document" jsonschema:"The document to deduplicate"`
	Exact        bool          `json:"exact,omitempty" jsonschema:"Compare strings exactly instead of case-insensitively"`
	OutputFormat string        `json:"output_format,omitempty" jsonschema:"Output format: json or yaml (default: the input format)"`
	Output       string        `json:"output,omitempty"        jsonschema:"File path to write the resulting document. When set the document is not returned inline."`
}

type mergeSimilarInput struct {
	Document     documentInput `json:"document" jsonschema:"The document whose arrays are merged"`
	OutputFormat string        `json:"output_format,omitempty" jsonschema:"Output format: json or yaml (default: the input format)"`
	Output       string        `json:"output,omitempty"        jsonschema:"File path to write the resulting document. When set the document is not returned inline."`
}

type normalizeInput struct {
	Document     documentInput `json:"document" jsonschema:"The document to normalize"`
	Steps        []string      `json:"steps,omitempty" jsonschema:"Steps to run in order: prune-nulls, prune-empty, dedupe, merge-similar"`
	Exact        bool          `json:"exact,omitempty" jsonschema:"Dedupe with exact string comparison"`
	OutputFormat string        `json:"output_format,omitempty" jsonschema:"Output format: json or yaml (default: the input format)"`
	Output       string        `json:"output,omitempty"        jsonschema:"File path to write the resulting document. When set the document is not returned inline."`
}

type mergeObjectsInput struct {
	Left         documentInput `json:"left"  jsonschema:"The object whose keys the result keeps"`
	Right        documentInput `json:"right" jsonschema:"The object merged into left"`
	OutputFormat string        `json:"output_format,omitempty" jsonschema:"Output format: json or yaml (default: the input format)"`
	Output       string        `json:"output,omitempty"        jsonschema:"File path to write the resulting document. When set the document is not returned inline."`
}

func handlePrune(_ context.Context, _ *mcp.CallToolRequest, input pruneInput) (*mcp.CallToolResult, documentOutput, error) {
	step := normalizer.StepPruneNulls
	if input.Empty {
		step = normalizer.StepPruneEmpty
	}
	return runSteps(input.Document, []normalizer.Step{step}, false, outputOptions{Format: input.OutputFormat, Path: input.Output})
}

func handleDedupe(_ context.Context, _ *mcp.CallToolRequest, input dedupeInput) (*mcp.CallToolResult, documentOutput, error) {
	return runSteps(input.Document, []normalizer.Step{normalizer.StepDedupe}, input.Exact, outputOptions{Format: input.OutputFormat, Path: input.Output})
}

func handleMergeSimilar(_ context.Context, _ *mcp.CallToolRequest, input mergeSimilarInput) (*mcp.CallToolResult, documentOutput, error) {
	return runSteps(input.Document, []normalizer.Step{normalizer.StepMergeSimilar}, false, outputOptions{Format: input.OutputFormat, Path: input.Output})
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, documentOutput, error) {
	steps := cfg.DefaultSteps
	if len(input.Steps) > 0 {
		steps = make([]normalizer.Step, 0, len(input.Steps))
		for _, s := range input.Steps {
			step := normalizer.Step(s)
			if !step.Valid() {
				return errResult(fmt.Errorf("unknown step %q; valid steps: prune-nulls, prune-empty, dedupe, merge-similar", s)), documentOutput{}, nil
			}
			steps = append(steps, step)
		}
	}
	return runSteps(input.Document, steps, input.Exact || cfg.ExactDedupe, outputOptions{Format: input.OutputFormat, Path: input.Output})
}

func handleMergeObjects(_ context.Context, _ *mcp.CallToolRequest, input mergeObjectsInput) (*mcp.CallToolResult, documentOutput, error) {
	left, err := input.Left.resolve()
	if err != nil {
		return errResult(fmt.Errorf("left: %w", err)), documentOutput{}, nil
	}
	right, err := input.Right.resolve()
	if err != nil {
		return errResult(fmt.Errorf("right: %w", err)), documentOutput{}, nil
	}

	merged, err := merger.MergeObjects(left.Value, right.Value)
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}

	output := documentOutput{
		Before: left.Stats,
		After:  value.Stats(merged),
	}
	if err := writeDocument(&output, merged, left.SourceFormat, outputOptions{Format: input.OutputFormat, Path: input.Output}); err != nil {
		return errResult(err), documentOutput{}, nil
	}
	return nil, output, nil
}

// runSteps decodes doc, runs steps over it and renders the result.
func runSteps(doc documentInput, steps []normalizer.Step, exact bool, out outputOptions) (*mcp.CallToolResult, documentOutput, error) {
	parsed, err := doc.resolve()
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}

	n := &normalizer.Normalizer{Steps: steps, Relation: equivalence.CaseFolded}
	if exact {
		n.Relation = equivalence.Exact
	}
	result, err := n.NormalizeParsed(parsed)
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}

	output := documentOutput{
		Steps:         make([]stepOutput, 0, len(result.Applied)),
		Removed:       result.Removed(),
		RootRemovable: result.RootRemovable,
		Before:        result.Before,
		After:         result.After,
	}
	for _, s := range result.Applied {
		output.Steps = append(output.Steps, stepOutput{Step: string(s.Step), Removed: s.Removed})
	}
	if err := writeDocument(&output, result.Value, result.SourceFormat, out); err != nil {
		return errResult(err), documentOutput{}, nil
	}
	return nil, output, nil
}

// writeDocument renders v into output, or to the requested file.
func writeDocument(output *documentOutput, v *value.Value, source codec.SourceFormat, opts outputOptions) error {
	format := source
	if opts.Format != "" {
		f, err := codec.ParseSourceFormat(opts.Format)
		if err != nil {
			return err
		}
		if f != codec.SourceFormatUnknown {
			format = f
		}
	}
	if format != codec.SourceFormatYAML {
		format = codec.SourceFormatJSON
	}

	data, err := codec.Marshal(v, format)
	if err != nil {
		return err
	}
	output.Format = string(format)

	if opts.Path != "" {
		cleanPath, err := pathutil.SanitizeOutputPath(opts.Path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cleanPath, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		output.WrittenTo = cleanPath
		return nil
	}
	output.Document = string(data)
	return nil
}

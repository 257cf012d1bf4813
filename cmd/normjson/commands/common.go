// Package commands provides CLI command handlers for normjson.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/internal/cliutil"
	"github.com/erraggy/normjson/internal/fileutil"
	"github.com/erraggy/normjson/internal/pathutil"
	"github.com/erraggy/normjson/normalizer"
	"github.com/erraggy/normjson/value"
)

// Output format constants
const (
	FormatSource = "source"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Globals is bound into every command's Run method.
type Globals struct {
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  codec.Logger
}

func (g *Globals) ctx() context.Context {
	if g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Globals) logger() codec.Logger {
	if g.Logger == nil {
		return codec.NopLogger{}
	}
	return g.Logger
}

// InputFlags control how documents are decoded.
type InputFlags struct {
	InputFormat  string `name:"input-format" help:"Input format: auto, json, or yaml." enum:"auto,json,yaml" default:"auto" env:"NORMJSON_INPUT_FORMAT"`
	MaxDepth     int    `name:"max-depth" help:"Maximum nesting depth (0 uses the default, negative disables the limit)." env:"NORMJSON_MAX_DEPTH"`
	MaxInputSize int64  `name:"max-input-size" help:"Maximum input size in bytes (0 uses the default, negative disables the limit)." env:"NORMJSON_MAX_INPUT_SIZE"`
}

func (f InputFlags) parser(g *Globals) (*codec.Parser, error) {
	format, err := codec.ParseSourceFormat(f.InputFormat)
	if err != nil {
		return nil, err
	}
	p := codec.New()
	p.Format = format
	p.MaxDepth = f.MaxDepth
	p.MaxInputSize = f.MaxInputSize
	p.Logger = g.logger()
	return p, nil
}

// read decodes the document at path, or stdin when path is "-".
func (f InputFlags) read(g *Globals, path string) (*codec.ParseResult, error) {
	p, err := f.parser(g)
	if err != nil {
		return nil, err
	}
	if path == StdinFilePath {
		result, err := p.ParseReader(g.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		result.SourcePath = StdinFilePath
		return result, nil
	}
	result, err := p.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return result, nil
}

// OutputFlags control how results are encoded and where they go.
type OutputFlags struct {
	Output string `short:"o" help:"Write the result to this path instead of stdout."`
	Format string `short:"f" help:"Output format: source (same as input), json, or yaml." enum:"source,json,yaml" default:"source" env:"NORMJSON_FORMAT"`
	Indent int    `help:"JSON indentation in spaces (0 for compact output)." default:"2" env:"NORMJSON_INDENT"`
	Quiet  bool   `short:"q" help:"Suppress the summary written to stderr."`
}

// format resolves the output format for a document decoded as source.
func (f OutputFlags) format(source codec.SourceFormat) codec.SourceFormat {
	switch f.Format {
	case FormatJSON:
		return codec.SourceFormatJSON
	case FormatYAML:
		return codec.SourceFormatYAML
	}
	if source == codec.SourceFormatYAML {
		return codec.SourceFormatYAML
	}
	return codec.SourceFormatJSON
}

// encode renders v in the given format, newline terminated.
func (f OutputFlags) encode(v *value.Value, format codec.SourceFormat) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case format == codec.SourceFormatYAML:
		return codec.MarshalYAML(v)
	case f.Indent > 0:
		data, err = codec.MarshalJSONIndent(v, "", strings.Repeat(" ", f.Indent))
	default:
		data, err = codec.MarshalJSON(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// emit encodes v and writes it to stdout or the output file.
func (f OutputFlags) emit(g *Globals, v *value.Value, source codec.SourceFormat, inputs []string) error {
	data, err := f.encode(v, f.format(source))
	if err != nil {
		return err
	}
	if f.Output == "" {
		_, err := g.Stdout.Write(data)
		return err
	}
	return writeFile(g, f.Output, data, inputs, fileutil.OwnerReadWrite)
}

// writeFile writes data to path after checking that it would not clobber
// an input or follow a symlink.
func writeFile(g *Globals, path string, data []byte, inputs []string, perm os.FileMode) error {
	if err := ValidateOutputPath(g.Stderr, path, inputs); err != nil {
		return err
	}
	cleaned, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, perm); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// ValidateOutputPath checks that outputPath would not overwrite any of the
// input files. An existing output file only produces a warning on w.
func ValidateOutputPath(w io.Writer, outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Warnf(w, "output file %s already exists and will be overwritten", outputPath)
	}
	return nil
}

// FormatSourcePath returns a display-friendly path for a document.
func FormatSourcePath(path string) string {
	if path == StdinFilePath || path == "" {
		return "<stdin>"
	}
	return path
}

// writeSummary reports what a normalization run did to stderr.
func writeSummary(w io.Writer, parsed *codec.ParseResult, result *normalizer.Result) {
	cliutil.Writef(w, "Document: %s\n", FormatSourcePath(result.SourcePath))
	cliutil.Writef(w, "Format: %s\n", result.SourceFormat)
	if parsed != nil {
		cliutil.Writef(w, "Source Size: %s\n", codec.FormatBytes(parsed.SourceSize))
		cliutil.Writef(w, "Load Time: %v\n", parsed.LoadTime)
	}
	steps := make([]string, 0, len(result.Applied))
	for _, s := range result.Applied {
		steps = append(steps, fmt.Sprintf("%s (%d removed)", s.Step, s.Removed))
	}
	cliutil.Writef(w, "Steps: %s\n", strings.Join(steps, ", "))
	cliutil.Writef(w, "Nodes: %d -> %d\n", result.Before.Nodes, result.After.Nodes)
	cliutil.Writef(w, "Removed: %s\n", cliutil.Count(result.Removed(), "node", "nodes"))
	if result.RootRemovable {
		cliutil.Warnf(w, "document is empty after normalization")
	}
}

// runPipeline decodes the document at path, runs n over it and emits the result.
func runPipeline(g *Globals, n *normalizer.Normalizer, in InputFlags, out OutputFlags, path string) error {
	parsed, err := in.read(g, path)
	if err != nil {
		return err
	}
	n.Logger = g.logger()
	result, err := n.NormalizeParsed(parsed)
	if err != nil {
		return err
	}
	if err := out.emit(g, result.Value, result.SourceFormat, []string{path}); err != nil {
		return err
	}
	if !out.Quiet {
		writeSummary(g.Stderr, parsed, result)
	}
	return nil
}

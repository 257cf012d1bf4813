package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/internal/cliutil"
	"github.com/erraggy/normjson/internal/fileutil"
	"github.com/erraggy/normjson/internal/pathutil"
	"github.com/erraggy/normjson/normalizer"
	"github.com/erraggy/normjson/value"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NormalizeCmd runs a pipeline of steps over one or more documents.
type NormalizeCmd struct {
	InputFlags
	OutputFlags

	Steps   string   `short:"s" help:"Comma-separated steps to run in order: prune-nulls, prune-empty, dedupe, merge-similar (default prune-empty,dedupe)." env:"NORMJSON_STEPS"`
	Exact   bool     `help:"Dedupe with exact string comparison." env:"NORMJSON_EXACT_DEDUPE"`
	Workers int      `short:"w" help:"Documents normalized concurrently (0 uses GOMAXPROCS)." env:"NORMJSON_WORKERS"`
	Files   []string `arg:"" name:"file" help:"Documents to normalize ('-' for stdin)."`
}

// normalizer builds the configured pipeline.
func (c *NormalizeCmd) normalizer(g *Globals) (*normalizer.Normalizer, error) {
	n := normalizer.New()
	if strings.TrimSpace(c.Steps) != "" {
		steps, err := normalizer.ParseSteps(c.Steps)
		if err != nil {
			return nil, err
		}
		n.Steps = steps
	}
	if c.Exact {
		n.Relation = equivalence.Exact
	}
	format, err := codec.ParseSourceFormat(c.InputFormat)
	if err != nil {
		return nil, err
	}
	n.Format = format
	n.MaxDepth = c.MaxDepth
	n.MaxInputSize = c.MaxInputSize
	n.Logger = g.logger()
	return n, nil
}

// Run executes the normalize command.
func (c *NormalizeCmd) Run(g *Globals) error {
	n, err := c.normalizer(g)
	if err != nil {
		return err
	}
	if len(c.Files) == 1 {
		return runPipeline(g, n, c.InputFlags, c.OutputFlags, c.Files[0])
	}

	inputs, err := c.inputs(g)
	if err != nil {
		return err
	}
	results, err := n.NormalizeAll(g.ctx(), inputs, c.Workers)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if info, statErr := os.Stat(c.Output); statErr == nil && info.IsDir() {
			return c.writeEach(g, results)
		}
	}
	docs := make([]*value.Value, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.Value)
	}
	if err := c.emit(g, value.Array(docs...), results[0].SourceFormat, c.Files); err != nil {
		return err
	}
	if !c.Quiet {
		c.summarize(g.Stderr, results)
	}
	return nil
}

// inputs reads stdin once when a file is "-" and leaves the other paths
// for NormalizeAll to read.
func (c *NormalizeCmd) inputs(g *Globals) ([]normalizer.Input, error) {
	inputs := make([]normalizer.Input, 0, len(c.Files))
	stdinSeen := false
	for _, path := range c.Files {
		if path != StdinFilePath {
			inputs = append(inputs, normalizer.Input{Path: path})
			continue
		}
		if stdinSeen {
			return nil, errors.New("stdin can only be read once")
		}
		stdinSeen = true
		data, err := io.ReadAll(g.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		inputs = append(inputs, normalizer.Input{Path: StdinFilePath, Data: data})
	}
	return inputs, nil
}

// writeEach writes every result to <dir>/<name>.normalized.<ext>.
func (c *NormalizeCmd) writeEach(g *Globals, results []*normalizer.Result) error {
	for _, r := range results {
		format := c.format(r.SourceFormat)
		data, err := c.encode(r.Value, format)
		if err != nil {
			return err
		}
		path := pathutil.DerivedOutputPath(c.Output, r.SourcePath, string(format))
		if err := writeFile(g, path, data, c.Files, fileutil.ReadableByAll); err != nil {
			return err
		}
		if !c.Quiet {
			cliutil.Writef(g.Stderr, "%s -> %s (%s removed)\n",
				FormatSourcePath(r.SourcePath), path, cliutil.Count(r.Removed(), "node", "nodes"))
		}
	}
	return nil
}

// summarize renders one table row per document, then the totals.
func (c *NormalizeCmd) summarize(w io.Writer, results []*normalizer.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Document", "Format", "Nodes Before", "Nodes After", "Removed"})
	total := 0
	for _, r := range results {
		total += r.Removed()
		t.AppendRow(table.Row{FormatSourcePath(r.SourcePath), string(r.SourceFormat), r.Before.Nodes, r.After.Nodes, r.Removed()})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()

	cliutil.Writef(w, "Documents: %d\n", len(results))
	cliutil.Writef(w, "Removed: %s\n", cliutil.Count(total, "node", "nodes"))
}

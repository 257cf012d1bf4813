package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/erraggy/normjson/cmd/normjson/commands"
	"github.com/erraggy/normjson/codec"
)

// cli defines the command-line interface
type cli struct {
	Debug bool `short:"d" help:"Enable debug logging on stderr." env:"NORMJSON_DEBUG"`

	Prune        commands.PruneCmd        `cmd:"" help:"Remove null values (and with --empty, empty arrays and objects)."`
	Dedupe       commands.DedupeCmd       `cmd:"" help:"Remove equivalent array elements, keeping the first of each."`
	Merge        commands.MergeCmd        `cmd:"" help:"Merge array elements whose objects share the same keys."`
	MergeObjects commands.MergeObjectsCmd `cmd:"" name:"merge-objects" help:"Merge two objects with the same keys into one."`
	Normalize    commands.NormalizeCmd    `cmd:"" help:"Run a pipeline of steps over one or more documents."`
	MCP          commands.MCPCmd          `cmd:"" name:"mcp" help:"Serve the normalization tools over MCP on stdio."`
	Version      commands.VersionCmd      `cmd:"" help:"Show version information."`
}

func newParser(c *cli, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("normjson"),
		kong.Description("Prune, deduplicate and merge JSON and YAML documents."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(c, options...)
}

// newLogger returns a text logger on w, at debug level when debug is set.
func newLogger(w io.Writer, debug bool) codec.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return codec.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c cli
	parser, err := newParser(&c, kong.Writers(stdout, stderr))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	globals := &commands.Globals{
		Context: ctx,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  newLogger(stderr, c.Debug),
	}
	if err := kctx.Run(globals); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

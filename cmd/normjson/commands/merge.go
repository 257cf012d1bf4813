package commands

import (
	"fmt"

	"github.com/erraggy/normjson/internal/cliutil"
	"github.com/erraggy/normjson/merger"
	"github.com/erraggy/normjson/normalizer"
	"github.com/erraggy/normjson/value"
)

// MergeCmd folds array elements whose objects share the same keys.
type MergeCmd struct {
	InputFlags
	OutputFlags

	File string `arg:"" optional:"" default:"-" help:"Document whose arrays are merged ('-' for stdin)."`
}

// Run executes the merge command.
func (c *MergeCmd) Run(g *Globals) error {
	n := normalizer.New()
	n.Steps = []normalizer.Step{normalizer.StepMergeSimilar}
	return runPipeline(g, n, c.InputFlags, c.OutputFlags, c.File)
}

// MergeObjectsCmd merges two objects with the same keys into one.
type MergeObjectsCmd struct {
	InputFlags
	OutputFlags

	Left  string `arg:"" help:"Object whose keys the result keeps ('-' for stdin)."`
	Right string `arg:"" help:"Object merged into left ('-' for stdin)."`
}

// Run executes the merge-objects command.
func (c *MergeObjectsCmd) Run(g *Globals) error {
	if c.Left == StdinFilePath && c.Right == StdinFilePath {
		return fmt.Errorf("only one of left and right can be read from stdin")
	}
	left, err := c.read(g, c.Left)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	right, err := c.read(g, c.Right)
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}

	merged, err := merger.MergeObjects(left.Value, right.Value)
	if err != nil {
		return err
	}
	if err := c.emit(g, merged, left.SourceFormat, []string{c.Left, c.Right}); err != nil {
		return err
	}
	if !c.Quiet {
		stats := value.Stats(merged)
		cliutil.Writef(g.Stderr, "Left: %s\n", FormatSourcePath(left.SourcePath))
		cliutil.Writef(g.Stderr, "Right: %s\n", FormatSourcePath(right.SourcePath))
		cliutil.Writef(g.Stderr, "Merged: %s, %s\n",
			cliutil.Count(merged.Len(), "key", "keys"),
			cliutil.Count(stats.Nodes, "node", "nodes"))
	}
	return nil
}

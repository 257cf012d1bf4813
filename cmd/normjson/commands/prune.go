package commands

import (
	"github.com/erraggy/normjson/normalizer"
)

// PruneCmd removes nulls, and with --empty empty arrays and objects.
type PruneCmd struct {
	InputFlags
	OutputFlags

	Empty bool   `short:"e" help:"Also remove empty arrays and objects, dropping array elements too."`
	File  string `arg:"" optional:"" default:"-" help:"Document to prune ('-' for stdin)."`
}

// Run executes the prune command.
func (c *PruneCmd) Run(g *Globals) error {
	step := normalizer.StepPruneNulls
	if c.Empty {
		step = normalizer.StepPruneEmpty
	}
	n := normalizer.New()
	n.Steps = []normalizer.Step{step}
	return runPipeline(g, n, c.InputFlags, c.OutputFlags, c.File)
}

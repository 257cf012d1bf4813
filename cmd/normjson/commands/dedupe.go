package commands

import (
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/normalizer"
)

// DedupeCmd removes equivalent array elements, keeping the first of each.
type DedupeCmd struct {
	InputFlags
	OutputFlags

	Exact bool   `help:"Compare strings exactly instead of case-insensitively." env:"NORMJSON_EXACT_DEDUPE"`
	File  string `arg:"" optional:"" default:"-" help:"Document to deduplicate ('-' for stdin)."`
}

// Run executes the dedupe command.
func (c *DedupeCmd) Run(g *Globals) error {
	n := normalizer.New()
	n.Steps = []normalizer.Step{normalizer.StepDedupe}
	if c.Exact {
		n.Relation = equivalence.Exact
	}
	return runPipeline(g, n, c.InputFlags, c.OutputFlags, c.File)
}

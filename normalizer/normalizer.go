package normalizer

import (
	"fmt"
	"time"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/deduper"
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/merger"
	"github.com/erraggy/normjson/normerrors"
	"github.com/erraggy/normjson/pruner"
	"github.com/erraggy/normjson/value"
)

// StepResult describes one step that ran
type StepResult struct {
	// Step is the step that ran
	Step Step `json:"step"`
	// Removed is the number of entries or elements the step removed. For
	// merge-similar it counts array elements folded into another.
	Removed int `json:"removed"`
	// Duration is the time the step took
	Duration time.Duration `json:"duration"`
}

// Result contains the results of a normalization
type Result struct {
	// Value is the normalized tree
	Value *value.Value
	// SourcePath is the path the document was read from, if any
	SourcePath string
	// SourceFormat is the format the document was decoded from, if any
	SourceFormat codec.SourceFormat
	// Applied lists the steps in the order they ran
	Applied []StepResult
	// Before and After describe the tree on either side of the pipeline
	Before value.TreeStats
	After  value.TreeStats
	// RootRemovable is set when a pruning step found the root itself null or
	// empty. The root is still returned.
	RootRemovable bool
	// Duration is the total time spent in the pipeline
	Duration time.Duration
}

// Removed returns the total number of nodes removed by all steps
func (r *Result) Removed() int {
	total := 0
	for _, s := range r.Applied {
		total += s.Removed
	}
	return total
}

// Changed returns true if any step modified the tree
func (r *Result) Changed() bool {
	return r.Removed() > 0
}

// Normalizer runs a pipeline of steps over document trees
type Normalizer struct {
	// Steps lists the steps to run. Nil or empty means DefaultSteps.
	Steps []Step
	// Relation is the equivalence used by the dedupe step.
	// Nil means equivalence.CaseFolded.
	Relation equivalence.Relation
	// Format forces the format of documents read by NormalizeAll and the
	// option API. SourceFormatUnknown detects it.
	Format codec.SourceFormat
	// MaxDepth limits document nesting when decoding (0 uses codec.DefaultMaxDepth)
	MaxDepth int
	// MaxInputSize limits the size of documents read by NormalizeAll
	// (0 uses codec.DefaultMaxInputSize, negative disables the limit)
	MaxInputSize int64
	// Logger receives debug output. Nil means no logging.
	Logger codec.Logger
}

// New creates a new Normalizer with default settings
func New() *Normalizer {
	return &Normalizer{
		Steps:    DefaultSteps(),
		Relation: equivalence.CaseFolded,
		Format:   codec.SourceFormatUnknown,
	}
}

func (n *Normalizer) log() codec.Logger {
	if n.Logger == nil {
		return codec.NopLogger{}
	}
	return n.Logger
}

func (n *Normalizer) steps() []Step {
	if len(n.Steps) == 0 {
		return DefaultSteps()
	}
	return n.Steps
}

func (n *Normalizer) relation() equivalence.Relation {
	if n.Relation == nil {
		return equivalence.CaseFolded
	}
	return n.Relation
}

// Normalize runs the configured steps over v in place
func (n *Normalizer) Normalize(v *value.Value) (*Result, error) {
	steps := n.steps()
	for _, step := range steps {
		if !step.Valid() {
			return nil, &normerrors.ConfigError{Option: "steps", Value: string(step), Message: "unknown step"}
		}
	}
	if v == nil {
		return nil, fmt.Errorf("normalizer: nil document")
	}

	start := time.Now()
	result := &Result{
		Value:   v,
		Applied: make([]StepResult, 0, len(steps)),
		Before:  value.Stats(v),
	}
	logger := n.log()

	for _, step := range steps {
		stepStart := time.Now()
		removed := n.apply(step, v, result)
		sr := StepResult{Step: step, Removed: removed, Duration: time.Since(stepStart)}
		result.Applied = append(result.Applied, sr)
		logger.Debug("applied step",
			"step", string(step),
			"removed", removed,
			"duration", sr.Duration,
		)
	}

	result.After = value.Stats(v)
	result.Duration = time.Since(start)
	logger.Debug("normalized document",
		"steps", len(result.Applied),
		"removed", result.Removed(),
		"nodes_before", result.Before.Nodes,
		"nodes_after", result.After.Nodes,
	)
	return result, nil
}

func (n *Normalizer) apply(step Step, v *value.Value, result *Result) int {
	switch step {
	case StepPruneNulls:
		r := pruner.PruneNulls(v)
		result.RootRemovable = r.RootRemovable
		return r.Removed
	case StepPruneEmpty:
		r := pruner.PruneNullsAndEmpty(v)
		result.RootRemovable = r.RootRemovable
		return r.Removed
	case StepDedupe:
		return deduper.DedupeWith(v, n.relation())
	case StepMergeSimilar:
		return merger.MergeSimilar(v)
	default:
		return 0
	}
}

// NormalizeParsed normalizes an already decoded document, copying its source
// information into the result
func (n *Normalizer) NormalizeParsed(parsed *codec.ParseResult) (*Result, error) {
	if parsed == nil || parsed.Value == nil {
		return nil, fmt.Errorf("normalizer: document could not be parsed (nil value)")
	}
	result, err := n.Normalize(parsed.Value)
	if err != nil {
		return nil, err
	}
	result.SourcePath = parsed.SourcePath
	result.SourceFormat = parsed.SourceFormat
	return result, nil
}

func (n *Normalizer) parser() *codec.Parser {
	p := codec.New()
	p.Format = n.Format
	p.MaxDepth = n.MaxDepth
	p.MaxInputSize = n.MaxInputSize
	p.Logger = n.Logger
	return p
}

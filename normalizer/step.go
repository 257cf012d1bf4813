package normalizer

import (
	"slices"
	"strings"

	"github.com/erraggy/normjson/normerrors"
)

// Step identifies one pass of the pipeline
type Step string

const (
	// StepPruneNulls removes null object entries
	StepPruneNulls Step = "prune-nulls"
	// StepPruneEmpty removes nulls and empty arrays and objects
	StepPruneEmpty Step = "prune-empty"
	// StepDedupe removes duplicate array elements
	StepDedupe Step = "dedupe"
	// StepMergeSimilar merges same-shaped objects within arrays
	StepMergeSimilar Step = "merge-similar"
)

// ValidSteps returns every known step in recommended order
func ValidSteps() []Step {
	return []Step{StepPruneNulls, StepPruneEmpty, StepDedupe, StepMergeSimilar}
}

// DefaultSteps returns the steps run when none are configured
func DefaultSteps() []Step {
	return []Step{StepPruneEmpty, StepDedupe}
}

// Valid reports whether s is a known step
func (s Step) Valid() bool {
	return slices.Contains(ValidSteps(), s)
}

// ParseSteps parses a comma-separated list such as "prune-empty,dedupe".
// Names are case-insensitive and surrounding spaces are ignored.
func ParseSteps(list string) ([]Step, error) {
	var steps []Step
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		step := Step(name)
		if !step.Valid() {
			return nil, &normerrors.ConfigError{
				Option:  "steps",
				Value:   part,
				Message: "unknown step: valid steps are " + stepNames(),
			}
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		return nil, &normerrors.ConfigError{Option: "steps", Message: "no steps specified"}
	}
	return steps, nil
}

func stepNames() string {
	names := make([]string, 0, 4)
	for _, s := range ValidSteps() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

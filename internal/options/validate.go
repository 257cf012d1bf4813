// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/normjson/normerrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// names lists the option constructors in the same order and is used in the
// error message, e.g. "WithFilePath, WithBytes".
// Returns a *normerrors.ConfigError if zero or more than one input source is specified.
func ValidateSingleInputSource(names string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return &normerrors.ConfigError{
			Option:  "input",
			Message: "no input source specified: use one of " + names,
		}
	}
	if sourceCount > 1 {
		return &normerrors.ConfigError{
			Option:  "input",
			Message: "multiple input sources specified: use only one of " + names,
		}
	}

	return nil
}

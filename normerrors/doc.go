// Package normerrors provides structured error types for normjson.
//
// Import path: github.com/erraggy/normjson/normerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between a document that could not be read,
// a document that exceeded a configured limit, an invalid option, and a pair
// of objects that could not be merged.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML decoding failures and unsupported constructs
//   - [ResourceLimitError]: Resource exhaustion (nesting depth, input size)
//   - [ConfigError]: Invalid configuration or input options
//   - [MergeError]: Objects whose shapes differ and so cannot be merged
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrShapeMismatch]: Matches any [MergeError]
//
// # Usage Examples
//
// A failed merge is not exceptional; it means the two records describe
// different entities and should be kept apart:
//
//	merged, err := merger.MergeObjects(left, right)
//	if errors.Is(err, normerrors.ErrShapeMismatch) {
//	    // keep both records
//	}
//
// Extract details with errors.As():
//
//	var limitErr *normerrors.ResourceLimitError
//	if errors.As(err, &limitErr) {
//	    fmt.Printf("%s exceeded %d\n", limitErr.ResourceType, limitErr.Limit)
//	}
package normerrors

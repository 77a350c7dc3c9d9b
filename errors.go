package vtree

import "errors"

// Standard errors returned while constructing or querying trees.
// Traversal itself never fails; absence is reported with a bool.
var (
	// Construction errors
	ErrInvalidEntry  = errors.New("vtree: invalid entry")
	ErrInvalidPath   = errors.New("vtree: invalid path")
	ErrNotDirectory  = errors.New("vtree: not a directory")
	ErrInvalidOption = errors.New("vtree: invalid option")

	// Query errors
	ErrInvalidPattern   = errors.New("vtree: invalid pattern")
	ErrInvalidSeparator = errors.New("vtree: invalid separator")
)

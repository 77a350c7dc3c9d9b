package cmd

import (
	"context"
	"io"

	"github.com/mwantia/vtree"
)

// API is the view of a loaded tree that commands operate on.
type API interface {
	// Content returns the tree loaded from the configured source.
	Content() *vtree.Content
}

// Command represents an executable command operating on a tree.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "find [-g] NAME")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}

// ContentAPI is the API over a fixed Content.
type ContentAPI struct {
	content *vtree.Content
}

func NewContentAPI(content *vtree.Content) *ContentAPI {
	return &ContentAPI{content: content}
}

func (a *ContentAPI) Content() *vtree.Content {
	return a.content
}

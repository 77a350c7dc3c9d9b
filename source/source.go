package source

import (
	"context"

	"github.com/mwantia/vtree"
)

// Source builds an immutable tree snapshot from an external namespace.
// Sources only read; nothing is ever written back.
type Source interface {
	// Name returns the identifier name defined for this source
	Name() string
	// Load reads the namespace and returns it as a new Content.
	Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error)
}

package source

import (
	"context"

	"github.com/mwantia/vtree"
)

// DemoSource returns the fixed example tree:
//
//	a/{c.txt, d/{e.txt}, b.txt, i/{}, f.txt}, g.txt, h/{}
type DemoSource struct{}

func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// Name returns the identifier name defined for this source
func (*DemoSource) Name() string {
	return "demo"
}

func (*DemoSource) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	return vtree.NewContent(DemoEntries(), opts...)
}

// DemoEntries builds a new copy of the example tree.
func DemoEntries() []vtree.Entry {
	return []vtree.Entry{
		vtree.NewFolder("a",
			vtree.NewFile("c.txt"),
			vtree.NewFolder("d",
				vtree.NewFile("e.txt"),
			),
			vtree.NewFile("b.txt"),
			vtree.NewFolder("i"),
			vtree.NewFile("f.txt"),
		),
		vtree.NewFile("g.txt"),
		vtree.NewFolder("h"),
	}
}

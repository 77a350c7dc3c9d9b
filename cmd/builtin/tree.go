package builtin

import (
	"context"
	"io"

	"github.com/mwantia/vtree/cmd"
	"github.com/mwantia/vtree/render"
)

type TreeCommand struct {
}

// Name returns the command identifier
func (*TreeCommand) Name() string {
	return "tree"
}

// Description returns human-readable help text
func (*TreeCommand) Description() string {
	return "Render the tree like tree(1)"
}

// Usage returns a usage string for help
func (*TreeCommand) Usage() string {
	return "tree [--ascii] [--no-summary] [--root LABEL]"
}

func (*TreeCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	opts := []render.TreeOption{
		render.WithRoot(args.String("root")),
	}
	if args.Bool("ascii") {
		opts = append(opts, render.WithASCII())
	}
	if !args.Bool("no-summary") {
		opts = append(opts, render.WithSummary())
	}

	if err := render.Tree(writer, api.Content(), opts...); err != nil {
		return 1, err
	}
	return 0, nil
}

// GetFlags returns the flag set for this command
func (*TreeCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"ascii": {
				Name:        "ascii",
				Type:        "bool",
				Description: "Draw connectors with ASCII characters",
			},
			"no-summary": {
				Name:        "no-summary",
				Type:        "bool",
				Description: "Omit the trailing directory and file count",
			},
			"root": {
				Name:        "root",
				Type:        "string",
				Default:     ".",
				Description: "Label printed on the first line",
			},
		},
	}
}

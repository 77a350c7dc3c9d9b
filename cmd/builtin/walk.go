package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vtree/cmd"
)

type WalkCommand struct {
}

// Name returns the command identifier
func (*WalkCommand) Name() string {
	return "walk"
}

// Description returns human-readable help text
func (*WalkCommand) Description() string {
	return "Print the path of every entry in pre-order"
}

// Usage returns a usage string for help
func (*WalkCommand) Usage() string {
	return "walk [-l] [-s SEP]"
}

// Execute writes one path per line; with --long every line starts with the entry type.
func (*WalkCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	separator := args.String("separator")
	long := args.Bool("long")

	it := api.Content().Iter()
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		if err := ctx.Err(); err != nil {
			return 1, err
		}

		var err error
		if long {
			_, err = fmt.Fprintf(writer, "%-6s %s\n", entry.Type(), it.GetPath(separator))
		} else {
			_, err = fmt.Fprintln(writer, it.GetPath(separator))
		}
		if err != nil {
			return 1, err
		}
	}

	return 0, nil
}

// GetFlags returns the flag set for this command
func (*WalkCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"separator": separatorFlag(),
			"long": {
				Name:        "long",
				Short:       "l",
				Type:        "bool",
				Description: "Prefix every path with the entry type",
			},
		},
	}
}

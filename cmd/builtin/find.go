package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vtree"
	"github.com/mwantia/vtree/cmd"
)

type FindCommand struct {
}

// Name returns the command identifier
func (*FindCommand) Name() string {
	return "find"
}

// Description returns human-readable help text
func (*FindCommand) Description() string {
	return "Print the path of the first file matching NAME"
}

// Usage returns a usage string for help
func (*FindCommand) Usage() string {
	return "find [-a] [-g] [-s SEP] NAME"
}

// Execute searches for NAME, or for a doublestar pattern with --glob.
// Returns exit code 1 without an error when nothing matches.
func (*FindCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	name := args.Arg(0)
	if name == "" {
		return 1, fmt.Errorf("%w: find requires a NAME", cmd.ErrMissingArgument)
	}

	separator := args.String("separator")
	glob := args.Bool("glob")

	next := func(it *vtree.EntryIterator) (string, bool, error) {
		if glob {
			return it.FindGlob(name, separator)
		}
		p, ok := it.FindFile(name, separator)
		return p, ok, nil
	}

	matches := 0
	it := api.Content().Iter()
	for {
		if err := ctx.Err(); err != nil {
			return 1, err
		}

		// The iterator stays on a match, so searching again continues after it
		p, ok, err := next(it)
		if err != nil {
			return 1, err
		}
		if !ok {
			break
		}

		matches++
		if _, err := fmt.Fprintln(writer, p); err != nil {
			return 1, err
		}

		if !args.Bool("all") {
			break
		}
	}

	if matches == 0 {
		return 1, nil
	}
	return 0, nil
}

// GetFlags returns the flag set for this command
func (*FindCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"separator": separatorFlag(),
			"glob": {
				Name:        "glob",
				Short:       "g",
				Type:        "bool",
				Description: "Match NAME as a pattern against the full path (e.g. '**/*.txt')",
			},
			"all": {
				Name:        "all",
				Short:       "a",
				Type:        "bool",
				Description: "Print every match instead of the first",
			},
		},
	}
}

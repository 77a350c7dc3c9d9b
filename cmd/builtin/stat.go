package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwantia/vtree/cmd"
	"github.com/mwantia/vtree/index"
)

type StatCommand struct {
}

// Name returns the command identifier
func (*StatCommand) Name() string {
	return "stat"
}

// Description returns human-readable help text
func (*StatCommand) Description() string {
	return "Print entry, file and folder counts and the maximum depth"
}

// Usage returns a usage string for help
func (*StatCommand) Usage() string {
	return "stat [--json]"
}

func (*StatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	idx, err := index.Build(api.Content(), "/")
	if err != nil {
		return 1, err
	}

	stats := idx.Stats()
	if args.Bool("json") {
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			return 1, err
		}
		return 0, nil
	}

	if _, err := fmt.Fprintf(writer, "entries:    %d\nfiles:      %d\nfolders:    %d\nmax depth:  %d\nduplicates: %d\n",
		stats.Entries, stats.Files, stats.Folders, stats.MaxDepth, idx.Duplicates()); err != nil {
		return 1, err
	}
	return 0, nil
}

// GetFlags returns the flag set for this command
func (*StatCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"json": {
				Name:        "json",
				Type:        "bool",
				Description: "Print the counts as JSON",
			},
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mwantia/vtree"
	"github.com/mwantia/vtree/cmd"
	"github.com/mwantia/vtree/cmd/builtin"
	"github.com/mwantia/vtree/log"
	"github.com/mwantia/vtree/source"
)

// globalFlags precede the command name
var globalFlags = &cmd.CommandFlagSet{
	Flags: map[string]*cmd.CommandFlag{
		"source": {
			Name:        "source",
			Type:        "string",
			Default:     ":demo:",
			Description: "Address of the tree to load (e.g. 'local://.', 'sqlite://tree.db?table=entries')",
		},
		"log-level": {
			Name:        "log-level",
			Type:        "string",
			Default:     "warn",
			Description: "Minimum level written to the log (debug, info, warn, error, off)",
		},
		"log-file": {
			Name:        "log-file",
			Type:        "string",
			Description: "Write the log to a rotated file instead of stderr",
		},
		"env-file": {
			Name:        "env-file",
			Type:        "string",
			Description: "Read VTREE_* defaults from a .env file",
		},
		"help": {
			Name:        "help",
			Short:       "h",
			Type:        "bool",
			Description: "Print this help",
		},
	},
}

// envFlags maps environment variables to the flags they provide defaults for.
var envFlags = map[string]string{
	"source":    "VTREE_SOURCE",
	"log-level": "VTREE_LOG_LEVEL",
	"log-file":  "VTREE_LOG_FILE",
}

// closer is implemented by sources that hold connections.
type closer interface {
	Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, raw []string, stdout, stderr io.Writer) int {
	registry := cmd.NewRegistry()
	if err := builtin.InitBuiltin(registry); err != nil {
		fmt.Fprintf(stderr, "Failed to setup commands: %v\n", err)
		return 1
	}

	args, err := cmd.NewParser(globalFlags, cmd.StopAtFirstArg()).Parse(raw)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		writeHelp(stderr, registry)
		return 2
	}
	if args.Bool("help") {
		writeHelp(stdout, registry)
		return 0
	}

	if err := applyEnv(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	level, err := log.ParseLevel(args.String("log-level"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	var logger *log.Logger
	if file := args.String("log-file"); file != "" {
		logger = log.NewLogger("cli", level, file, true)
	} else {
		logger = log.NewWriterLogger("cli", level, stderr)
	}
	defer logger.Close()

	src, err := source.ParseAddress(ctx, args.String("source"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	switch c := src.(type) {
	case closer:
		defer c.Close()
	case io.Closer:
		defer c.Close()
	}

	logger.Debug("loading tree from %s source", src.Name())
	content, err := src.Load(ctx, vtree.WithLogger(logger))
	if err != nil {
		logger.Error("failed to load tree: %v", err)
		return 1
	}

	if len(args.Args) == 0 {
		if err := runDemo(content, stdout); err != nil {
			logger.Error("%v", err)
			return 1
		}
		return 0
	}

	code, err := registry.Execute(ctx, cmd.NewContentAPI(content), stdout, args.Args...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, cmd.ErrCommandNotFound) || errors.Is(err, cmd.ErrInvalidFlag) {
			writeHelp(stderr, registry)
		}
	}
	return code
}

// applyEnv fills flags that were not given on the command line from the
// process environment, overridden by the optional --env-file.
func applyEnv(args *cmd.CommandArgs) error {
	env := make(map[string]string)
	for _, key := range envFlags {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}

	if file := args.String("env-file"); file != "" {
		values, err := godotenv.Read(file)
		if err != nil {
			return fmt.Errorf("failed to read env file: %w", err)
		}
		maps.Copy(env, values)
	}

	for flag, key := range envFlags {
		if value := env[key]; value != "" && !args.IsSet(flag) {
			args.Flags[flag] = value
		}
	}
	return nil
}

// runDemo prints the path of every entry and a note when 'b.txt' is passed.
func runDemo(content *vtree.Content, w io.Writer) error {
	it := content.Iter()
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		if _, err := fmt.Fprintln(w, it.GetPath("/")); err != nil {
			return err
		}

		if !entry.IsDir() && entry.Name() == "b.txt" {
			if _, err := fmt.Fprintf(w, "%s found\n", entry.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHelp(w io.Writer, registry *cmd.Registry) {
	fmt.Fprintln(w, "Usage: vtree [flags] [command] [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, every path is printed and 'b.txt' is reported when found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	cmd.WriteFlags(w, globalFlags)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	registry.WriteUsage(w)
}

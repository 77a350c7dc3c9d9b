package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"
)

// Registry handles command registration, parsing, and execution
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register registers a custom command
func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: command cannot be nil", ErrInvalidCommand)
	}

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("%w: command name cannot be empty", ErrInvalidCommand)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cmds[name]; exists {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}

	r.cmds[name] = cmd
	return nil
}

// Unregister removes a registered command
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cmds[name]; !exists {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	delete(r.cmds, name)
	return nil
}

// Get returns a command by name
func (r *Registry) Get(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, exists := r.cmds[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	return cmd, nil
}

// List returns all registered commands sorted by name
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]Command, 0, len(r.cmds))
	for _, cmd := range r.cmds {
		commands = append(commands, cmd)
	}

	slices.SortFunc(commands, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return commands
}

// Execute parses and executes a command, args[0] being its name
func (r *Registry) Execute(ctx context.Context, api API, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("%w: no command specified", ErrInvalidCommand)
	}

	cmd, err := r.Get(args[0])
	if err != nil {
		return 1, err
	}

	parsedArgs, err := NewParser(cmd.GetFlags()).Parse(args[1:])
	if err != nil {
		return 1, fmt.Errorf("parse error: %w", err)
	}

	return cmd.Execute(ctx, api, parsedArgs, writer)
}

// WriteUsage writes the usage line and description of every command to w.
func (r *Registry) WriteUsage(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cmd := range r.List() {
		if _, err := fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Description()); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteFlags writes the flags of a flag set sorted by name to w.
func WriteFlags(w io.Writer, flagSet *CommandFlagSet) error {
	if flagSet == nil {
		return nil
	}

	names := make([]string, 0, len(flagSet.Flags))
	for name := range flagSet.Flags {
		names = append(names, name)
	}
	slices.Sort(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		flag := flagSet.Flags[name]

		usage := "--" + flag.Name
		if flag.Short != "" {
			usage = "-" + flag.Short + ", " + usage
		}
		if flag.Type != "bool" {
			usage += " " + strings.ToUpper(flag.Type)
		}

		desc := flag.Description
		if flag.Default != nil && flag.Default != "" && flag.Type != "bool" {
			desc += fmt.Sprintf(" (default %q)", fmt.Sprint(flag.Default))
		}

		if _, err := fmt.Fprintf(tw, "  %s\t%s\n", usage, desc); err != nil {
			return err
		}
	}
	return tw.Flush()
}

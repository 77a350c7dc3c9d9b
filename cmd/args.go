package cmd

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string

	set map[string]bool
}

// IsSet reports whether the flag was given on the command line,
// as opposed to holding its default value.
func (a *CommandArgs) IsSet(name string) bool {
	return a.set[name]
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "separator"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "s")
	Type        string `json:"type"`              // "string", "bool", "int", "stringSlice"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
	Multiple    bool   `json:"multiple"`          // Can be specified multiple times
}

// String returns the flag value as a string, or "" if unset.
func (a *CommandArgs) String(name string) string {
	s, _ := a.Flags[name].(string)
	return s
}

func (a *CommandArgs) Bool(name string) bool {
	b, _ := a.Flags[name].(bool)
	return b
}

func (a *CommandArgs) Int(name string) int64 {
	switch v := a.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Strings returns every value given for a "stringSlice" flag.
func (a *CommandArgs) Strings(name string) []string {
	switch v := a.Flags[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// Arg returns the positional argument at i, or "" if there is none.
func (a *CommandArgs) Arg(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

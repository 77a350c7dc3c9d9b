package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet

	stopAtArg bool
}

type ParserOption func(*Parser)

// StopAtFirstArg ends flag parsing at the first positional argument and
// keeps it and everything after it as positional arguments.
// Used for global flags that precede a command name.
func StopAtFirstArg() ParserOption {
	return func(p *Parser) {
		p.stopAtArg = true
	}
}

func NewParser(flagSet *CommandFlagSet, opts ...ParserOption) *Parser {
	if flagSet == nil {
		flagSet = &CommandFlagSet{Flags: make(map[string]*CommandFlag)}
	}

	p := &Parser{
		flagSet: flagSet,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
		set:   make(map[string]bool),
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flagName] = flag.Default
		}
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	// Defaults are replaced, not extended, by the first given value
	set := func(flagName, value string) error {
		flag := cp.flagSet.Flags[flagName]
		v, err := coerce(value, flag.Type)
		if err != nil {
			return fmt.Errorf("%w: --%s: %v", ErrInvalidFlag, flag.Name, err)
		}

		if flag.Multiple || flag.Type == "stringSlice" {
			var values []string
			if args.set[flagName] {
				values, _ = args.Flags[flagName].([]string)
			}
			args.Flags[flagName] = append(values, value)
		} else {
			args.Flags[flagName] = v
		}
		args.set[flagName] = true
		return nil
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			args.Args = append(args.Args, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			flagName, exists := longToName[key]
			if !exists {
				return nil, fmt.Errorf("%w: unknown flag --%s", ErrInvalidFlag, key)
			}

			flag := cp.flagSet.Flags[flagName]
			if flag.Type == "bool" {
				if !hasValue {
					value = "true"
				}
				if err := set(flagName, value); err != nil {
					return nil, err
				}
			} else if hasValue {
				if err := set(flagName, value); err != nil {
					return nil, err
				}
			} else if i+1 < len(raw) && !isFlag(raw[i+1]) {
				if err := set(flagName, raw[i+1]); err != nil {
					return nil, err
				}
				i++
			} else {
				return nil, fmt.Errorf("%w: flag --%s requires a value", ErrInvalidFlag, key)
			}
			continue
		}

		if isFlag(arg) {
			shortFlags := arg[1:]

			for j, shortChar := range shortFlags {
				shortStr := string(shortChar)
				flagName, exists := shortToName[shortStr]
				if !exists {
					return nil, fmt.Errorf("%w: unknown flag -%s", ErrInvalidFlag, shortStr)
				}

				flag := cp.flagSet.Flags[flagName]

				if flag.Type == "bool" {
					if err := set(flagName, "true"); err != nil {
						return nil, err
					}
					continue
				}

				// The rest of the group is the value, as in "-s/"
				if j+1 < len(shortFlags) {
					if err := set(flagName, shortFlags[j+1:]); err != nil {
						return nil, err
					}
				} else if i+1 < len(raw) && !isFlag(raw[i+1]) {
					if err := set(flagName, raw[i+1]); err != nil {
						return nil, err
					}
					i++
				} else {
					return nil, fmt.Errorf("%w: flag -%s requires a value", ErrInvalidFlag, shortStr)
				}
				break
			}
			continue
		}

		if cp.stopAtArg {
			args.Args = append(args.Args, raw[i:]...)
			break
		}
		args.Args = append(args.Args, arg)
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Required {
			if _, ok := args.Flags[flagName]; !ok {
				if flag.Short != "" {
					return nil, fmt.Errorf("%w: required flag -%s / --%s", ErrInvalidFlag, flag.Short, flag.Name)
				} else {
					return nil, fmt.Errorf("%w: required flag --%s", ErrInvalidFlag, flag.Name)
				}
			}
		}
	}

	return args, nil
}

// isFlag reports whether arg starts a flag; a lone "-" is positional.
func isFlag(arg string) bool {
	return strings.HasPrefix(arg, "-") && len(arg) > 1
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func coerce(value string, typeStr string) (any, error) {
	switch typeStr {
	case "int":
		return strconv.ParseInt(value, 10, 64)
	case "bool":
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean '%s'", value)
	default:
		return value, nil
	}
}

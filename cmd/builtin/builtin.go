package builtin

import "github.com/mwantia/vtree/cmd"

// InitBuiltin registers every builtin command with registry.
func InitBuiltin(registry *cmd.Registry) error {
	for _, c := range []cmd.Command{
		&WalkCommand{},
		&FindCommand{},
		&TreeCommand{},
		&StatCommand{},
	} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func separatorFlag() *cmd.CommandFlag {
	return &cmd.CommandFlag{
		Name:        "separator",
		Short:       "s",
		Type:        "string",
		Default:     "/",
		Description: "String placed between path segments",
	}
}

package commands

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

// InputType is the type of a value typed after the command word.
type InputType string

const (
	InputTypeString InputType = "string"
	InputTypeNumber InputType = "number"
)

type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`
	// Rest captures every remaining word.
	Rest bool `json:"rest"`
}

var aliasPattern = regexp.MustCompile(`^[a-z0-9?]+$`)

// Command is one player command loaded from JSON. The asset id is the word
// the player types; Aliases add shorter spellings.
type Command struct {
	Handler  string         `json:"handler"`
	Category string         `json:"category,omitempty"`
	Help     string         `json:"help,omitempty"`
	Aliases  []string       `json:"aliases,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
	Inputs   []InputSpec    `json:"inputs,omitempty"`
}

func (c *Command) Validate() error {
	el := errors.NewErrorList()

	if c.Handler == "" {
		el.Add(fmt.Errorf("command handler not set"))
	}

	for _, a := range c.Aliases {
		if !aliasPattern.MatchString(a) {
			el.Add(fmt.Errorf("alias %q must be lower case letters or digits", a))
		}
	}

	names := map[string]bool{}
	for i, input := range c.Inputs {
		if input.Name == "" {
			el.Add(fmt.Errorf("input %d: name is required", i))
			continue
		}
		if names[input.Name] {
			el.Add(fmt.Errorf("input %q: duplicate name", input.Name))
		}
		names[input.Name] = true

		switch input.Type {
		case InputTypeString, InputTypeNumber:
		case "":
			el.Add(fmt.Errorf("input %q: type is required", input.Name))
		default:
			el.Add(fmt.Errorf("input %q: unknown type %q", input.Name, input.Type))
		}
		if input.Rest && i != len(c.Inputs)-1 {
			el.Add(fmt.Errorf("input %q: only the last input can have rest=true", input.Name))
		}
	}

	return el.Err()
}

// configString reads an optional string from a command config.
func configString(config map[string]any, key string) (string, error) {
	v, ok := config[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("config %q must be a string", key)
	}
	return s, nil
}

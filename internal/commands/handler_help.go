package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-tilequest/internal/display"
	"github.com/pixil98/go-tilequest/internal/storage"
)

// HelpHandlerFactory lists commands by category, or describes one.
type HelpHandlerFactory struct {
	store storage.Storer[*Command]
}

func (f *HelpHandlerFactory) ValidateConfig(map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create(map[string]any) (CommandFunc, error) {
	return func(_ context.Context, cmdCtx *CommandContext) error {
		all := f.store.GetAll()

		if name := strings.ToLower(cmdCtx.String("command")); name != "" {
			return f.showCommand(cmdCtx, all, name)
		}
		return f.listCommands(cmdCtx, all)
	}, nil
}

func (f *HelpHandlerFactory) listCommands(cmdCtx *CommandContext, all map[string]*Command) error {
	groups := map[string][]string{}
	for id, cmd := range all {
		category := cmd.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], id)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	slices.Sort(categories)

	lines := []string{"Available commands:"}
	for _, cat := range categories {
		cmds := groups[cat]
		slices.Sort(cmds)
		lines = append(lines, fmt.Sprintf("  %s: %s", display.Capitalize(cat), strings.Join(cmds, ", ")))
	}
	lines = append(lines, "Type 'help <command>' for details.")

	_, err := fmt.Fprintln(cmdCtx.Out, strings.Join(lines, "\n"))
	return err
}

func (f *HelpHandlerFactory) showCommand(cmdCtx *CommandContext, all map[string]*Command, name string) error {
	for id, cmd := range all {
		if id != name && !slices.Contains(cmd.Aliases, name) {
			continue
		}

		usage := id
		for _, in := range cmd.Inputs {
			if in.Required {
				usage += " <" + in.Name + ">"
			} else {
				usage += " [" + in.Name + "]"
			}
		}

		out := "Usage: " + usage + "\n"
		if len(cmd.Aliases) > 0 {
			out += "Also: " + strings.Join(cmd.Aliases, ", ") + "\n"
		}
		if cmd.Help != "" {
			out += display.Wrap(cmd.Help) + "\n"
		}
		_, err := fmt.Fprint(cmdCtx.Out, out)
		return err
	}
	return userErrorf("No help for %q.", name)
}

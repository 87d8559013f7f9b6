package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-tilequest/internal/display"
	"github.com/pixil98/go-tilequest/internal/game"
)

// ToolHandlerFactory takes a tool in hand or puts it away. With no input it
// lists the tools the player owns.
type ToolHandlerFactory struct{}

func (f *ToolHandlerFactory) ValidateConfig(map[string]any) error {
	return nil
}

func (f *ToolHandlerFactory) Create(map[string]any) (CommandFunc, error) {
	return func(_ context.Context, cmdCtx *CommandContext) error {
		frame := cmdCtx.Game.View()

		name := strings.ToLower(cmdCtx.String("tool"))
		if name == "" {
			return listTools(cmdCtx, frame.Tools)
		}

		var tool *game.ToolView
		for i, t := range frame.Tools {
			if t.ID == name || (t.Key != "" && t.Key == name) {
				tool = &frame.Tools[i]
				break
			}
		}
		if tool == nil {
			return userErrorf("There is no tool called %q.", name)
		}

		if err := cmdCtx.Game.ToggleTool(tool.ID); err != nil {
			return err
		}
		cmdCtx.Outcome.Redraw = true

		var msg string
		switch {
		case !tool.Acquired:
			msg = fmt.Sprintf("You do not have the %s yet.", tool.ID)
		case tool.InHand:
			msg = fmt.Sprintf("You put the %s away.", tool.ID)
		default:
			msg = fmt.Sprintf("You take the %s in hand.", tool.ID)
		}
		_, err := fmt.Fprintln(cmdCtx.Out, msg)
		return err
	}, nil
}

func listTools(cmdCtx *CommandContext, tools []game.ToolView) error {
	var owned []string
	for _, t := range tools {
		if !t.Acquired {
			continue
		}
		label := display.Capitalize(t.ID)
		if t.Key != "" {
			label += " [" + t.Key + "]"
		}
		if t.InHand {
			label += " (in hand)"
		}
		owned = append(owned, label)
	}

	if len(owned) == 0 {
		_, err := fmt.Fprintln(cmdCtx.Out, "You have no tools yet.")
		return err
	}
	_, err := fmt.Fprintf(cmdCtx.Out, "Tools: %s\n", strings.Join(owned, ", "))
	return err
}

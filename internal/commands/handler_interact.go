package commands

import (
	"context"
	"fmt"
)

// InteractHandlerFactory talks to whoever the player faces, or moves an open
// dialogue on by one line, closing it after the last.
type InteractHandlerFactory struct{}

func (f *InteractHandlerFactory) ValidateConfig(map[string]any) error {
	return nil
}

func (f *InteractHandlerFactory) Create(map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		frame := cmdCtx.Game.View()
		if frame.Dialogue == nil && !frame.CanInteract {
			return NewUserError("There is nothing in front of you.")
		}

		cmdCtx.Outcome.Redraw = true
		return cmdCtx.Game.ConfirmInteraction(ctx)
	}, nil
}

// ScrollHandlerFactory pages an open dialogue without closing it.
//
// Config:
//   - direction (required): up or down
type ScrollHandlerFactory struct{}

func (f *ScrollHandlerFactory) ValidateConfig(config map[string]any) error {
	dir, err := configString(config, "direction")
	if err != nil {
		return err
	}
	if dir != "up" && dir != "down" {
		return fmt.Errorf("direction must be up or down")
	}
	return nil
}

func (f *ScrollHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	dir, _ := configString(config, "direction")

	return func(_ context.Context, cmdCtx *CommandContext) error {
		if cmdCtx.Game.View().Dialogue == nil {
			return NewUserError("Nobody is talking to you.")
		}

		if dir == "down" {
			cmdCtx.Game.AdvanceDialogueLine()
		} else {
			cmdCtx.Game.RetreatDialogueLine()
		}
		cmdCtx.Outcome.Redraw = true
		return nil
	}, nil
}

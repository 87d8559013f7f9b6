package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/story"
)

const (
	minLineWidth = 20
	maxLineWidth = 200

	// PrefLineWidth is the preference key the dialogue wrap width is saved
	// under.
	PrefLineWidth = "line_width"
)

// SaveHandlerFactory asks the caller to write the game to its slot.
type SaveHandlerFactory struct{}

func (f *SaveHandlerFactory) ValidateConfig(map[string]any) error {
	return nil
}

func (f *SaveHandlerFactory) Create(map[string]any) (CommandFunc, error) {
	return func(_ context.Context, cmdCtx *CommandContext) error {
		cmdCtx.Outcome.Save = true
		return nil
	}, nil
}

// QuitHandlerFactory ends the session.
//
// Config:
//   - save (optional): when true the game is saved first
type QuitHandlerFactory struct{}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]any) error {
	if v, ok := config["save"]; ok {
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("config \"save\" must be a bool")
		}
	}
	return nil
}

func (f *QuitHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	save, _ := config["save"].(bool)

	return func(_ context.Context, cmdCtx *CommandContext) error {
		cmdCtx.Outcome.Quit = true
		cmdCtx.Outcome.Save = save
		return nil
	}, nil
}

// WidthHandlerFactory sets how wide dialogue text is wrapped. The choice is
// kept with the save.
type WidthHandlerFactory struct{}

func (f *WidthHandlerFactory) ValidateConfig(map[string]any) error {
	return nil
}

func (f *WidthHandlerFactory) Create(map[string]any) (CommandFunc, error) {
	return func(_ context.Context, cmdCtx *CommandContext) error {
		w := cmdCtx.Number("width", 0)
		if w < minLineWidth || w > maxLineWidth {
			return userErrorf("Width must be between %d and %d.", minLineWidth, maxLineWidth)
		}

		cmdCtx.Game.SetLineWidth(w)
		if err := cmdCtx.Game.SetPreference(PrefLineWidth, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmdCtx.Out, "Dialogue now wraps at %d columns.\n", w)
		return err
	}, nil
}

// WarpHandlerFactory jumps to a quest. Servers must enable cheats for it to
// work.
type WarpHandlerFactory struct{}

func (f *WarpHandlerFactory) ValidateConfig(map[string]any) error {
	return nil
}

func (f *WarpHandlerFactory) Create(map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		quest := cmdCtx.String("quest")

		err := cmdCtx.Game.Warp(ctx, quest)
		switch {
		case errors.Is(err, game.ErrCheatsDisabled):
			return NewUserError("Warping is disabled on this server.")
		case errors.Is(err, story.ErrUnknownQuest):
			return userErrorf("There is no quest called %q.", quest)
		case err != nil:
			return err
		}

		cmdCtx.Outcome.Redraw = true
		_, err = fmt.Fprintf(cmdCtx.Out, "Warped to %s.\n", quest)
		return err
	}, nil
}

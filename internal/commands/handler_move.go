package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-tilequest/internal/world"
)

const maxSteps = 20

// MoveHandlerFactory walks the player in the direction named in config.
//
// Config:
//   - direction (required): up, down, left or right
type MoveHandlerFactory struct{}

func (f *MoveHandlerFactory) ValidateConfig(config map[string]any) error {
	dir, err := configString(config, "direction")
	if err != nil {
		return err
	}
	_, err = world.ParseDirection(dir)
	return err
}

func (f *MoveHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	dirName, _ := configString(config, "direction")
	dir, err := world.ParseDirection(dirName)
	if err != nil {
		return nil, err
	}
	dx, dy := dir.Vector()

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		steps := cmdCtx.Number("steps", 1)
		if steps < 1 || steps > maxSteps {
			return userErrorf("You can walk between 1 and %d steps at a time.", maxSteps)
		}

		cmdCtx.Outcome.Redraw = true
		for range steps {
			res, err := cmdCtx.Game.MovePlayer(ctx, dx, dy)
			if err != nil {
				return err
			}

			switch res {
			case world.StepIgnored:
				cmdCtx.Outcome.Redraw = false
				return NewUserError("You are in a conversation. Type 'use' to continue it.")
			case world.StepBlocked:
				_, err := fmt.Fprintln(cmdCtx.Out, "Something blocks your way.")
				return err
			case world.StepGate:
				return nil
			}
		}
		return nil
	}, nil
}

package commands

import (
	"context"
	"io"

	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/world"
)

// Game is the part of a session commands act on.
type Game interface {
	View() game.Frame
	MovePlayer(ctx context.Context, dx, dy int) (world.StepResult, error)
	ToggleTool(id string) error
	ConfirmInteraction(ctx context.Context) error
	AdvanceDialogueLine()
	RetreatDialogueLine()
	OpenJournal() (*game.Journal, error)
	OpenGoals() ([]game.GoalCard, error)
	Warp(ctx context.Context, quest string) error
	SetLineWidth(width int)
	SetPreference(key string, v any) error
}

// Outcome tells the caller what to do once a command has run.
type Outcome struct {
	Save bool
	Quit bool
	// Redraw is false for commands that only print text.
	Redraw bool
}

// CommandContext is handed to a compiled command.
type CommandContext struct {
	Game    Game
	Out     io.Writer
	Inputs  map[string]ParsedArg
	Outcome *Outcome
}

// String returns the raw value of an input or "".
func (c *CommandContext) String(name string) string {
	return c.Inputs[name].Raw
}

// Number returns a number input, or def when it was not given.
func (c *CommandContext) Number(name string, def int) int {
	if a, ok := c.Inputs[name]; ok {
		if n, ok := a.Value.(int); ok {
			return n
		}
	}
	return def
}

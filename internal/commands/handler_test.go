package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

type memStore map[string]*Command

func (m memStore) Save(id string, c *Command) error { m[id] = c; return nil }
func (m memStore) Get(id string) *Command          { return m[id] }
func (m memStore) GetAll() map[string]*Command {
	out := make(map[string]*Command, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type fakeGame struct {
	frame   game.Frame
	results []world.StepResult
	moves   [][2]int

	confirms  int
	advances  int
	retreats  int
	toggled   []string
	journal   *game.Journal
	cards     []game.GoalCard
	screenErr error
	warpErr   error
	width     int
	prefs     map[string]any
}

func (g *fakeGame) View() game.Frame { return g.frame }

func (g *fakeGame) MovePlayer(_ context.Context, dx, dy int) (world.StepResult, error) {
	g.moves = append(g.moves, [2]int{dx, dy})
	if len(g.results) == 0 {
		return world.StepMoved, nil
	}
	res := g.results[0]
	g.results = g.results[1:]
	return res, nil
}

func (g *fakeGame) ToggleTool(id string) error { g.toggled = append(g.toggled, id); return nil }
func (g *fakeGame) ConfirmInteraction(context.Context) error {
	g.confirms++
	return nil
}
func (g *fakeGame) AdvanceDialogueLine() { g.advances++ }
func (g *fakeGame) RetreatDialogueLine() { g.retreats++ }
func (g *fakeGame) OpenJournal() (*game.Journal, error) {
	return g.journal, g.screenErr
}
func (g *fakeGame) OpenGoals() ([]game.GoalCard, error)     { return g.cards, g.screenErr }
func (g *fakeGame) Warp(context.Context, string) error      { return g.warpErr }
func (g *fakeGame) SetLineWidth(w int)                      { g.width = w }
func (g *fakeGame) SetPreference(k string, v any) error {
	if g.prefs == nil {
		g.prefs = map[string]any{}
	}
	g.prefs[k] = v
	return nil
}

func testCommands() memStore {
	return memStore{
		"north": {Handler: "move", Category: "movement", Aliases: []string{"n", "z"},
			Config: map[string]any{"direction": "up"},
			Inputs: []InputSpec{{Name: "steps", Type: InputTypeNumber}}},
		"east": {Handler: "move", Category: "movement", Aliases: []string{"e", "d"},
			Config: map[string]any{"direction": "right"},
			Inputs: []InputSpec{{Name: "steps", Type: InputTypeNumber}}},
		"use":     {Handler: "interact", Category: "actions", Aliases: []string{"u"}, Help: "Talk to whoever you face."},
		"next":    {Handler: "scroll", Category: "actions", Config: map[string]any{"direction": "down"}},
		"prev":    {Handler: "scroll", Category: "actions", Config: map[string]any{"direction": "up"}},
		"tool":    {Handler: "tool", Category: "actions", Inputs: []InputSpec{{Name: "tool", Type: InputTypeString}}},
		"journal": {Handler: "journal", Category: "screens", Aliases: []string{"j"}},
		"goals":   {Handler: "goals", Category: "screens", Inputs: []InputSpec{{Name: "goal", Type: InputTypeNumber}}},
		"save":    {Handler: "save", Category: "game"},
		"quit":    {Handler: "quit", Category: "game", Config: map[string]any{"save": true}},
		"width":   {Handler: "width", Category: "game", Inputs: []InputSpec{{Name: "width", Type: InputTypeNumber, Required: true}}},
		"warp":    {Handler: "warp", Category: "game", Inputs: []InputSpec{{Name: "quest", Type: InputTypeString, Required: true}}},
		"help":    {Handler: "help", Aliases: []string{"?"}, Inputs: []InputSpec{{Name: "command", Type: InputTypeString}}},
	}
}

func mustHandler(t *testing.T) *Handler {
	t.Helper()
	h := NewHandler(testCommands())
	if err := h.CompileAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func tools() []game.ToolView {
	return []game.ToolView{
		{ID: "axe", Key: "1", Acquired: true},
		{ID: "shovel", Key: "2", Acquired: true, InHand: true},
		{ID: "net", Key: "4"},
	}
}

func TestHandler_Exec(t *testing.T) {
	tests := map[string]struct {
		line       string
		game       *fakeGame
		expOutcome Outcome
		expOut     string
		expUserErr string
		check      func(t *testing.T, g *fakeGame)
	}{
		"blank line": {
			line: "   ",
			game: &fakeGame{},
		},
		"unknown command": {
			line:       "dance",
			game:       &fakeGame{},
			expUserErr: "Unknown command: dance",
		},
		"move by alias": {
			line:       "Z",
			game:       &fakeGame{},
			expOutcome: Outcome{Redraw: true},
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "moves", len(g.moves), 1)
				testutil.AssertEqual(t, "vector", g.moves[0], [2]int{0, -1})
			},
		},
		"move several steps stops when blocked": {
			line:       "east 5",
			game:       &fakeGame{results: []world.StepResult{world.StepMoved, world.StepBlocked}},
			expOutcome: Outcome{Redraw: true},
			expOut:     "Something blocks your way.",
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "moves", len(g.moves), 2)
			},
		},
		"move stops at a gate": {
			line:       "e 3",
			game:       &fakeGame{results: []world.StepResult{world.StepGate}},
			expOutcome: Outcome{Redraw: true},
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "moves", len(g.moves), 1)
			},
		},
		"move while talking": {
			line:       "n",
			game:       &fakeGame{results: []world.StepResult{world.StepIgnored}},
			expUserErr: "in a conversation",
		},
		"move with bad count": {
			line:       "n lots",
			game:       &fakeGame{},
			expUserErr: "steps must be a number",
		},
		"move too far": {
			line:       "n 50",
			game:       &fakeGame{},
			expUserErr: "between 1 and 20",
		},
		"too many args": {
			line:       "n 1 2",
			game:       &fakeGame{},
			expUserErr: "at most 1 argument",
		},
		"use with nothing in front": {
			line:       "use",
			game:       &fakeGame{},
			expUserErr: "nothing in front of you",
		},
		"use facing npc": {
			line:       "u",
			game:       &fakeGame{frame: game.Frame{CanInteract: true}},
			expOutcome: Outcome{Redraw: true},
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "confirms", g.confirms, 1)
			},
		},
		"next without dialogue": {
			line:       "next",
			game:       &fakeGame{},
			expUserErr: "Nobody is talking",
		},
		"prev in dialogue": {
			line:       "prev",
			game:       &fakeGame{frame: game.Frame{Dialogue: &game.DialogueView{}}},
			expOutcome: Outcome{Redraw: true},
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "retreats", g.retreats, 1)
				testutil.AssertEqual(t, "advances", g.advances, 0)
			},
		},
		"tool list": {
			line:   "tool",
			game:   &fakeGame{frame: game.Frame{Tools: tools()}},
			expOut: "Tools: Axe [1], Shovel [2] (in hand)",
		},
		"tool by key": {
			line:       "tool 1",
			game:       &fakeGame{frame: game.Frame{Tools: tools()}},
			expOutcome: Outcome{Redraw: true},
			expOut:     "You take the axe in hand.",
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "toggled", g.toggled[0], "axe")
			},
		},
		"tool put away": {
			line:       "tool shovel",
			game:       &fakeGame{frame: game.Frame{Tools: tools()}},
			expOutcome: Outcome{Redraw: true},
			expOut:     "You put the shovel away.",
		},
		"tool not owned": {
			line:       "tool net",
			game:       &fakeGame{frame: game.Frame{Tools: tools()}},
			expOutcome: Outcome{Redraw: true},
			expOut:     "You do not have the net yet.",
		},
		"unknown tool": {
			line:       "tool spoon",
			game:       &fakeGame{frame: game.Frame{Tools: tools()}},
			expUserErr: `no tool called "spoon"`,
		},
		"journal locked": {
			line:       "j",
			game:       &fakeGame{screenErr: game.ErrLocked},
			expUserErr: "quest journal",
		},
		"journal collection": {
			line: "journal",
			game: &fakeGame{journal: &game.Journal{
				GoalTitle: "Life on land", Active: true, Statement: "Cut four trees.",
				Collection: true, Progress: 2, Required: 4,
			}},
			expOut: "Progress: 2/4",
		},
		"goals list": {
			line: "goals",
			game: &fakeGame{cards: []game.GoalCard{
				{Index: 0, Title: "the goals"},
				{Index: 1, Title: "no poverty", Percentage: 50, HasPercentage: true, Current: true},
			}},
			expOut: "> 1. No Poverty [50%]",
		},
		"goal detail": {
			line: "goals 1",
			game: &fakeGame{cards: []game.GoalCard{
				{Index: 1, Title: "no poverty", Explanation: "End poverty.", Facts: []string{"fact one"}},
			}},
			expOut: "== 1. NO POVERTY ==",
		},
		"goal detail out of range": {
			line:       "goals 9",
			game:       &fakeGame{cards: []game.GoalCard{{Index: 1}}},
			expUserErr: "no goal 9",
		},
		"save": {
			line:       "save",
			game:       &fakeGame{},
			expOutcome: Outcome{Save: true},
		},
		"quit saves first": {
			line:       "quit",
			game:       &fakeGame{},
			expOutcome: Outcome{Save: true, Quit: true},
		},
		"width": {
			line:   "width 40",
			game:   &fakeGame{},
			expOut: "wraps at 40 columns",
			check: func(t *testing.T, g *fakeGame) {
				testutil.AssertEqual(t, "width", g.width, 40)
				saved, _ := g.prefs[PrefLineWidth].(int)
				testutil.AssertEqual(t, "saved", saved, 40)
			},
		},
		"width missing": {
			line:       "width",
			game:       &fakeGame{},
			expUserErr: "at least 1 argument",
		},
		"width too small": {
			line:       "width 5",
			game:       &fakeGame{},
			expUserErr: "between 20 and 200",
		},
		"warp disabled": {
			line:       "warp chap2q1",
			game:       &fakeGame{warpErr: game.ErrCheatsDisabled},
			expUserErr: "disabled",
		},
		"warp unknown quest": {
			line:       "warp nope",
			game:       &fakeGame{warpErr: story.ErrUnknownQuest},
			expUserErr: `no quest called "nope"`,
		},
		"warp": {
			line:       "warp chap2q1",
			game:       &fakeGame{},
			expOutcome: Outcome{Redraw: true},
			expOut:     "Warped to chap2q1.",
		},
		"help lists categories": {
			line:   "?",
			game:   &fakeGame{},
			expOut: "Movement: east, north",
		},
		"help for alias": {
			line:   "help u",
			game:   &fakeGame{},
			expOut: "Talk to whoever you face.",
		},
		"help unknown": {
			line:       "help fly",
			game:       &fakeGame{},
			expUserErr: `No help for "fly"`,
		},
	}

	h := mustHandler(t)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			outcome, err := h.Exec(context.Background(), tt.game, &out, tt.line)

			if tt.expUserErr != "" {
				var userErr *UserError
				if !errors.As(err, &userErr) {
					t.Fatalf("expected user error, got %v", err)
				}
				testutil.AssertErrorContains(t, err, tt.expUserErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "outcome", outcome, tt.expOutcome)
			if !strings.Contains(out.String(), tt.expOut) {
				t.Errorf("output %q does not contain %q", out.String(), tt.expOut)
			}
			if tt.check != nil {
				tt.check(t, tt.game)
			}
		})
	}
}

func TestHandler_SystemErrorPassesThrough(t *testing.T) {
	errBoom := errors.New("boom")
	h := mustHandler(t)

	_, err := h.Exec(context.Background(), &fakeGame{warpErr: errBoom}, &bytes.Buffer{}, "warp q1")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	var userErr *UserError
	testutil.AssertEqual(t, "not a user error", errors.As(err, &userErr), false)
}

func TestHandler_CompileAll(t *testing.T) {
	tests := map[string]struct {
		cmds   memStore
		expErr string
	}{
		"unknown handler": {
			cmds:   memStore{"fly": {Handler: "flight"}},
			expErr: `unknown handler "flight"`,
		},
		"bad move direction": {
			cmds:   memStore{"up": {Handler: "move", Config: map[string]any{"direction": "sideways"}}},
			expErr: "validating config",
		},
		"bad scroll direction": {
			cmds:   memStore{"next": {Handler: "scroll", Config: map[string]any{"direction": "left"}}},
			expErr: "direction must be up or down",
		},
		"bad template": {
			cmds:   memStore{"journal": {Handler: "journal", Config: map[string]any{"template": "{{ .Nope "}}},
			expErr: "parsing template",
		},
		"alias clash": {
			cmds: memStore{
				"north": {Handler: "move", Aliases: []string{"n"}, Config: map[string]any{"direction": "up"}},
				"next":  {Handler: "scroll", Aliases: []string{"n"}, Config: map[string]any{"direction": "down"}},
			},
			expErr: `"n" is already used by "next"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := NewHandler(tt.cmds).CompileAll()
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestHandler_RegisterFactory(t *testing.T) {
	h := NewHandler(memStore{})

	testutil.AssertErrorContains(t, h.RegisterFactory("", &SaveHandlerFactory{}), "cannot be empty")
	testutil.AssertErrorContains(t, h.RegisterFactory("dance", nil), "cannot be nil")
	testutil.AssertErrorContains(t, h.RegisterFactory("save", &SaveHandlerFactory{}), "already registered")
	if err := h.RegisterFactory("dance", &SaveHandlerFactory{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-tilequest/internal/display"
	"github.com/pixil98/go-tilequest/internal/inventory"
	"github.com/pixil98/go-tilequest/internal/storage"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

const (
	DefaultLineWidth = 76
	DefaultWindow    = 3
)

// Notifier announces goal completions to whatever displays them.
type Notifier interface {
	GoalCompleted(ctx context.Context, session uuid.UUID, ev story.GoalCompleted) error
}

type nopNotifier struct{}

func (nopNotifier) GoalCompleted(context.Context, uuid.UUID, story.GoalCompleted) error {
	return nil
}

// Session is one player's game. Every exported method takes the session lock,
// so input handlers and the frame driver may call in from different
// goroutines.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	book     *story.Book
	maps     MapSource
	notifier Notifier

	lineWidth int
	window    int
	cheats    bool

	player  *world.Player
	area    *world.Area
	inv     *inventory.Ledger
	script  *story.Script
	removed world.RemovedSet

	dialogue *dialogue
	medals   []story.GoalCompleted
	extra    storage.ExtensionState
}

// RestoreSession builds a session from a snapshot. A snapshot that does not
// fit the book is replaced by a new game.
func RestoreSession(ctx context.Context, book *story.Book, snap *Snapshot, maps MapSource, opts ...SessionOpt) (*Session, error) {
	if snap == nil {
		snap = NewGameSnapshot(book)
	}
	if err := snap.Check(book); err != nil {
		slog.WarnContext(ctx, "discarding save", "error", err)
		snap = NewGameSnapshot(book)
	}

	script, err := story.NewScript(book, snap.Quest, snap.Versions)
	if err != nil {
		return nil, fmt.Errorf("building script: %w", err)
	}

	inv := inventory.NewLedger(book.Tools)
	for id, acquired := range snap.Tools {
		if !acquired {
			continue
		}
		if err := inv.Acquire(id); err != nil {
			return nil, err
		}
	}
	inv.Journal = snap.Journal
	inv.Booklet = snap.Booklet

	s := &Session{
		id:        snap.ID,
		book:      book,
		maps:      maps,
		notifier:  nopNotifier{},
		lineWidth: DefaultLineWidth,
		window:    DefaultWindow,
		player: world.NewPlayer(
			snap.Player.Avatar,
			world.Position{X: snap.Player.X, Y: snap.Player.Y},
			snap.Player.Facing,
		),
		inv:     inv,
		script:  script,
		removed: world.NewRemovedSet(snap.Removed...),
		extra:   snap.Extra.Clone(),
	}
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.loadArea(ctx, snap.Map, ""); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) loadArea(ctx context.Context, name, from string) error {
	version := s.script.MapVersion(name)
	spec, err := s.maps.Area(ctx, name, version)
	if err != nil {
		return fmt.Errorf("loading map %s: %w", name, err)
	}

	area := world.NewArea(name, version, spec, s.removed)
	if from != "" && !area.Place(s.player, from) {
		slog.WarnContext(ctx, "no gate back to source map", "map", name, "from", from)
	}
	s.area = area
	return nil
}

// MovePlayer steps the player one tile. Walking through a gate loads the
// destination map.
func (s *Session) MovePlayer(ctx context.Context, dx, dy int) (world.StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, gate, err := s.area.Step(s.player, dx, dy)
	if err != nil || res != world.StepGate {
		return res, err
	}

	if err := s.loadArea(ctx, gate.To, s.area.Name); err != nil {
		return world.StepBlocked, err
	}
	s.player.Facing = gate.Exit
	s.player.Steps = 0

	slog.DebugContext(ctx, "entered map", "session", s.id, "map", gate.To)
	return res, nil
}

// ToggleTool takes a tool in hand or puts it away.
func (s *Session) ToggleTool(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inv.Grab(id)
}

// ConfirmInteraction opens a dialogue with whatever the player faces, moves to
// the next line, or closes the dialogue when on its last line.
func (s *Session) ConfirmInteraction(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dialogue == nil {
		return s.openDialogue()
	}
	if !s.dialogue.advance() {
		return nil
	}
	return s.closeDialogue(ctx)
}

// AdvanceDialogueLine scrolls down; it never closes the dialogue.
func (s *Session) AdvanceDialogueLine() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dialogue == nil {
		return
	}
	if s.dialogue.advance() {
		s.dialogue.line--
	}
}

// RetreatDialogueLine scrolls up, stopping at the first line.
func (s *Session) RetreatDialogueLine() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dialogue != nil && s.dialogue.line > 0 {
		s.dialogue.line--
	}
}

func (s *Session) openDialogue() error {
	if npc := s.area.FacedNPC(s.player); npc != nil {
		s.inv.Drop()
		text, err := s.script.Dialogue(npc.Name, s.inv)
		if err != nil {
			return err
		}
		s.player.Interacting = true
		npc.InteractingWith = true
		s.dialogue = &dialogue{npc: npc, lines: display.Lines(text, s.lineWidth)}
		return nil
	}

	if obj := s.area.FacedObject(s.player); obj != nil {
		text, err := s.script.Dialogue(obj.Type, s.inv)
		if err != nil {
			return err
		}
		harvest := s.script.Harvestable(obj.Type, s.inv)
		s.player.Interacting = true
		s.dialogue = &dialogue{object: obj, harvest: harvest, lines: display.Lines(text, s.lineWidth)}
	}
	return nil
}

func (s *Session) closeDialogue(ctx context.Context) error {
	d := s.dialogue
	s.dialogue = nil
	s.player.Interacting = false

	if d.npc != nil {
		// The check must see the NPC still in dialogue.
		err := s.check(ctx)
		d.npc.InteractingWith = false
		return err
	}

	if d.harvest {
		s.script.Current().RecordProgress()
		s.removed.Add(d.object.Name)
		s.area.RemoveObject(d.object.Name)
		return s.check(ctx)
	}
	return nil
}

func (s *Session) check(ctx context.Context) error {
	ev, err := s.script.Check(s.area, s.inv)
	if ev != nil {
		s.medals = append(s.medals, *ev)
		slog.InfoContext(ctx, "goal completed", "session", s.id, "goal", ev.Goal, "final", ev.Final)
		if nerr := s.notifier.GoalCompleted(ctx, s.id, *ev); nerr != nil {
			slog.WarnContext(ctx, "failed to publish goal completion", "session", s.id, "error", nerr)
		}
	}
	return err
}

// Tick runs the per-frame script update.
func (s *Session) Tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.script.Update() {
		slog.DebugContext(ctx, "quest unlocked", "session", s.id, "quest", s.script.Current().Name)
	}
	return nil
}

// Medals returns and clears the goal completions not yet shown.
func (s *Session) Medals() []story.GoalCompleted {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.medals
	s.medals = nil
	return m
}

// Warp jumps the storyline to the named quest.
func (s *Session) Warp(ctx context.Context, quest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cheats {
		return ErrCheatsDisabled
	}
	if err := s.script.JumpTo(quest, s.inv); err != nil {
		return err
	}

	// Map versions may have changed under the player.
	return s.loadArea(ctx, s.area.Name, "")
}

// Preference reads a front end setting saved with the game.
func (s *Session) Preference(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.extra.Get(key, out)
}

func (s *Session) SetPreference(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.extra.Set(key, v)
}

// SetLineWidth changes the wrap width for dialogues opened from now on.
func (s *Session) SetLineWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width > 0 {
		s.lineWidth = width
	}
}

// Snapshot captures the session for saving.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tools := map[string]bool{}
	for _, t := range s.inv.Tools() {
		tools[t.ID] = t.Acquired
	}

	return &Snapshot{
		ID:      s.id,
		SavedAt: time.Now().UTC(),
		Player: PlayerState{
			Avatar: s.player.Avatar,
			X:      s.player.Pos.X,
			Y:      s.player.Pos.Y,
			Facing: s.player.Facing,
		},
		Map:      s.area.Name,
		Versions: s.script.Versions(),
		Tools:    tools,
		Quest:    s.script.Progress(),
		Journal:  s.inv.Journal,
		Booklet:  s.inv.Booklet,
		Removed:  s.removed.Names(),
		Extra:    s.extra.Clone(),
	}
}

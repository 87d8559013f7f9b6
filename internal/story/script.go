package story

import (
	"fmt"
	"maps"

	"github.com/pixil98/go-tilequest/internal/inventory"
	"github.com/pixil98/go-tilequest/internal/world"
)

// Progress is the persisted position in the storyline.
type Progress struct {
	Quest    string `json:"name"`
	State    State  `json:"state"`
	Progress int    `json:"progress"`
}

// NPCFinder looks up NPCs on the current map. *world.Area implements it.
type NPCFinder interface {
	NPC(name string) *world.NPC
}

// Script drives a single player's progression through a Book.
type Script struct {
	book     *Book
	quests   []*Quest
	goals    []*Goal
	current  int
	versions map[string]string
	goal     int
}

// NewScript rebuilds progression from saved data. Every quest before the saved
// one is completed and the map versions those quests would have set are
// applied. Saved versions are laid over the replayed ones.
func NewScript(book *Book, p Progress, versions map[string]string) (*Script, error) {
	idx := book.QuestIndex(p.Quest)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuest, p.Quest)
	}

	s := newScript(book)
	s.replay(idx)
	maps.Copy(s.versions, versions)

	q := s.quests[idx]
	q.State = min(max(p.State, StateLocked), StateCompleted)
	if q.Collection != nil {
		q.Collection.Progress = min(max(p.Progress, 0), q.Collection.Required)
		q.Collection.refresh()
	}
	q.Unlock()

	s.current = idx
	s.refreshGoal()
	return s, nil
}

func newScript(book *Book) *Script {
	s := &Script{
		book:     book,
		versions: map[string]string{},
	}

	for i := range book.Goals {
		s.goals = append(s.goals, &Goal{GoalSpec: &book.Goals[i], Index: i})
	}

	for i := range book.Quests {
		q := newQuest(&book.Quests[i])
		s.quests = append(s.quests, q)
		if q.Goal >= 0 && q.Goal < len(s.goals) {
			s.goals[q.Goal].Quests = append(s.goals[q.Goal].Quests, q)
		}
	}

	for _, g := range s.goals {
		if n := len(g.Quests); n > 0 {
			g.Quests[n-1].closesGoal = true
		}
	}
	if n := len(s.quests); n > 0 {
		s.quests[n-1].Last = true
	}

	return s
}

func (s *Script) replay(upTo int) {
	for _, q := range s.quests[:upTo] {
		q.State = StateCompleted
		for _, e := range s.book.Effects.MapVersions(q.Name) {
			s.versions[e.Map] = e.Version
		}
	}
}

// Current returns the quest being played.
func (s *Script) Current() *Quest {
	return s.quests[s.current]
}

// Next returns the quest after the current one, or nil on the last quest.
func (s *Script) Next() *Quest {
	if s.current+1 < len(s.quests) {
		return s.quests[s.current+1]
	}
	return nil
}

func (s *Script) Quests() []*Quest {
	return s.quests
}

func (s *Script) Goals() []*Goal {
	return s.goals
}

// GoalIndex is the goal of the current quest while it is in progress and
// the meta goal 0 otherwise.
func (s *Script) GoalIndex() int {
	return s.goal
}

// MapVersion returns the version suffix for a map, "" for the base map.
func (s *Script) MapVersion(name string) string {
	return s.versions[name]
}

// Versions returns a copy of the map version table.
func (s *Script) Versions() map[string]string {
	return maps.Clone(s.versions)
}

// Progress returns the state to persist.
func (s *Script) Progress() Progress {
	q := s.Current()
	return Progress{Quest: q.Name, State: q.State, Progress: q.Progress()}
}

// Update runs once per frame. A completed quest hands over to its successor.
// Returns true when the current quest changed.
func (s *Script) Update() bool {
	advanced := false
	if s.Current().State == StateCompleted && s.Next() != nil {
		s.current++
		s.Current().Unlock()
		advanced = true
	}
	s.refreshGoal()
	return advanced
}

func (s *Script) refreshGoal() {
	q := s.Current()
	if q.State == StateInProgress {
		s.goal = q.Goal
	} else {
		s.goal = 0
	}
}

// Check advances the current quest based on which NPCs are in dialogue, then
// applies the effects authored for the state it ends up in. Earlier quests are
// never looked at.
func (s *Script) Check(npcs NPCFinder, inv *inventory.Ledger) (*GoalCompleted, error) {
	q := s.Current()

	if giver := npcs.NPC(q.Giver); giver != nil && giver.InteractingWith {
		q.Accept(giver)
	}

	var done *GoalCompleted
	validator := npcs.NPC(q.Validator)
	if q.Collection != nil {
		q.Collection.refresh()
		if validator != nil && validator.InteractingWith && q.Collection.Validated {
			done = q.Complete(validator)
		}
	} else if validator != nil && validator.InteractingWith {
		done = q.Complete(validator)
	}

	err := s.apply(s.book.Effects.For(q.Name, q.State), inv)
	if err != nil {
		return done, fmt.Errorf("applying effects of %s: %w", q.Name, err)
	}
	return done, nil
}

func (s *Script) apply(effects []Effect, inv *inventory.Ledger) error {
	for _, e := range effects {
		switch e.Kind {
		case EffectUnlockTool:
			if err := inv.Acquire(e.Tool); err != nil {
				return err
			}
		case EffectGrantJournal:
			inv.Journal = true
		case EffectGrantBooklet:
			inv.Booklet = true
		case EffectSetMapVersion:
			s.versions[e.Map] = e.Version
		}
	}
	return nil
}

// Dialogue picks the text for an NPC name or an object type. Quest lines
// take priority; everything else falls back to the default text.
func (s *Script) Dialogue(name string, inv *inventory.Ledger) (string, error) {
	if line, ok := s.questLine(name, inv); ok {
		return line, nil
	}
	if text, ok := s.book.Texts[name]; ok {
		return text, nil
	}
	return "", fmt.Errorf("%w for %q", ErrNoDialogue, name)
}

func (s *Script) questLine(name string, inv *inventory.Ledger) (string, bool) {
	q := s.Current()
	line := func(i int) (string, bool) {
		if i < len(q.Dialogue) {
			return q.Dialogue[i], true
		}
		return "", false
	}

	if q.Collection == nil {
		switch {
		case q.State == StateUnlocked && name == q.Giver:
			return line(LineAccept)
		case q.State == StateInProgress && name == q.Giver:
			return line(LineInProgress)
		case q.State == StateInProgress && name == q.Validator:
			return line(LineComplete)
		}
		return "", false
	}

	c := q.Collection
	switch {
	case q.State == StateUnlocked && name == q.Giver:
		return line(LineAccept)
	case q.State == StateInProgress && !c.Validated && name == c.Target:
		if t := inv.ToolFor(name); t != nil && !t.InHand {
			return t.Missing, true
		}
		return line(LineHarvest)
	case q.State == StateInProgress && !c.Validated && name == q.Giver:
		return line(LineInProgress)
	case q.State == StateInProgress && c.Validated && name == q.Validator:
		return line(LineComplete)
	}
	return "", false
}

// Harvestable reports whether an object of objType counts toward the current
// quest right now.
func (s *Script) Harvestable(objType string, inv *inventory.Ledger) bool {
	q := s.Current()
	if q.Collection == nil || q.State != StateInProgress {
		return false
	}
	return q.Collection.Target == objType && !q.Collection.Validated && inv.ReadyFor(objType)
}

type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	// MarkerOffered sits on the giver of an unlocked quest.
	MarkerOffered
	// MarkerPending sits on the validator while objects are still missing.
	MarkerPending
	// MarkerReady sits on the validator when the quest can be handed in.
	MarkerReady
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerOffered:
		return "offered"
	case MarkerPending:
		return "pending"
	case MarkerReady:
		return "ready"
	}
	return "none"
}

type Marker struct {
	NPC  string
	Kind MarkerKind
}

// Marker returns which NPC carries a quest marker.
func (s *Script) Marker() Marker {
	q := s.Current()
	switch q.State {
	case StateUnlocked:
		return Marker{NPC: q.Giver, Kind: MarkerOffered}
	case StateInProgress:
		if q.Collection != nil && !q.Collection.Validated {
			return Marker{NPC: q.Validator, Kind: MarkerPending}
		}
		return Marker{NPC: q.Validator, Kind: MarkerReady}
	}
	return Marker{}
}

// JumpTo makes the named quest current. Every earlier quest is completed and
// its map versions applied, and the ledger receives every tool and screen.
// Intended for testing the storyline.
func (s *Script) JumpTo(name string, inv *inventory.Ledger) error {
	idx := s.book.QuestIndex(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownQuest, name)
	}

	s.replay(idx)
	s.current = idx
	s.Current().Unlock()
	inv.AcquireAll()
	s.refreshGoal()
	return nil
}

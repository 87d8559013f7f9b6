package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilequest/internal/storage"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

const (
	StartMap    = "map0"
	StartAvatar = "player0"
)

// Avatars are the sprite sets a new game can start with.
var Avatars = []string{"player0", "player1", "player2", "player3", "player4", "player5", "player6", "player7"}

// StartPos is the middle of an 800x640 map of 32 pixel tiles.
var StartPos = world.Position{X: 12, Y: 10}

type PlayerState struct {
	Avatar string          `json:"avatar"`
	X      int             `json:"x"`
	Y      int             `json:"y"`
	Facing world.Direction `json:"facing"`
}

// Snapshot is everything needed to resume a game. Derived quest and goal
// state is rebuilt from it on load.
type Snapshot struct {
	ID       uuid.UUID         `json:"id"`
	SavedAt  time.Time         `json:"saved_at"`
	Player   PlayerState       `json:"player"`
	Map      string            `json:"map"`
	Versions map[string]string `json:"maps_version"`
	Tools    map[string]bool   `json:"tools"`
	Quest    story.Progress    `json:"current_quest"`
	Journal  bool              `json:"quest_journal_acquired"`
	Booklet  bool              `json:"goals_booklet_acquired"`
	Removed  []string          `json:"removed_objects"`

	Extra storage.ExtensionState `json:"extra,omitempty"`
}

// Validate checks the shape of the snapshot. Whether it fits a given
// storyline is checked by Check.
func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()
	if s.Map == "" {
		el.Add(fmt.Errorf("map must be set"))
	}
	if s.Quest.Quest == "" {
		el.Add(fmt.Errorf("current quest must be set"))
	}
	return el.Err()
}

// Selector labels the snapshot in the slot picker.
func (s *Snapshot) Selector() string {
	if s.SavedAt.IsZero() {
		return fmt.Sprintf("%s - %s", s.Quest.Quest, s.Map)
	}
	return fmt.Sprintf("%s - %s (%s)", s.Quest.Quest, s.Map, s.SavedAt.Format("2006-01-02 15:04"))
}

// Check reports ErrCorruptSnapshot when the snapshot refers to things the
// book does not know about.
func (s *Snapshot) Check(book *story.Book) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	idx := book.QuestIndex(s.Quest.Quest)
	if idx < 0 {
		return fmt.Errorf("%w: unknown quest %q", ErrCorruptSnapshot, s.Quest.Quest)
	}
	if s.Quest.State < story.StateLocked || s.Quest.State > story.StateCompleted {
		return fmt.Errorf("%w: quest state %d", ErrCorruptSnapshot, s.Quest.State)
	}
	if s.Quest.Progress < 0 {
		return fmt.Errorf("%w: negative quest progress", ErrCorruptSnapshot)
	}

	for id := range s.Tools {
		known := false
		for _, t := range book.Tools {
			if t.ID == id {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: unknown tool %q", ErrCorruptSnapshot, id)
		}
	}
	return nil
}

// NewGameSnapshot is the state of a fresh game.
func NewGameSnapshot(book *story.Book) *Snapshot {
	tools := make(map[string]bool, len(book.Tools))
	for _, t := range book.Tools {
		tools[t.ID] = false
	}

	first := ""
	if len(book.Quests) > 0 {
		first = book.Quests[0].Name
	}

	return &Snapshot{
		ID: uuid.New(),
		Player: PlayerState{
			Avatar: StartAvatar,
			X:      StartPos.X,
			Y:      StartPos.Y,
			Facing: world.DirDown,
		},
		Map:      StartMap,
		Versions: map[string]string{},
		Tools:    tools,
		Quest:    story.Progress{Quest: first, State: story.StateLocked},
		Removed:  []string{},
	}
}

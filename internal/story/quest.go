package story

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-tilequest/internal/world"
)

// State is the lifecycle position of a quest. It only ever moves forward.
type State int

const (
	StateLocked State = iota
	StateUnlocked
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateInProgress:
		return "in progress"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Kind string

const (
	// KindDialogue quests are finished by talking to the validator.
	KindDialogue Kind = "dialogue"
	// KindCollection quests require harvesting a number of objects first.
	KindCollection Kind = "collection"
)

func (k *Kind) UnmarshalText(text []byte) error {
	switch v := Kind(strings.ToLower(string(text))); v {
	case KindDialogue, KindCollection:
		*k = v
		return nil
	}
	return fmt.Errorf("unknown quest kind %q", string(text))
}

// Dialogue line slots.
const (
	LineAccept = iota
	LineInProgress
	LineComplete
	LineHarvest
)

// QuestSpec is the authored, immutable part of a quest.
type QuestSpec struct {
	Name      string   `json:"name"`
	Kind      Kind     `json:"kind"`
	Goal      int      `json:"goal"`
	Statement string   `json:"statement"`
	Dialogue  []string `json:"dialogue"`
	Giver     string   `json:"giver"`
	Validator string   `json:"validator"`

	// ValidatorSprite is shown next to the quest in the journal.
	ValidatorSprite string `json:"validator_sprite,omitempty"`

	// Collection quests only.
	Target   string `json:"target,omitempty"`
	Required int    `json:"required,omitempty"`
}

// Collection is the per-session payload of a collection quest.
type Collection struct {
	Target    string
	Required  int
	Progress  int
	Validated bool
}

// Quest is a live quest owned by a single Script.
type Quest struct {
	*QuestSpec

	State State
	// Last is set on the final quest of the storyline.
	Last bool
	// Collection is nil for dialogue quests.
	Collection *Collection

	closesGoal bool
}

func newQuest(spec *QuestSpec) *Quest {
	q := &Quest{QuestSpec: spec}
	if spec.Kind == KindCollection {
		q.Collection = &Collection{Target: spec.Target, Required: spec.Required}
	}
	return q
}

// GoalCompleted is emitted when the last quest of a goal is completed.
type GoalCompleted struct {
	Goal  int  `json:"goal"`
	Final bool `json:"final"`
}

// Unlock moves a locked quest to unlocked.
func (q *Quest) Unlock() {
	if q.State == StateLocked {
		q.State = StateUnlocked
	}
}

// Accept moves an unlocked quest into progress and ends the giver's dialogue.
func (q *Quest) Accept(giver *world.NPC) {
	if q.State != StateUnlocked {
		return
	}
	q.State = StateInProgress
	if giver != nil {
		giver.InteractingWith = false
	}
}

// Complete finishes an in-progress quest and ends the validator's dialogue.
// When the quest closes its goal a GoalCompleted is returned. The meta goal 0
// only reports completion for the final quest of the game.
func (q *Quest) Complete(validator *world.NPC) *GoalCompleted {
	if q.State != StateInProgress {
		return nil
	}
	q.State = StateCompleted
	if validator != nil {
		validator.InteractingWith = false
	}

	if q.closesGoal && (q.Goal != 0 || q.Last) {
		return &GoalCompleted{Goal: q.Goal, Final: q.Last}
	}
	return nil
}

// RecordProgress counts one harvested object. It does nothing for dialogue
// quests and never exceeds the required count.
func (q *Quest) RecordProgress() {
	c := q.Collection
	if c == nil {
		return
	}
	if c.Progress < c.Required {
		c.Progress++
	}
	c.refresh()
}

// Progress returns the harvested count, always 0 for dialogue quests.
func (q *Quest) Progress() int {
	if q.Collection == nil {
		return 0
	}
	return q.Collection.Progress
}

// Validated reports whether a collection quest has all its objects.
func (q *Quest) Validated() bool {
	return q.Collection != nil && q.Collection.Validated
}

func (c *Collection) refresh() {
	if c.Progress == c.Required {
		c.Validated = true
	}
}

package story

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilequest/internal/inventory"
	"github.com/pixil98/go-tilequest/internal/world"
)

const (
	minDialogueLines   = 3
	collectionDialogue = 4
)

// Book is the authored storyline: the ordered quests, the goals they serve,
// default interaction texts and the effects quests trigger. A Book is never
// mutated once loaded; every session builds its own Script from it.
type Book struct {
	Quests  []QuestSpec          `json:"quests"`
	Goals   []GoalSpec           `json:"goals"`
	Texts   map[string]string    `json:"texts"`
	Effects EffectTable          `json:"effects"`
	Tools   []inventory.ToolSpec `json:"tools"`
}

// QuestIndex returns the authored position of the named quest or -1.
func (b *Book) QuestIndex(name string) int {
	return slices.IndexFunc(b.Quests, func(q QuestSpec) bool { return q.Name == name })
}

func (b *Book) hasTool(id string) bool {
	return slices.ContainsFunc(b.Tools, func(t inventory.ToolSpec) bool { return t.ID == id })
}

func (b *Book) Validate() error {
	el := errors.NewErrorList()

	if len(b.Quests) == 0 {
		el.Add(fmt.Errorf("at least one quest is required"))
	}
	if len(b.Goals) == 0 {
		el.Add(fmt.Errorf("at least one goal is required"))
	}

	for i, g := range b.Goals {
		if g.Title == "" {
			el.Add(fmt.Errorf("goal %d: title must be set", i))
		}
	}

	seen := map[string]bool{}
	for i := range b.Quests {
		q := &b.Quests[i]
		if q.Name == "" {
			el.Add(fmt.Errorf("quest %d: name must be set", i))
			continue
		}
		if seen[q.Name] {
			el.Add(fmt.Errorf("quest %s: duplicate name", q.Name))
		}
		seen[q.Name] = true
		el.Add(b.validateQuest(q))
	}

	toolIDs := map[string]bool{}
	for i := range b.Tools {
		t := &b.Tools[i]
		el.Add(t.Validate())
		if toolIDs[t.ID] {
			el.Add(fmt.Errorf("tool %s: duplicate id", t.ID))
		}
		toolIDs[t.ID] = true
		if t.Target != "" && !world.IsObjectType(t.Target) {
			el.Add(fmt.Errorf("tool %s: unknown target %q", t.ID, t.Target))
		}
	}

	for i, r := range b.Effects {
		if !seen[r.Quest] {
			el.Add(fmt.Errorf("effect %d: unknown quest %q", i, r.Quest))
		}
		if r.State < StateUnlocked || r.State > StateCompleted {
			el.Add(fmt.Errorf("effect %d: state %d cannot be reached by a check", i, r.State))
		}
		for _, e := range r.Effects {
			switch e.Kind {
			case EffectUnlockTool:
				if !b.hasTool(e.Tool) {
					el.Add(fmt.Errorf("effect %d: unknown tool %q", i, e.Tool))
				}
			case EffectSetMapVersion:
				if e.Map == "" {
					el.Add(fmt.Errorf("effect %d: map must be set", i))
				}
			case EffectGrantJournal, EffectGrantBooklet:
			default:
				el.Add(fmt.Errorf("effect %d: kind must be set", i))
			}
		}
	}

	return el.Err()
}

func (b *Book) validateQuest(q *QuestSpec) error {
	el := errors.NewErrorList()

	if q.Goal < 0 || q.Goal >= len(b.Goals) {
		el.Add(fmt.Errorf("quest %s: goal %d out of range", q.Name, q.Goal))
	}
	if len(q.Dialogue) < minDialogueLines {
		el.Add(fmt.Errorf("quest %s: needs at least %d dialogue lines", q.Name, minDialogueLines))
	}

	switch q.Kind {
	case KindDialogue:
		if q.Target != "" || q.Required != 0 {
			el.Add(fmt.Errorf("quest %s: dialogue quests take no target", q.Name))
		}
	case KindCollection:
		if len(q.Dialogue) != collectionDialogue {
			el.Add(fmt.Errorf("quest %s: collection quests need exactly %d dialogue lines", q.Name, collectionDialogue))
		}
		if !world.IsObjectType(q.Target) {
			el.Add(fmt.Errorf("quest %s: unknown target %q", q.Name, q.Target))
		}
		if q.Required <= 0 {
			el.Add(fmt.Errorf("quest %s: required must be positive", q.Name))
		}
	default:
		el.Add(fmt.Errorf("quest %s: kind must be set", q.Name))
	}

	for _, npc := range []string{q.Giver, q.Validator} {
		if npc == "" {
			el.Add(fmt.Errorf("quest %s: giver and validator must be set", q.Name))
			continue
		}
		if _, ok := b.Texts[npc]; !ok {
			el.Add(fmt.Errorf("quest %s: %s has no default text", q.Name, npc))
		}
	}

	return el.Err()
}

// ValidateArea checks that every NPC on a map can be talked to.
func (b *Book) ValidateArea(name string, spec *world.AreaSpec) error {
	el := errors.NewErrorList()
	for _, n := range spec.NPCNames() {
		if _, ok := b.Texts[n]; !ok {
			el.Add(fmt.Errorf("map %s: npc %s has no default text", name, n))
		}
	}
	for _, o := range spec.Objects {
		if _, ok := b.Texts[o.Type]; !ok {
			el.Add(fmt.Errorf("map %s: object type %s has no default text", name, o.Type))
		}
	}
	return el.Err()
}

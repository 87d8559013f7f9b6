package story

import (
	"testing"

	"github.com/pixil98/go-tilequest/internal/inventory"
	"github.com/pixil98/go-tilequest/internal/world"
)

// npcs is a map backed NPCFinder for tests.
type npcs map[string]*world.NPC

func (n npcs) NPC(name string) *world.NPC {
	return n[name]
}

func newNPCs(names ...string) npcs {
	n := npcs{}
	for _, name := range names {
		n[name] = &world.NPC{Name: name}
	}
	return n
}

func testBook() *Book {
	return &Book{
		Goals: []GoalSpec{
			{Title: "Seventeen goals"},
			{Title: "Clean water"},
			{Title: "Life on land"},
		},
		Quests: []QuestSpec{
			{
				Name: "q0", Kind: KindDialogue, Goal: 0,
				Statement: "Meet B",
				Dialogue:  []string{"go see B", "B is north", "hello from B"},
				Giver:     "A", Validator: "B",
			},
			{
				Name: "q1", Kind: KindCollection, Goal: 1,
				Statement: "Cut two trees",
				Dialogue:  []string{"cut two trees", "still need trees", "thanks", "chop!"},
				Giver:     "B", Validator: "B",
				Target: world.ObjectTree, Required: 2,
			},
			{
				Name: "q2", Kind: KindDialogue, Goal: 1,
				Statement: "Tell C",
				Dialogue:  []string{"tell C", "C is east", "thanks for telling me"},
				Giver:     "B", Validator: "C",
			},
			{
				Name: "q3", Kind: KindDialogue, Goal: 2,
				Statement: "Tell A",
				Dialogue:  []string{"tell A", "A is home", "you told me"},
				Giver:     "C", Validator: "A",
			},
			{
				Name: "q4", Kind: KindDialogue, Goal: 0,
				Statement: "Return to B",
				Dialogue:  []string{"return to B", "B waits", "the end"},
				Giver:     "A", Validator: "B",
			},
		},
		Texts: map[string]string{
			"A":    "default A",
			"B":    "default B",
			"C":    "default C",
			"tree": "use an axe",
		},
		Tools: []inventory.ToolSpec{
			{ID: "axe", Target: world.ObjectTree, Missing: "you need an axe"},
		},
		Effects: EffectTable{
			{Quest: "q0", State: StateInProgress, Effects: []Effect{{Kind: EffectGrantJournal}}},
			{Quest: "q1", State: StateInProgress, Effects: []Effect{{Kind: EffectUnlockTool, Tool: "axe"}}},
			{Quest: "q1", State: StateCompleted, Effects: []Effect{{Kind: EffectSetMapVersion, Map: "map2", Version: "_2"}}},
			{Quest: "q2", State: StateInProgress, Effects: []Effect{
				{Kind: EffectSetMapVersion, Map: "mapD", Version: "_2"},
				{Kind: EffectSetMapVersion, Map: "map2", Version: "_3"},
			}},
			{Quest: "q3", State: StateCompleted, Effects: []Effect{{Kind: EffectGrantBooklet}}},
		},
	}
}

func mustScript(t *testing.T, b *Book, p Progress, versions map[string]string) *Script {
	t.Helper()
	s, err := NewScript(b, p, versions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

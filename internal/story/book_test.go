package story

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tilequest/internal/world"
)

func TestBook_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(b *Book)
		expErr string
	}{
		"valid": {
			mutate: func(*Book) {},
		},
		"no quests": {
			mutate: func(b *Book) { b.Quests = nil },
			expErr: "at least one quest is required",
		},
		"duplicate quest name": {
			mutate: func(b *Book) { b.Quests[2].Name = "q1" },
			expErr: "quest q1: duplicate name",
		},
		"goal out of range": {
			mutate: func(b *Book) { b.Quests[0].Goal = 3 },
			expErr: "goal 3 out of range",
		},
		"too few dialogue lines": {
			mutate: func(b *Book) { b.Quests[0].Dialogue = b.Quests[0].Dialogue[:2] },
			expErr: "needs at least 3 dialogue lines",
		},
		"collection without harvest line": {
			mutate: func(b *Book) { b.Quests[1].Dialogue = b.Quests[1].Dialogue[:3] },
			expErr: "exactly 4 dialogue lines",
		},
		"collection without target": {
			mutate: func(b *Book) { b.Quests[1].Target = "" },
			expErr: `unknown target ""`,
		},
		"collection without count": {
			mutate: func(b *Book) { b.Quests[1].Required = 0 },
			expErr: "required must be positive",
		},
		"dialogue with target": {
			mutate: func(b *Book) { b.Quests[0].Target = world.ObjectDirt },
			expErr: "dialogue quests take no target",
		},
		"missing kind": {
			mutate: func(b *Book) { b.Quests[0].Kind = "" },
			expErr: "kind must be set",
		},
		"giver without text": {
			mutate: func(b *Book) { delete(b.Texts, "A") },
			expErr: "A has no default text",
		},
		"effect on unknown quest": {
			mutate: func(b *Book) { b.Effects[0].Quest = "q9" },
			expErr: `unknown quest "q9"`,
		},
		"effect with unknown tool": {
			mutate: func(b *Book) { b.Effects[1].Effects[0].Tool = "hammer" },
			expErr: `unknown tool "hammer"`,
		},
		"effect on locked state": {
			mutate: func(b *Book) { b.Effects[0].State = StateLocked },
			expErr: "cannot be reached",
		},
		"tool with unknown target": {
			mutate: func(b *Book) { b.Tools[0].Target = "flower" },
			expErr: `unknown target "flower"`,
		},
		"duplicate tool": {
			mutate: func(b *Book) { b.Tools = append(b.Tools, b.Tools[0]) },
			expErr: "tool axe: duplicate id",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := testBook()
			tt.mutate(b)
			err := b.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestBook_ValidateArea(t *testing.T) {
	spec := &world.AreaSpec{
		Width: 64, Height: 64, TileSize: 32,
		NPCs: []world.NPCPlacement{
			{Name: "A"},
			{Name: "Z"},
		},
		Objects: []world.ObjectPlacement{
			{Name: "t1", Type: world.ObjectTree},
			{Name: "r1", Type: world.ObjectRock},
		},
	}

	err := testBook().ValidateArea("map0", spec)
	testutil.AssertErrorContains(t, err, "npc Z has no default text")
	testutil.AssertErrorContains(t, err, "object type rock has no default text")
}

func TestEffectTable(t *testing.T) {
	table := testBook().Effects

	testutil.AssertEqual(t, "q2 in progress", len(table.For("q2", StateInProgress)), 2)
	testutil.AssertEqual(t, "q2 completed", len(table.For("q2", StateCompleted)), 0)
	testutil.AssertEqual(t, "q1 map versions", len(table.MapVersions("q1")), 1)
	testutil.AssertEqual(t, "q0 map versions", len(table.MapVersions("q0")), 0)
}
